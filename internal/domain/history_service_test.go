package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/persona_relay/internal/infra"
	"github.com/Vovarama1992/persona_relay/internal/infra/infratest"
	"github.com/Vovarama1992/persona_relay/internal/ports"
)

type fakeNotifier struct {
	details []string
}

func (f *fakeNotifier) Notify(ctx context.Context, err error, details string) error {
	f.details = append(f.details, details)
	return nil
}

type fakeArchiver struct {
	got map[int64][]ports.HistoryEntry
	err error
}

func (f *fakeArchiver) Archive(ctx context.Context, telegramID int64, entries []ports.HistoryEntry) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.got == nil {
		f.got = map[int64][]ports.HistoryEntry{}
	}
	f.got[telegramID] = entries
	return fmt.Sprintf("https://s3/history/%d.json", telegramID), nil
}

// brokenRepo fails every call.
type brokenRepo struct{}

var errDB = errors.New("database is locked")

func (brokenRepo) Create(context.Context, int64, ports.SenderKind, string) (int64, error) {
	return 0, errDB
}
func (brokenRepo) GetLastN(context.Context, int64, int) ([]ports.HistoryEntry, error) {
	return nil, errDB
}
func (brokenRepo) GetAll(context.Context, int64) ([]ports.HistoryEntry, error) { return nil, errDB }
func (brokenRepo) DeleteByUser(context.Context, int64) (int64, error)          { return 0, errDB }

func newHistory(t *testing.T, archiver ports.Archiver) (ports.HistoryService, *fakeNotifier) {
	t.Helper()
	n := &fakeNotifier{}
	repo := infra.NewHistoryRepo(infratest.NewDB(t))
	return NewHistoryService(repo, archiver, n, zap.NewNop().Sugar()), n
}

func TestHistory_RecentReturnsLastMinCountLimit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newHistory(t, nil)

	for i := 1; i <= 4; i++ {
		svc.Append(ctx, 1, ports.SenderUser, fmt.Sprintf("m%d", i))
	}

	got, err := svc.Recent(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "m1", got[0].Content)
	assert.Equal(t, "m4", got[3].Content)

	got, err = svc.Recent(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m3", got[0].Content)
	assert.Equal(t, "m4", got[1].Content)
	assert.Less(t, got[0].ID, got[1].ID)
}

func TestHistory_RecentNoHistorySentinel(t *testing.T) {
	ctx := context.Background()
	svc, _ := newHistory(t, nil)

	_, err := svc.Recent(ctx, 99, 10)
	assert.ErrorIs(t, err, ports.ErrNoHistory)

	// an entry with empty content is still history
	svc.Append(ctx, 100, ports.SenderAssistant, "")
	got, err := svc.Recent(ctx, 100, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Content)
}

func TestHistory_RecentStoreFailureIsNotNoHistory(t *testing.T) {
	svc := NewHistoryService(brokenRepo{}, nil, nil, zap.NewNop().Sugar())

	_, err := svc.Recent(context.Background(), 1, 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrNoHistory)
	assert.ErrorIs(t, err, errDB)
}

func TestHistory_AppendFailureIsSwallowedAndNotified(t *testing.T) {
	n := &fakeNotifier{}
	svc := NewHistoryService(brokenRepo{}, nil, n, zap.NewNop().Sugar())

	assert.NotPanics(t, func() {
		svc.Append(context.Background(), 5, ports.SenderUser, "hola")
	})
	require.Len(t, n.details, 1)
	assert.Contains(t, n.details[0], "tg=5")
}

func TestHistory_PurgeCountsAndIsolates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newHistory(t, nil)

	for i := 0; i < 7; i++ {
		svc.Append(ctx, 42, ports.SenderUser, "x")
	}
	svc.Append(ctx, 43, ports.SenderUser, "keep")

	deleted, err := svc.Purge(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)

	_, err = svc.Recent(ctx, 42, 10)
	assert.ErrorIs(t, err, ports.ErrNoHistory)

	other, err := svc.Recent(ctx, 43, 10)
	require.NoError(t, err)
	assert.Len(t, other, 1)

	deleted, err = svc.Purge(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestHistory_PurgeFailure(t *testing.T) {
	n := &fakeNotifier{}
	svc := NewHistoryService(brokenRepo{}, nil, n, zap.NewNop().Sugar())

	deleted, err := svc.Purge(context.Background(), 42)
	require.ErrorIs(t, err, errDB)
	assert.Zero(t, deleted)
	assert.Len(t, n.details, 1)
}

func TestHistory_PurgeArchivesFirst(t *testing.T) {
	ctx := context.Background()
	arch := &fakeArchiver{}
	svc, _ := newHistory(t, arch)

	svc.Append(ctx, 42, ports.SenderUser, "hola")
	svc.Append(ctx, 42, ports.SenderAssistant, "hola, cariño")

	deleted, err := svc.Purge(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	require.Len(t, arch.got[42], 2)
	assert.Equal(t, "hola", arch.got[42][0].Content)

	// nothing to archive for an empty history
	_, err = svc.Purge(ctx, 7)
	require.NoError(t, err)
	_, ok := arch.got[7]
	assert.False(t, ok)
}

func TestHistory_PurgeAbortsWhenArchiveFails(t *testing.T) {
	ctx := context.Background()
	arch := &fakeArchiver{err: errors.New("bucket gone")}
	svc, n := newHistory(t, arch)

	svc.Append(ctx, 42, ports.SenderUser, "hola")

	_, err := svc.Purge(ctx, 42)
	require.Error(t, err)
	assert.Len(t, n.details, 1)

	left, err := svc.Recent(ctx, 42, 10)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
