package ai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/persona_relay/internal/ai"
	"github.com/Vovarama1992/persona_relay/internal/domain"
	"github.com/Vovarama1992/persona_relay/internal/infra"
	"github.com/Vovarama1992/persona_relay/internal/infra/infratest"
	"github.com/Vovarama1992/persona_relay/internal/ports"
	"github.com/Vovarama1992/persona_relay/internal/prompts"
	"github.com/Vovarama1992/persona_relay/internal/user"
)

type fakeCompleter struct {
	res     ai.Completion
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (ai.Completion, error) {
	f.prompts = append(f.prompts, prompt)
	return f.res, f.err
}

type fakeNotifier struct {
	calls []string
}

func (f *fakeNotifier) Notify(_ context.Context, _ error, details string) error {
	f.calls = append(f.calls, details)
	return nil
}

// сломанная история: Append молчит, Recent падает
type brokenHistory struct {
	ports.HistoryService
}

func (brokenHistory) Append(context.Context, int64, ports.SenderKind, string) {}

func (brokenHistory) Recent(context.Context, int64, int) ([]ports.HistoryEntry, error) {
	return nil, errors.New("db is down")
}

type env struct {
	svc      *ai.AiService
	repo     ports.HistoryRepo
	users    user.Service
	llm      *fakeCompleter
	notifier *fakeNotifier
}

func newEnv(t *testing.T, limit int) *env {
	t.Helper()

	db := infratest.NewDB(t)
	log := zap.NewNop().Sugar()
	repo := infra.NewHistoryRepo(db)
	history := domain.NewHistoryService(repo, nil, nil, log)
	users := user.NewService(user.NewInfra(db), log)

	promptSvc, err := prompts.NewService(context.Background(), prompts.NewRepo(""))
	require.NoError(t, err)

	llm := &fakeCompleter{}
	n := &fakeNotifier{}
	svc := ai.NewAiService(history, users, ai.NewAssembler("Scarlet"), promptSvc, llm, n, log, "Scarlet", limit)

	return &env{svc: svc, repo: repo, users: users, llm: llm, notifier: n}
}

func (e *env) entries(t *testing.T, tgID int64) []ports.HistoryEntry {
	t.Helper()
	all, err := e.repo.GetAll(context.Background(), tgID)
	require.NoError(t, err)
	return all
}

func TestGetReply_FirstMessage(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 10)
	e.llm.res = ai.Completion{Text: "¡Hola Ana! 😊", FinishReason: "STOP"}

	reply, ok := e.svc.GetReply(ctx, ai.Inbound{TelegramID: 42, DisplayName: "Ana", Text: "hola"})
	require.True(t, ok)
	assert.Equal(t, "¡Hola Ana! 😊", reply)

	require.Len(t, e.llm.prompts, 1)
	assert.Contains(t, e.llm.prompts[0], "Usuario: hola\n")
	assert.Contains(t, e.llm.prompts[0], `El usuario 'Ana' te acaba de enviar: "hola"`)

	all := e.entries(t, 42)
	require.Len(t, all, 2)
	assert.Equal(t, ports.SenderUser, all[0].Sender)
	assert.Equal(t, "hola", all[0].Content)
	assert.Equal(t, ports.SenderAssistant, all[1].Sender)
	assert.Equal(t, "¡Hola Ana! 😊", all[1].Content)

	u, err := e.users.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
}

func TestGetReply_ContextWindow(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, 3)
	e.llm.res = ai.Completion{Text: "ok", FinishReason: "STOP"}

	for _, c := range []string{"uno", "dos", "tres"} {
		_, err := e.repo.Create(ctx, 7, ports.SenderUser, c)
		require.NoError(t, err)
	}

	_, ok := e.svc.GetReply(ctx, ai.Inbound{TelegramID: 7, DisplayName: "Leo", Text: "cuatro"})
	require.True(t, ok)

	prompt := e.llm.prompts[0]
	assert.NotContains(t, prompt, "Usuario: uno")
	assert.Contains(t, prompt, "Usuario: dos\nUsuario: tres\nUsuario: cuatro\n")
}

func TestGetReply_Blocked(t *testing.T) {
	e := newEnv(t, 10)
	e.llm.res = ai.Completion{FinishReason: "SAFETY", BlockDetails: "Bloqueado por: HARASSMENT: HIGH"}

	reply, ok := e.svc.GetReply(context.Background(), ai.Inbound{TelegramID: 5, DisplayName: "Eva", Text: "algo"})
	require.True(t, ok)
	assert.Equal(t,
		"Mi intento de respuesta fue bloqueado (SAFETY: Bloqueado por: HARASSMENT: HIGH). Por favor, intenta reformular tu pregunta.",
		reply)

	all := e.entries(t, 5)
	require.Len(t, all, 1)
	assert.Equal(t, ports.SenderUser, all[0].Sender)
}

func TestGetReply_BlockedWithoutDetails(t *testing.T) {
	e := newEnv(t, 10)
	e.llm.res = ai.Completion{Text: "   ", FinishReason: "OTHER"}

	reply, ok := e.svc.GetReply(context.Background(), ai.Inbound{TelegramID: 5, Text: "algo"})
	require.True(t, ok)
	assert.Contains(t, reply, "(OTHER: No safety details available.)")
	assert.Len(t, e.entries(t, 5), 1)
}

func TestGetReply_TransportFailure(t *testing.T) {
	e := newEnv(t, 10)
	e.llm.err = errors.New("connection reset")

	reply, ok := e.svc.GetReply(context.Background(), ai.Inbound{TelegramID: 9, DisplayName: "Iván", Text: "hola"})
	require.True(t, ok)
	assert.Equal(t, ai.MsgFailure, reply)
	assert.Len(t, e.notifier.calls, 1)
	assert.Len(t, e.entries(t, 9), 1)
}

func TestGetReply_EmptyText(t *testing.T) {
	e := newEnv(t, 10)

	reply, ok := e.svc.GetReply(context.Background(), ai.Inbound{TelegramID: 3, Text: "  "})
	assert.False(t, ok)
	assert.Empty(t, reply)
	assert.Empty(t, e.llm.prompts)
	assert.Empty(t, e.entries(t, 3))
}

func TestGetReply_HistoryUnavailable(t *testing.T) {
	log := zap.NewNop().Sugar()
	db := infratest.NewDB(t)
	promptSvc, err := prompts.NewService(context.Background(), prompts.NewRepo(""))
	require.NoError(t, err)

	llm := &fakeCompleter{res: ai.Completion{Text: "hola", FinishReason: "STOP"}}
	svc := ai.NewAiService(
		brokenHistory{},
		user.NewService(user.NewInfra(db), log),
		ai.NewAssembler("Scarlet"),
		promptSvc,
		llm,
		nil,
		log,
		"Scarlet",
		10,
	)

	reply, ok := svc.GetReply(context.Background(), ai.Inbound{TelegramID: 1, DisplayName: "Sol", Text: "hey"})
	require.True(t, ok)
	assert.Equal(t, "hola", reply)
	assert.Contains(t, llm.prompts[0], "---\n"+ai.HistoryUnavailableTranscript+"\n---")
}
