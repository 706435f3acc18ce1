package ai

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/persona_relay/internal/config"
)

type fakeChat struct {
	resp openai.ChatCompletionResponse
	err  error
	got  openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.got = req
	return f.resp, f.err
}

func choice(reason openai.FinishReason, text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
		FinishReason: reason,
		Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: text},
	}}}
}

func TestOpenAI_Stop(t *testing.T) {
	f := &fakeChat{resp: choice(openai.FinishReasonStop, "hola")}

	out, err := newOpenAIClient(f, "").Complete(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "hola", out.Text)
	assert.Equal(t, "STOP", out.FinishReason)
	assert.Equal(t, openai.GPT4oMini, f.got.Model)
	require.Len(t, f.got.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, f.got.Messages[0].Role)
	assert.Equal(t, "prompt", f.got.Messages[0].Content)
}

func TestOpenAI_MissingFinishReason(t *testing.T) {
	f := &fakeChat{resp: choice("", "hola")}

	out, err := newOpenAIClient(f, "local-model").Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "hola", out.Text)
	assert.Equal(t, "STOP", out.FinishReason)
	assert.Equal(t, "local-model", f.got.Model)
}

func TestOpenAI_ContentFilter(t *testing.T) {
	f := &fakeChat{resp: choice(openai.FinishReasonContentFilter, "")}

	out, err := newOpenAIClient(f, "").Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.True(t, out.Blocked())
	assert.Equal(t, "CONTENT_FILTER", out.FinishReason)
	assert.Contains(t, out.BlockDetails, "content_filter")
}

func TestOpenAI_Length(t *testing.T) {
	f := &fakeChat{resp: choice(openai.FinishReasonLength, "cortado")}

	out, err := newOpenAIClient(f, "").Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.True(t, out.Blocked())
	assert.Equal(t, "LENGTH", out.FinishReason)
}

func TestOpenAI_NoChoices(t *testing.T) {
	out, err := newOpenAIClient(&fakeChat{}, "").Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.True(t, out.Blocked())
	assert.Equal(t, "NO_CHOICES", out.FinishReason)
}

func TestOpenAI_Error(t *testing.T) {
	f := &fakeChat{err: errors.New("error, status code: 429, message: slow down")}

	_, err := newOpenAIClient(f, "").Complete(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Превышен лимит OpenAI.")
}

func TestNewCompleter_UnknownProvider(t *testing.T) {
	_, err := NewCompleter(context.Background(), config.LLMConfig{Provider: "claude"})
	assert.Error(t, err)
}
