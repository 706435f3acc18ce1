package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIClient struct {
	client chatClient
	model  string
}

// NewOpenAIClient: baseURL пустой для api.openai.com, иначе любой совместимый сервер
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return newOpenAIClient(openai.NewClientWithConfig(cfg), model)
}

func newOpenAIClient(client chatClient, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{client: client, model: model}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (Completion, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   2048,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return Completion{}, fmt.Errorf("openai chat (%s): %s: %w", c.model, analyzeOpenAIError(err), err)
	}

	if len(resp.Choices) == 0 {
		return Completion{FinishReason: "NO_CHOICES"}, nil
	}

	ch := resp.Choices[0]
	out := Completion{FinishReason: strings.ToUpper(string(ch.FinishReason))}

	switch ch.FinishReason {
	// некоторые совместимые сервера не присылают finish_reason
	case openai.FinishReasonStop, openai.FinishReasonNull, "":
		out.Text = ch.Message.Content
		if out.FinishReason == "" || out.FinishReason == "NULL" {
			out.FinishReason = "STOP"
		}
	case openai.FinishReasonContentFilter:
		out.BlockDetails = "Bloqueado por: content_filter"
	}
	return out, nil
}

// диагностика ошибок GPT для уведомления админу
func analyzeOpenAIError(err error) string {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "status code: 401"):
		return "Неверный API-ключ OpenAI."
	case strings.Contains(msg, "status code: 404"):
		return "Модель не найдена."
	case strings.Contains(msg, "status code: 429"):
		return "Превышен лимит OpenAI."
	case strings.Contains(msg, "status code: 400") && strings.Contains(msg, "model"):
		return "Неверно указана модель."
	case strings.Contains(msg, "status code: 400"):
		return "Некорректный запрос к OpenAI."
	case strings.Contains(msg, "status code: 500"):
		return "Внутренняя ошибка OpenAI."
	}
	return "Неизвестная ошибка OpenAI"
}
