package ai

import (
	"context"
	"strings"
)

// Completion: результат одного запроса к модели.
type Completion struct {
	Text         string
	FinishReason string
	// BlockDetails: категории, на которых сработал фильтр; пусто, если фильтр молчал
	BlockDetails string
}

// Blocked: модель не вернула пригодный текст.
func (c Completion) Blocked() bool {
	return strings.TrimSpace(c.Text) == ""
}

// Completer: внешний генератор текста (Gemini или OpenAI-совместимый).
// Ошибка означает сбой транспорта; отказ модели приходит как Completion без текста.
type Completer interface {
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// Inbound: входящее текстовое сообщение пользователя.
type Inbound struct {
	TelegramID  int64
	DisplayName string
	Text        string
}

type Service interface {
	// GetReply сохраняет реплику пользователя, собирает контекст, зовёт модель
	// и сохраняет ответ. ok=false: отвечать нечего.
	GetReply(ctx context.Context, in Inbound) (reply string, ok bool)
}
