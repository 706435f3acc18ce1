package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Vovarama1992/persona_relay/internal/error_notificator"
	"github.com/Vovarama1992/persona_relay/internal/ports"
	"github.com/Vovarama1992/persona_relay/internal/prompts"
	"github.com/Vovarama1992/persona_relay/internal/user"
)

const (
	MsgBlocked     = "Mi intento de respuesta fue bloqueado (%s). Por favor, intenta reformular tu pregunta."
	MsgFailure     = "Lo siento, mi cerebro de IA tuvo un cortocircuito 😵. Intenta de nuevo más tarde."
	MsgPromptError = "No estoy segura de cómo ayudarte con eso. Puedes intentar preguntarme sobre algo o usar /help."

	noSafetyDetails = "No safety details available."
)

type AiService struct {
	history      ports.HistoryService
	users        user.Service
	assembler    *Assembler
	prompts      prompts.Service
	completer    Completer
	notifier     error_notificator.Notificator
	log          *zap.SugaredLogger
	name         string
	contextLimit int
}

func NewAiService(
	history ports.HistoryService,
	users user.Service,
	assembler *Assembler,
	promptSvc prompts.Service,
	completer Completer,
	notifier error_notificator.Notificator,
	log *zap.SugaredLogger,
	assistantName string,
	contextLimit int,
) *AiService {
	return &AiService{
		history:      history,
		users:        users,
		assembler:    assembler,
		prompts:      promptSvc,
		completer:    completer,
		notifier:     notifier,
		log:          log,
		name:         assistantName,
		contextLimit: contextLimit,
	}
}

// === главный метод ===
func (s *AiService) GetReply(ctx context.Context, in Inbound) (string, bool) {
	if strings.TrimSpace(in.Text) == "" {
		s.log.Infow("[ai] empty inbound text, skip", "tg", in.TelegramID)
		return "", false
	}

	start := time.Now()
	s.log.Infow("[ai] >>> START", "tg", in.TelegramID)

	// 1) пользователь и его реплика
	s.users.Register(ctx, in.TelegramID, in.DisplayName)
	s.history.Append(ctx, in.TelegramID, ports.SenderUser, in.Text)

	// 2) контекст (уже включает только что сохранённую реплику)
	transcript := s.transcript(ctx, in.TelegramID)

	// 3) промпт
	prompt, err := s.prompts.Build(prompts.Input{
		AssistantName: s.name,
		Transcript:    transcript,
		DisplayName:   in.DisplayName,
		Message:       in.Text,
	})
	if err != nil {
		s.log.Errorw("[ai] prompt build fail", "tg", in.TelegramID, "err", err)
		s.notify(ctx, err, fmt.Sprintf("Ошибка сборки промпта: tg=%d", in.TelegramID))
		return MsgPromptError, true
	}

	// 4) модель, ровно один вызов
	res, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.log.Errorw("[ai] completion fail", "tg", in.TelegramID, "err", err, "took", time.Since(start))
		s.notify(ctx, err, fmt.Sprintf("Ошибка модели\ntg=%d\n%v", in.TelegramID, err))
		return MsgFailure, true
	}

	if res.Blocked() {
		details := res.BlockDetails
		if details == "" {
			details = noSafetyDetails
		}
		s.log.Warnw("[ai] completion blocked",
			"tg", in.TelegramID,
			"finish_reason", res.FinishReason,
			"details", details,
		)
		return fmt.Sprintf(MsgBlocked, res.FinishReason+": "+details), true
	}

	// 5) ответ в историю
	s.history.Append(ctx, in.TelegramID, ports.SenderAssistant, res.Text)

	s.log.Infow("[ai] <<< DONE", "tg", in.TelegramID, "len", len(res.Text), "took", time.Since(start))
	return res.Text, true
}

func (s *AiService) transcript(ctx context.Context, telegramID int64) string {
	entries, err := s.history.Recent(ctx, telegramID, s.contextLimit)
	switch {
	case errors.Is(err, ports.ErrNoHistory):
		return NoHistoryTranscript
	case err != nil:
		s.log.Warnw("[ai] history unavailable", "tg", telegramID, "err", err)
		return HistoryUnavailableTranscript
	}
	return s.assembler.Format(entries)
}

func (s *AiService) notify(ctx context.Context, err error, details string) {
	if s.notifier == nil {
		return
	}
	if nErr := s.notifier.Notify(ctx, err, details); nErr != nil {
		s.log.Warnw("[ai] notify fail", "err", nErr)
	}
}
