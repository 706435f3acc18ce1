package ai

import (
	"strings"

	"github.com/Vovarama1992/persona_relay/internal/ports"
)

const (
	UserLabel                    = "Usuario"
	NoHistoryTranscript          = "No hay historial previo con este usuario."
	HistoryUnavailableTranscript = "Error al recuperar el historial."
)

// Assembler превращает хвост истории в текст для промпта.
type Assembler struct {
	assistantName string
}

func NewAssembler(assistantName string) *Assembler {
	return &Assembler{assistantName: assistantName}
}

// Format: одна строка "<метка>: <текст>\n" на запись, порядок сохраняется.
func (a *Assembler) Format(entries []ports.HistoryEntry) string {
	if len(entries) == 0 {
		return NoHistoryTranscript
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(a.label(e.Sender))
		b.WriteString(": ")
		b.WriteString(e.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func (a *Assembler) label(kind ports.SenderKind) string {
	if kind == ports.SenderUser {
		return UserLabel
	}
	return a.assistantName
}
