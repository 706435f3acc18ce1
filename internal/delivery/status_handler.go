package delivery

import (
	"context"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/persona_relay/internal/ports"
)

type StatusReporter interface {
	Report(ctx context.Context) (*ports.StatusReport, error)
}

type StatusHandler struct {
	status StatusReporter
	log    *logger.ZapLogger
}

func NewStatusHandler(status StatusReporter, log *logger.ZapLogger) *StatusHandler {
	return &StatusHandler{status: status, log: log}
}

// Get: GET /status
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.status.Report(r.Context())
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "status report fail", Error: err, Service: "persona_relay"})
		http.Error(w, "status unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}
