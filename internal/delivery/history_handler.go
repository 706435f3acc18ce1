package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/persona_relay/internal/ports"
)

type HistoryHandler struct {
	history ports.HistoryService
	log     *logger.ZapLogger
}

func NewHistoryHandler(history ports.HistoryService, log *logger.ZapLogger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		log:     log,
	}
}

// Get: GET /history/{telegram_id}?limit=N, без limit отдаём всё
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	tid, err := strconv.ParseInt(chi.URLParam(r, "telegram_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid telegram_id", http.StatusBadRequest)
		return
	}

	var entries []ports.HistoryEntry
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		entries, err = h.history.Recent(r.Context(), tid, limit)
		if errors.Is(err, ports.ErrNoHistory) {
			err = nil
		}
		if err != nil {
			h.dbError(w, err)
			return
		}
	} else {
		entries, err = h.history.List(r.Context(), tid)
		if err != nil {
			h.dbError(w, err)
			return
		}
	}

	if entries == nil {
		entries = []ports.HistoryEntry{}
	}
	writeJSON(w, entries)
}

// Purge: DELETE /history/{telegram_id}
func (h *HistoryHandler) Purge(w http.ResponseWriter, r *http.Request) {
	tid, err := strconv.ParseInt(chi.URLParam(r, "telegram_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid telegram_id", http.StatusBadRequest)
		return
	}

	deleted, err := h.history.Purge(r.Context(), tid)
	if err != nil {
		h.dbError(w, err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "history purged via api: " + strconv.FormatInt(tid, 10),
		Service: "persona_relay",
	})
	writeJSON(w, map[string]int64{"deleted": deleted})
}

func (h *HistoryHandler) dbError(w http.ResponseWriter, err error) {
	h.log.Log(logger.LogEntry{Level: "error", Message: "db error", Error: err, Service: "persona_relay"})
	http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
}
