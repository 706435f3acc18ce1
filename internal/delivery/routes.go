package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/Vovarama1992/persona_relay/internal/ports"
)

// NewRouter собирает HTTP API. authSvc == nil: наружу торчит только /ping.
func NewRouter(
	hHistory *HistoryHandler,
	hStatus *StatusHandler,
	hAuth *AuthHandler,
	authSvc ports.AuthService,
) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(httprate.LimitByIP(60, time.Minute))

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	if authSvc != nil {
		RegisterRoutes(r, hHistory, hStatus, hAuth, authSvc)
	}
	return r
}

func RegisterRoutes(
	r chi.Router,
	hHistory *HistoryHandler,
	hStatus *StatusHandler,
	hAuth *AuthHandler,
	authSvc ports.AuthService,
) {
	// --- auth ---
	r.With(httputil.RecoverMiddleware).
		Post("/auth/login", hAuth.Login)

	// --- protected ---
	r.Group(func(pr chi.Router) {
		pr.Use(
			httputil.RecoverMiddleware,
			AuthMiddleware(authSvc),
		)

		pr.Get("/status", hStatus.Get)

		// --- история ---
		pr.Get("/history/{telegram_id}", hHistory.Get)
		pr.Delete("/history/{telegram_id}", hHistory.Purge)
	})
}
