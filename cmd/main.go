package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Vovarama1992/persona_relay/internal/ai"
	"github.com/Vovarama1992/persona_relay/internal/config"
	"github.com/Vovarama1992/persona_relay/internal/delivery"
	"github.com/Vovarama1992/persona_relay/internal/domain"
	"github.com/Vovarama1992/persona_relay/internal/error_notificator"
	"github.com/Vovarama1992/persona_relay/internal/infra"
	"github.com/Vovarama1992/persona_relay/internal/ports"
	"github.com/Vovarama1992/persona_relay/internal/prompts"
	"github.com/Vovarama1992/persona_relay/internal/telegram"
	"github.com/Vovarama1992/persona_relay/internal/user"
)

func main() {

	// =========================================================================
	// ENV / LOGGER / DB INIT
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer baseLogger.Sync()
	sugar := baseLogger.Sugar()
	zl := logger.NewZapLogger(sugar)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := infra.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	sugar.Infow("[main] db ready", "dialect", db.Dialect.String())

	statusService := domain.NewStatusService(infra.NewSchemaRepo(db), sugar)
	statusService.EnsureSchema(ctx)
	statusService.LogStatus(ctx)

	// =========================================================================
	// TELEGRAM / NOTIFICATIONS
	// =========================================================================

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	sugar.Infow("[main] telegram ready", "username", bot.Self.UserName)

	errNotify := error_notificator.NewService(
		error_notificator.NewInfra(bot, cfg.AdminID, sugar),
	)

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	var archiver ports.Archiver
	if cfg.S3.Enabled() {
		s3Client, err := infra.NewS3Client(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("s3: %v", err)
		}
		archiver = domain.NewArchiveService(s3Client)
		sugar.Infow("[main] history archive enabled", "bucket", cfg.S3.Bucket)
	}

	completer, err := ai.NewCompleter(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("llm: %v", err)
	}

	promptService, err := prompts.NewService(ctx, prompts.NewRepo(cfg.PersonaPromptFile))
	if err != nil {
		log.Fatalf("persona prompt: %v", err)
	}

	// =========================================================================
	// SERVICES
	// =========================================================================

	historyService := domain.NewHistoryService(infra.NewHistoryRepo(db), archiver, errNotify, sugar)
	userService := user.NewService(user.NewInfra(db), sugar)

	aiService := ai.NewAiService(
		historyService,
		userService,
		ai.NewAssembler(cfg.AssistantName),
		promptService,
		completer,
		errNotify,
		sugar,
		cfg.AssistantName,
		cfg.ContextLimit,
	)

	botApp := telegram.NewBotApp(bot, sugar)
	botApp.AiService = aiService
	botApp.HistoryService = historyService
	botApp.UserService = userService
	botApp.AdminID = cfg.AdminID
	botApp.AssistantName = cfg.AssistantName

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	var authService ports.AuthService
	if cfg.HTTP.AdminPassword != "" {
		authService = domain.NewAuthService(cfg.HTTP.AdminPassword, cfg.HTTP.AuthSecret)
	}

	r := delivery.NewRouter(
		delivery.NewHistoryHandler(historyService, zl),
		delivery.NewStatusHandler(statusService, zl),
		delivery.NewAuthHandler(authService),
		authService,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "listening at " + srv.Addr,
			Service: "persona_relay",
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// =========================================================================
	// BOT LOOP (blocks until SIGINT/SIGTERM)
	// =========================================================================

	botApp.Poll(ctx, bot)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Warnw("[main] http shutdown", "err", err)
	}
	sugar.Infow("[main] stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
