package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"

	carescene "github.com/carescene/carescene"
	"github.com/carescene/carescene/internal/config"
	"github.com/carescene/carescene/internal/handler"
	"github.com/carescene/carescene/internal/middleware"
	"github.com/carescene/carescene/internal/repository"
	"github.com/carescene/carescene/internal/service"
	"github.com/carescene/carescene/internal/web"
	"github.com/carescene/carescene/internal/wizard"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env when present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(carescene.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize services
	store := repository.NewStore(pool)
	sessionService := service.NewSessionService(store)
	openAI := service.NewOpenAIService(cfg)
	generateService := service.NewGenerateService(store, openAI, cfg)
	wiz := wizard.New(cfg.StyleSuffix, cfg.MaxRevisions)

	var elicitor service.Elicitor
	if cfg.CoachMode == "llm" {
		elicitor = service.NewLLMElicitor(openAI, cfg.CoachModel, wiz)
	} else {
		elicitor = service.NewStaticElicitor(wiz)
	}

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.InFlight(middleware.NewGuard()),
			middleware.SessionLoader(sessionService),
		),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Initialize handler
	h := handler.New(handler.Deps{
		Bot:       b,
		Cfg:       cfg,
		Wizard:    wiz,
		Sessions:  sessionService,
		Generator: generateService,
		Elicitor:  elicitor,
	})

	// Register command and callback handlers
	h.Register()

	// Plain text messages drive the wizard
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
			return
		}
		h.HandleText(ctx, b, update)
	})

	// Serve health and transcript export
	if cfg.HTTPEnable {
		srv := web.NewServer(cfg, sessionService)
		go srv.Start(ctx)
	}

	// Start bot
	slog.Info("starting bot")
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
