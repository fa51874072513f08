package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/intake/internal"
	"github.com/dmitrymomot/intake/internal/config"
	"github.com/dmitrymomot/intake/internal/handlers"
	"github.com/dmitrymomot/intake/internal/notify"
	"github.com/dmitrymomot/intake/internal/notify/emailjs"
	"github.com/dmitrymomot/intake/internal/relay"
	"github.com/dmitrymomot/intake/internal/submission"
	"github.com/dmitrymomot/intake/internal/views"
	"github.com/dmitrymomot/intake/middlewares"
	"github.com/dmitrymomot/intake/pkg/logger"
	"github.com/dmitrymomot/intake/pkg/mailer"
	"github.com/dmitrymomot/intake/pkg/mailer/resend"
	"github.com/dmitrymomot/intake/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor()).With("service", "intake")

	if err := run(cfg, log); err != nil {
		log.Error("application error", slog.Any("error", err))
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	store, err := newStorage(cfg)
	if err != nil {
		return err
	}

	notifier, err := newNotifier(cfg, log)
	if err != nil {
		return err
	}

	rl := relay.New(store,
		relay.WithFolder(cfg.UploadFolder),
		relay.WithMaxSize(cfg.UploadMaxSize),
		relay.WithLogger(log.With("component", "relay")),
	)
	ctrl := submission.NewController(rl, notifier,
		submission.WithLogger(log.With("component", "submission")),
	)

	app := internal.New(
		internal.WithCustomLogger(log),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger(),
			middlewares.Recover(),
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.CORSAllowOrigins...)),
		),
		internal.WithStaticFiles("/assets/", views.Assets, "assets"),
		internal.WithHandlers(
			handlers.NewPageHandler(),
			handlers.NewFormHandler(ctrl, rl.MaxSize()),
			handlers.NewUploadHandler(rl),
		),
		internal.WithErrorHandler(handlers.ErrorHandler),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		internal.WithHealthChecks(
			internal.WithReadinessCheck("storage", store.Ping),
		),
	)

	log.Info("starting",
		slog.String("address", cfg.Address),
		slog.String("storage", cfg.StorageDriver),
		slog.String("notify", cfg.NotifyDriver),
	)

	return app.Run(cfg.Address,
		internal.Logger(log),
		internal.ShutdownTimeout(cfg.ShutdownTimeout),
		internal.ShutdownHook(func(context.Context) error {
			logger.Flush(2 * time.Second)
			return nil
		}),
	)
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == config.StorageS3 {
		return storage.NewS3(cfg.S3)
	}
	return storage.NewCloudinary(cfg.Cloudinary)
}

func newNotifier(cfg *config.Config, log *slog.Logger) (notify.Notifier, error) {
	log = log.With("component", "notify")

	if cfg.NotifyDriver == config.NotifyResend {
		sender, err := resend.New(cfg.Resend)
		if err != nil {
			return nil, err
		}
		m := mailer.New(sender, mailer.NewRenderer(notify.Templates(), mailer.RendererConfig{}), cfg.Mailer)
		return notify.NewMailNotifier(m, cfg.NotifyInbox, notify.WithMailLogger(log))
	}

	opts := []emailjs.Option{emailjs.WithLogger(log)}
	if cfg.EmailJSContactTemplate != "" {
		opts = append(opts, emailjs.WithTemplate(submission.FormContact, cfg.EmailJSContactTemplate))
	}
	return emailjs.New(cfg.EmailJS, opts...)
}
