package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/urfave/cli/v2"

	_ "rsvp/docs"

	"rsvp/config"
	"rsvp/internal/adapters/auth"
	"rsvp/internal/adapters/email"
	"rsvp/internal/adapters/realtime"
	delivery "rsvp/internal/delivery/http"
	"rsvp/internal/delivery/http/controllers"
	"rsvp/internal/delivery/http/middleware"
	"rsvp/internal/repository/postgres"
	"rsvp/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title RSVP API
// @version 1.0
// @description Organizers create events and share an RSVP link; guests respond yes, no or maybe and see the live guest list.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := &cli.App{
		Name:  "rsvpd",
		Usage: "Event RSVP server.",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("rsvpd failed", "err", err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", EnvVars: []string{"AUTO_MIGRATE"}, Usage: "Apply pending migrations before serving."},
			&cli.IntFlag{Name: "bcrypt-cost", EnvVars: []string{"BCRYPT_COST"}, Value: 10, Usage: "bcrypt work factor for new passwords."},
		},
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := config.NewLogger(cfg.Environment)

			db, err := openDB(ctx, cfg.DBUrl)
			if err != nil {
				return err
			}
			defer db.Close()

			if c.Bool("migrate") {
				if err := runMigrations(ctx, db, logger); err != nil {
					return err
				}
			}

			eventRepo := postgres.NewEventRepository(db)
			guestRepo := postgres.NewGuestRepository(db)
			userRepo := postgres.NewUserRepository(db)
			sessionRepo := postgres.NewSessionRepository(db)

			hub := realtime.NewHub(guestRepo, logger, cfg.RequestTimeout)
			if err := realtime.ListenForGuestChanges(ctx, cfg.DBUrl, hub, logger); err != nil {
				return err
			}

			mailer, err := email.NewMailer(email.MailerConfig{
				Provider:    cfg.Email.Provider,
				FromAddress: cfg.Email.FromAddress,
				FromName:    cfg.Email.FromName,
				SES: email.SESConfig{
					Region:          cfg.Email.AWSRegion,
					AccessKeyID:     cfg.Email.AWSAccessKeyID,
					SecretAccessKey: cfg.Email.AWSSecretAccessKey,
				},
			}, logger)
			if err != nil {
				return fmt.Errorf("create mailer: %w", err)
			}
			emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

			signer := auth.NewJWTSigner(cfg.JWTSecret)
			identity := services.NewIdentityService(userRepo, sessionRepo, auth.NewBcryptHasher(c.Int("bcrypt-cost")), signer, signer, cfg.SessionTTL, cfg.RequestTimeout)
			eventService := services.NewEventService(eventRepo, emailService, logger, cfg.RequestTimeout)
			rsvpService := services.NewRSVPService(eventRepo, guestRepo, hub, cfg.RequestTimeout)
			dashboardService := services.NewDashboardService(eventRepo, guestRepo, hub, cfg.RequestTimeout)

			ctrls := delivery.Controllers{
				Auth:      controllers.NewAuthController(logger, identity, cfg.Environment == "production"),
				Events:    controllers.NewEventController(logger, eventService, cfg.PublicOrigin),
				RSVP:      controllers.NewRSVPController(logger, rsvpService),
				Dashboard: controllers.NewDashboardController(logger, dashboardService),
			}
			limiter := middleware.NewRateLimiter(ctx, cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)
			router := delivery.NewRouter(ctrls, identity, limiter, db, logger)

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, router)),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       60 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}
			return serve(ctx, srv, logger)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations and exit.",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := config.NewLogger(cfg.Environment)

			db, err := openDB(c.Context, cfg.DBUrl)
			if err != nil {
				return err
			}
			defer db.Close()
			return runMigrations(c.Context, db, logger)
		},
	}
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	applied, err := postgres.Migrate(ctx, db)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("migrations applied", "count", len(applied), "files", applied)
	return nil
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
