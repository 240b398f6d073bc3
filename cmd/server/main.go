package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"devevent/config"
	emailadapter "devevent/internal/adapters/email"
	"devevent/internal/adapters/media"
	delivery "devevent/internal/delivery/http"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/repository/postgres"
	"devevent/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment)

	// database
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	logger.Info("connected to postgres")

	applyMigrations(db, logger)

	// adapters
	uploader, err := media.NewUploader(media.UploaderConfig{
		Provider:  cfg.MediaProvider,
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
	})
	if err != nil {
		log.Fatalf("media uploader: %v", err)
	}
	mailer, err := emailadapter.NewMailer(cfg.Email)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}

	// repositories and services
	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	emailSvc := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	eventSvc := services.NewEventService(eventRepo, cfg.ServiceTimeout)
	bookingSvc := services.NewBookingService(bookingRepo, eventRepo, emailSvc, cfg.ServiceTimeout)

	// http
	eventController := controllers.NewEventController(logger, eventSvc, uploader)
	bookingController := controllers.NewBookingController(logger, bookingSvc)
	mux := delivery.NewRouter(eventController, bookingController)
	handler := middleware.CORS(cfg.CORSOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("http server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

// applyMigrations applies the init migration best-effort. A missing file is
// fine in environments where the schema is managed externally.
func applyMigrations(db *sql.DB, logger *slog.Logger) {
	migration, err := os.ReadFile("db/migrations/001_init.sql")
	if err != nil {
		logger.Warn("migration file not found, skipping", "err", err)
		return
	}
	if _, err := db.Exec(string(migration)); err != nil {
		logger.Warn("migration", "err", err)
		return
	}
	logger.Info("migration applied")
}
