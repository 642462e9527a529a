package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/lead-magnet/internal/config"
	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/analytics"
	"github.com/xavierca1/lead-magnet/internal/infra/clock"
	"github.com/xavierca1/lead-magnet/internal/infra/database"
	"github.com/xavierca1/lead-magnet/internal/infra/http/handlers"
	metrics "github.com/xavierca1/lead-magnet/internal/infra/http/middleware"
	"github.com/xavierca1/lead-magnet/internal/infra/i18n"
	"github.com/xavierca1/lead-magnet/internal/infra/mail"
	"github.com/xavierca1/lead-magnet/internal/infra/queue"
	"github.com/xavierca1/lead-magnet/internal/infra/storage"
	"github.com/xavierca1/lead-magnet/internal/infra/worker"
	"github.com/xavierca1/lead-magnet/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clk := clock.System()

	// 1. Storage
	kv, closeKV, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Storage: %v", err)
	}
	defer closeKV()

	// 2. Analytics (optional)
	var sink analytics.Sink
	var health handlers.ConnectionState
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("❌ RabbitMQ: %v", err)
		}
		defer rabbitMQ.Close()

		sink = queue.NewProducer(rabbitMQ.Ch)
		health = rabbitMQ.Conn

		consumer := queue.NewWorker(rabbitMQ.Ch)
		go func() {
			if err := consumer.Start(ctx, queue.QueueName); err != nil {
				log.Printf("❌ Analytics worker: %v", err)
			}
		}()
	} else {
		log.Println("⚠️ AMQP_URL not set, analytics events are dropped")
	}

	// 3. Delivery
	gateway := mail.NewGateway(mail.GatewayConfig{
		ServiceID:  cfg.Email.ServiceID,
		TemplateID: cfg.Email.TemplateID,
		GuideLink:  cfg.Email.GuideLink,
	}, map[string]mail.Provider{
		mail.ServiceSMTP: mail.NewEmailSender(mail.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			User:     cfg.Email.SMTPUser,
			Password: cfg.Email.SMTPPassword,
			From:     cfg.Email.From,
		}),
		mail.ServiceResend: mail.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From),
	})
	if gateway.DemoMode() {
		log.Println("🧪 Email credentials not configured, running in demo mode")
	}

	// 4. Widget sessions
	sessions := usecase.NewSessionManager(usecase.WidgetDeps{
		Gateway:        gateway,
		Tracker:        analytics.NewTracker(sink, clk),
		Clock:          clk,
		Translator:     i18n.Default(),
		OpenDelay:      cfg.OpenDelay,
		AutoCloseDelay: cfg.AutoCloseDelay,
	}, func(visitorID string) entity.LeadStoreInterface {
		return storage.NewLeadStore(kv, visitorID, clk)
	})
	defer sessions.Shutdown()

	go worker.NewSessionExpirationWorker(sessions, cfg.SessionTTL).Start(ctx)

	limiter := handlers.NewRateLimiter(cfg.SubmitRateLimit, cfg.SubmitRateWindow)
	go limiter.StartCleanup(ctx, 10*time.Minute)

	// 5. Handlers
	widgetHandler := handlers.NewWidgetHandler(sessions, limiter)
	healthHandler := handlers.NewHealthHandler(kv, health, gateway.DemoMode(), sessions.Count)

	// 6. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept-Language"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/widget", widgetHandler.Routes)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("🔥 Lead magnet API listening on %s (storage: %s)", cfg.HTTPAddr, cfg.StorageDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.KeyValue, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageRedis:
		kv, err := storage.NewRedisKV(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { kv.Close() }, nil

	case config.StoragePostgres:
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := database.NewKVRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { db.Close() }, nil

	default:
		return storage.NewMemoryKV(), func() {}, nil
	}
}
