package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/ipshopy/order-notify/internal/config"
	"github.com/ipshopy/order-notify/internal/infra/database"
	"github.com/ipshopy/order-notify/internal/infra/http/handlers"
	"github.com/ipshopy/order-notify/internal/infra/http/middleware"
	"github.com/ipshopy/order-notify/internal/infra/integration/interakt"
	"github.com/ipshopy/order-notify/internal/infra/mail"
	"github.com/ipshopy/order-notify/internal/infra/queue"
	"github.com/ipshopy/order-notify/internal/infra/worker"
	"github.com/ipshopy/order-notify/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	db, err := database.NewDBConnection(cfg.DSN())
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	// RabbitMQ is optional: without a host, delivery events are skipped
	var producer usecase.DeliveryPublisher
	var rabbitMQ *queue.RabbitMQ
	if cfg.RabbitMQHost != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQUser, cfg.RabbitMQPass, cfg.RabbitMQHost, cfg.RabbitMQPort)
		if err != nil {
			log.Fatalf("❌ RabbitMQ connection failed: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	}

	// 1. Repositories
	orderRepo := database.NewOrderRepository(db)

	// 2. Gateways and adapters
	gateway := interakt.NewClient(
		cfg.InteraktAPIKey, cfg.InteraktBaseURL,
		cfg.TemplateName, cfg.TemplateLang, cfg.DefaultCountryCode,
	)

	var mailer usecase.ReportMailer
	if cfg.MailHost != "" && cfg.ReportEmail != "" {
		mailer = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass)
	}

	// 3. UseCases
	orderStatusUC := usecase.NewGetOrderStatusUseCase(orderRepo, gateway, producer)
	batchSender := usecase.NewBatchSender(gateway, producer)
	automateUC := usecase.NewAutomateSendUseCase(orderRepo, batchSender, mailer, cfg.ReportEmail)

	// 4. Background worker (disabled unless AUTOMATION_INTERVAL is set)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AutomationInterval > 0 {
		automationWorker := worker.NewAutomationWorker(automateUC, cfg.AutomationInterval, cfg.AutomationDaysBack)
		go automationWorker.Start(ctx)
	}

	// 5. Handlers
	orderHandler := handlers.NewOrderHandler(orderStatusUC)
	automationHandler := handlers.NewAutomationHandler(automateUC)
	debugHandler := handlers.NewDebugHandler(orderRepo, cfg.DBName)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn(rabbitMQ), cfg.InteraktAPIKey != "")

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/order-status", orderHandler.HandleGetStatus)
	r.Get("/api/debug/order/{orderID}", debugHandler.HandleDebugOrder)

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(cfg.WebhookSecret))
		r.Get("/api/automate/send-messages", automationHandler.HandleSendMessages)
		r.Post("/api/automate/send-messages", automationHandler.HandleSendMessages)
		r.Get("/api/automate/preview", automationHandler.HandlePreview)
	})

	addr := ":" + cfg.Port
	log.Printf("🔥 Order notification bridge listening on %s", addr)

	server := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func rabbitConn(r *queue.RabbitMQ) *amqp091.Connection {
	if r == nil {
		return nil
	}
	return r.Conn
}
