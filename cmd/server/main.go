package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"

	_ "github.com/cedarmart/commerce/docs"
	"github.com/cedarmart/commerce/kafka"
	"github.com/cedarmart/commerce/pkg/database"
	"github.com/cedarmart/commerce/pkg/logger"
	"github.com/cedarmart/commerce/pkg/tracing"

	"github.com/cedarmart/commerce/internal/audit"
	auditdomain "github.com/cedarmart/commerce/internal/audit/domain"
	"github.com/cedarmart/commerce/internal/cart"
	cartdomain "github.com/cedarmart/commerce/internal/cart/domain"
	"github.com/cedarmart/commerce/internal/catalog"
	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"
	"github.com/cedarmart/commerce/internal/inventory"
	inventorydomain "github.com/cedarmart/commerce/internal/inventory/domain"
	inventoryrepo "github.com/cedarmart/commerce/internal/inventory/repository"
	"github.com/cedarmart/commerce/internal/inventory/usecase/command"
	"github.com/cedarmart/commerce/internal/order"
	orderdomain "github.com/cedarmart/commerce/internal/order/domain"
	"github.com/cedarmart/commerce/internal/promotion"
	promotiondomain "github.com/cedarmart/commerce/internal/promotion/domain"
	"github.com/cedarmart/commerce/internal/review"
	reviewdomain "github.com/cedarmart/commerce/internal/review/domain"
	"github.com/cedarmart/commerce/internal/user"
	userdomain "github.com/cedarmart/commerce/internal/user/domain"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "commerce")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting commerce backend")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "commercedb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Plain database/sql connection backing the health check, kept
	// separate from the ORM's pool.
	healthDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open health check connection")
	}
	defer healthDB.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka is optional; without it order events are simply not published
	var publisher orderdomain.EventPublisher
	var kafkaPublisher *kafka.Publisher
	brokers := strings.Split(getEnv("KAFKA_BROKERS", ""), ",")
	if brokers[0] != "" {
		kafkaPublisher, err = kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, order events disabled")
		} else {
			publisher = kafkaPublisher
			defer kafkaPublisher.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if kafkaPublisher != nil {
		if err := startOrderConsumer(ctx, db, brokers); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to start order consumer")
		}
	}

	// Initialize handlers with Wire DI
	userHandler, err := user.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize user handler")
	}
	catalogHandler, err := catalog.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog handler")
	}
	cartHandler, err := cart.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize cart handler")
	}
	orderHandler, err := order.InitializeHTTPHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize order handler")
	}
	promotionHandler, err := promotion.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize promotion handler")
	}
	inventoryHandler, err := inventory.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inventory handler")
	}
	reviewHandler, err := review.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize review handler")
	}
	auditHandler, err := audit.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize audit handler")
	}

	// Setup router
	router := mux.NewRouter()

	userHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	promotionHandler.RegisterRoutes(router)
	inventoryHandler.RegisterRoutes(router)
	reviewHandler.RegisterRoutes(router)
	auditHandler.RegisterRoutes(router)

	// Health check endpoint
	userHandler.RegisterHealthCheck(router, healthDB)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(c.Handler(router), "http-request")

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: handler,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

// runMigrations migrates every table the modules use
func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&userdomain.User{},
		&auditdomain.ActivityLog{},
		&catalogdomain.Category{},
		&catalogdomain.Subcategory{},
		&catalogdomain.Product{},
		&cartdomain.Cart{},
		&cartdomain.CartItem{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&orderdomain.Return{},
		&promotiondomain.Promotion{},
		&promotiondomain.PromotionProduct{},
		&promotiondomain.Coupon{},
		&inventorydomain.Inventory{},
		&reviewdomain.Review{},
	)
}

// startOrderConsumer subscribes the inventory module to order placed events
// so per-location records follow the aggregate stock.
func startOrderConsumer(ctx context.Context, db *gorm.DB, brokers []string) error {
	consumer, err := kafka.NewConsumer(brokers, getEnv("KAFKA_GROUP_ID", "commerce-inventory"), []string{kafka.TopicOrderPlaced})
	if err != nil {
		return err
	}

	syncHandler := command.NewSyncOrderHandler(inventoryrepo.NewGormUnitOfWork(db))
	consumer.RegisterHandler(kafka.EventTypeOrderPlaced, func(ctx context.Context, event kafka.OrderEvent) error {
		cmd := command.SyncOrderCommand{OrderID: event.OrderID}
		for _, item := range event.Items {
			cmd.Items = append(cmd.Items, command.OrderedItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		return syncHandler.Handle(ctx, cmd)
	})

	return consumer.Start(ctx)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
