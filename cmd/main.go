package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/adapter/memory"
	"github.com/YelzhanWeb/basecart/internal/adapter/metrics"
	"github.com/YelzhanWeb/basecart/internal/adapter/postgres"
	"github.com/YelzhanWeb/basecart/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/basecart/internal/adapter/redis"
	"github.com/YelzhanWeb/basecart/internal/app/business"
	"github.com/YelzhanWeb/basecart/internal/app/menu"
	"github.com/YelzhanWeb/basecart/internal/app/order"
	"github.com/YelzhanWeb/basecart/internal/app/platform"
	"github.com/YelzhanWeb/basecart/internal/app/profile"
	"github.com/YelzhanWeb/basecart/internal/app/tracking"
	"github.com/YelzhanWeb/basecart/internal/config"
	"github.com/YelzhanWeb/basecart/internal/interfaces"

	amqpAdapter "github.com/YelzhanWeb/basecart/internal/adapter/amqp"
	httpAdapter "github.com/YelzhanWeb/basecart/internal/adapter/http"
)

const idempotencyTTL = 24 * time.Hour

func main() {
	// Parse command-line flags
	mode := flag.String("mode", "api", "Service mode: api, notification-subscriber, migrate")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	configPath := flag.String("config", "config.yaml", "Path to the yaml config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lgr := logger.New(*mode, cfg.Log.Level)

	switch *mode {
	case "api":
		runAPI(ctx, cfg, lgr)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, cfg, lgr)

	case "migrate":
		if err := migrate(ctx, cfg); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		lgr.Info("migrations_applied", "Database migrations applied", "startup", nil)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func migrate(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.OpenSQL(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return postgres.Apply(ctx, db)
}

func runAPI(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	if cfg.Database.Migrate {
		if err := migrate(ctx, cfg); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	}

	// Connect to PostgreSQL
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	// Cache and idempotency keys live in Redis when it is enabled
	var (
		cache       interfaces.StorefrontCache  = redis.NopCache{}
		idempotency interfaces.IdempotencyStore = memory.NewIdempotencyKeys(idempotencyTTL)
	)
	if cfg.Redis.Enabled {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()

		cache = redis.NewStorefrontCache(client, cfg.Redis.StorefrontTTL)
		idempotency = redis.NewIdempotencyStore(client)
		lgr.Info("redis_connected", "Connected to Redis", "startup", map[string]interface{}{"addr": cfg.Redis.Addr})
	}

	var publisher interfaces.EventPublisher = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer mqConn.Close()

		publisher = rabbitmq.NewPublisher(mqConn)
		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{"host": cfg.RabbitMQ.Host})
	}

	// Initialize repositories
	tx := postgres.NewTxManager(db)
	businessRepo := postgres.NewBusinessRepository(db)
	menuRepo := postgres.NewMenuRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	m := metrics.New()

	// Initialize services
	businessService := business.NewService(tx, businessRepo, menuRepo, orderRepo, cache, lgr)
	menuService := menu.NewService(businessRepo, menuRepo, cache, m, lgr)
	orderService := order.NewService(businessRepo, orderRepo, idempotency, publisher, m, lgr)
	trackingService := tracking.NewService(orderRepo, lgr)
	profileService := profile.NewService(profileRepo)
	platformService := platform.NewService(businessRepo, orderRepo, cfg.Auth.SystemAdminEmails, lgr)

	limiter := httpAdapter.NewRateLimiter(cfg.RateLimit.OrdersPerSecond, cfg.RateLimit.Burst, lgr)
	limiter.StartCleanup(5*time.Minute, ctx.Done())

	handler := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Business:       httpAdapter.NewBusinessHandler(businessService, lgr),
		Menu:           httpAdapter.NewMenuHandler(menuService, lgr),
		Orders:         httpAdapter.NewOrderHandler(orderService, lgr),
		Tracking:       httpAdapter.NewTrackingHandler(trackingService, lgr),
		Account:        httpAdapter.NewAccountHandler(profileService, lgr),
		Admin:          httpAdapter.NewAdminHandler(platformService, lgr),
		Auth:           httpAdapter.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.CookieName, lgr),
		RateLimiter:    limiter,
		Metrics:        m,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		HealthCheck:    db.Ping,
		Logger:         lgr,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	lgr.Info("service_started", fmt.Sprintf("API started on port %d", cfg.Server.Port), "startup", map[string]interface{}{
		"port":     cfg.Server.Port,
		"redis":    cfg.Redis.Enabled,
		"rabbitmq": cfg.RabbitMQ.Enabled,
	})

	// Graceful shutdown
	go func() {
		<-ctx.Done()

		lgr.Info("shutdown_initiated", "Shutting down API", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	// Connect to RabbitMQ
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	consumer := rabbitmq.NewConsumer(mqConn, lgr)
	notificationHandler := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", map[string]interface{}{
		"exchange": rabbitmq.NotificationsExchange,
	})

	if err := consumer.ConsumeNotifications(ctx, notificationHandler.HandleNotification); err != nil && ctx.Err() == nil {
		lgr.Error("consumer_error", "Error consuming notifications", "runtime", nil, err)
	}

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
}
