package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Siddharthnigam/jugglers-shop/internal/cart"
	"github.com/Siddharthnigam/jugglers-shop/internal/catalog"
	"github.com/Siddharthnigam/jugglers-shop/internal/checkout"
	"github.com/Siddharthnigam/jugglers-shop/internal/events"
	h "github.com/Siddharthnigam/jugglers-shop/internal/http"
	"github.com/Siddharthnigam/jugglers-shop/internal/orders"
	"github.com/Siddharthnigam/jugglers-shop/internal/session"
	"github.com/Siddharthnigam/jugglers-shop/internal/storage"
	"github.com/Siddharthnigam/jugglers-shop/internal/wishlist"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	StorageBackend string // memory | redis | mongo
	RedisAddr      string
	RedisPassword  string
	MongoURI       string
	MongoDBName    string

	CatalogBackend    string // memory | sqlite | remote
	SQLitePath        string
	CatalogMigrations string
	ProductAPIURL     string

	OrdersBackend    string // memory | postgres
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	OrdersMigrations string

	KafkaBrokers []string
}

func loadConfig() *Config {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		StorageBackend: getEnv("STORAGE_BACKEND", "memory"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "storefront"),

		CatalogBackend:    getEnv("CATALOG_BACKEND", "memory"),
		SQLitePath:        getEnv("SQLITE_PATH", "storefront.db"),
		CatalogMigrations: getEnv("CATALOG_MIGRATIONS_PATH", "migrations/catalog"),
		ProductAPIURL:     getEnv("PRODUCT_API_URL", ""),

		OrdersBackend:    getEnv("ORDERS_BACKEND", "memory"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     5432,
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getEnv("POSTGRES_DB", "storefront"),
		OrdersMigrations: getEnv("ORDERS_MIGRATIONS_PATH", "migrations/orders"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	slots, cleanupStorage, err := buildSlotStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up cart storage", zap.Error(err))
	}
	defer cleanupStorage()

	cat, cleanupCatalog, err := buildCatalog(cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up catalog", zap.Error(err))
	}
	defer cleanupCatalog()

	repo, cleanupOrders, err := buildOrders(cfg)
	if err != nil {
		logger.Fatal("failed to set up order storage", zap.Error(err))
	}
	defer cleanupOrders()

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers...)
		logger.Info("publishing order events to kafka", zap.Strings("brokers", cfg.KafkaBrokers))
	}
	defer publisher.Close()

	sessions := session.NewManager(slots, cart.NewLogSink(logger), logger)

	router := h.NewRouter(h.RouterConfig{
		Sessions:       sessions,
		Catalog:        cat,
		Checkout:       checkout.NewService(repo, publisher, logger),
		Orders:         repo,
		Wishlist:       wishlist.NewStore(),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

func buildSlotStore(ctx context.Context, cfg *Config, logger *zap.Logger) (storage.SlotStore, func(), error) {
	switch cfg.StorageBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		logger.Info("cart slots stored in redis", zap.String("addr", cfg.RedisAddr))
		return storage.NewRedisStore(client), func() { client.Close() }, nil

	case "mongo":
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.EnsureIndexes(ctx, db); err != nil {
			return nil, nil, err
		}
		logger.Info("cart slots stored in mongodb", zap.String("db", cfg.MongoDBName))
		cleanup := func() { db.Client().Disconnect(ctx) }
		return storage.NewMongoStore(db), cleanup, nil

	default:
		logger.Info("cart slots stored in memory")
		return storage.NewMemoryStore(), func() {}, nil
	}
}

func buildCatalog(cfg *Config, logger *zap.Logger) (catalog.Catalog, func(), error) {
	switch cfg.CatalogBackend {
	case "sqlite":
		c, err := catalog.NewSQLiteCatalog(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := c.RunMigrations(cfg.CatalogMigrations); err != nil {
			c.Close()
			return nil, nil, err
		}
		logger.Info("serving catalog from sqlite", zap.String("path", cfg.SQLitePath))
		return c, func() { c.Close() }, nil

	case "remote":
		fallback := catalog.NewSeededCatalog()
		logger.Info("serving catalog from remote product api", zap.String("url", cfg.ProductAPIURL))
		return catalog.NewRemoteCatalog(cfg.ProductAPIURL, fallback, logger), func() {}, nil

	default:
		logger.Info("serving seeded in-memory catalog")
		return catalog.NewSeededCatalog(), func() {}, nil
	}
}

func buildOrders(cfg *Config) (orders.Repository, func(), error) {
	if cfg.OrdersBackend != "postgres" {
		return orders.NewMemoryRepository(), func() {}, nil
	}

	cred := &orders.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPassword,
		DBName:            cfg.PostgresDB,
		MigrationsDirPath: cfg.OrdersMigrations,
	}
	repo, err := orders.NewPostgresRepository(cred)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.RunMigrations(cred); err != nil {
		repo.Close()
		return nil, nil, err
	}
	return repo, func() { repo.Close() }, nil
}
