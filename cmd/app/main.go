package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"logistics/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	seed := flag.Bool("seed", false, "load the demo dataset into an empty database and exit")
	flag.Parse()

	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, logger, *seed); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger, seedOnly bool) error {
	configs = configs.WithDefaults()
	if err := configs.Validate(); err != nil {
		return err
	}

	infra, err := cmd.Connect(ctx, configs, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := infra.Close(); err != nil {
			logger.Error("failed to close connections", "error", err)
		}
	}()

	revocations, err := infra.Revocations()
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(configs, infra.DB, revocations, infra.Dispatcher(logger), logger)
	if err != nil {
		return err
	}
	if err := app.BootstrapAdmin(ctx); err != nil {
		return err
	}
	if seedOnly {
		_, err := app.Seed(ctx)
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "port", configs.HTTPPort)
		if err := e.Start(":" + configs.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func getConfigs() cmd.Config {
	// The .env file is optional; real environment variables win.
	_ = godotenv.Load(".env")

	config := cmd.Config{
		HTTPPort:          os.Getenv("HTTP_PORT"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         os.Getenv("DB_SSLMODE"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		KafkaEventsTopic:  os.Getenv("KAFKA_EVENTS_TOPIC"),
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		ReconcileSchedule: os.Getenv("RECONCILE_SCHEDULE"),
		CORSOrigin:        os.Getenv("CORS_ORIGIN"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminFullName:     os.Getenv("ADMIN_FULL_NAME"),
		AdminPhone:        os.Getenv("ADMIN_PHONE"),
	}

	for _, broker := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			config.KafkaBrokers = append(config.KafkaBrokers, broker)
		}
	}
	if v := os.Getenv("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid JWT_TTL %q: %v", v, err)
		}
		config.JWTTTL = ttl
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid REDIS_DB %q: %v", v, err)
		}
		config.RedisDB = db
	}
	return config
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
