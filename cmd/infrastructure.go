package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"logistics/internal/adapters/out/events"
	kafkaout "logistics/internal/adapters/out/kafka"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/rabbitmq"
	redisout "logistics/internal/adapters/out/redis"
	"logistics/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

// Infrastructure owns the external connections of the process.
type Infrastructure struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher *kafkaout.EventPublisher
	AMQP      *amqp091.Connection
	Notifier  *rabbitmq.Notifier

	closers []func() error
}

// Connect opens PostgreSQL (and migrates it), Redis, and the optional Kafka
// writer and RabbitMQ channel. On error everything opened so far is closed.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (_ *Infrastructure, err error) {
	infra := &Infrastructure{}
	defer func() {
		if err != nil {
			_ = infra.Close()
		}
	}()

	infra.DB, err = postgres.Open(postgres.ConnectionSettings{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSslMode,
	}.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, dbErr := infra.DB.DB(); dbErr == nil {
		infra.closers = append(infra.closers, sqlDB.Close)
	}
	if err = postgres.Migrate(infra.DB); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	infra.Redis, err = redisout.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	infra.closers = append(infra.closers, infra.Redis.Close)

	if len(cfg.KafkaBrokers) > 0 {
		infra.Publisher, err = kafkaout.NewEventPublisher(kafkaout.NewWriter(cfg.KafkaBrokers, cfg.KafkaEventsTopic))
		if err != nil {
			return nil, err
		}
		infra.closers = append(infra.closers, infra.Publisher.Close)
	} else {
		logger.WarnContext(ctx, "KAFKA_BROKERS not set, shipment events are not published")
	}

	if cfg.RabbitMQURL != "" {
		infra.AMQP, err = amqp091.Dial(cfg.RabbitMQURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		infra.closers = append(infra.closers, infra.AMQP.Close)

		ch, chErr := infra.AMQP.Channel()
		if chErr != nil {
			return nil, fmt.Errorf("failed to open rabbitmq channel: %w", chErr)
		}
		if err = rabbitmq.Setup(ch); err != nil {
			return nil, err
		}
		infra.Notifier, err = rabbitmq.NewNotifier(ch)
		if err != nil {
			return nil, err
		}
	} else {
		logger.WarnContext(ctx, "RABBITMQ_URL not set, customer notifications are disabled")
	}

	return infra, nil
}

// Revocations returns the Redis-backed token denylist.
func (i *Infrastructure) Revocations() (ports.TokenRevocations, error) {
	return redisout.NewTokenRevocations(i.Redis)
}

// Dispatcher returns the event dispatcher over the configured brokers.
func (i *Infrastructure) Dispatcher(logger *slog.Logger) ports.EventDispatcher {
	var (
		publisher events.Publisher
		notifier  events.Notifier
	)
	if i.Publisher != nil {
		publisher = i.Publisher
	}
	if i.Notifier != nil {
		notifier = i.Notifier
	}
	return events.NewDispatcher(publisher, notifier, logger.With("component", "events"))
}

// Close releases connections in reverse order of opening.
func (i *Infrastructure) Close() error {
	var errs []error
	for n := len(i.closers) - 1; n >= 0; n-- {
		if err := i.closers[n](); err != nil {
			errs = append(errs, err)
		}
	}
	i.closers = nil
	return errors.Join(errs...)
}
