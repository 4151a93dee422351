package cmd

import (
	"errors"
	"time"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// KafkaBrokers empty disables event publishing.
	KafkaBrokers     []string
	KafkaEventsTopic string
	// RabbitMQURL empty disables customer notifications.
	RabbitMQURL string

	ReconcileSchedule string
	CORSOrigin        string
	LogLevel          string

	AdminUsername string
	AdminEmail    string
	AdminPassword string
	AdminFullName string
	AdminPhone    string
}

var ErrJWTSecretIsRequired = errors.New("JWT_SECRET must be set")

// WithDefaults fills unset optional settings.
func (c Config) WithDefaults() Config {
	def := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	def(&c.HTTPPort, "8080")
	def(&c.DBPort, "5432")
	def(&c.DBSslMode, "disable")
	def(&c.RedisAddr, "localhost:6379")
	def(&c.KafkaEventsTopic, "shipment-events")
	def(&c.ReconcileSchedule, "0 * * * * *")
	def(&c.CORSOrigin, "http://localhost:3000")
	def(&c.LogLevel, "info")
	def(&c.AdminUsername, "admin")
	def(&c.AdminEmail, "admin@logistic.com")
	def(&c.AdminPassword, "admin123")
	def(&c.AdminFullName, "System Administrator")
	def(&c.AdminPhone, "08123456789")
	if c.JWTTTL <= 0 {
		c.JWTTTL = 24 * time.Hour
	}
	return c
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrJWTSecretIsRequired
	}
	return nil
}
