package cmd

import "time"

// Config carries the environment configuration of the application.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	AmqpURL       string

	// FreeDeliveryThreshold is the order total, as a decimal string, from
	// which delivery is free.
	FreeDeliveryThreshold string

	// CartRetention is how long deactivated carts are kept before the
	// purge job removes them.
	CartRetention time.Duration

	// OrderHistoryTTL bounds the staleness of cached order history.
	OrderHistoryTTL time.Duration
}
