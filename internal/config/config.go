package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type config struct {
	Production       bool          `env:"PRODUCTION" envDefault:"false"`
	Port             string        `env:"PORT" envDefault:"8080"`
	PostgresUrl      string        `env:"POSTGRES_URL"`
	RedisUrl         string        `env:"REDIS_URL" envDefault:"redis:6379"`
	ReminderHorizon  time.Duration `env:"REMINDER_HORIZON" envDefault:"24h"`
	NotificationsTTL time.Duration `env:"NOTIFICATIONS_TTL" envDefault:"168h"`
	QRMaxSize        int           `env:"QR_MAX_SIZE" envDefault:"1024"`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

func ReminderHorizon() time.Duration {
	return conf.ReminderHorizon
}

func NotificationsTTL() time.Duration {
	return conf.NotificationsTTL
}

func QRMaxSize() int {
	return conf.QRMaxSize
}
