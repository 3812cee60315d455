package config

import (
	"log"
	"sync"
	"time"

	"github.com/hotdrive/rental-service/pkg/kafka"
	"github.com/hotdrive/rental-service/pkg/logger"
	"github.com/hotdrive/rental-service/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"RENTAL_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"RENTAL_HTTP_PORT"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration
}

type Config struct {
	Server   HTTPServer   `yaml:"server"`
	Kafka    kafka.Config `yaml:"kafka"`
	Database postgres.DB  `yaml:"db"`
	Log      logger.Log   `yaml:"log"`

	AdminKey string `envconfig:"ADMIN_KEY" required:"true"`
	// fail_open serves every vehicle as bookable when availability lookups
	// error out; fail_closed hides the fleet instead.
	AvailabilityFailMode string `envconfig:"AVAILABILITY_FAIL_MODE" default:"fail_open"`
	MailWebhookURL       string `envconfig:"MAIL_WEBHOOK_URL"`
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = d
	}
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
