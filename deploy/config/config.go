package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Storage    Storage
	HTTPServer HTTPServer
	Fixer      Fixer
}

// Storage configures the optional conversion audit log. Ignored unless
// Audit is set.
type Storage struct {
	Audit    bool          `env:"BD_AUDIT" env-default:"false"`
	Timeout  time.Duration `env:"BD_TIMEOUT" env-default:"10s"`
	Host     string        `env:"BD_HOST" env-default:"localhost"`
	Port     int           `env:"BD_PORT" env-default:"5432"`
	User     string        `env:"BD_USER" env-default:"postgres"`
	Password string        `env:"BD_PASSWORD" env-default:""`
	DBName   string        `env:"BD_DBNAME" env-default:"fixrates"`
	SSLMode  string        `env:"BD_SSL_MODE" env-default:"disable"`
	Schema   string        `env:"BD_SCHEMA" env-default:"dev"`
}

type HTTPServer struct {
	Port        string        `env:"HTTP_PORT" env-default:"8082"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" env-default:"2m"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Fixer struct {
	URL string `env:"FIXER_URL" env-default:"https://data.fixer.io/api/latest"`
	// BaseCurrency is fixed by the free-tier plan; every rate the provider
	// returns is quoted against it and it never appears in the rates map.
	BaseCurrency     string        `env:"FIXER_BASE_CURRENCY" env-default:"EUR"`
	Timeout          time.Duration `env:"FIXER_TIMEOUT" env-default:"30s"`
	DisplayPrecision int32         `env:"FIXER_DISPLAY_PRECISION" env-default:"2"`
	PreviewLimit     int           `env:"FIXER_PREVIEW_LIMIT" env-default:"10"`
}

func NewConfig() *Config {
	cfg := &Config{}

	_ = godotenv.Load(".env")

	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		log.Fatal("Error reading env")
	}

	return cfg
}
