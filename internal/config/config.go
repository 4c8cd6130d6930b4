package config

import (
	"log"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	DBDSN       string `validate:"required"`
	BackendURL  string `validate:"omitempty,url"`
	BackendKey  string
	SellerPhone string `validate:"required,numeric"`
	LogFile     string
}

// Load reads configuration from the environment (with a .env file in dev)
// and validates it. Invalid configuration is fatal at startup.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DBDSN:       getenv("DB_DSN", "barganha.db"), // sqlite file in project root
		BackendURL:  os.Getenv("BACKEND_URL"),
		BackendKey:  os.Getenv("BACKEND_ANON_KEY"),
		SellerPhone: getenv("SELLER_WHATSAPP", "5511999812223"),
		LogFile:     os.Getenv("LOG_FILE"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		log.Fatalf("[config] invalid configuration: %v", err)
	}

	log.Printf("[config] PORT=%s DB_DSN=%s BACKEND_URL=%s LOG_FILE=%s backend_configured=%t",
		cfg.Port, cfg.DBDSN, cfg.BackendURL, cfg.LogFile, cfg.BackendConfigured())
	return cfg
}

// BackendConfigured reports whether the backend credentials look usable:
// a URL plus an anon key in the expected JWT shape.
func (c Config) BackendConfigured() bool {
	return c.BackendURL != "" &&
		len(c.BackendKey) > 50 &&
		strings.HasPrefix(c.BackendKey, "eyJ")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
