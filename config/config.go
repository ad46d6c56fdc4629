package config

import (
	"log"
	"os"
	"strings"
)

// Config holds everything the process needs from the environment. All database
// and signing settings are required: a missing value fails startup instead of
// surfacing as per-request errors later.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	JWTSecret  []byte
	Port       string
}

// C is the process-wide configuration, set once by Load before the server
// starts accepting requests.
var C *Config

func Load() *Config {
	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  os.Getenv("DB_SSLMODE"),
		JWTSecret:  []byte(os.Getenv("JWT_SECRET")),
		Port:       os.Getenv("PORT"),
	}

	var missing []string
	for name, value := range map[string]string{
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"JWT_SECRET":  string(cfg.JWTSecret),
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	C = cfg
	return cfg
}
