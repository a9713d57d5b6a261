package config

import (
	"encoding/hex"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// DBDSN selects the Postgres store; when empty the server runs on the
	// in-memory store and data is lost on restart.
	DBDSN      string
	ServerPort string
	// VaultKey enables at-rest encryption of password entries when set.
	VaultKey   []byte
	APIBaseURL string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:      os.Getenv("DB_DSN"),
		ServerPort: os.Getenv("SERVER_PORT"),
		APIBaseURL: os.Getenv("API_BASE_URL"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:" + cfg.ServerPort
	}

	if keyHex := os.Getenv("VAULT_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("VAULT_KEY must be 64 hex characters (32 bytes)")
		}
		cfg.VaultKey = key
	}

	return cfg
}
