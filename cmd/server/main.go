package main

import (
	"fmt"
	"log"

	"netwatch/internal/config"
	"netwatch/internal/crypto"
	"netwatch/internal/database"
	"netwatch/internal/server"
	"netwatch/internal/storage"
)

func main() {
	cfg := config.Load()

	var store storage.Storage
	if cfg.DBDSN != "" {
		store = storage.NewGormStorage(database.Open(cfg.DBDSN))
	} else {
		log.Println("DB_DSN not set, using in-memory storage")
		store = storage.NewMemStorage()
	}

	var cipher *crypto.VaultCipher
	if len(cfg.VaultKey) > 0 {
		var err error
		cipher, err = crypto.NewVaultCipher(cfg.VaultKey)
		if err != nil {
			log.Fatalf("invalid vault key: %v", err)
		}
		log.Println("vault encryption enabled")
	}

	r := server.NewRouter(store, cipher)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
