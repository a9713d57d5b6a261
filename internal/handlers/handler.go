// Package handlers contains the REST handlers for the /api surface. Each
// handler validates its input, delegates to the injected storage, and maps
// the outcome to a status code; nothing else happens here.
package handlers

import (
	"netwatch/internal/crypto"
	"netwatch/internal/storage"
)

type Handler struct {
	store storage.Storage
	// cipher is nil when no vault key is configured; password entries are
	// then stored exactly as the caller sent them.
	cipher *crypto.VaultCipher
}

func New(store storage.Storage, cipher *crypto.VaultCipher) *Handler {
	return &Handler{store: store, cipher: cipher}
}
