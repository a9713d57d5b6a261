package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"netwatch/internal/models"
)

func (h *Handler) ListPasswordVaults(c *gin.Context) {
	vaults, err := h.store.PasswordVaults(c.Request.Context())
	if err != nil {
		log.Printf("list vaults: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch password vaults"})
		return
	}
	c.JSON(http.StatusOK, vaults)
}

func (h *Handler) GetPasswordVault(c *gin.Context) {
	id, ok := parseID(c, "vault")
	if !ok {
		return
	}
	vault, err := h.store.PasswordVault(c.Request.Context(), id)
	if err != nil {
		log.Printf("get vault %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch password vault"})
		return
	}
	if vault == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Password vault not found"})
		return
	}
	c.JSON(http.StatusOK, vault)
}

func (h *Handler) CreatePasswordVault(c *gin.Context) {
	var in models.PasswordVaultInput
	if !bindInput(c, &in, "vault") {
		return
	}
	vault, err := h.store.CreatePasswordVault(c.Request.Context(), in)
	if err != nil {
		log.Printf("create vault: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create password vault"})
		return
	}
	c.JSON(http.StatusCreated, vault)
}

func (h *Handler) UpdatePasswordVault(c *gin.Context) {
	id, ok := parseID(c, "vault")
	if !ok {
		return
	}
	var in models.PasswordVaultUpdate
	if !bindInput(c, &in, "vault") {
		return
	}
	vault, err := h.store.UpdatePasswordVault(c.Request.Context(), id, in)
	if err != nil {
		log.Printf("update vault %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update password vault"})
		return
	}
	if vault == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Password vault not found"})
		return
	}
	c.JSON(http.StatusOK, vault)
}

func (h *Handler) DeletePasswordVault(c *gin.Context) {
	id, ok := parseID(c, "vault")
	if !ok {
		return
	}
	deleted, err := h.store.DeletePasswordVault(c.Request.Context(), id)
	if err != nil {
		log.Printf("delete vault %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete password vault"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Password vault not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// sealPassword resolves the plaintext/opaque password pair: plaintext wins
// and is sealed when a vault key is configured, otherwise it is stored as
// sent, matching the historical passthrough behavior.
func (h *Handler) sealPassword(password, encrypted *string) (*string, error) {
	if password == nil {
		return encrypted, nil
	}
	if h.cipher == nil {
		return password, nil
	}
	sealed, err := h.cipher.Seal(*password)
	if err != nil {
		return nil, err
	}
	return &sealed, nil
}

func (h *Handler) ListPasswordEntries(c *gin.Context) {
	vaultID, ok := uintQuery(c, "vaultId")
	if !ok {
		return
	}
	entries, err := h.store.PasswordEntries(c.Request.Context(), vaultID)
	if err != nil {
		log.Printf("list entries: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch password entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) GetPasswordEntry(c *gin.Context) {
	id, ok := parseID(c, "entry")
	if !ok {
		return
	}
	entry, err := h.store.PasswordEntry(c.Request.Context(), id)
	if err != nil {
		log.Printf("get entry %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch password entry"})
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Password entry not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) CreatePasswordEntry(c *gin.Context) {
	var in models.PasswordEntryInput
	if !bindInput(c, &in, "entry") {
		return
	}
	sealed, err := h.sealPassword(in.Password, in.EncryptedPassword)
	if err != nil {
		log.Printf("seal entry password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create password entry"})
		return
	}
	if sealed == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid entry data",
			"errors":  []fieldError{{Field: "password", Message: "is required"}},
		})
		return
	}
	in.EncryptedPassword = sealed
	in.Password = nil

	// the owning vault must exist
	vault, err := h.store.PasswordVault(c.Request.Context(), in.VaultID)
	if err != nil {
		log.Printf("get vault %d: %v", in.VaultID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create password entry"})
		return
	}
	if vault == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Password vault not found"})
		return
	}

	entry, err := h.store.CreatePasswordEntry(c.Request.Context(), in)
	if err != nil {
		log.Printf("create entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create password entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) UpdatePasswordEntry(c *gin.Context) {
	id, ok := parseID(c, "entry")
	if !ok {
		return
	}
	var in models.PasswordEntryUpdate
	if !bindInput(c, &in, "entry") {
		return
	}
	if in.Password != nil {
		sealed, err := h.sealPassword(in.Password, in.EncryptedPassword)
		if err != nil {
			log.Printf("seal entry password: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update password entry"})
			return
		}
		in.EncryptedPassword = sealed
		in.Password = nil
	}
	entry, err := h.store.UpdatePasswordEntry(c.Request.Context(), id, in)
	if err != nil {
		log.Printf("update entry %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update password entry"})
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Password entry not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) DeletePasswordEntry(c *gin.Context) {
	id, ok := parseID(c, "entry")
	if !ok {
		return
	}
	deleted, err := h.store.DeletePasswordEntry(c.Request.Context(), id)
	if err != nil {
		log.Printf("delete entry %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete password entry"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Password entry not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
