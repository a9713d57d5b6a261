package models

import "time"

// PasswordVault groups password entries. Deleting a vault deletes its
// entries; this is the only owning relationship in the schema.
type PasswordVault struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PasswordVaultInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type PasswordVaultUpdate struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

type PasswordEntry struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	VaultID           uint       `gorm:"not null;index" json:"vaultId"`
	Title             string     `gorm:"size:255;not null" json:"title"`
	Username          *string    `gorm:"size:255" json:"username"`
	Email             *string    `gorm:"size:255" json:"email"`
	EncryptedPassword string     `gorm:"type:text;not null" json:"encryptedPassword"`
	Website           *string    `gorm:"size:512" json:"website"`
	Notes             *string    `gorm:"type:text" json:"notes"`
	Category          *string    `gorm:"size:100" json:"category"`
	IsFavorite        bool       `gorm:"not null;default:false" json:"isFavorite"`
	LastUsed          *time.Time `json:"lastUsed"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// PasswordEntryInput carries either a plaintext Password (sealed by the
// server when a vault key is configured) or an already-opaque
// EncryptedPassword. The handler resolves the two before storage sees it.
type PasswordEntryInput struct {
	VaultID           uint       `json:"vaultId" binding:"required"`
	Title             string     `json:"title" binding:"required"`
	Username          *string    `json:"username"`
	Email             *string    `json:"email" binding:"omitempty,email"`
	Password          *string    `json:"password"`
	EncryptedPassword *string    `json:"encryptedPassword"`
	Website           *string    `json:"website"`
	Notes             *string    `json:"notes"`
	Category          *string    `json:"category"`
	IsFavorite        bool       `json:"isFavorite"`
	LastUsed          *time.Time `json:"lastUsed"`
}

type PasswordEntryUpdate struct {
	VaultID           *uint      `json:"vaultId"`
	Title             *string    `json:"title" binding:"omitempty,min=1"`
	Username          *string    `json:"username"`
	Email             *string    `json:"email" binding:"omitempty,email"`
	Password          *string    `json:"password"`
	EncryptedPassword *string    `json:"encryptedPassword"`
	Website           *string    `json:"website"`
	Notes             *string    `json:"notes"`
	Category          *string    `json:"category"`
	IsFavorite        *bool      `json:"isFavorite"`
	LastUsed          *time.Time `json:"lastUsed"`
}
