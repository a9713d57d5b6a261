// Package storage mediates all reads and writes of persisted entities.
// Two interchangeable implementations exist: a map-backed in-memory store
// used by tests and keyless deployments, and a gorm/Postgres store used in
// production. Both must behave identically except for persistence.
package storage

import (
	"context"

	"netwatch/internal/models"
)

// Lookups return (nil, nil) when no record matches; deletes report whether
// a row was removed. No call spans more than one table, except the vault
// delete which also removes the vault's entries.
type Storage interface {
	Devices(ctx context.Context) ([]models.Device, error)
	Device(ctx context.Context, id uint) (*models.Device, error)
	CreateDevice(ctx context.Context, in models.DeviceInput) (*models.Device, error)
	UpdateDevice(ctx context.Context, id uint, in models.DeviceUpdate) (*models.Device, error)
	DeleteDevice(ctx context.Context, id uint) (bool, error)

	// BandwidthMetrics returns up to limit rows newest-first, optionally
	// restricted to one device. limit <= 0 selects the default of 50.
	BandwidthMetrics(ctx context.Context, deviceID *uint, limit int) ([]models.BandwidthMetric, error)
	CreateBandwidthMetric(ctx context.Context, in models.BandwidthMetricInput) (*models.BandwidthMetric, error)

	LatestSystemMetric(ctx context.Context) (*models.SystemMetric, error)
	SystemMetricHistory(ctx context.Context, limit int) ([]models.SystemMetric, error)
	CreateSystemMetric(ctx context.Context, in models.SystemMetricInput) (*models.SystemMetric, error)

	// SecurityEvents returns up to limit rows newest-first; a non-empty
	// status restricts to that triage state. limit <= 0 selects 50.
	SecurityEvents(ctx context.Context, status string, limit int) ([]models.SecurityEvent, error)
	SecurityEvent(ctx context.Context, id uint) (*models.SecurityEvent, error)
	CreateSecurityEvent(ctx context.Context, in models.SecurityEventInput) (*models.SecurityEvent, error)
	UpdateSecurityEvent(ctx context.Context, id uint, in models.SecurityEventUpdate) (*models.SecurityEvent, error)
	DeleteSecurityEvent(ctx context.Context, id uint) (bool, error)

	IdsRules(ctx context.Context) ([]models.IdsRule, error)
	IdsRule(ctx context.Context, id uint) (*models.IdsRule, error)
	CreateIdsRule(ctx context.Context, in models.IdsRuleInput) (*models.IdsRule, error)
	UpdateIdsRule(ctx context.Context, id uint, in models.IdsRuleUpdate) (*models.IdsRule, error)
	DeleteIdsRule(ctx context.Context, id uint) (bool, error)

	PasswordVaults(ctx context.Context) ([]models.PasswordVault, error)
	PasswordVault(ctx context.Context, id uint) (*models.PasswordVault, error)
	CreatePasswordVault(ctx context.Context, in models.PasswordVaultInput) (*models.PasswordVault, error)
	UpdatePasswordVault(ctx context.Context, id uint, in models.PasswordVaultUpdate) (*models.PasswordVault, error)
	// DeletePasswordVault also removes every entry owned by the vault.
	DeletePasswordVault(ctx context.Context, id uint) (bool, error)

	PasswordEntries(ctx context.Context, vaultID *uint) ([]models.PasswordEntry, error)
	PasswordEntry(ctx context.Context, id uint) (*models.PasswordEntry, error)
	CreatePasswordEntry(ctx context.Context, in models.PasswordEntryInput) (*models.PasswordEntry, error)
	UpdatePasswordEntry(ctx context.Context, id uint, in models.PasswordEntryUpdate) (*models.PasswordEntry, error)
	DeletePasswordEntry(ctx context.Context, id uint) (bool, error)
}

const (
	defaultMetricLimit  = 50
	defaultHistoryLimit = 24
	defaultEventLimit   = 50
)
