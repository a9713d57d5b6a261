package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"netwatch/internal/models"
)

// GormStorage issues single-statement gorm calls per operation. On first
// list read it lazily seeds the canned sample rows when the devices table
// is empty, so a fresh database serves a populated dashboard.
type GormStorage struct {
	db *gorm.DB

	seedMu sync.Mutex
	seeded bool
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

var _ Storage = (*GormStorage)(nil)

func (s *GormStorage) Devices(ctx context.Context) ([]models.Device, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	var out []models.Device
	if err := s.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return out, nil
}

func (s *GormStorage) Device(ctx context.Context, id uint) (*models.Device, error) {
	var d models.Device
	err := s.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get device: %w", err)
	}
	return &d, nil
}

func (s *GormStorage) CreateDevice(ctx context.Context, in models.DeviceInput) (*models.Device, error) {
	d := newDevice(in)
	if err := s.db.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, fmt.Errorf("create device: %w", err)
	}
	return &d, nil
}

func (s *GormStorage) UpdateDevice(ctx context.Context, id uint, in models.DeviceUpdate) (*models.Device, error) {
	var d models.Device
	err := s.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get device: %w", err)
	}
	applyDeviceUpdate(&d, in)
	if err := s.db.WithContext(ctx).Save(&d).Error; err != nil {
		return nil, fmt.Errorf("update device: %w", err)
	}
	return &d, nil
}

func (s *GormStorage) DeleteDevice(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Device{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete device: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStorage) BandwidthMetrics(ctx context.Context, deviceID *uint, limit int) ([]models.BandwidthMetric, error) {
	if limit <= 0 {
		limit = defaultMetricLimit
	}
	q := s.db.WithContext(ctx).Model(&models.BandwidthMetric{})
	if deviceID != nil {
		q = q.Where("device_id = ?", *deviceID)
	}
	var out []models.BandwidthMetric
	if err := q.Order("timestamp desc, id desc").Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list bandwidth metrics: %w", err)
	}
	return out, nil
}

func (s *GormStorage) CreateBandwidthMetric(ctx context.Context, in models.BandwidthMetricInput) (*models.BandwidthMetric, error) {
	m := newBandwidthMetric(in)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create bandwidth metric: %w", err)
	}
	return &m, nil
}

func (s *GormStorage) LatestSystemMetric(ctx context.Context) (*models.SystemMetric, error) {
	var m models.SystemMetric
	err := s.db.WithContext(ctx).Order("timestamp desc, id desc").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest system metric: %w", err)
	}
	return &m, nil
}

func (s *GormStorage) SystemMetricHistory(ctx context.Context, limit int) ([]models.SystemMetric, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	var out []models.SystemMetric
	err := s.db.WithContext(ctx).Order("timestamp desc, id desc").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("system metric history: %w", err)
	}
	return out, nil
}

func (s *GormStorage) CreateSystemMetric(ctx context.Context, in models.SystemMetricInput) (*models.SystemMetric, error) {
	m := newSystemMetric(in)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create system metric: %w", err)
	}
	return &m, nil
}

func (s *GormStorage) SecurityEvents(ctx context.Context, status string, limit int) ([]models.SecurityEvent, error) {
	if limit <= 0 {
		limit = defaultEventLimit
	}
	q := s.db.WithContext(ctx).Model(&models.SecurityEvent{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []models.SecurityEvent
	if err := q.Order("timestamp desc, id desc").Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list security events: %w", err)
	}
	return out, nil
}

func (s *GormStorage) SecurityEvent(ctx context.Context, id uint) (*models.SecurityEvent, error) {
	var e models.SecurityEvent
	err := s.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get security event: %w", err)
	}
	return &e, nil
}

func (s *GormStorage) CreateSecurityEvent(ctx context.Context, in models.SecurityEventInput) (*models.SecurityEvent, error) {
	e := newSecurityEvent(in)
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, fmt.Errorf("create security event: %w", err)
	}
	return &e, nil
}

func (s *GormStorage) UpdateSecurityEvent(ctx context.Context, id uint, in models.SecurityEventUpdate) (*models.SecurityEvent, error) {
	var e models.SecurityEvent
	err := s.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get security event: %w", err)
	}
	applySecurityEventUpdate(&e, in)
	if err := s.db.WithContext(ctx).Save(&e).Error; err != nil {
		return nil, fmt.Errorf("update security event: %w", err)
	}
	return &e, nil
}

func (s *GormStorage) DeleteSecurityEvent(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.SecurityEvent{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete security event: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStorage) IdsRules(ctx context.Context) ([]models.IdsRule, error) {
	var out []models.IdsRule
	if err := s.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list ids rules: %w", err)
	}
	return out, nil
}

func (s *GormStorage) IdsRule(ctx context.Context, id uint) (*models.IdsRule, error) {
	var r models.IdsRule
	err := s.db.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ids rule: %w", err)
	}
	return &r, nil
}

func (s *GormStorage) CreateIdsRule(ctx context.Context, in models.IdsRuleInput) (*models.IdsRule, error) {
	r := newIdsRule(in)
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, fmt.Errorf("create ids rule: %w", err)
	}
	return &r, nil
}

func (s *GormStorage) UpdateIdsRule(ctx context.Context, id uint, in models.IdsRuleUpdate) (*models.IdsRule, error) {
	var r models.IdsRule
	err := s.db.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ids rule: %w", err)
	}
	applyIdsRuleUpdate(&r, in)
	if err := s.db.WithContext(ctx).Save(&r).Error; err != nil {
		return nil, fmt.Errorf("update ids rule: %w", err)
	}
	return &r, nil
}

func (s *GormStorage) DeleteIdsRule(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.IdsRule{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete ids rule: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStorage) PasswordVaults(ctx context.Context) ([]models.PasswordVault, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	var out []models.PasswordVault
	if err := s.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list vaults: %w", err)
	}
	return out, nil
}

func (s *GormStorage) PasswordVault(ctx context.Context, id uint) (*models.PasswordVault, error) {
	var v models.PasswordVault
	err := s.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vault: %w", err)
	}
	return &v, nil
}

func (s *GormStorage) CreatePasswordVault(ctx context.Context, in models.PasswordVaultInput) (*models.PasswordVault, error) {
	v := models.PasswordVault{Name: in.Name, Description: in.Description}
	if err := s.db.WithContext(ctx).Create(&v).Error; err != nil {
		return nil, fmt.Errorf("create vault: %w", err)
	}
	return &v, nil
}

func (s *GormStorage) UpdatePasswordVault(ctx context.Context, id uint, in models.PasswordVaultUpdate) (*models.PasswordVault, error) {
	var v models.PasswordVault
	err := s.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vault: %w", err)
	}
	applyVaultUpdate(&v, in)
	if err := s.db.WithContext(ctx).Save(&v).Error; err != nil {
		return nil, fmt.Errorf("update vault: %w", err)
	}
	return &v, nil
}

func (s *GormStorage) DeletePasswordVault(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.PasswordVault{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete vault: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	// owning relationship: entries go with the vault
	if err := s.db.WithContext(ctx).Where("vault_id = ?", id).Delete(&models.PasswordEntry{}).Error; err != nil {
		return true, fmt.Errorf("delete vault entries: %w", err)
	}
	return true, nil
}

func (s *GormStorage) PasswordEntries(ctx context.Context, vaultID *uint) ([]models.PasswordEntry, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Model(&models.PasswordEntry{})
	if vaultID != nil {
		q = q.Where("vault_id = ?", *vaultID)
	}
	var out []models.PasswordEntry
	if err := q.Order("last_used desc nulls last, id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return out, nil
}

func (s *GormStorage) PasswordEntry(ctx context.Context, id uint) (*models.PasswordEntry, error) {
	var e models.PasswordEntry
	err := s.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}

func (s *GormStorage) CreatePasswordEntry(ctx context.Context, in models.PasswordEntryInput) (*models.PasswordEntry, error) {
	e := newPasswordEntry(in)
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return &e, nil
}

func (s *GormStorage) UpdatePasswordEntry(ctx context.Context, id uint, in models.PasswordEntryUpdate) (*models.PasswordEntry, error) {
	var e models.PasswordEntry
	err := s.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	applyEntryUpdate(&e, in)
	if err := s.db.WithContext(ctx).Save(&e).Error; err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return &e, nil
}

func (s *GormStorage) DeletePasswordEntry(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.PasswordEntry{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete entry: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
