package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"netwatch/internal/models"
)

// MemStorage keeps every entity in a mutex-guarded map. IDs come from
// per-entity counters seeded at 1 and are never reused, so deleting a
// record does not free its id.
type MemStorage struct {
	mu sync.Mutex

	devices map[uint]models.Device
	bwm     map[uint]models.BandwidthMetric
	sysm    map[uint]models.SystemMetric
	events  map[uint]models.SecurityEvent
	rules   map[uint]models.IdsRule
	vaults  map[uint]models.PasswordVault
	entries map[uint]models.PasswordEntry

	nextDevice uint
	nextBWM    uint
	nextSysM   uint
	nextEvent  uint
	nextRule   uint
	nextVault  uint
	nextEntry  uint
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		devices:    map[uint]models.Device{},
		bwm:        map[uint]models.BandwidthMetric{},
		sysm:       map[uint]models.SystemMetric{},
		events:     map[uint]models.SecurityEvent{},
		rules:      map[uint]models.IdsRule{},
		vaults:     map[uint]models.PasswordVault{},
		entries:    map[uint]models.PasswordEntry{},
		nextDevice: 1,
		nextBWM:    1,
		nextSysM:   1,
		nextEvent:  1,
		nextRule:   1,
		nextVault:  1,
		nextEntry:  1,
	}
}

var _ Storage = (*MemStorage)(nil)

func (s *MemStorage) Devices(ctx context.Context) ([]models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Device, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStorage) Device(ctx context.Context, id uint) (*models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.devices[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s *MemStorage) CreateDevice(ctx context.Context, in models.DeviceInput) (*models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// ip_address carries a unique index in the gorm store
	if s.deviceIPTaken(in.IPAddress, 0) {
		return nil, fmt.Errorf("create device: ip address %s already in use", in.IPAddress)
	}

	d := newDevice(in)
	d.ID = s.nextDevice
	s.nextDevice++
	s.devices[d.ID] = d
	return &d, nil
}

func (s *MemStorage) UpdateDevice(ctx context.Context, id uint, in models.DeviceUpdate) (*models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.devices[id]
	if !ok {
		return nil, nil
	}
	if in.IPAddress != nil && s.deviceIPTaken(*in.IPAddress, id) {
		return nil, fmt.Errorf("update device: ip address %s already in use", *in.IPAddress)
	}
	applyDeviceUpdate(&d, in)
	s.devices[id] = d
	return &d, nil
}

// deviceIPTaken reports whether another device already holds the address.
// Callers must hold s.mu.
func (s *MemStorage) deviceIPTaken(ip string, selfID uint) bool {
	for _, d := range s.devices {
		if d.ID != selfID && d.IPAddress == ip {
			return true
		}
	}
	return false
}

func (s *MemStorage) DeleteDevice(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.devices[id]; !ok {
		return false, nil
	}
	delete(s.devices, id)
	return true, nil
}

func (s *MemStorage) BandwidthMetrics(ctx context.Context, deviceID *uint, limit int) ([]models.BandwidthMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = defaultMetricLimit
	}
	out := make([]models.BandwidthMetric, 0, len(s.bwm))
	for _, m := range s.bwm {
		if deviceID != nil && (m.DeviceID == nil || *m.DeviceID != *deviceID) {
			continue
		}
		out = append(out, m)
	}
	sortNewestFirst(out, func(m models.BandwidthMetric) (time.Time, uint) { return m.Timestamp, m.ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStorage) CreateBandwidthMetric(ctx context.Context, in models.BandwidthMetricInput) (*models.BandwidthMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := newBandwidthMetric(in)
	m.ID = s.nextBWM
	s.nextBWM++
	s.bwm[m.ID] = m
	return &m, nil
}

func (s *MemStorage) LatestSystemMetric(ctx context.Context) (*models.SystemMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *models.SystemMetric
	for id := range s.sysm {
		m := s.sysm[id]
		if latest == nil || m.Timestamp.After(latest.Timestamp) ||
			(m.Timestamp.Equal(latest.Timestamp) && m.ID > latest.ID) {
			latest = &m
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (s *MemStorage) SystemMetricHistory(ctx context.Context, limit int) ([]models.SystemMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	out := make([]models.SystemMetric, 0, len(s.sysm))
	for _, m := range s.sysm {
		out = append(out, m)
	}
	sortNewestFirst(out, func(m models.SystemMetric) (time.Time, uint) { return m.Timestamp, m.ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStorage) CreateSystemMetric(ctx context.Context, in models.SystemMetricInput) (*models.SystemMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := newSystemMetric(in)
	m.ID = s.nextSysM
	s.nextSysM++
	s.sysm[m.ID] = m
	return &m, nil
}

func (s *MemStorage) SecurityEvents(ctx context.Context, status string, limit int) ([]models.SecurityEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = defaultEventLimit
	}
	out := make([]models.SecurityEvent, 0, len(s.events))
	for _, e := range s.events {
		if status != "" && string(e.Status) != status {
			continue
		}
		out = append(out, e)
	}
	sortNewestFirst(out, func(e models.SecurityEvent) (time.Time, uint) { return e.Timestamp, e.ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStorage) SecurityEvent(ctx context.Context, id uint) (*models.SecurityEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *MemStorage) CreateSecurityEvent(ctx context.Context, in models.SecurityEventInput) (*models.SecurityEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := newSecurityEvent(in)
	e.ID = s.nextEvent
	s.nextEvent++
	s.events[e.ID] = e
	return &e, nil
}

func (s *MemStorage) UpdateSecurityEvent(ctx context.Context, id uint, in models.SecurityEventUpdate) (*models.SecurityEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	applySecurityEventUpdate(&e, in)
	s.events[id] = e
	return &e, nil
}

func (s *MemStorage) DeleteSecurityEvent(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	return true, nil
}

func (s *MemStorage) IdsRules(ctx context.Context) ([]models.IdsRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.IdsRule, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStorage) IdsRule(ctx context.Context, id uint) (*models.IdsRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rules[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *MemStorage) CreateIdsRule(ctx context.Context, in models.IdsRuleInput) (*models.IdsRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	r := newIdsRule(in)
	r.ID = s.nextRule
	r.CreatedAt = now
	r.UpdatedAt = now
	s.nextRule++
	s.rules[r.ID] = r
	return &r, nil
}

func (s *MemStorage) UpdateIdsRule(ctx context.Context, id uint, in models.IdsRuleUpdate) (*models.IdsRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rules[id]
	if !ok {
		return nil, nil
	}
	applyIdsRuleUpdate(&r, in)
	s.rules[id] = r
	return &r, nil
}

func (s *MemStorage) DeleteIdsRule(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[id]; !ok {
		return false, nil
	}
	delete(s.rules, id)
	return true, nil
}

func (s *MemStorage) PasswordVaults(ctx context.Context) ([]models.PasswordVault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.PasswordVault, 0, len(s.vaults))
	for _, v := range s.vaults {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStorage) PasswordVault(ctx context.Context, id uint) (*models.PasswordVault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vaults[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *MemStorage) CreatePasswordVault(ctx context.Context, in models.PasswordVaultInput) (*models.PasswordVault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	v := models.PasswordVault{
		ID:          s.nextVault,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextVault++
	s.vaults[v.ID] = v
	return &v, nil
}

func (s *MemStorage) UpdatePasswordVault(ctx context.Context, id uint, in models.PasswordVaultUpdate) (*models.PasswordVault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vaults[id]
	if !ok {
		return nil, nil
	}
	applyVaultUpdate(&v, in)
	s.vaults[id] = v
	return &v, nil
}

func (s *MemStorage) DeletePasswordVault(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vaults[id]; !ok {
		return false, nil
	}
	delete(s.vaults, id)
	for eid, e := range s.entries {
		if e.VaultID == id {
			delete(s.entries, eid)
		}
	}
	return true, nil
}

func (s *MemStorage) PasswordEntries(ctx context.Context, vaultID *uint) ([]models.PasswordEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.PasswordEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if vaultID != nil && e.VaultID != *vaultID {
			continue
		}
		out = append(out, e)
	}
	// most recently used first, never-used entries after, stable by id
	sort.Slice(out, func(i, j int) bool {
		ti, tj := entryUsedAt(out[i]), entryUsedAt(out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func entryUsedAt(e models.PasswordEntry) time.Time {
	if e.LastUsed != nil {
		return *e.LastUsed
	}
	return time.Time{}
}

func (s *MemStorage) PasswordEntry(ctx context.Context, id uint) (*models.PasswordEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *MemStorage) CreatePasswordEntry(ctx context.Context, in models.PasswordEntryInput) (*models.PasswordEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e := newPasswordEntry(in)
	e.ID = s.nextEntry
	e.CreatedAt = now
	e.UpdatedAt = now
	s.nextEntry++
	s.entries[e.ID] = e
	return &e, nil
}

func (s *MemStorage) UpdatePasswordEntry(ctx context.Context, id uint, in models.PasswordEntryUpdate) (*models.PasswordEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	applyEntryUpdate(&e, in)
	s.entries[id] = e
	return &e, nil
}

func (s *MemStorage) DeletePasswordEntry(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return false, nil
	}
	delete(s.entries, id)
	return true, nil
}

func sortNewestFirst[T any](items []T, key func(T) (time.Time, uint)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi > idj
	})
}
