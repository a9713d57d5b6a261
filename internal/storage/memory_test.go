package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netwatch/internal/models"
)

func deviceInput(name, ip string) models.DeviceInput {
	return models.DeviceInput{
		Name:      name,
		Type:      "router",
		IPAddress: ip,
		Status:    "online",
		Bandwidth: 100,
	}
}

func TestMemStorage_DeviceCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	before := time.Now()
	d, err := s.CreateDevice(ctx, deviceInput("R1", "10.0.0.1"))
	require.NoError(t, err)
	assert.Equal(t, uint(1), d.ID)
	assert.Equal(t, "10.0.0.1", d.IPAddress)
	assert.False(t, d.LastActivity.Before(before))
	assert.Equal(t, models.StatusOnline, d.Status)

	d2, err := s.CreateDevice(ctx, deviceInput("R2", "10.0.0.2"))
	require.NoError(t, err)
	assert.Equal(t, uint(2), d2.ID)

	got, err := s.Device(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "R1", got.Name)

	missing, err := s.Device(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := s.Devices(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, uint(1), all[0].ID)
	assert.Equal(t, uint(2), all[1].ID)
}

func TestMemStorage_DeviceDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	d, err := s.CreateDevice(ctx, models.DeviceInput{
		Name: "R1", Type: "router", IPAddress: "10.0.0.1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnline, d.Status)
	assert.Equal(t, float64(1000), d.MaxBandwidth)
}

func TestMemStorage_EmptyPartialUpdateOnlyRefreshesActivity(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	d, err := s.CreateDevice(ctx, deviceInput("R1", "10.0.0.1"))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	updated, err := s.UpdateDevice(ctx, d.ID, models.DeviceUpdate{})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, d.Name, updated.Name)
	assert.Equal(t, d.Type, updated.Type)
	assert.Equal(t, d.IPAddress, updated.IPAddress)
	assert.Equal(t, d.Status, updated.Status)
	assert.Equal(t, d.Bandwidth, updated.Bandwidth)
	assert.Equal(t, d.MaxBandwidth, updated.MaxBandwidth)
	assert.True(t, updated.LastActivity.After(d.LastActivity))
}

func TestMemStorage_DuplicateIPRejected(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	d1, err := s.CreateDevice(ctx, deviceInput("R1", "10.0.0.1"))
	require.NoError(t, err)
	d2, err := s.CreateDevice(ctx, deviceInput("R2", "10.0.0.2"))
	require.NoError(t, err)

	_, err = s.CreateDevice(ctx, deviceInput("R3", "10.0.0.1"))
	require.Error(t, err)

	all, err := s.Devices(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// moving onto another device's address fails the same way
	taken := d1.IPAddress
	_, err = s.UpdateDevice(ctx, d2.ID, models.DeviceUpdate{IPAddress: &taken})
	require.Error(t, err)

	// re-asserting a device's own address is not a conflict
	own := d1.IPAddress
	updated, err := s.UpdateDevice(ctx, d1.ID, models.DeviceUpdate{IPAddress: &own})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "10.0.0.1", updated.IPAddress)

	// a freed address becomes usable again
	_, err = s.DeleteDevice(ctx, d1.ID)
	require.NoError(t, err)
	_, err = s.CreateDevice(ctx, deviceInput("R3", "10.0.0.1"))
	require.NoError(t, err)
}

func TestMemStorage_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	d, err := s.CreateDevice(ctx, deviceInput("R1", "10.0.0.1"))
	require.NoError(t, err)

	deleted, err := s.DeleteDevice(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteDevice(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemStorage_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	d1, err := s.CreateDevice(ctx, deviceInput("R1", "10.0.0.1"))
	require.NoError(t, err)

	_, err = s.DeleteDevice(ctx, d1.ID)
	require.NoError(t, err)

	d2, err := s.CreateDevice(ctx, deviceInput("R2", "10.0.0.2"))
	require.NoError(t, err)
	assert.Equal(t, uint(2), d2.ID)
}

func TestMemStorage_BandwidthMetricsFilterAndLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	one, two := uint(1), uint(2)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		dev := &one
		if i%2 == 1 {
			dev = &two
		}
		_, err := s.CreateBandwidthMetric(ctx, models.BandwidthMetricInput{
			DeviceID: dev, Incoming: float64(i), Outgoing: 1, Timestamp: &ts,
		})
		require.NoError(t, err)
	}

	all, err := s.BandwidthMetrics(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Timestamp.After(all[i-1].Timestamp), "must be newest-first")
	}

	filtered, err := s.BandwidthMetrics(ctx, &two, 0)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, m := range filtered {
		assert.Equal(t, two, *m.DeviceID)
	}

	capped, err := s.BandwidthMetrics(ctx, nil, 3)
	require.NoError(t, err)
	assert.Len(t, capped, 3)
}

func TestMemStorage_LatestSystemMetric(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	latest, err := s.LatestSystemMetric(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	old := time.Now().Add(-2 * time.Hour)
	newer := time.Now().Add(-time.Hour)
	_, err = s.CreateSystemMetric(ctx, models.SystemMetricInput{ActiveDevices: 10, Uptime: 99, Timestamp: &newer})
	require.NoError(t, err)
	_, err = s.CreateSystemMetric(ctx, models.SystemMetricInput{ActiveDevices: 5, Uptime: 98, Timestamp: &old})
	require.NoError(t, err)

	latest, err = s.LatestSystemMetric(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 10, latest.ActiveDevices)
}

func TestMemStorage_SecurityEventStatusFilterPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	statuses := []string{"new", "investigating", "new", "resolved", "new"}
	for i, st := range statuses {
		_, err := s.CreateSecurityEvent(ctx, models.SecurityEventInput{
			EventType: "port_scan", Severity: "medium", SourceIP: "10.0.0.9",
			Description: "scan", Status: st,
		})
		require.NoError(t, err, "event %d", i)
	}

	all, err := s.SecurityEvents(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 5)

	filtered, err := s.SecurityEvents(ctx, "new", 0)
	require.NoError(t, err)
	require.Len(t, filtered, 3)

	// the filtered list is the exact matching subset in the same order
	var matching []uint
	for _, e := range all {
		if e.Status == models.EventNew {
			matching = append(matching, e.ID)
		}
	}
	for i, e := range filtered {
		assert.Equal(t, matching[i], e.ID)
		assert.Equal(t, models.EventNew, e.Status)
	}
}

func TestMemStorage_IdsRuleUpdateBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	r, err := s.CreateIdsRule(ctx, models.IdsRuleInput{
		Name: "rule", Description: "d", Pattern: "p", Severity: "high",
	})
	require.NoError(t, err)
	assert.True(t, r.Enabled, "enabled defaults to true")

	time.Sleep(5 * time.Millisecond)
	enabled := false
	updated, err := s.UpdateIdsRule(ctx, r.ID, models.IdsRuleUpdate{Enabled: &enabled})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.Enabled)
	assert.True(t, updated.UpdatedAt.After(r.UpdatedAt))
	assert.Equal(t, r.CreatedAt, updated.CreatedAt)
}

func TestMemStorage_VaultDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	v, err := s.CreatePasswordVault(ctx, models.PasswordVaultInput{Name: "Main"})
	require.NoError(t, err)
	other, err := s.CreatePasswordVault(ctx, models.PasswordVaultInput{Name: "Other"})
	require.NoError(t, err)

	sealed := "opaque"
	for i := 0; i < 3; i++ {
		_, err := s.CreatePasswordEntry(ctx, models.PasswordEntryInput{
			VaultID: v.ID, Title: "e", EncryptedPassword: &sealed,
		})
		require.NoError(t, err)
	}
	kept, err := s.CreatePasswordEntry(ctx, models.PasswordEntryInput{
		VaultID: other.ID, Title: "kept", EncryptedPassword: &sealed,
	})
	require.NoError(t, err)

	deleted, err := s.DeletePasswordVault(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	entries, err := s.PasswordEntries(ctx, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, kept.ID, entries[0].ID)
}

func TestMemStorage_PasswordEntriesVaultFilter(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	v1, err := s.CreatePasswordVault(ctx, models.PasswordVaultInput{Name: "A"})
	require.NoError(t, err)
	v2, err := s.CreatePasswordVault(ctx, models.PasswordVaultInput{Name: "B"})
	require.NoError(t, err)

	sealed := "opaque"
	_, err = s.CreatePasswordEntry(ctx, models.PasswordEntryInput{VaultID: v1.ID, Title: "a1", EncryptedPassword: &sealed})
	require.NoError(t, err)
	_, err = s.CreatePasswordEntry(ctx, models.PasswordEntryInput{VaultID: v2.ID, Title: "b1", EncryptedPassword: &sealed})
	require.NoError(t, err)

	got, err := s.PasswordEntries(ctx, &v1.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].Title)
}
