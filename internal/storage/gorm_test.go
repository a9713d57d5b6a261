package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"netwatch/internal/models"
)

// newTestGormStorage connects to the database named by TEST_DB_DSN and
// starts from empty tables. Without the variable the gorm tests skip, so
// the suite stays runnable on a bare checkout.
func newTestGormStorage(t *testing.T) *GormStorage {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Device{},
		&models.BandwidthMetric{},
		&models.SystemMetric{},
		&models.SecurityEvent{},
		&models.IdsRule{},
		&models.PasswordVault{},
		&models.PasswordEntry{},
	))

	for _, table := range []string{
		"password_entries", "password_vaults", "ids_rules",
		"security_events", "system_metrics", "bandwidth_metrics", "devices",
	} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	// the tables are empty on purpose; suppress the lazy sample seed so
	// list reads return only what the test created
	s := NewGormStorage(db)
	s.seeded = true
	return s
}

func TestGormStorage_SeedIsIdempotent(t *testing.T) {
	base := newTestGormStorage(t)
	ctx := context.Background()

	// a fresh instance sees the empty tables and seeds them
	seeder := NewGormStorage(base.db)
	devices, err := seeder.Devices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 4, "empty database gets the sample inventory")

	// a second instance against the same database must not seed again
	again := NewGormStorage(base.db)
	devices, err = again.Devices(ctx)
	require.NoError(t, err)
	assert.Len(t, devices, 4)

	vaults, err := again.PasswordVaults(ctx)
	require.NoError(t, err)
	require.Len(t, vaults, 1)

	entries, err := again.PasswordEntries(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestGormStorage_DuplicateIPRejected(t *testing.T) {
	s := newTestGormStorage(t)
	ctx := context.Background()

	d1, err := s.CreateDevice(ctx, deviceInput("R1", "10.9.0.1"))
	require.NoError(t, err)
	d2, err := s.CreateDevice(ctx, deviceInput("R2", "10.9.0.2"))
	require.NoError(t, err)

	_, err = s.CreateDevice(ctx, deviceInput("R3", "10.9.0.1"))
	require.Error(t, err, "unique index on ip_address")

	taken := d1.IPAddress
	_, err = s.UpdateDevice(ctx, d2.ID, models.DeviceUpdate{IPAddress: &taken})
	require.Error(t, err)
}

func TestGormStorage_MetricOrderingAndFilter(t *testing.T) {
	s := newTestGormStorage(t)
	ctx := context.Background()

	d1, err := s.CreateDevice(ctx, deviceInput("R1", "10.9.0.1"))
	require.NoError(t, err)
	d2, err := s.CreateDevice(ctx, deviceInput("R2", "10.9.0.2"))
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour).Truncate(time.Microsecond)
	for i := 0; i < 4; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		dev := d1.ID
		if i%2 == 1 {
			dev = d2.ID
		}
		_, err := s.CreateBandwidthMetric(ctx, models.BandwidthMetricInput{
			DeviceID: &dev, Incoming: float64(i), Timestamp: &ts,
		})
		require.NoError(t, err)
	}

	all, err := s.BandwidthMetrics(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Timestamp.After(all[i-1].Timestamp), "newest first")
	}

	filtered, err := s.BandwidthMetrics(ctx, &d2.ID, 0)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, m := range filtered {
		assert.Equal(t, d2.ID, *m.DeviceID)
	}
}

func TestGormStorage_EntriesOrderUsedFirstThenNullsLast(t *testing.T) {
	s := newTestGormStorage(t)
	ctx := context.Background()

	v, err := s.CreatePasswordVault(ctx, models.PasswordVaultInput{Name: "V"})
	require.NoError(t, err)

	sealed := "opaque"
	var ids []uint
	for i := 0; i < 3; i++ {
		e, err := s.CreatePasswordEntry(ctx, models.PasswordEntryInput{
			VaultID: v.ID, Title: "e", EncryptedPassword: &sealed,
		})
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	used := time.Now().Truncate(time.Microsecond)
	_, err = s.UpdatePasswordEntry(ctx, ids[2], models.PasswordEntryUpdate{LastUsed: &used})
	require.NoError(t, err)

	entries, err := s.PasswordEntries(ctx, &v.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, ids[2], entries[0].ID, "used entry sorts before never-used")
	assert.Equal(t, ids[0], entries[1].ID)
	assert.Equal(t, ids[1], entries[2].ID)
}

func TestGormStorage_VaultDeleteCascades(t *testing.T) {
	s := newTestGormStorage(t)
	ctx := context.Background()

	v, err := s.CreatePasswordVault(ctx, models.PasswordVaultInput{Name: "Doomed"})
	require.NoError(t, err)
	keep, err := s.CreatePasswordVault(ctx, models.PasswordVaultInput{Name: "Kept"})
	require.NoError(t, err)

	sealed := "opaque"
	_, err = s.CreatePasswordEntry(ctx, models.PasswordEntryInput{VaultID: v.ID, Title: "gone", EncryptedPassword: &sealed})
	require.NoError(t, err)
	kept, err := s.CreatePasswordEntry(ctx, models.PasswordEntryInput{VaultID: keep.ID, Title: "kept", EncryptedPassword: &sealed})
	require.NoError(t, err)

	deleted, err := s.DeletePasswordVault(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	entries, err := s.PasswordEntries(ctx, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, kept.ID, entries[0].ID)
}
