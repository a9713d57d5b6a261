package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"netwatch/internal/models"
)

func strPtr(s string) *string { return &s }

// ensureSeeded populates an empty database with sample inventory on the
// first list read. Idempotent: it checks for existing devices before
// writing anything, so concurrent processes at worst race to the same rows.
func (s *GormStorage) ensureSeeded(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	if s.seeded {
		return nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Device{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if count > 0 {
		s.seeded = true
		return nil
	}

	log.Println("empty database, seeding sample data")
	if err := s.seed(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	s.seeded = true
	return nil
}

func (s *GormStorage) seed(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	devices := []models.Device{
		{
			Name: "Core Router R1", Type: models.DeviceRouter, IPAddress: "192.168.1.1",
			Status: models.StatusOnline, Bandwidth: 450, MaxBandwidth: 1000,
			LastActivity: time.Now(),
			Model:        strPtr("Cisco ASR 1000"), Location: strPtr("Data Center A"),
		},
		{
			Name: "Switch SW-01", Type: models.DeviceSwitch, IPAddress: "192.168.1.10",
			Status: models.StatusOnline, Bandwidth: 320, MaxBandwidth: 600,
			LastActivity: time.Now(),
			Model:        strPtr("HP ProCurve 2920"), Location: strPtr("Floor 1"),
		},
		{
			Name: "Access Point AP-01", Type: models.DeviceAccessPoint, IPAddress: "192.168.1.20",
			Status: models.StatusWarning, Bandwidth: 890, MaxBandwidth: 1000,
			LastActivity: time.Now(),
			Model:        strPtr("Ubiquiti UniFi"), Location: strPtr("Floor 2"),
		},
		{
			Name: "Firewall FW-01", Type: models.DeviceFirewall, IPAddress: "192.168.1.5",
			Status: models.StatusOffline, Bandwidth: 0, MaxBandwidth: 500,
			LastActivity: time.Now(),
			Model:        strPtr("Fortinet FortiGate"), Location: strPtr("DMZ"),
		},
	}
	if err := db.Create(&devices).Error; err != nil {
		return err
	}

	if err := db.Create(&models.SystemMetric{
		Timestamp:      time.Now(),
		ActiveDevices:  127,
		TotalBandwidth: 2.4,
		Warnings:       3,
		Uptime:         99.9,
	}).Error; err != nil {
		return err
	}

	rules := []models.IdsRule{
		{
			Name:        "SSH Brute Force Detection",
			Description: "Erkennt wiederholte SSH-Anmeldeversuche von derselben IP",
			Pattern:     `^.*sshd.*Failed password.*from\s+(\d+\.\d+\.\d+\.\d+)`,
			Severity:    models.SeverityHigh, Enabled: true,
		},
		{
			Name:        "Port Scan Detection",
			Description: "Erkennt verdächtige Port-Scanning-Aktivitäten",
			Pattern:     "TCP.*SYN.*multiple_ports",
			Severity:    models.SeverityMedium, Enabled: true,
		},
		{
			Name:        "Malware Communication",
			Description: "Erkennt bekannte Malware-Kommunikationsmuster",
			Pattern:     `.*\.exe.*suspicious_domain\.com`,
			Severity:    models.SeverityCritical, Enabled: true,
		},
		{
			Name:        "Unusual Traffic Volume",
			Description: "Erkennt ungewöhnlich hohe Datenübertragung",
			Pattern:     "bandwidth_threshold_exceeded",
			Severity:    models.SeverityMedium, Enabled: true,
		},
	}
	if err := db.Create(&rules).Error; err != nil {
		return err
	}

	events := []models.SecurityEvent{
		{
			Timestamp: time.Now(), EventType: "brute_force", Severity: models.SeverityHigh,
			SourceIP: "45.123.45.67", TargetIP: strPtr("192.168.1.1"),
			Description: "Mehrfache fehlgeschlagene SSH-Anmeldeversuche erkannt",
			Status:      models.EventNew, DeviceID: &devices[0].ID,
		},
		{
			Timestamp: time.Now(), EventType: "port_scan", Severity: models.SeverityMedium,
			SourceIP: "178.62.199.34", TargetIP: strPtr("192.168.1.10"),
			Description: "Port-Scan-Aktivität von externer IP erkannt",
			Status:      models.EventInvestigating, DeviceID: &devices[1].ID,
		},
		{
			Timestamp: time.Now(), EventType: "unusual_traffic", Severity: models.SeverityMedium,
			SourceIP: "192.168.1.20", TargetIP: strPtr("203.0.113.5"),
			Description: "Ungewöhnlich hoher ausgehender Datenverkehr",
			Status:      models.EventNew, DeviceID: &devices[2].ID,
		},
		{
			Timestamp: time.Now(), EventType: "intrusion_attempt", Severity: models.SeverityCritical,
			SourceIP: "198.51.100.23", TargetIP: strPtr("192.168.1.5"),
			Description: "Verdächtiger Einbruchsversuch in Firewall erkannt",
			Status:      models.EventResolved, DeviceID: &devices[3].ID,
		},
	}
	if err := db.Create(&events).Error; err != nil {
		return err
	}

	vault := models.PasswordVault{
		Name:        "Standard Vault",
		Description: strPtr("Haupttresor für Netzwerk-Passwörter und Zugangsdaten"),
	}
	if err := db.Create(&vault).Error; err != nil {
		return err
	}

	entries := []models.PasswordEntry{
		{
			VaultID: vault.ID, Title: "Router Admin",
			Username: strPtr("admin"), Email: strPtr("admin@company.com"),
			EncryptedPassword: "encrypted_admin_password_123",
			Website:           strPtr("https://192.168.1.1"),
			Notes:             strPtr("Hauptrouter-Administratorzugang"),
			Category:          strPtr("Network Equipment"), IsFavorite: true,
		},
		{
			VaultID: vault.ID, Title: "Switch Management",
			Username: strPtr("netadmin"), Email: strPtr("network@company.com"),
			EncryptedPassword: "encrypted_switch_password_456",
			Website:           strPtr("https://192.168.1.10"),
			Notes:             strPtr("Switch-Verwaltungszugang"),
			Category:          strPtr("Network Equipment"),
		},
		{
			VaultID: vault.ID, Title: "Firewall Console",
			Username:          strPtr("fwadmin"),
			EncryptedPassword: "encrypted_firewall_password_789",
			Website:           strPtr("https://192.168.1.5"),
			Notes:             strPtr("Firewall-Konfigurationszugang"),
			Category:          strPtr("Security"), IsFavorite: true,
		},
	}
	return db.Create(&entries).Error
}
