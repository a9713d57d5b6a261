package storage

import (
	"time"

	"netwatch/internal/models"
)

// Partial-update appliers shared by both implementations so their behavior
// cannot drift. Only non-nil fields touch the record.

func applyDeviceUpdate(d *models.Device, in models.DeviceUpdate) {
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.Type != nil {
		d.Type = models.DeviceType(*in.Type)
	}
	if in.IPAddress != nil {
		d.IPAddress = *in.IPAddress
	}
	if in.Status != nil {
		d.Status = models.DeviceStatus(*in.Status)
	}
	if in.Bandwidth != nil {
		d.Bandwidth = *in.Bandwidth
	}
	if in.MaxBandwidth != nil {
		d.MaxBandwidth = *in.MaxBandwidth
	}
	if in.Model != nil {
		d.Model = in.Model
	}
	if in.Location != nil {
		d.Location = in.Location
	}
	d.LastActivity = time.Now()
}

func applySecurityEventUpdate(e *models.SecurityEvent, in models.SecurityEventUpdate) {
	if in.EventType != nil {
		e.EventType = *in.EventType
	}
	if in.Severity != nil {
		e.Severity = models.EventSeverity(*in.Severity)
	}
	if in.SourceIP != nil {
		e.SourceIP = *in.SourceIP
	}
	if in.TargetIP != nil {
		e.TargetIP = in.TargetIP
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Status != nil {
		e.Status = models.EventStatus(*in.Status)
	}
	if in.DeviceID != nil {
		e.DeviceID = in.DeviceID
	}
}

func applyIdsRuleUpdate(r *models.IdsRule, in models.IdsRuleUpdate) {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Pattern != nil {
		r.Pattern = *in.Pattern
	}
	if in.Severity != nil {
		r.Severity = models.EventSeverity(*in.Severity)
	}
	if in.Enabled != nil {
		r.Enabled = *in.Enabled
	}
	r.UpdatedAt = time.Now()
}

func applyVaultUpdate(v *models.PasswordVault, in models.PasswordVaultUpdate) {
	if in.Name != nil {
		v.Name = *in.Name
	}
	if in.Description != nil {
		v.Description = in.Description
	}
	v.UpdatedAt = time.Now()
}

func applyEntryUpdate(e *models.PasswordEntry, in models.PasswordEntryUpdate) {
	if in.VaultID != nil {
		e.VaultID = *in.VaultID
	}
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Username != nil {
		e.Username = in.Username
	}
	if in.Email != nil {
		e.Email = in.Email
	}
	if in.EncryptedPassword != nil {
		e.EncryptedPassword = *in.EncryptedPassword
	}
	if in.Website != nil {
		e.Website = in.Website
	}
	if in.Notes != nil {
		e.Notes = in.Notes
	}
	if in.Category != nil {
		e.Category = in.Category
	}
	if in.IsFavorite != nil {
		e.IsFavorite = *in.IsFavorite
	}
	if in.LastUsed != nil {
		e.LastUsed = in.LastUsed
	}
	e.UpdatedAt = time.Now()
}

func newDevice(in models.DeviceInput) models.Device {
	status := models.DeviceStatus(in.Status)
	if status == "" {
		status = models.StatusOnline
	}
	maxBW := in.MaxBandwidth
	if maxBW == 0 {
		maxBW = 1000
	}
	return models.Device{
		Name:         in.Name,
		Type:         models.DeviceType(in.Type),
		IPAddress:    in.IPAddress,
		Status:       status,
		Bandwidth:    in.Bandwidth,
		MaxBandwidth: maxBW,
		LastActivity: time.Now(),
		Model:        in.Model,
		Location:     in.Location,
	}
}

func newBandwidthMetric(in models.BandwidthMetricInput) models.BandwidthMetric {
	ts := time.Now()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	return models.BandwidthMetric{
		DeviceID:  in.DeviceID,
		Timestamp: ts,
		Incoming:  in.Incoming,
		Outgoing:  in.Outgoing,
	}
}

func newSystemMetric(in models.SystemMetricInput) models.SystemMetric {
	ts := time.Now()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	return models.SystemMetric{
		Timestamp:      ts,
		ActiveDevices:  in.ActiveDevices,
		TotalBandwidth: in.TotalBandwidth,
		Warnings:       in.Warnings,
		Uptime:         in.Uptime,
	}
}

func newSecurityEvent(in models.SecurityEventInput) models.SecurityEvent {
	status := models.EventStatus(in.Status)
	if status == "" {
		status = models.EventNew
	}
	return models.SecurityEvent{
		Timestamp:   time.Now(),
		EventType:   in.EventType,
		Severity:    models.EventSeverity(in.Severity),
		SourceIP:    in.SourceIP,
		TargetIP:    in.TargetIP,
		Description: in.Description,
		Status:      status,
		DeviceID:    in.DeviceID,
	}
}

func newIdsRule(in models.IdsRuleInput) models.IdsRule {
	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	return models.IdsRule{
		Name:        in.Name,
		Description: in.Description,
		Pattern:     in.Pattern,
		Severity:    models.EventSeverity(in.Severity),
		Enabled:     enabled,
	}
}

func newPasswordEntry(in models.PasswordEntryInput) models.PasswordEntry {
	var sealed string
	if in.EncryptedPassword != nil {
		sealed = *in.EncryptedPassword
	}
	return models.PasswordEntry{
		VaultID:           in.VaultID,
		Title:             in.Title,
		Username:          in.Username,
		Email:             in.Email,
		EncryptedPassword: sealed,
		Website:           in.Website,
		Notes:             in.Notes,
		Category:          in.Category,
		IsFavorite:        in.IsFavorite,
		LastUsed:          in.LastUsed,
	}
}
