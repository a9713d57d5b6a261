package models

import "time"

// BandwidthMetric is an append-only per-device throughput sample in GB/s.
type BandwidthMetric struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DeviceID  *uint     `gorm:"index" json:"deviceId"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Incoming  float64   `gorm:"not null" json:"incoming"`
	Outgoing  float64   `gorm:"not null" json:"outgoing"`
}

type BandwidthMetricInput struct {
	DeviceID  *uint      `json:"deviceId"`
	Incoming  float64    `json:"incoming" binding:"gte=0"`
	Outgoing  float64    `json:"outgoing" binding:"gte=0"`
	Timestamp *time.Time `json:"timestamp"`
}

// SystemMetric is an append-only whole-network snapshot; the row with the
// greatest timestamp is the logical "latest".
type SystemMetric struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Timestamp      time.Time `gorm:"not null;index" json:"timestamp"`
	ActiveDevices  int       `gorm:"not null" json:"activeDevices"`
	TotalBandwidth float64   `gorm:"not null" json:"totalBandwidth"`
	Warnings       int       `gorm:"not null" json:"warnings"`
	Uptime         float64   `gorm:"not null" json:"uptime"` // percentage
}

type SystemMetricInput struct {
	ActiveDevices  int        `json:"activeDevices" binding:"gte=0"`
	TotalBandwidth float64    `json:"totalBandwidth" binding:"gte=0"`
	Warnings       int        `json:"warnings" binding:"gte=0"`
	Uptime         float64    `json:"uptime" binding:"gte=0,lte=100"`
	Timestamp      *time.Time `json:"timestamp"`
}
