package models

import "time"

type DeviceType string
type DeviceStatus string

const (
	DeviceRouter      DeviceType = "router"
	DeviceSwitch      DeviceType = "switch"
	DeviceAccessPoint DeviceType = "access_point"
	DeviceFirewall    DeviceType = "firewall"

	StatusOnline      DeviceStatus = "online"
	StatusWarning     DeviceStatus = "warning"
	StatusOffline     DeviceStatus = "offline"
	StatusMaintenance DeviceStatus = "maintenance"
)

type Device struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:255;not null" json:"name"`
	Type         DeviceType   `gorm:"type:varchar(50);not null" json:"type"`
	IPAddress    string       `gorm:"column:ip_address;size:45;not null;uniqueIndex" json:"ipAddress"`
	Status       DeviceStatus `gorm:"type:varchar(50);not null;default:online" json:"status"`
	Bandwidth    float64      `gorm:"not null;default:0" json:"bandwidth"` // MB/s
	MaxBandwidth float64      `gorm:"not null;default:1000" json:"maxBandwidth"`
	LastActivity time.Time    `gorm:"not null" json:"lastActivity"`
	Model        *string      `gorm:"size:255" json:"model"`
	Location     *string      `gorm:"size:255" json:"location"`
}

// DeviceInput is the create payload. Status and MaxBandwidth fall back to
// their column defaults when omitted.
type DeviceInput struct {
	Name         string  `json:"name" binding:"required"`
	Type         string  `json:"type" binding:"required,oneof=router switch access_point firewall"`
	IPAddress    string  `json:"ipAddress" binding:"required,ip"`
	Status       string  `json:"status" binding:"omitempty,oneof=online warning offline maintenance"`
	Bandwidth    float64 `json:"bandwidth" binding:"gte=0"`
	MaxBandwidth float64 `json:"maxBandwidth" binding:"omitempty,gte=1"`
	Model        *string `json:"model"`
	Location     *string `json:"location"`
}

// DeviceUpdate is the partial update payload; nil fields stay untouched.
type DeviceUpdate struct {
	Name         *string  `json:"name" binding:"omitempty,min=1"`
	Type         *string  `json:"type" binding:"omitempty,oneof=router switch access_point firewall"`
	IPAddress    *string  `json:"ipAddress" binding:"omitempty,ip"`
	Status       *string  `json:"status" binding:"omitempty,oneof=online warning offline maintenance"`
	Bandwidth    *float64 `json:"bandwidth" binding:"omitempty,gte=0"`
	MaxBandwidth *float64 `json:"maxBandwidth" binding:"omitempty,gte=1"`
	Model        *string  `json:"model"`
	Location     *string  `json:"location"`
}
