package models

import "time"

type EventSeverity string
type EventStatus string

const (
	SeverityLow      EventSeverity = "low"
	SeverityMedium   EventSeverity = "medium"
	SeverityHigh     EventSeverity = "high"
	SeverityCritical EventSeverity = "critical"

	EventNew           EventStatus = "new"
	EventInvestigating EventStatus = "investigating"
	EventResolved      EventStatus = "resolved"
	EventFalsePositive EventStatus = "false_positive"
)

// SecurityEvent is a detection record a human triages through the UI.
// Status transitions are free-form; no state machine is enforced.
type SecurityEvent struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Timestamp   time.Time     `gorm:"not null;index" json:"timestamp"`
	EventType   string        `gorm:"size:100;not null" json:"eventType"`
	Severity    EventSeverity `gorm:"type:varchar(20);not null" json:"severity"`
	SourceIP    string        `gorm:"column:source_ip;size:45;not null" json:"sourceIp"`
	TargetIP    *string       `gorm:"column:target_ip;size:45" json:"targetIp"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Status      EventStatus   `gorm:"type:varchar(20);not null;default:new" json:"status"`
	DeviceID    *uint         `json:"deviceId"`
}

type SecurityEventInput struct {
	EventType   string  `json:"eventType" binding:"required"`
	Severity    string  `json:"severity" binding:"required,oneof=low medium high critical"`
	SourceIP    string  `json:"sourceIp" binding:"required,ip"`
	TargetIP    *string `json:"targetIp" binding:"omitempty,ip"`
	Description string  `json:"description" binding:"required"`
	Status      string  `json:"status" binding:"omitempty,oneof=new investigating resolved false_positive"`
	DeviceID    *uint   `json:"deviceId"`
}

type SecurityEventUpdate struct {
	EventType   *string `json:"eventType" binding:"omitempty,min=1"`
	Severity    *string `json:"severity" binding:"omitempty,oneof=low medium high critical"`
	SourceIP    *string `json:"sourceIp" binding:"omitempty,ip"`
	TargetIP    *string `json:"targetIp" binding:"omitempty,ip"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=new investigating resolved false_positive"`
	DeviceID    *uint   `json:"deviceId"`
}

// IdsRule is an editable detection rule; the pattern is stored verbatim and
// never interpreted by the server.
type IdsRule struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Pattern     string        `gorm:"type:text;not null" json:"pattern"`
	Severity    EventSeverity `gorm:"type:varchar(20);not null" json:"severity"`
	Enabled     bool          `gorm:"not null;default:true" json:"enabled"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type IdsRuleInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Pattern     string `json:"pattern" binding:"required"`
	Severity    string `json:"severity" binding:"required,oneof=low medium high critical"`
	Enabled     *bool  `json:"enabled"`
}

type IdsRuleUpdate struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Pattern     *string `json:"pattern" binding:"omitempty,min=1"`
	Severity    *string `json:"severity" binding:"omitempty,oneof=low medium high critical"`
	Enabled     *bool   `json:"enabled"`
}
