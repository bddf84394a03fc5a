package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records one mutating function call.
type AuditLog struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TraceID    string         `gorm:"index:idx_audit_trace;size:36;not null" json:"trace_id"`
	UserName   string         `gorm:"size:128" json:"user_name"`
	Function   string         `gorm:"size:64;not null" json:"function"`
	Params     datatypes.JSON `json:"params"`
	Error      string         `gorm:"type:text" json:"error"`
	IP         string         `gorm:"size:45" json:"ip"`
	DurationMs int            `json:"duration_ms"`
	CreatedAt  time.Time      `gorm:"index:idx_audit_created;autoCreateTime:milli" json:"created_at"`
}
