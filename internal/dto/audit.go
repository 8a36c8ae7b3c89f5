package dto

import (
	"encoding/json"
	"time"
)

// AuditLogRequest is the payload posted by the frontend for every tracked action.
type AuditLogRequest struct {
	Action   string          `json:"action"`
	UserID   string          `json:"userId"`
	Category string          `json:"category"`
	UserName string          `json:"userName"`
	Details  json.RawMessage `json:"details"`
}

// AuditLogFilter narrows audit log listings. Start and End accept any format
// datefmt.Parse understands; From and To are the resolved created_at bounds.
type AuditLogFilter struct {
	Category string
	UserID   string
	Start    string
	End      string
	From     *time.Time
	To       *time.Time
	Limit    int
}
