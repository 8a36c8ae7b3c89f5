package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog records a user action performed in the frontend.
type AuditLog struct {
	ID        uuid.UUID       `json:"id"`
	Action    string          `json:"action"`
	UserID    string          `json:"userId"`
	UserName  *string         `json:"userName,omitempty"`
	Category  string          `json:"category"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"createdAt"`
}
