package entity

import (
	"encoding/json"
	"time"
)

// Draft is a saved, not yet submitted claim request
type Draft struct {
	ID        int64           `json:"-"`
	PublicID  string          `json:"id"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload,omitempty"` // calculation request JSON
	CreatedAt time.Time       `json:"created_at"`
}
