package model

import "time"

// Batch groups the transactions produced by one extraction invocation.
// The identifier is minted by the caller and shared by every transaction
// in the group so downstream consumers can display or undo them as a unit.
type Batch struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Source    string    `json:"source"` // e.g., "extract", "import-ofx"
	Count     int       `json:"count"`
}
