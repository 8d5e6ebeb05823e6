package model

import "time"

// Record is a stored URL key/value pair. URLKey is deliberately not unique:
// multiple records may carry the same key under different IDs.
type Record struct {
	ID        int64
	URLKey    string
	URLValue  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
