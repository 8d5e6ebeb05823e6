package model

import "time"

// Store is a registered downstream endpoint that receives saved URL pairs.
type Store struct {
	ID        int64
	Name      string
	Endpoint  string
	Secret    string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
