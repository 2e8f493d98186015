// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is the singleton ownership record for the vault. There is exactly
// one row; the owner and paused flag are authoritative here.
type Account struct {
	ID        int64
	Owner     string
	Paused    bool
	UpdatedAt time.Time
}
