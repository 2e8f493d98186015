package models

import "time"

type Guardian struct {
	Address string
	AddedAt time.Time
}
