package models

import "time"

// Stats counts a user's activity. It is served as the dashboard payload.
type Stats struct {
	UserID         string    `json:"-"`
	Logins         int64     `json:"logins"`
	HintsRequested int64     `json:"hintsRequested"`
	MemberSince    time.Time `json:"memberSince"`
	LastActiveAt   time.Time `json:"lastActiveAt,omitzero"`
}

// StatsCounter names a counter column in Stats.
type StatsCounter string

const (
	CounterLogins StatsCounter = "logins"
	CounterHints  StatsCounter = "hints_requested"
)
