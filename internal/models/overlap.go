package models

import "time"

// OverlapWindow is a half-open interval [Start, End) during which two
// markets trade simultaneously. Instants are in UTC; SessionA/SessionB
// name the contributing session on each side.
type OverlapWindow struct {
	Start           time.Time   `json:"start"`
	End             time.Time   `json:"end"`
	SessionA        SessionName `json:"session_a"`
	SessionB        SessionName `json:"session_b"`
	DurationMinutes int         `json:"duration_minutes"`
}

// OverlapSummary aggregates a day's overlap windows for display.
type OverlapSummary struct {
	FirstStart   *time.Time `json:"first_start,omitempty"`
	LastEnd      *time.Time `json:"last_end,omitempty"`
	TotalMinutes int        `json:"total_minutes"`
	Text         string     `json:"text"`
}
