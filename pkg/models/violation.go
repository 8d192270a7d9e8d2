package models

import "time"

// Violation is one detected no-fly-zone breach. Rows are immutable once
// written; the timestamp is assigned at detection, not taken from the feed.
type Violation struct {
	ID        int64     `json:"id"`
	DroneID   *string   `json:"drone_id,omitempty"`
	OwnerID   string    `json:"owner_id"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Z         float64   `json:"z"`
	Timestamp time.Time `json:"timestamp"`
}

// ViolationWithOwner is a violation joined with its owner's public fields,
// as served by the violations API.
type ViolationWithOwner struct {
	DroneID   *string     `json:"drone_id"`
	Timestamp time.Time   `json:"timestamp"`
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	Z         float64     `json:"z"`
	Owner     OwnerPublic `json:"owner"`
}
