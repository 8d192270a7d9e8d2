package models

import "errors"

// Validation errors for raw telemetry entries.
var (
	ErrMalformedEntry = errors.New("malformed entry: missing x or y")
	ErrMissingOwner   = errors.New("missing owner id")
)

// RawDronePosition is one entry of the fleet snapshot exactly as the
// telemetry feed reports it. Any subset of the optional fields may be
// absent, so everything is pointer-typed and validated once at the
// boundary before entering the scan pipeline.
type RawDronePosition struct {
	ID      *string  `json:"id,omitempty"`
	OwnerID *string  `json:"owner_id,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Z       *float64 `json:"z,omitempty"`
}

// DronePosition is a validated telemetry entry with defaults applied.
type DronePosition struct {
	DroneID *string
	OwnerID string
	X       float64
	Y       float64
	Z       float64
}

// Validate converts a raw entry into a usable position.
// Missing x or y makes the entry malformed. A missing owner_id is a
// distinct condition: such drones are never flagged, even inside the
// zone. A missing z defaults to 0.
func (r RawDronePosition) Validate() (DronePosition, error) {
	if r.X == nil || r.Y == nil {
		return DronePosition{}, ErrMalformedEntry
	}
	if r.OwnerID == nil || *r.OwnerID == "" {
		return DronePosition{}, ErrMissingOwner
	}

	pos := DronePosition{
		DroneID: r.ID,
		OwnerID: *r.OwnerID,
		X:       *r.X,
		Y:       *r.Y,
	}
	if r.Z != nil {
		pos.Z = *r.Z
	}
	return pos, nil
}
