package models

import "github.com/google/uuid"

// Skip reasons recorded per entry during a scan cycle. These also label
// the prometheus skip counter.
const (
	SkipMalformed           = "malformed_entry"
	SkipMissingOwner        = "missing_owner"
	SkipOwnerNotFound       = "owner_not_found"
	SkipUpstreamUnavailable = "upstream_unavailable"
	SkipStorageError        = "storage_error"
)

// EntryError records why a single fleet entry was skipped. Accumulating
// these in the report keeps per-entry failures observable instead of
// only visible in logs.
type EntryError struct {
	DroneID string `json:"drone_id,omitempty"`
	OwnerID string `json:"owner_id,omitempty"`
	Reason  string `json:"reason"`
}

// ScanReport summarizes one scan cycle.
type ScanReport struct {
	CycleID            uuid.UUID    `json:"cycle_id"`
	Processed          int          `json:"processed"`
	Skipped            int          `json:"skipped"`
	ViolationsRecorded int          `json:"violations_recorded"`
	Errors             []EntryError `json:"errors,omitempty"`
}

// Record appends an entry error and bumps the skip count.
func (r *ScanReport) Record(pos RawDronePosition, reason string) {
	e := EntryError{Reason: reason}
	if pos.ID != nil {
		e.DroneID = *pos.ID
	}
	if pos.OwnerID != nil {
		e.OwnerID = *pos.OwnerID
	}
	r.Skipped++
	r.Errors = append(r.Errors, e)
}
