package apperrors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrOwnerNotFound       = errors.New("owner not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
