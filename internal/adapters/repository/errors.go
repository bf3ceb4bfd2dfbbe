package repository

import "errors"

// Sentinel kinds for store errors. Backing-store failures wrap ErrStore so
// callers can map them to a generic, non-user-correctable failure.
var (
	ErrStore = errors.New("store failure")
)
