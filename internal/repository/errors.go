package repository

import "errors"

var (
	// ErrCorrupt is returned when a persisted blob exists but cannot be
	// decoded. Distinct from an absent key, which loads as a new install;
	// treating unreadable data as empty would silently lose it.
	ErrCorrupt = errors.New("persisted data is corrupt")
)
