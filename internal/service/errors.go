package service

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")

	// ErrKeyNotAllowed carries the exact message surfaced to users when a save
	// targets a key outside the configured allow-list.
	ErrKeyNotAllowed = errors.New("URL key is not in allowed URL keys")

	// ErrStoreUnreachable reports a failed test delivery to a store endpoint.
	ErrStoreUnreachable = errors.New("store unreachable")
)
