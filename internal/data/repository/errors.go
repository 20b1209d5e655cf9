// Package repository defines sentinel error values shared across the data
// layer and the services above it. Handlers translate them into HTTP status
// codes with errors.Is, so every rejected operation stays distinguishable
// from a generic failure.
package repository

import "errors"

// ErrNotFound is returned when a referenced row does not exist, or exists
// but does not belong to the requesting user.
var ErrNotFound = errors.New("not found")

// ErrNoAvailability is returned when a lot has no spot left to allocate.
var ErrNoAvailability = errors.New("no available spots")

// ErrInvalidState is returned when a booking transition is attempted from a
// state that forbids it (e.g. completing a booking that never started).
var ErrInvalidState = errors.New("invalid booking state")

// ErrSpotOccupied is returned when a delete is attempted on a spot that is
// not available.
var ErrSpotOccupied = errors.New("spot occupied")

// ErrConflict is returned when a concurrent update race is lost.
var ErrConflict = errors.New("conflict")

// ErrAlreadyExists is returned on uniqueness violations (duplicate email).
var ErrAlreadyExists = errors.New("already exists")
