// Package repository contains the data access layer, separated from HTTP
// handlers. This file defines sentinel error values shared across the
// individual repositories so that handlers can map failures onto the right
// HTTP status without inspecting driver errors.
package repository

import "errors"

// ErrPetNotFound is returned when a pet id does not resolve to a row.
var ErrPetNotFound = errors.New("pet not found")

// ErrFormNotFound is returned when a form id does not resolve to a row, or
// when an adoption-only operation is attempted on a different kind.
var ErrFormNotFound = errors.New("form not found")

// ErrDonationNotFound is returned when a donation id does not resolve to a row.
var ErrDonationNotFound = errors.New("donation not found")

// ErrAdminNotFound is returned when an admin id does not resolve to a row.
var ErrAdminNotFound = errors.New("admin not found")

// ErrTeamMemberNotFound is returned when a team member id does not resolve
// to a row.
var ErrTeamMemberNotFound = errors.New("team member not found")

// ErrUsernameExists is returned when creating or renaming an admin would
// violate the unique username constraint.
var ErrUsernameExists = errors.New("username already exists")

// ErrLastAdmin is returned when a delete would remove the final remaining
// admin account. Handlers translate this into an HTTP 400 policy error.
var ErrLastAdmin = errors.New("cannot delete the last admin account")
