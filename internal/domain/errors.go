package domain

import "errors"

// ErrValidation is returned when input fails a business rule (a missing
// wizard field, an unknown role, a custom recurrence with no days).
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned by operations that require a session when
// none is present. These fail fast — no network call is made.
// Wrapped messages read naturally: "you must be logged in to create a trip".
var ErrUnauthenticated = errors.New("you must be logged in")

// ErrNotFound is returned when the requested resource does not exist,
// e.g. toggling the matched flag of an unknown trip id.
var ErrNotFound = errors.New("not found")
