// Package repository defines sentinel errors shared by every repository
// implementation. Services and handlers match on these with errors.Is to
// map storage outcomes onto HTTP responses without inspecting driver
// errors themselves.
package repository

import "errors"

// ErrNotFound is returned when an entity id does not resolve.
// Handlers translate it into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert would violate a uniqueness
// rule, such as a taken username or email or a favorite voice name
// reused by the same user. Handlers translate it into an HTTP 400.
var ErrDuplicate = errors.New("duplicate")

// ErrInsufficientBalance is returned when a debit exceeds the user's
// current token balance. The debit performs no mutation in that case.
var ErrInsufficientBalance = errors.New("insufficient token balance")

// ErrForbidden is returned when the caller attempts an operation on a
// resource whose ownership chain resolves to a different user, or whose
// chain is broken. Handlers translate it into an HTTP 403.
var ErrForbidden = errors.New("forbidden")
