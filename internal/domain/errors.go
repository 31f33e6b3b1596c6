// Package domain holds the bot's data model and the error taxonomy shared by
// the storage and service layers. Services match these values with errors.Is
// and translate them into user-facing retry prompts; anything outside this
// set is treated as a storage failure.
package domain

import "errors"

var (
	// ErrUserNotFound indicates that the referenced telegram id has no user row.
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound indicates that the referenced token has no
	// transaction row.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidDate is returned when a transaction date precedes the owner's
	// registration date.
	ErrInvalidDate = errors.New("transaction date before user registration")

	// ErrMalformedInput is returned when a price or date string does not parse.
	ErrMalformedInput = errors.New("malformed input")
)
