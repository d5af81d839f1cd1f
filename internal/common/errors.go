// Package common defines shared sentinel errors used across passmgr
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Startup errors.
	ErrEmptyPassword = errors.New("master password is empty")

	// Crypto-layer errors. ErrAuthenticationFailed deliberately covers both
	// a wrong master password and a tampered or truncated ciphertext; the
	// two cases must stay indistinguishable to the caller.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Container errors. A malformed container is detectable before any
	// cryptographic check and is reported separately from authentication.
	ErrMalformedContainer = errors.New("malformed container")

	// ErrNoStore signals that no container file exists yet. It is an
	// outcome, not a failure: the caller creates a fresh empty store.
	ErrNoStore = errors.New("no existing store")

	// Store-level errors.
	ErrEntryNotFound      = errors.New("entry not found")
	ErrEntryAlreadyExists = errors.New("entry already exists")

	// ErrPersistence wraps disk write failures. A mutation that hits it is
	// applied in memory but not durably saved.
	ErrPersistence = errors.New("persistence failure")
)
