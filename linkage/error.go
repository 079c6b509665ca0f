// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linkage

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrKeySchedule indicates the AES key schedule could not be created
	// for a linkage seed.
	ErrKeySchedule = ErrorKind("ErrKeySchedule")

	// ErrInvalidEncoding indicates a malformed linkage value, identifier,
	// or seed encoding.
	ErrInvalidEncoding = ErrorKind("ErrInvalidEncoding")

	// ErrTooManyValues indicates a revocation entry would expand into more
	// linkage values than permitted.
	ErrTooManyValues = ErrorKind("ErrTooManyValues")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to linkage values.  It has full support
// for errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
