// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"errors"

	"github.com/eggandi/innowireless-dev-sub001/ec256"
)

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidEncoding indicates malformed point, scalar, or signature
	// octets.
	ErrInvalidEncoding = ErrorKind("ErrInvalidEncoding")

	// ErrArithmetic indicates an underlying scalar or point operation failed
	// or produced a value that is not usable, such as a zero private key or
	// the point at infinity.
	ErrArithmetic = ErrorKind("ErrArithmetic")

	// ErrKeyPairMismatch indicates a reconstructed public key does not
	// correspond to the reconstructed private key.
	ErrKeyPairMismatch = ErrorKind("ErrKeyPairMismatch")

	// ErrSignatureInvalid indicates verification ran to completion and
	// rejected the signature.
	ErrSignatureInvalid = ErrorKind("ErrSignatureInvalid")

	// ErrVerificationFailed indicates verification could not be performed
	// at all.  It is distinct from a rejected signature.
	ErrVerificationFailed = ErrorKind("ErrVerificationFailed")

	// ErrOperational indicates a lifecycle failure such as running the
	// signing pool refill loop more than once.
	ErrOperational = ErrorKind("ErrOperational")

	// ErrPoolClosed indicates the signing pool was flushed and can no longer
	// hand out parameters.
	ErrPoolClosed = ErrorKind("ErrPoolClosed")

	// ErrTBSRegion indicates the certificate locator returned a to-be-signed
	// region that does not lie within the certificate.
	ErrTBSRegion = ErrorKind("ErrTBSRegion")

	// ErrRandomSource indicates the random source failed or did not produce
	// a usable nonce.
	ErrRandomSource = ErrorKind("ErrRandomSource")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to V2X credential processing.  It has
// full support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string

	// RawErr is the lower level error, if any, that caused the failure.
	RawErr error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.RawErr != nil {
		return e.Description + ": " + e.RawErr.Error()
	}
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

// curveError converts an error returned by the curve backend into an Error.
// Encoding problems keep their identity as ErrInvalidEncoding while all other
// failures are reported as ErrArithmetic.
func curveError(err error, desc string) Error {
	kind := ErrArithmetic
	if errors.Is(err, ec256.ErrInvalidEncoding) ||
		errors.Is(err, ec256.ErrNotOnCurve) ||
		errors.Is(err, ec256.ErrScalarOutOfRange) {

		kind = ErrInvalidEncoding
	}
	return Error{Err: kind, Description: desc, RawErr: err}
}
