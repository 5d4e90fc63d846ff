// Copyright 2024 The fixbv Authors. All rights reserved.

package fixbv

import "github.com/zeebo/errs"

// Error classes reported by this package. Every fallible operation
// documents the classes it can return; test membership with Has:
//
//	if fixbv.ErrOutOfRange.Has(err) { ... }
var (
	// ErrInvalidBounds reports a malformed bounds pair: only one bound
	// given, or min >= max.
	ErrInvalidBounds = errs.Class("invalid bounds")
	// ErrOutOfRange reports a magnitude outside the half-open interval
	// [min, max).
	ErrOutOfRange = errs.Class("out of range")
	// ErrInvalidRange reports a malformed bit position or bit range.
	ErrInvalidRange = errs.Class("invalid range")
	// ErrInvalidBitValue reports a single-bit assignment of anything
	// other than 0 or 1.
	ErrInvalidBitValue = errs.Class("invalid bit value")
	// ErrValueTooLarge reports a slice assignment that does not fit the
	// field width.
	ErrValueTooLarge = errs.Class("value too large")
	// ErrNonIntegerExponent reports an exponent operand that does not
	// resolve to a whole number.
	ErrNonIntegerExponent = errs.Class("non-integer exponent")
	// ErrNonIntegerShift reports a shift operand that does not resolve
	// to a whole number.
	ErrNonIntegerShift = errs.Class("non-integer shift")
	// ErrUnsupportedOperation reports an operation that has no defined
	// result for fixed-point values.
	ErrUnsupportedOperation = errs.Class("unsupported operation")
	// ErrNotIterable reports bit iteration over a value with no width.
	ErrNotIterable = errs.Class("not iterable")
)
