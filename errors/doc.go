// Package errors provides standardized error handling patterns for ringbuf packages.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (a violated precondition, stop processing).
//
// The ring package reports its preconditions by panicking with a Fatal or
// Invalid classified error. Packages that accept caller configuration, such as
// history and config, return the same classified errors instead of panicking.
//
// # Quick Start
//
// Wrap errors with context for debugging:
//
//	if capacity <= 0 {
//	    return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "Tracker", "New",
//	        "capacity validation")
//	}
//
// Check classification of a recovered panic:
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        if err, ok := r.(error); ok && errors.IsFatal(err) {
//	            // caller misused the ring
//	        }
//	    }
//	}()
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: <underlying error>"
//
// The underlying sentinel stays reachable through errors.Is:
//
//	err := errors.WrapFatal(errors.ErrZeroLength, "Buffer", "New", "allocate storage")
//	stderrors.Is(err, errors.ErrZeroLength) // true
package errors
