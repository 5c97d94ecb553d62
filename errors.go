// go-vs1053
// Copyright (c) 2025 The Ondes Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-vs1053.
//
// go-vs1053 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-vs1053 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-vs1053; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package vs1053

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by the driver wraps one of these so
// callers can classify failures with errors.Is.
var (
	// ErrPinFault means a GPIO line could not be driven or read. The
	// current call is aborted; the device stays usable for later calls.
	ErrPinFault = errors.New("gpio line fault")
	// ErrBusFault means an SPI exchange failed.
	ErrBusFault = errors.New("spi bus fault")
	// ErrDataTimeout means DREQ never asserted within the poll budget.
	ErrDataTimeout = errors.New("data-ready timeout")
	// ErrSelfTestFailed means the register link self-test observed bad
	// readbacks. Advisory: bring-up continues in degraded form.
	ErrSelfTestFailed = errors.New("self-test failed")
	// ErrChipAbsent means the chip does not appear to be wired up at all
	// (DREQ stuck low, or status register reading 0x0000/0xFFFF).
	ErrChipAbsent = errors.New("decoder chip absent")
	// ErrInvalidParameter means a caller-supplied argument was rejected.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ErrorType classifies errors for retry decisions.
type ErrorType int

const (
	// ErrorTypePermanent indicates a persistent failure; retrying will not help.
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient indicates a failure that may clear on retry.
	ErrorTypeTransient
	// ErrorTypeTimeout indicates a bounded wait that expired.
	ErrorTypeTimeout
)

// String returns a human-readable name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeTransient:
		return "transient"
	case ErrorTypeTimeout:
		return "timeout"
	default:
		return "permanent"
	}
}

// TransportError carries context about a failed hardware operation: the
// driver operation that failed, the line or bus it failed on, and a retry
// classification.
type TransportError struct {
	// Err is the underlying cause, wrapping one of the sentinel errors.
	Err error
	// Op is the driver operation, e.g. "writeRegister".
	Op string
	// Port names the line or bus involved, e.g. "spi", "xcs", "dreq".
	Port string
	// Type classifies the failure.
	Type ErrorType
	// Retryable reports whether retrying the operation can succeed.
	Retryable bool
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// wrapCause attaches a backend cause to a sentinel, keeping both reachable
// through errors.Is.
func wrapCause(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// NewTransportError creates a TransportError with explicit classification.
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType != ErrorTypePermanent,
	}
}

// NewBusError wraps an SPI exchange failure. Bus faults are transient: a
// glitched exchange may well succeed when reissued.
func NewBusError(op string, cause error) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      "spi",
		Err:       wrapCause(ErrBusFault, cause),
		Type:      ErrorTypeTransient,
		Retryable: true,
	}
}

// NewPinError wraps a GPIO drive or read failure on the named line. Pin
// faults are permanent: a line that cannot be driven is a wiring problem.
func NewPinError(op, line string, cause error) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      line,
		Err:       wrapCause(ErrPinFault, cause),
		Type:      ErrorTypePermanent,
		Retryable: false,
	}
}

// NewTimeoutError wraps an exhausted data-ready wait on the named line.
func NewTimeoutError(op, line string) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      line,
		Err:       ErrDataTimeout,
		Type:      ErrorTypeTimeout,
		Retryable: true,
	}
}

// NewChipAbsentError reports that the chip looks disconnected.
func NewChipAbsentError(op string) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      "dreq",
		Err:       ErrChipAbsent,
		Type:      ErrorTypePermanent,
		Retryable: false,
	}
}

// IsRetryable reports whether the error is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}
	switch {
	case errors.Is(err, ErrBusFault), errors.Is(err, ErrDataTimeout):
		return true
	default:
		return false
	}
}

// GetErrorType classifies an error for retry/backoff decisions.
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}
	switch {
	case errors.Is(err, ErrDataTimeout):
		return ErrorTypeTimeout
	case errors.Is(err, ErrBusFault):
		return ErrorTypeTransient
	default:
		return ErrorTypePermanent
	}
}
