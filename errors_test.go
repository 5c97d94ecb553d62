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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "bus error is retryable", err: NewBusError("readRegister", errors.New("io glitch")), want: true},
		{name: "timeout error is retryable", err: NewTimeoutError("awaitDataRequest", "dreq"), want: true},
		{name: "pin error is not retryable", err: NewPinError("setCSPin", "xcs", errors.New("gpio busy")), want: false},
		{name: "chip absent is not retryable", err: NewChipAbsentError("SelfTest"), want: false},
		{name: "bare bus fault sentinel", err: ErrBusFault, want: true},
		{name: "bare data timeout sentinel", err: ErrDataTimeout, want: true},
		{name: "wrapped bus fault", err: fmt.Errorf("begin: %w", ErrBusFault), want: true},
		{name: "self-test failure is not retryable", err: ErrSelfTestFailed, want: false},
		{name: "unrelated error", err: errors.New("something else"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestGetErrorType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{name: "nil error", err: nil, want: ErrorTypePermanent},
		{name: "bus error", err: NewBusError("writeData", errors.New("short write")), want: ErrorTypeTransient},
		{name: "timeout error", err: NewTimeoutError("awaitDataRequest", "dreq"), want: ErrorTypeTimeout},
		{name: "pin error", err: NewPinError("setDCSPin", "xdcs", errors.New("gpio busy")), want: ErrorTypePermanent},
		{name: "chip absent", err: NewChipAbsentError("SelfTest"), want: ErrorTypePermanent},
		{name: "wrapped timeout sentinel", err: fmt.Errorf("stop: %w", ErrDataTimeout), want: ErrorTypeTimeout},
		{name: "wrapped bus sentinel", err: fmt.Errorf("stop: %w", ErrBusFault), want: ErrorTypeTransient},
		{name: "unrelated error", err: errors.New("boom"), want: ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetErrorType(tt.err))
		})
	}
}

func TestTransportErrorUnwrapsSentinels(t *testing.T) {
	t.Parallel()

	cause := errors.New("EIO")

	busErr := NewBusError("readRegister", cause)
	require.ErrorIs(t, busErr, ErrBusFault)
	require.ErrorIs(t, busErr, cause)

	pinErr := NewPinError("setCSPin", "xcs", cause)
	require.ErrorIs(t, pinErr, ErrPinFault)
	require.ErrorIs(t, pinErr, cause)

	timeoutErr := NewTimeoutError("awaitDataRequest", "dreq")
	require.ErrorIs(t, timeoutErr, ErrDataTimeout)

	absentErr := NewChipAbsentError("SelfTest")
	require.ErrorIs(t, absentErr, ErrChipAbsent)
	assert.True(t, IsChipAbsentError(absentErr))
	assert.False(t, IsChipAbsentError(busErr))
}

func TestTransportErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewPinError("setCSPin", "xcs", errors.New("gpio busy"))
	assert.Contains(t, err.Error(), "setCSPin")
	assert.Contains(t, err.Error(), "xcs")
	assert.Contains(t, err.Error(), "gpio busy")

	bare := NewTransportError("Begin", "", ErrSelfTestFailed, ErrorTypePermanent)
	assert.Equal(t, "Begin: self-test failed", bare.Error())
}

func TestNewTransportErrorRetryableFollowsType(t *testing.T) {
	t.Parallel()

	assert.False(t, NewTransportError("op", "spi", ErrBusFault, ErrorTypePermanent).Retryable)
	assert.True(t, NewTransportError("op", "spi", ErrBusFault, ErrorTypeTransient).Retryable)
	assert.True(t, NewTransportError("op", "dreq", ErrDataTimeout, ErrorTypeTimeout).Retryable)
}

func TestErrorTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "permanent", ErrorTypePermanent.String())
	assert.Equal(t, "transient", ErrorTypeTransient.String())
	assert.Equal(t, "timeout", ErrorTypeTimeout.String())
}
