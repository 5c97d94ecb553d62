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
	"fmt"
	"log/slog"
	"time"
)

// Data-ready poll defaults: one poll per millisecond, bounded at 2000
// iterations, so a wedged chip costs roughly two seconds before
// ErrDataTimeout.
const (
	defaultReadyPolls    = 2000
	defaultReadyInterval = 1 * time.Millisecond
)

// Option is a functional option for configuring a Device.
type Option func(*Device) error

// WithLogger attaches a structured logger to the device. The driver logs
// bring-up milestones at info, faults at warn and register traffic detail
// at debug. A nil logger (the default) disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Device) error {
		d.logger = logger
		return nil
	}
}

// WithChunkSize overrides the default SDI write granularity of 32 bytes.
// Larger chunks are only safe when the surrounding firmware knows the
// chip's buffer headroom exceeds the DREQ guarantee.
func WithChunkSize(size int) Option {
	return func(d *Device) error {
		if size <= 0 {
			return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidParameter, size)
		}
		d.chunkSize = size
		return nil
	}
}

// WithReadyPollLimit overrides the bounded data-ready poll count.
func WithReadyPollLimit(polls int) Option {
	return func(d *Device) error {
		if polls <= 0 {
			return fmt.Errorf("%w: poll limit must be positive, got %d", ErrInvalidParameter, polls)
		}
		d.readyPolls = polls
		return nil
	}
}

// WithReadyPollInterval overrides the data-ready poll interval.
func WithReadyPollInterval(interval time.Duration) Option {
	return func(d *Device) error {
		if interval < 0 {
			return fmt.Errorf("%w: poll interval must not be negative, got %v", ErrInvalidParameter, interval)
		}
		d.readyInterval = interval
		return nil
	}
}
