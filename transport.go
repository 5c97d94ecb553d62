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

// BusSpeed selects one of the two clock configurations of the SPI bus.
//
// SpeedSlow is the bring-up clock, safe while the chip's internal multiplier
// is still at x1.0 and for all SCI reads. SpeedFast is the steady-state
// clock, usable for SCI writes and SDI data once Begin has raised the
// multiplier.
type BusSpeed uint8

const (
	// SpeedSlow is the conservative bring-up clock configuration.
	SpeedSlow BusSpeed = iota
	// SpeedFast is the steady-state clock configuration.
	SpeedFast
)

// String returns a human-readable name for the bus speed.
func (s BusSpeed) String() string {
	switch s {
	case SpeedSlow:
		return "slow"
	case SpeedFast:
		return "fast"
	default:
		return "unknown"
	}
}

// Bus is a full-duplex SPI exchange primitive at one of two speeds.
//
// The driver owns chip select framing through the pin interfaces below, so
// implementations must not gate exchanges on a select line of their own; a
// hardware CS that is simply left unconnected is fine. If r is nil the
// exchange is write-only; otherwise len(r) must equal len(w) and r receives
// the bytes clocked back during the same exchange.
type Bus interface {
	// Exchange performs one SPI transaction at the requested speed.
	Exchange(speed BusSpeed, w, r []byte) error

	// Close releases the bus.
	Close() error
}

// OutputPin drives one of the chip select lines (XCS or XDCS).
type OutputPin interface {
	// Set drives the line high (released) or low (asserted).
	Set(high bool) error
}

// InputPin reads the DREQ data-ready line.
type InputPin interface {
	// Read returns true while the line is high (chip has buffer space).
	Read() (bool, error)
}
