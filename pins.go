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
	"log/slog"
	"time"
)

// The pin gate. The chip is in command mode while XCS is low, in data mode
// while XDCS is low, and idle while both are high. Both selects must never
// be asserted for write traffic at the same time, and every select is paired
// with a deselect on every exit path, error paths included.

func (d *Device) setCSPin(high bool) error {
	if err := d.xcs.Set(high); err != nil {
		d.warn("driving XCS failed", slog.Any("err", err))
		return NewPinError("setCSPin", "xcs", err)
	}
	return nil
}

func (d *Device) setDCSPin(high bool) error {
	if err := d.xdcs.Set(high); err != nil {
		d.warn("driving XDCS failed", slog.Any("err", err))
		return NewPinError("setDCSPin", "xdcs", err)
	}
	return nil
}

// controlModeOn releases the data select and asserts the command select.
func (d *Device) controlModeOn() error {
	if err := d.setDCSPin(true); err != nil {
		return err
	}
	return d.setCSPin(false)
}

// controlModeOff releases the command select.
func (d *Device) controlModeOff() error {
	return d.setCSPin(true)
}

// dataModeOn releases the command select and asserts the data select.
func (d *Device) dataModeOn() error {
	if err := d.setCSPin(true); err != nil {
		return err
	}
	return d.setDCSPin(false)
}

// dataModeOff releases the data select.
func (d *Device) dataModeOff() error {
	return d.setDCSPin(true)
}

// awaitDataRequest blocks until DREQ reads high, polling once per configured
// interval up to the configured poll budget (defaults: 1 ms, 2000 polls, so
// roughly two seconds worst case). This wait is the sole backpressure
// mechanism: it runs before every streamed chunk and after every register
// transaction so the chip's input buffer is never overrun.
func (d *Device) awaitDataRequest() error {
	for i := 0; i < d.readyPolls; i++ {
		high, err := d.dreq.Read()
		if err != nil {
			return NewPinError("awaitDataRequest", "dreq", err)
		}
		if high {
			return nil
		}
		time.Sleep(d.readyInterval)
	}
	return NewTimeoutError("awaitDataRequest", "dreq")
}
