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

// Package tuner drives a TEA5767 FM tuner over I2C. In the radio appliance
// it provides the FM side of the house while the VS1053b decodes web
// streams; both feed the same amplifier.
package tuner

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Address is the TEA5767's fixed I2C address.
const Address uint16 = 0x60

// The FM band the tuner accepts, in MHz. The chip supports the Japanese
// band down to 76 MHz as well; the wider bound keeps that usable.
const (
	MinFrequencyMHz = 76.0
	MaxFrequencyMHz = 108.0
)

// ErrFrequencyOutOfRange is returned for frequencies outside the FM band.
var ErrFrequencyOutOfRange = errors.New("frequency out of FM band")

// Control frame bits, per the TEA5767 datasheet.
const (
	bitMute     = 0x80 // byte 1
	bitHighSide = 0x10 // byte 3, high-side injection
	bitXTAL     = 0x10 // byte 4, 32.768 kHz crystal
	bitStandby  = 0x40 // byte 4
)

// Status is a snapshot of the tuner's readable state.
type Status struct {
	// Ready reports that the last tune completed.
	Ready bool
	// FrequencyMHz is the tuned frequency read back from the PLL.
	FrequencyMHz float64
	// Stereo reports stereo reception.
	Stereo bool
	// SignalLevel is the received signal strength, 0..15.
	SignalLevel uint8
}

// Tuner drives one TEA5767.
//
// Thread Safety: Tuner is NOT thread-safe.
type Tuner struct {
	dev  i2c.Dev
	bus  i2c.BusCloser
	mute bool
	freq float64
}

// Open initializes the host and claims the named I2C bus ("" selects the
// first available one).
func Open(busName string) (*Tuner, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %q: %w", busName, err)
	}
	t := New(bus)
	t.bus = bus
	return t, nil
}

// New wraps an already-open I2C bus. Close is a no-op on the bus when the
// tuner was built this way.
func New(bus i2c.Bus) *Tuner {
	return &Tuner{dev: i2c.Dev{Addr: Address, Bus: bus}}
}

// pllWord computes the 14-bit PLL divider for a frequency in MHz, with
// high-side injection: N = 4 * (f + 225 kHz) / 32768 Hz, rounded.
func pllWord(mhz float64) uint16 {
	return uint16((4*(mhz*1e6+225000))/32768 + 0.5)
}

// pllFrequency is the inverse of pllWord, for status readback.
func pllFrequency(pll uint16) float64 {
	return (float64(pll)*32768/4 - 225000) / 1e6
}

func (t *Tuner) writeControl(freq float64, mute, standby bool) error {
	pll := pllWord(freq)
	frame := [5]byte{
		byte(pll >> 8 & 0x3F),
		byte(pll),
		bitHighSide,
		bitXTAL,
		0x00,
	}
	if mute {
		frame[0] |= bitMute
	}
	if standby {
		frame[3] |= bitStandby
	}
	if err := t.dev.Tx(frame[:], nil); err != nil {
		return fmt.Errorf("tuner control write failed: %w", err)
	}
	return nil
}

// SetFrequency tunes to a frequency in MHz.
func (t *Tuner) SetFrequency(mhz float64) error {
	if mhz < MinFrequencyMHz || mhz > MaxFrequencyMHz {
		return fmt.Errorf("%w: %.1f MHz", ErrFrequencyOutOfRange, mhz)
	}
	if err := t.writeControl(mhz, t.mute, false); err != nil {
		return err
	}
	t.freq = mhz
	return nil
}

// Frequency returns the last frequency set, 0 before the first tune.
func (t *Tuner) Frequency() float64 {
	return t.freq
}

// SetMute mutes or unmutes the tuner output, retuning the current
// frequency with the mute bit updated.
func (t *Tuner) SetMute(mute bool) error {
	freq := t.freq
	if freq == 0 {
		freq = MinFrequencyMHz
	}
	if err := t.writeControl(freq, mute, false); err != nil {
		return err
	}
	t.mute = mute
	return nil
}

// Standby puts the tuner in its low-power state, muted.
func (t *Tuner) Standby() error {
	freq := t.freq
	if freq == 0 {
		freq = MinFrequencyMHz
	}
	if err := t.writeControl(freq, true, true); err != nil {
		return err
	}
	t.mute = true
	return nil
}

// ReadStatus reads the tuner's 5-byte status frame.
func (t *Tuner) ReadStatus() (Status, error) {
	var r [5]byte
	if err := t.dev.Tx(nil, r[:]); err != nil {
		return Status{}, fmt.Errorf("tuner status read failed: %w", err)
	}
	pll := uint16(r[0]&0x3F)<<8 | uint16(r[1])
	return Status{
		Ready:        r[0]&0x80 != 0,
		FrequencyMHz: pllFrequency(pll),
		Stereo:       r[2]&0x80 != 0,
		SignalLevel:  r[3] >> 4,
	}, nil
}

// Close releases the I2C bus if the tuner owns it.
func (t *Tuner) Close() error {
	if t.bus == nil {
		return nil
	}
	if err := t.bus.Close(); err != nil {
		return fmt.Errorf("failed to close I2C bus: %w", err)
	}
	return nil
}
