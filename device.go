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
	"log/slog"
	"time"
)

// Fixed bring-up timings from the chip datasheet. These are hardware
// settle times, not tunables.
const (
	resetSettleDelay     = 100 * time.Millisecond
	resetHoldDelay       = 500 * time.Millisecond
	resetReleaseDelay    = 500 * time.Millisecond
	softResetSettleDelay = 10 * time.Millisecond
	modeSwitchDelay      = 100 * time.Millisecond
	stopPollDelay        = 10 * time.Millisecond
)

// stopPollLimit bounds the cancel-bit polling loop in StopSong.
const stopPollLimit = 200

// fillerDrainLen is the filler burst that flushes the chip's whole decode
// buffer (2048 bytes plus one trailing unit).
const fillerDrainLen = 2052

// Device drives one VS1053b decoder. It exclusively owns one SPI bus handle
// usable at two clock configurations and three GPIO lines (XCS, XDCS, DREQ).
//
// Thread Safety: Device is NOT thread-safe. The command/data mode invariant
// spans entire register and streaming calls, so concurrent callers must
// serialize externally with a mutex held across the whole call, never merely
// across sub-steps.
type Device struct {
	bus  Bus
	xcs  OutputPin
	xdcs OutputPin
	dreq InputPin

	logger        *slog.Logger
	chunkSize     int
	readyPolls    int
	readyInterval time.Duration

	volume  uint8
	balance int8
}

// New creates a Device over the given bus and pins. No I/O is performed;
// call Begin to bring the chip up.
func New(bus Bus, xcs, xdcs OutputPin, dreq InputPin, opts ...Option) (*Device, error) {
	if bus == nil || xcs == nil || xdcs == nil || dreq == nil {
		return nil, fmt.Errorf("%w: bus and all three pins are required", ErrInvalidParameter)
	}
	d := &Device{
		bus:           bus,
		xcs:           xcs,
		xdcs:          xdcs,
		dreq:          dreq,
		chunkSize:     DefaultChunkSize,
		readyPolls:    defaultReadyPolls,
		readyInterval: defaultReadyInterval,
		volume:        50,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Begin runs the bring-up sequence: reset-equivalent signaling on the
// select lines, a slow-speed self-test, and on success the clock boost and
// a best-effort fast-speed self-test. A failed slow self-test is logged and
// leaves the chip at the bring-up clock; it is not fatal.
func (d *Device) Begin() error {
	if err := d.setDCSPin(true); err != nil {
		return err
	}
	if err := d.setCSPin(true); err != nil {
		return err
	}
	time.Sleep(resetSettleDelay)

	d.info("resetting decoder")
	if err := d.setDCSPin(false); err != nil {
		return err
	}
	if err := d.setCSPin(false); err != nil {
		return err
	}
	time.Sleep(resetHoldDelay)
	if err := d.setDCSPin(true); err != nil {
		return err
	}
	if err := d.setCSPin(true); err != nil {
		return err
	}
	time.Sleep(resetReleaseDelay)

	if err := d.SelfTest(SlowProbe); err != nil {
		d.warn("slow self-test failed, staying at bring-up clock", slog.Any("err", err))
		return nil
	}

	if err := d.writeRegister(SpeedSlow, RegAudioData, sampleRate44k1Stereo); err != nil {
		return err
	}
	if err := d.writeRegister(SpeedSlow, RegClockF, clockMultiplier3x); err != nil {
		return err
	}
	// Clock multiplier is up; the fast SPI speed is safe from here on.
	if err := d.writeRegister(SpeedFast, RegMode, ModeSDINew|ModeLine1); err != nil {
		return err
	}

	if err := d.SelfTest(FastProbe); err != nil {
		d.warn("fast self-test failed", slog.Any("err", err))
	}
	time.Sleep(softResetSettleDelay)
	if err := d.awaitDataRequest(); err != nil {
		return err
	}

	efb, err := d.wramRead(AddrEndFillByte)
	if err != nil {
		return err
	}
	d.info("decoder ready", slog.String("endFillByte", fmt.Sprintf("%#04x", efb&0xFF)))
	d.DumpRegisters()
	time.Sleep(resetSettleDelay)
	return nil
}

// SoftReset resets the decoder core through the mode register and waits for
// it to come back.
func (d *Device) SoftReset() error {
	d.info("performing soft reset")
	if err := d.writeRegister(SpeedFast, RegMode, ModeSDINew|ModeReset); err != nil {
		return err
	}
	time.Sleep(softResetSettleDelay)
	return d.awaitDataRequest()
}

// SwitchToMP3Mode forces boards that power up in real-time MIDI mode into
// MP3 decoding by reprogramming the chip's own GPIO registers and soft
// resetting. Harmless on boards that do not need it, so calling it
// unconditionally after Begin is fine.
func (d *Device) SwitchToMP3Mode() error {
	if err := d.wramWrite(AddrGPIODirection, 3); err != nil {
		return err
	}
	if err := d.wramWrite(AddrGPIOOutput, 0); err != nil {
		return err
	}
	time.Sleep(modeSwitchDelay)
	d.info("switched to mp3 mode")
	return d.SoftReset()
}

// SetVolume sets the loudness of both channels, 0..100 with 100 the
// loudest. Values above 100 are clamped. The current balance setting skews
// the two channels before the write.
func (d *Device) SetVolume(vol uint8) error {
	if vol > 100 {
		vol = 100
	}
	d.volume = vol
	return d.writeRegister(SpeedFast, RegVolume, volumeRegisterValue(vol, d.balance))
}

// SetBalance sets the channel balance, -100 (full right boost) to 100
// (full left cut), clamping out-of-range values. The new balance takes
// effect on the next SetVolume call.
func (d *Device) SetBalance(balance int) {
	d.balance = clampBalance(balance)
}

// GetVolume returns the current volume setting.
func (d *Device) GetVolume() uint8 {
	return d.volume
}

// GetBalance returns the current balance setting.
func (d *Device) GetBalance() int8 {
	return d.balance
}

// SetTone programs the bass/treble register from four control nibbles:
// treble amplitude, treble cutoff, bass amplitude, bass cutoff, in that
// order per the datasheet.
func (d *Device) SetTone(nibbles [4]uint8) error {
	var value uint16
	for _, n := range nibbles {
		value = value<<4 | uint16(n&0x0F)
	}
	return d.writeRegister(SpeedFast, RegBass, value)
}

// PlayChunk streams a piece of compressed audio to the data interface in
// DREQ-paced chunks. chunkSize 0 or negative selects the configured
// default (32 bytes, the hardware buffer granularity).
func (d *Device) PlayChunk(data []byte, chunkSize int) error {
	return d.sdiSendBuffer(data, chunkSize)
}

// StartSong primes the decode pipeline with a short filler burst before a
// new stream.
func (d *Device) StartSong() error {
	return d.sdiSendFillers(10)
}

// StopSong drains the decode pipeline and cancels the current stream: a
// large filler burst, the cancel bit, then small filler bursts while
// polling until the chip clears the bit. If the bit never clears within
// the poll bound the stop is logged as forced; either way the call is not
// fatal and the device stays usable.
func (d *Device) StopSong() error {
	if err := d.sdiSendFillers(fillerDrainLen); err != nil {
		return err
	}
	time.Sleep(stopPollDelay)
	if err := d.writeRegister(SpeedFast, RegMode, ModeSDINew|ModeCancel); err != nil {
		return err
	}
	for i := 0; i <= stopPollLimit; i++ {
		if err := d.sdiSendFillers(d.chunkSize); err != nil {
			return err
		}
		mode, err := d.readRegister(RegMode)
		if err != nil {
			return err
		}
		if mode&ModeCancel == 0 {
			if err := d.sdiSendFillers(fillerDrainLen); err != nil {
				return err
			}
			d.info("song stopped cleanly", slog.Int("polls", i))
			return nil
		}
		time.Sleep(stopPollDelay)
	}
	d.warn("cancel bit never cleared, song stopped forcibly")
	return nil
}

// IsChipConnected reports whether the chip looks wired up: a status
// register stuck at 0x0000 or 0xFFFF means a dead bus or a missing chip.
// Read failures also report false.
func (d *Device) IsChipConnected() bool {
	status, err := d.readRegister(RegStatus)
	if err != nil {
		return false
	}
	return status != 0x0000 && status != 0xFFFF
}

// GetChipVersion returns the chip family version from the status register
// (bits 4..7); 4 for the VS1053 and VS8053.
func (d *Device) GetChipVersion() (uint16, error) {
	status, err := d.readRegister(RegStatus)
	if err != nil {
		return 0, err
	}
	return (status & 0x00F0) >> 4, nil
}

// DumpRegisters logs the contents of all SCI registers at debug level.
// Registers that fail to read are skipped.
func (d *Device) DumpRegisters() {
	for reg := uint8(0); reg <= NumRegisters; reg++ {
		value, err := d.readRegister(reg)
		if err != nil {
			d.debug("register read failed", slog.Int("reg", int(reg)), slog.Any("err", err))
			continue
		}
		d.debug("register",
			slog.String("reg", fmt.Sprintf("%#02x", reg)),
			slog.String("value", fmt.Sprintf("%#04x", value)))
	}
}

// IsChipAbsentError reports whether an error stems from the chip-absent
// heuristic rather than a transient fault.
func IsChipAbsentError(err error) bool {
	return errors.Is(err, ErrChipAbsent)
}

// Close releases the underlying bus. The GPIO lines are left in their
// current state; both selects are high after any completed call.
func (d *Device) Close() error {
	if err := d.bus.Close(); err != nil {
		return fmt.Errorf("failed to close bus: %w", err)
	}
	return nil
}
