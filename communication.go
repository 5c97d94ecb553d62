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
	"encoding/binary"
	"log/slog"
)

// Register access protocol. Each SCI transaction is bracketed by command
// mode on/off and trailed by a data-ready wait so the chip has digested the
// command before the next one is issued. Errors abort the transaction and
// surface to the caller once; nothing is retried here.

// readRegister reads a 16-bit SCI register. The read frame clocks the
// response into the last two bytes of a 4-byte full-duplex exchange,
// big-endian. Reads always use the slow clock; the chip's SCI read ceiling
// is below its write ceiling even after the clock boost.
func (d *Device) readRegister(reg uint8) (uint16, error) {
	if err := d.controlModeOn(); err != nil {
		return 0, err
	}
	w := [4]byte{SCIRead, reg, 0, 0}
	var r [4]byte
	if err := d.bus.Exchange(SpeedSlow, w[:], r[:]); err != nil {
		_ = d.controlModeOff()
		d.warn("SCI read exchange failed", slog.Int("reg", int(reg)), slog.Any("err", err))
		return 0, NewBusError("readRegister", err)
	}
	if err := d.awaitDataRequest(); err != nil {
		_ = d.controlModeOff()
		return 0, err
	}
	if err := d.controlModeOff(); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r[2:4]), nil
}

// writeRegister writes a 16-bit SCI register at the requested bus speed.
// Callers use SpeedSlow during bring-up, before the clock multiplier has
// been raised, and SpeedFast afterwards.
func (d *Device) writeRegister(speed BusSpeed, reg uint8, value uint16) error {
	if err := d.controlModeOn(); err != nil {
		return err
	}
	w := [4]byte{SCIWrite, reg, byte(value >> 8), byte(value)}
	if err := d.bus.Exchange(speed, w[:], nil); err != nil {
		_ = d.controlModeOff()
		d.warn("SCI write exchange failed",
			slog.Int("reg", int(reg)),
			slog.String("speed", speed.String()),
			slog.Any("err", err))
		return NewBusError("writeRegister", err)
	}
	if err := d.awaitDataRequest(); err != nil {
		_ = d.controlModeOff()
		return err
	}
	return d.controlModeOff()
}

// wramWrite stores a value in the chip's internal RAM. The RAM window is not
// directly addressable on the SCI bus: the pointer register is loaded first,
// then the data register carries the payload.
func (d *Device) wramWrite(address, data uint16) error {
	if err := d.writeRegister(SpeedFast, RegWRAMAddr, address); err != nil {
		return err
	}
	return d.writeRegister(SpeedFast, RegWRAM, data)
}

// wramRead reads a value from the chip's internal RAM through the same
// pointer/data register pair.
func (d *Device) wramRead(address uint16) (uint16, error) {
	if err := d.writeRegister(SpeedFast, RegWRAMAddr, address); err != nil {
		return 0, err
	}
	return d.readRegister(RegWRAM)
}

// writeData clocks raw SDI bytes out at the fast speed. Callers hold data
// mode and have already seen DREQ high for this chunk.
func (d *Device) writeData(chunk []byte) error {
	if err := d.bus.Exchange(SpeedFast, chunk, nil); err != nil {
		d.warn("SDI write exchange failed", slog.Int("len", len(chunk)), slog.Any("err", err))
		return NewBusError("writeData", err)
	}
	return nil
}

// sdiSendBuffer streams a payload to the data interface in DREQ-paced
// chunks. Data mode is entered once for the whole buffer; every chunk write
// is preceded by a ready wait; the final chunk is truncated to the
// remainder so total bytes written equals len(data) exactly.
func (d *Device) sdiSendBuffer(data []byte, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = d.chunkSize
	}
	if err := d.dataModeOn(); err != nil {
		return err
	}
	for len(data) > 0 {
		if err := d.awaitDataRequest(); err != nil {
			_ = d.dataModeOff()
			return err
		}
		n := chunkSize
		if n > len(data) {
			n = len(data)
		}
		if err := d.writeData(data[:n]); err != nil {
			_ = d.dataModeOff()
			return err
		}
		data = data[n:]
	}
	return d.dataModeOff()
}

// sdiSendFillers drains the decode pipeline by streaming length filler
// bytes. The filler is the chip's own end-fill byte, read once from RAM, so
// the drain produces no audible artifacts.
func (d *Device) sdiSendFillers(length int) error {
	efb, err := d.wramRead(AddrEndFillByte)
	if err != nil {
		return err
	}
	fill := byte(efb)
	pattern := make([]byte, d.chunkSize)
	for i := range pattern {
		pattern[i] = fill
	}

	if err := d.dataModeOn(); err != nil {
		return err
	}
	for length > 0 {
		if err := d.awaitDataRequest(); err != nil {
			_ = d.dataModeOff()
			return err
		}
		n := len(pattern)
		if n > length {
			n = length
		}
		if err := d.writeData(pattern[:n]); err != nil {
			_ = d.dataModeOff()
			return err
		}
		length -= n
	}
	return d.dataModeOff()
}
