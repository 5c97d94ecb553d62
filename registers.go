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

// SCI opcodes. Every command-mode frame starts with one of these.
const (
	// SCIRead reads a 16-bit register.
	SCIRead byte = 0x03
	// SCIWrite writes a 16-bit register.
	SCIWrite byte = 0x02
)

// SCI registers.
const (
	// RegMode is the mode control register.
	RegMode uint8 = 0x00
	// RegStatus is the chip status register; bits 4..7 carry the chip version.
	RegStatus uint8 = 0x01
	// RegBass is the built-in bass/treble control register.
	RegBass uint8 = 0x02
	// RegClockF holds the clock frequency and multiplier settings.
	RegClockF uint8 = 0x03
	// RegDecodeTime is the decode time in full seconds.
	RegDecodeTime uint8 = 0x04
	// RegAudioData holds miscellaneous audio data (sample rate, channels).
	RegAudioData uint8 = 0x05
	// RegWRAM is the data window into the chip's internal RAM.
	RegWRAM uint8 = 0x06
	// RegWRAMAddr is the address pointer for RegWRAM accesses.
	RegWRAMAddr uint8 = 0x07
	// RegHDAT0 is stream header data 0.
	RegHDAT0 uint8 = 0x08
	// RegHDAT1 is stream header data 1.
	RegHDAT1 uint8 = 0x09
	// RegAIAddr is the application code start address.
	RegAIAddr uint8 = 0x0A
	// RegVolume is the per-channel volume register (left in the high byte,
	// right in the low byte, 0x00 loudest .. 0xFE quietest).
	RegVolume uint8 = 0x0B

	// NumRegisters is the highest SCI register address.
	NumRegisters uint8 = 0x0F
)

// RegMode bits. Combined with a plain OR and written in one piece; the bit
// positions are fixed by the chip.
const (
	// ModeReset triggers a soft reset (bit 2).
	ModeReset uint16 = 1 << 2
	// ModeCancel cancels decoding of the current stream (bit 3). The chip
	// clears it once the cancel has taken effect.
	ModeCancel uint16 = 1 << 3
	// ModeTests allows SDI test sequences (bit 5).
	ModeTests uint16 = 1 << 5
	// ModeStream enables stream mode (bit 6).
	ModeStream uint16 = 1 << 6
	// ModeSDINew selects VS1002 native SPI mode (bit 11); always kept on.
	ModeSDINew uint16 = 1 << 11
	// ModeLine1 selects the LINE1 input over MIC (bit 14).
	ModeLine1 uint16 = 1 << 14
)

// Internal RAM addresses reached through the RegWRAMAddr/RegWRAM window.
const (
	// AddrGPIODirection is the chip's own GPIO direction register.
	AddrGPIODirection uint16 = 0xC017
	// AddrGPIOOutput is the chip's own GPIO output data register.
	AddrGPIOOutput uint16 = 0xC019
	// AddrEndFillByte holds the byte value to pad the decode pipeline with
	// when draining before a stop.
	AddrEndFillByte uint16 = 0x1E06
)

// Chip versions as reported in RegStatus bits 4..7.
const (
	VersionVS1001 uint16 = 0
	VersionVS1011 uint16 = 1
	VersionVS1002 uint16 = 2
	VersionVS1003 uint16 = 3
	VersionVS1053 uint16 = 4
	VersionVS1033 uint16 = 5
	VersionVS1063 uint16 = 6
	VersionVS1103 uint16 = 7
)

// DefaultChunkSize is the SDI write granularity. The chip guarantees room
// for at least 32 bytes whenever DREQ is high.
const DefaultChunkSize = 32

// clockMultiplier3x raises the internal clock to XTALI x3.0 (SC_MULT=6 in
// RegClockF bits 13..15), after which the fast SPI clock is safe.
const clockMultiplier3x uint16 = 6 << 12

// sampleRate44k1Stereo preloads RegAudioData with 44.1 kHz stereo; the odd
// value (rate|1) flags stereo on this chip family.
const sampleRate44k1Stereo uint16 = 44101
