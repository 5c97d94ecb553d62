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

// Package chiptest provides a virtual VS1053b for integration tests: a Bus
// implementation with register, RAM and stream semantics faithful enough to
// exercise the full driver bring-up and playback paths without hardware.
package chiptest

import (
	"encoding/binary"
	"fmt"
	"sync"

	vs1053 "github.com/ondes-project/go-vs1053"
)

// DefaultCancelFillBudget is how many filler bytes the virtual chip wants to
// see after a cancel request before it clears the cancel bit, mimicking a
// decoder flushing its pipeline.
const DefaultCancelFillBudget = 64

// VirtualChip emulates a VS1053b behind the Bus and pin interfaces. The
// zero value is not usable; use New.
//
// Fault-injection knobs are plain fields, set before (or between) driver
// calls:
//
//   - NotReady pins DREQ low, as if the chip were missing or wedged.
//   - BadWrites corrupts volume register writes, which is what a marginal
//     bus looks like to the register link self-test.
//   - FailExchange makes every bus exchange return that error.
type VirtualChip struct {
	// NotReady forces DREQ to read low.
	NotReady bool
	// BadWrites corrupts writes to the volume register.
	BadWrites bool
	// FailExchange, when set, fails every Exchange call with this error.
	FailExchange error
	// CancelFillBudget overrides DefaultCancelFillBudget when positive.
	CancelFillBudget int

	mu         sync.Mutex
	regs       [16]uint16
	wram       map[uint16]uint16
	wramAddr   uint16
	xcsHigh    bool
	xdcsHigh   bool
	stream     []byte
	cancelLeft int
	violations []string
	closed     bool
}

// New creates a virtual chip in its power-on state: both selects released,
// status reporting a VS1053 core, end-fill byte preloaded in RAM.
func New() *VirtualChip {
	c := &VirtualChip{
		xcsHigh:  true,
		xdcsHigh: true,
		wram:     make(map[uint16]uint16),
	}
	c.regs[vs1053.RegStatus] = vs1053.VersionVS1053 << 4
	c.wram[vs1053.AddrEndFillByte] = 0x0045
	return c
}

// Pins returns the chip's select and data-request lines wired for the
// driver: XCS, XDCS, DREQ in that order.
func (c *VirtualChip) Pins() (vs1053.OutputPin, vs1053.OutputPin, vs1053.InputPin) {
	return &selectPin{chip: c, line: "xcs"}, &selectPin{chip: c, line: "xdcs"}, &requestPin{chip: c}
}

// Exchange implements vs1053.Bus. The asserted select line decides whether
// the frame is interpreted as an SCI command or raw SDI stream bytes.
func (c *VirtualChip) Exchange(_ vs1053.BusSpeed, w, r []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailExchange != nil {
		return c.FailExchange
	}
	switch {
	case !c.xcsHigh && !c.xdcsHigh:
		c.violations = append(c.violations, "exchange with both selects asserted")
		return nil
	case !c.xcsHigh:
		return c.sciFrame(w, r)
	case !c.xdcsHigh:
		c.sdiBytes(w)
		return nil
	default:
		c.violations = append(c.violations, "exchange with no select asserted")
		return nil
	}
}

// Close implements vs1053.Bus.
func (c *VirtualChip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *VirtualChip) sciFrame(w, r []byte) error {
	if len(w) != 4 {
		c.violations = append(c.violations, fmt.Sprintf("SCI frame of %d bytes", len(w)))
		return nil
	}
	reg := w[1] & 0x0F
	switch w[0] {
	case vs1053.SCIWrite:
		value := binary.BigEndian.Uint16(w[2:4])
		c.writeReg(reg, value)
	case vs1053.SCIRead:
		value := c.readReg(reg)
		if len(r) == 4 {
			binary.BigEndian.PutUint16(r[2:4], value)
		}
	default:
		c.violations = append(c.violations, fmt.Sprintf("SCI opcode %#02x", w[0]))
	}
	return nil
}

func (c *VirtualChip) writeReg(reg uint8, value uint16) {
	switch reg {
	case vs1053.RegWRAMAddr:
		c.wramAddr = value
		c.regs[reg] = value
	case vs1053.RegWRAM:
		c.wram[c.wramAddr] = value
		c.wramAddr++
	case vs1053.RegMode:
		// The reset bit self-clears once the core has restarted.
		c.regs[reg] = value &^ vs1053.ModeReset
		if value&vs1053.ModeCancel != 0 {
			budget := c.CancelFillBudget
			if budget <= 0 {
				budget = DefaultCancelFillBudget
			}
			c.cancelLeft = budget
		}
	case vs1053.RegVolume:
		if c.BadWrites {
			value ^= 0x5A5A
		}
		c.regs[reg] = value
	default:
		c.regs[reg] = value
	}
}

func (c *VirtualChip) readReg(reg uint8) uint16 {
	if reg == vs1053.RegWRAM {
		value := c.wram[c.wramAddr]
		c.wramAddr++
		return value
	}
	return c.regs[reg]
}

func (c *VirtualChip) sdiBytes(w []byte) {
	c.stream = append(c.stream, w...)
	if c.cancelLeft > 0 {
		c.cancelLeft -= len(w)
		if c.cancelLeft <= 0 {
			c.cancelLeft = 0
			c.regs[vs1053.RegMode] &^= vs1053.ModeCancel
		}
	}
}

// Register returns the current value of an SCI register.
func (c *VirtualChip) Register(reg uint8) uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs[reg&0x0F]
}

// WRAM returns the current value at an internal RAM address.
func (c *VirtualChip) WRAM(address uint16) uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wram[address]
}

// Stream returns a copy of every byte streamed over the data interface.
func (c *VirtualChip) Stream() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.stream...)
}

// ResetStream clears the captured data stream.
func (c *VirtualChip) ResetStream() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stream = nil
}

// Violations returns the protocol violations observed so far, such as an
// exchange issued with both select lines asserted.
func (c *VirtualChip) Violations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.violations...)
}

// Closed reports whether the bus was closed.
func (c *VirtualChip) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type selectPin struct {
	chip *VirtualChip
	line string
}

func (p *selectPin) Set(high bool) error {
	p.chip.mu.Lock()
	defer p.chip.mu.Unlock()
	if p.line == "xcs" {
		p.chip.xcsHigh = high
	} else {
		p.chip.xdcsHigh = high
	}
	return nil
}

type requestPin struct {
	chip *VirtualChip
}

func (p *requestPin) Read() (bool, error) {
	p.chip.mu.Lock()
	defer p.chip.mu.Unlock()
	return !p.chip.NotReady, nil
}
