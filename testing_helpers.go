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

import "sync"

// MockExchange records one bus transaction seen by a MockBus.
type MockExchange struct {
	// W is a copy of the bytes written.
	W []byte
	// Speed is the requested bus speed.
	Speed BusSpeed
	// Read reports whether the exchange clocked bytes back (r non-nil).
	Read bool
}

// MockBus is a scripted Bus for tests. With no ExchangeFunc it accepts
// every exchange and leaves read buffers zeroed; tests that need register
// semantics install an ExchangeFunc.
type MockBus struct {
	// ExchangeFunc, when set, handles every exchange.
	ExchangeFunc func(speed BusSpeed, w, r []byte) error

	mu        sync.Mutex
	exchanges []MockExchange
	closed    bool
}

// NewMockBus creates an empty mock bus.
func NewMockBus() *MockBus {
	return &MockBus{}
}

// Exchange records the transaction and delegates to ExchangeFunc if set.
func (m *MockBus) Exchange(speed BusSpeed, w, r []byte) error {
	m.mu.Lock()
	m.exchanges = append(m.exchanges, MockExchange{
		W:     append([]byte(nil), w...),
		Speed: speed,
		Read:  r != nil,
	})
	fn := m.ExchangeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(speed, w, r)
	}
	for i := range r {
		r[i] = 0
	}
	return nil
}

// Close marks the bus closed.
func (m *MockBus) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockBus) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Exchanges returns a copy of the recorded transactions.
func (m *MockBus) Exchanges() []MockExchange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockExchange(nil), m.exchanges...)
}

// Reset clears the transaction record.
func (m *MockBus) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchanges = nil
}

// MockOutputPin is a recording OutputPin with an optional injected fault.
type MockOutputPin struct {
	// Fail, when set, is returned by every Set call.
	Fail error

	mu     sync.Mutex
	high   bool
	levels []bool
}

// NewMockOutputPin creates an output pin that starts high (released).
func NewMockOutputPin() *MockOutputPin {
	return &MockOutputPin{high: true}
}

// Set records and applies the new level.
func (p *MockOutputPin) Set(high bool) error {
	if p.Fail != nil {
		return p.Fail
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.high = high
	p.levels = append(p.levels, high)
	return nil
}

// High returns the current level.
func (p *MockOutputPin) High() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.high
}

// Levels returns a copy of every level the pin was driven to.
func (p *MockOutputPin) Levels() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]bool(nil), p.levels...)
}

// MockInputPin is a scripted InputPin. Reads consume Sequence first, then
// return Level; Fail, when set, overrides everything.
type MockInputPin struct {
	// Level is the steady-state reading once Sequence is exhausted.
	Level bool
	// Sequence is consumed one reading per Read call.
	Sequence []bool
	// Fail, when set, is returned by every Read call.
	Fail error

	mu    sync.Mutex
	reads int
}

// NewMockInputPin creates an input pin that always reads high (ready).
func NewMockInputPin() *MockInputPin {
	return &MockInputPin{Level: true}
}

// Read returns the next scripted level.
func (p *MockInputPin) Read() (bool, error) {
	if p.Fail != nil {
		return false, p.Fail
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reads++
	if len(p.Sequence) > 0 {
		level := p.Sequence[0]
		p.Sequence = p.Sequence[1:]
		return level, nil
	}
	return p.Level, nil
}

// Reads returns how many times the pin was sampled.
func (p *MockInputPin) Reads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reads
}
