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

// Package spi implements the vs1053 bus and pin interfaces on top of
// periph.io SPI ports and GPIO lines.
//
// The decoder wants two clock configurations on the same physical bus, so
// the transport opens two kernel SPI ports (typically two chip selects of
// the same controller, e.g. "SPI0.0" and "SPI0.1") and routes each exchange
// to the one matching the requested speed. The kernel's own chip select
// lines are left unconnected; the driver frames transactions with the XCS
// and XDCS GPIOs instead.
package spi

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	pspi "periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	vs1053 "github.com/ondes-project/go-vs1053"
)

// Default clock frequencies for the two bus speeds. The slow clock must
// stay under XTALI/7 with the chip's multiplier at x1.0; the fast clock is
// safe once the multiplier has been raised to x3.0.
const (
	DefaultSlowFreq = 1 * physic.MegaHertz
	DefaultFastFreq = 8 * physic.MegaHertz
)

// Pins names the GPIO lines wired to the decoder.
type Pins struct {
	// XCS is the command chip select line.
	XCS string
	// XDCS is the data chip select line.
	XDCS string
	// DREQ is the data request line.
	DREQ string
}

// Transport is a vs1053.Bus over two periph.io SPI connections plus the
// three GPIO lines.
//
// Thread Safety: Transport is NOT thread-safe; it inherits the driver's
// external-serialization contract.
type Transport struct {
	slow pspi.Conn
	fast pspi.Conn

	slowPort pspi.PortCloser
	fastPort pspi.PortCloser

	xcs  gpio.PinOut
	xdcs gpio.PinOut
	dreq gpio.PinIn
}

// Open initializes the host, opens the two named SPI ports at the slow and
// fast clock frequencies, and claims the three GPIO lines.
func Open(slowPort, fastPort string, pins Pins) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host: %w", err)
	}

	sp, err := spireg.Open(slowPort)
	if err != nil {
		return nil, fmt.Errorf("failed to open slow SPI port %q: %w", slowPort, err)
	}
	slow, err := sp.Connect(DefaultSlowFreq, pspi.Mode0, 8)
	if err != nil {
		_ = sp.Close()
		return nil, fmt.Errorf("failed to configure slow SPI port %q: %w", slowPort, err)
	}

	fp, err := spireg.Open(fastPort)
	if err != nil {
		_ = sp.Close()
		return nil, fmt.Errorf("failed to open fast SPI port %q: %w", fastPort, err)
	}
	fast, err := fp.Connect(DefaultFastFreq, pspi.Mode0, 8)
	if err != nil {
		_ = sp.Close()
		_ = fp.Close()
		return nil, fmt.Errorf("failed to configure fast SPI port %q: %w", fastPort, err)
	}

	xcs := gpioreg.ByName(pins.XCS)
	if xcs == nil {
		_ = sp.Close()
		_ = fp.Close()
		return nil, fmt.Errorf("unknown GPIO line %q for XCS", pins.XCS)
	}
	xdcs := gpioreg.ByName(pins.XDCS)
	if xdcs == nil {
		_ = sp.Close()
		_ = fp.Close()
		return nil, fmt.Errorf("unknown GPIO line %q for XDCS", pins.XDCS)
	}
	dreq := gpioreg.ByName(pins.DREQ)
	if dreq == nil {
		_ = sp.Close()
		_ = fp.Close()
		return nil, fmt.Errorf("unknown GPIO line %q for DREQ", pins.DREQ)
	}

	// Release both selects before the first exchange.
	if err := xcs.Out(gpio.High); err != nil {
		_ = sp.Close()
		_ = fp.Close()
		return nil, fmt.Errorf("failed to drive XCS: %w", err)
	}
	if err := xdcs.Out(gpio.High); err != nil {
		_ = sp.Close()
		_ = fp.Close()
		return nil, fmt.Errorf("failed to drive XDCS: %w", err)
	}
	if err := dreq.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		_ = sp.Close()
		_ = fp.Close()
		return nil, fmt.Errorf("failed to configure DREQ: %w", err)
	}

	t := New(slow, fast, xcs, xdcs, dreq)
	t.slowPort = sp
	t.fastPort = fp
	return t, nil
}

// New wraps already-configured SPI connections and GPIO lines. Close is a
// no-op on the ports when the transport was built this way.
func New(slow, fast pspi.Conn, xcs, xdcs gpio.PinOut, dreq gpio.PinIn) *Transport {
	return &Transport{
		slow: slow,
		fast: fast,
		xcs:  xcs,
		xdcs: xdcs,
		dreq: dreq,
	}
}

// Exchange implements vs1053.Bus by routing the transaction to the SPI
// connection matching the requested speed.
func (t *Transport) Exchange(speed vs1053.BusSpeed, w, r []byte) error {
	conn := t.slow
	if speed == vs1053.SpeedFast {
		conn = t.fast
	}
	if err := conn.Tx(w, r); err != nil {
		return fmt.Errorf("spi exchange (%s) failed: %w", speed, err)
	}
	return nil
}

// Close releases both SPI ports.
func (t *Transport) Close() error {
	var firstErr error
	if t.slowPort != nil {
		if err := t.slowPort.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close slow SPI port: %w", err)
		}
	}
	if t.fastPort != nil {
		if err := t.fastPort.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close fast SPI port: %w", err)
		}
	}
	return firstErr
}

// Pins returns the GPIO lines adapted to the driver's pin interfaces, in
// XCS, XDCS, DREQ order.
func (t *Transport) Pins() (vs1053.OutputPin, vs1053.OutputPin, vs1053.InputPin) {
	return &outputPin{pin: t.xcs}, &outputPin{pin: t.xdcs}, &inputPin{pin: t.dreq}
}

type outputPin struct {
	pin gpio.PinOut
}

func (p *outputPin) Set(high bool) error {
	if err := p.pin.Out(gpio.Level(high)); err != nil {
		return fmt.Errorf("failed to drive %s: %w", p.pin, err)
	}
	return nil
}

type inputPin struct {
	pin gpio.PinIn
}

func (p *inputPin) Read() (bool, error) {
	return bool(p.pin.Read()), nil
}
