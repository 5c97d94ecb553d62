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

package spi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	pspi "periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"

	vs1053 "github.com/ondes-project/go-vs1053"
)

func playbackConn(t *testing.T, ops []conntest.IO) pspi.Conn {
	t.Helper()

	port := &spitest.Playback{
		Playback: conntest.Playback{Ops: ops, DontPanic: true},
	}
	conn, err := port.Connect(physic.MegaHertz, pspi.Mode0, 8)
	require.NoError(t, err)
	return conn
}

func TestExchangeRoutesBySpeed(t *testing.T) {
	t.Parallel()

	slow := playbackConn(t, []conntest.IO{
		{W: []byte{0x03, 0x0B, 0x00, 0x00}, R: []byte{0x00, 0x00, 0x12, 0x34}},
	})
	fast := playbackConn(t, []conntest.IO{
		{W: []byte{0x02, 0x0B, 0x7F, 0x7F}},
	})

	tr := New(slow, fast,
		&gpiotest.Pin{N: "XCS", L: gpio.High},
		&gpiotest.Pin{N: "XDCS", L: gpio.High},
		&gpiotest.Pin{N: "DREQ", L: gpio.High},
	)

	r := make([]byte, 4)
	require.NoError(t, tr.Exchange(vs1053.SpeedSlow, []byte{0x03, 0x0B, 0x00, 0x00}, r))
	assert.Equal(t, []byte{0x00, 0x00, 0x12, 0x34}, r)

	require.NoError(t, tr.Exchange(vs1053.SpeedFast, []byte{0x02, 0x0B, 0x7F, 0x7F}, nil))
}

func TestExchangeReportsConnFailure(t *testing.T) {
	t.Parallel()

	// An exhausted playback rejects further exchanges.
	slow := playbackConn(t, nil)
	fast := playbackConn(t, nil)
	tr := New(slow, fast,
		&gpiotest.Pin{N: "XCS", L: gpio.High},
		&gpiotest.Pin{N: "XDCS", L: gpio.High},
		&gpiotest.Pin{N: "DREQ", L: gpio.High},
	)

	err := tr.Exchange(vs1053.SpeedSlow, []byte{0x03, 0x00, 0x00, 0x00}, make([]byte, 4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slow")
}

func TestPinAdapters(t *testing.T) {
	t.Parallel()

	xcsPin := &gpiotest.Pin{N: "XCS", L: gpio.High}
	xdcsPin := &gpiotest.Pin{N: "XDCS", L: gpio.High}
	dreqPin := &gpiotest.Pin{N: "DREQ", L: gpio.High}

	tr := New(playbackConn(t, nil), playbackConn(t, nil), xcsPin, xdcsPin, dreqPin)
	xcs, xdcs, dreq := tr.Pins()

	require.NoError(t, xcs.Set(false))
	assert.Equal(t, gpio.Low, xcsPin.L)
	require.NoError(t, xcs.Set(true))
	assert.Equal(t, gpio.High, xcsPin.L)

	require.NoError(t, xdcs.Set(false))
	assert.Equal(t, gpio.Low, xdcsPin.L)

	high, err := dreq.Read()
	require.NoError(t, err)
	assert.True(t, high)

	dreqPin.L = gpio.Low
	high, err = dreq.Read()
	require.NoError(t, err)
	assert.False(t, high)
}

func TestTransportDrivesDevice(t *testing.T) {
	t.Parallel()

	// SetVolume(50) through the real driver: one fast write of the packed
	// midpoint attenuation.
	fast := playbackConn(t, []conntest.IO{
		{W: []byte{0x02, 0x0B, 0x7F, 0x7F}},
	})
	tr := New(playbackConn(t, nil), fast,
		&gpiotest.Pin{N: "XCS", L: gpio.High},
		&gpiotest.Pin{N: "XDCS", L: gpio.High},
		&gpiotest.Pin{N: "DREQ", L: gpio.High},
	)

	xcs, xdcs, dreq := tr.Pins()
	dev, err := vs1053.New(tr, xcs, xdcs, dreq, vs1053.WithReadyPollInterval(0))
	require.NoError(t, err)

	require.NoError(t, dev.SetVolume(50))
}
