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

package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSPIName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantBus string
		wantCS  string
		wantOK  bool
	}{
		{name: "standard node", input: "spidev0.0", wantBus: "0", wantCS: "0", wantOK: true},
		{name: "second chip select", input: "spidev0.1", wantBus: "0", wantCS: "1", wantOK: true},
		{name: "multi-digit bus", input: "spidev10.2", wantBus: "10", wantCS: "2", wantOK: true},
		{name: "missing chip select", input: "spidev0", wantOK: false},
		{name: "not a spidev node", input: "i2c-1", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bus, cs, ok := parseSPIName(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantBus, bus)
				assert.Equal(t, tt.wantCS, cs)
			}
		})
	}
}

func TestParseI2CName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantBus string
		wantOK  bool
	}{
		{name: "standard node", input: "i2c-1", wantBus: "1", wantOK: true},
		{name: "multi-digit bus", input: "i2c-22", wantBus: "22", wantOK: true},
		{name: "missing bus", input: "i2c-", wantOK: false},
		{name: "not an i2c node", input: "spidev0.0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bus, ok := parseI2CName(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantBus, bus)
			}
		})
	}
}

func TestOptionsWants(t *testing.T) {
	t.Parallel()

	var nilOpts *Options
	assert.True(t, nilOpts.wants(TransportSPI))
	assert.True(t, (&Options{}).wants(TransportI2C))

	spiOnly := &Options{Kinds: []TransportKind{TransportSPI}}
	assert.True(t, spiOnly.wants(TransportSPI))
	assert.False(t, spiOnly.wants(TransportI2C))
}
