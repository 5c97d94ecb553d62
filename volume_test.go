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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttenuation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level uint8
		want  uint8
	}{
		{name: "full volume is loudest", level: 100, want: 0x00},
		{name: "zero volume is quietest", level: 0, want: 0xFE},
		{name: "midpoint rounds", level: 50, want: 0x7F},
		{name: "above domain clamps to loudest", level: 120, want: 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, attenuation(tt.level))
		})
	}
}

func TestAttenuationMonotonic(t *testing.T) {
	t.Parallel()

	prev := attenuation(0)
	for level := uint8(1); level <= 100; level++ {
		cur := attenuation(level)
		require.LessOrEqual(t, cur, prev, "attenuation must not increase with level %d", level)
		prev = cur
	}
}

func TestChannelLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		vol       uint8
		balance   int8
		wantLeft  uint8
		wantRight uint8
	}{
		{name: "centered", vol: 50, balance: 0, wantLeft: 50, wantRight: 50},
		{name: "negative balance boosts right", vol: 50, balance: -30, wantLeft: 50, wantRight: 80},
		{name: "positive balance cuts left", vol: 50, balance: 30, wantLeft: 20, wantRight: 50},
		{name: "right boost saturates at 100", vol: 80, balance: -100, wantLeft: 80, wantRight: 100},
		{name: "left cut saturates at 0", vol: 20, balance: 100, wantLeft: 0, wantRight: 20},
		{name: "silence stays silent", vol: 0, balance: -100, wantLeft: 0, wantRight: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			left, right := channelLevels(tt.vol, tt.balance)
			assert.Equal(t, tt.wantLeft, left, "left level")
			assert.Equal(t, tt.wantRight, right, "right level")
		})
	}
}

func TestVolumeRegisterValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		vol     uint8
		balance int8
		want    uint16
	}{
		{name: "full volume centered", vol: 100, balance: 0, want: 0x0000},
		{name: "muted centered", vol: 0, balance: 0, want: 0xFEFE},
		{name: "midpoint centered", vol: 50, balance: 0, want: 0x7F7F},
		{name: "full right at midpoint", vol: 50, balance: -100, want: 0x7F00},
		{name: "full left cut at midpoint", vol: 50, balance: 100, want: 0xFE7F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, volumeRegisterValue(tt.vol, tt.balance))
		})
	}
}

func TestVolumeRegisterValueOrdering(t *testing.T) {
	t.Parallel()

	// Negative balance must never leave the right channel quieter than the
	// left one, and symmetrically for positive balance. Lower attenuation
	// byte means louder.
	for _, vol := range []uint8{0, 25, 50, 75, 100} {
		for b := -100; b <= 100; b += 5 {
			packed := volumeRegisterValue(vol, int8(b))
			left := uint8(packed >> 8)
			right := uint8(packed)
			if b < 0 {
				assert.LessOrEqual(t, right, left, "vol=%d balance=%d", vol, b)
			}
			if b > 0 {
				assert.GreaterOrEqual(t, left, right, "vol=%d balance=%d", vol, b)
			}
		}
	}
}

func TestVolumeRegisterValueInRange(t *testing.T) {
	t.Parallel()

	for vol := 0; vol <= 100; vol++ {
		for b := -100; b <= 100; b++ {
			packed := volumeRegisterValue(uint8(vol), int8(b))
			require.LessOrEqual(t, uint8(packed>>8), uint8(maxAttenuation))
			require.LessOrEqual(t, uint8(packed), uint8(maxAttenuation))
		}
	}
}

func TestClampVolume(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint8(0), clampVolume(-150))
	assert.Equal(t, uint8(100), clampVolume(150))
	assert.Equal(t, uint8(42), clampVolume(42))
}

func TestClampBalance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int8(-100), clampBalance(-150))
	assert.Equal(t, int8(100), clampBalance(150))
	assert.Equal(t, int8(-7), clampBalance(-7))
}
