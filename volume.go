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

// The volume/balance model. Pure arithmetic, no I/O: user-facing volume
// (0..100, 100 loudest) and balance (-100..100) map to the two hardware
// attenuation bytes packed into RegVolume. This is the only externally
// observable numeric contract of the model, so the inversion and the
// saturating clamps are load-bearing.

// maxAttenuation is the quietest hardware value; 0x00 is the loudest.
const maxAttenuation = 0xFE

// clampVolume bounds a volume input to the 0..100 domain.
func clampVolume(vol int) uint8 {
	switch {
	case vol < 0:
		return 0
	case vol > 100:
		return 100
	default:
		return uint8(vol)
	}
}

// clampBalance bounds a balance input to the -100..100 domain.
func clampBalance(balance int) int8 {
	switch {
	case balance > 100:
		return 100
	case balance < -100:
		return -100
	default:
		return int8(balance)
	}
}

// channelLevels skews the single volume value into per-channel input
// levels. Negative balance boosts the right channel, positive balance cuts
// the left channel; both saturate within the 0..100 domain rather than
// wrapping.
func channelLevels(vol uint8, balance int8) (left, right uint8) {
	left, right = vol, vol
	switch {
	case balance < 0:
		boosted := int(vol) + int(-balance)
		if boosted > 100 {
			boosted = 100
		}
		right = uint8(boosted)
	case balance > 0:
		cut := int(vol) - int(balance)
		if cut < 0 {
			cut = 0
		}
		left = uint8(cut)
	}
	return left, right
}

// attenuation maps a 0..100 input level onto the inverted hardware range:
// 100 -> 0x00 (loudest), 0 -> 0xFE (quietest), linearly with rounding.
func attenuation(level uint8) uint8 {
	if level > 100 {
		level = 100
	}
	return uint8(((100-int(level))*maxAttenuation + 50) / 100)
}

// volumeRegisterValue computes the packed RegVolume value for a volume and
// balance pair: left attenuation in the high byte, right in the low byte.
func volumeRegisterValue(vol uint8, balance int8) uint16 {
	left, right := channelLevels(vol, balance)
	return uint16(attenuation(left))<<8 | uint16(attenuation(right))
}
