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

// Package stations holds the built-in radio station directory: stable
// identifiers mapped to display names, FM frequencies and, where one
// exists, a web stream URL.
package stations

import (
	"errors"
	"fmt"
)

// ErrUnknownStation is returned when an identifier is not in the directory.
var ErrUnknownStation = errors.New("unknown station")

// Station describes one radio station.
type Station struct {
	// ID is the stable identifier used in URLs and persisted state.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// FMFrequency is the broadcast frequency in MHz.
	FMFrequency float64 `json:"fm_frequency"`
	// StreamURL is the web stream, empty when the station is FM-only.
	StreamURL string `json:"stream_url,omitempty"`
}

// HasStream reports whether the station can be played over the network.
func (s Station) HasStream() bool {
	return s.StreamURL != ""
}

var directory = []Station{
	{ID: "bfm_business", Name: "BFM Business", FMFrequency: 96.4},
	{ID: "cherie_fm", Name: "Cherie FM", FMFrequency: 91.3},
	{ID: "europe_1", Name: "Europe 1", FMFrequency: 104.7},
	{ID: "europe_2", Name: "Europe 2", FMFrequency: 103.5, StreamURL: "http://europe2.lmn.fm/europe2.mp3"},
	{ID: "fip", Name: "FIP", FMFrequency: 105.1, StreamURL: "http://icecast.radiofrance.fr/fip-hifi.aac"},
	{ID: "france_info", Name: "France Info", FMFrequency: 105.5, StreamURL: "http://icecast.radiofrance.fr/franceinfo-hifi.aac"},
	{ID: "france_inter", Name: "France Inter", FMFrequency: 87.6},
	{ID: "france_inter_2", Name: "France Inter Test 2", FMFrequency: 87.8},
	{ID: "le_mouv", Name: "Le Mouv", FMFrequency: 92.1},
	{ID: "nostalgie", Name: "Nostalgie", FMFrequency: 90.4, StreamURL: "https://scdn.nrjaudio.fm/adwz2/fr/30601/mp3_128.mp3"},
	{ID: "nrj", Name: "NRJ", FMFrequency: 100.3, StreamURL: "https://scdn.nrjaudio.fm/adwz2/fr/30001/mp3_128.mp3"},
	{ID: "radio_enghien", Name: "Station Enghien", FMFrequency: 98.0},
	{ID: "rfm", Name: "RFM", FMFrequency: 103.9, StreamURL: "http://stream.rfm.fr/rfm.mp3"},
	{ID: "rire_et_chansons", Name: "Rire & Chansons", FMFrequency: 97.4, StreamURL: "https://scdn.nrjaudio.fm/adwz2/fr/30401/mp3_128.mp3"},
	{ID: "rmc", Name: "RMC", FMFrequency: 103.1, StreamURL: "http://audio.bfmtv.com/rmcradio_128.mp3"},
	{ID: "rtl", Name: "RTL", FMFrequency: 104.3, StreamURL: "http://icecast.rtl.fr/rtl-1-44-128?listen=webCwsBCggNCQgLDQUGBAcGBg"},
	{ID: "rtl_2", Name: "RL2", FMFrequency: 105.9, StreamURL: "http://icecast.rtl2.fr/rtl2-1-44-128?listen=webCwsBCggNCQgLDQUGBAcGBg"},
	// TSF Jazz has no terrestrial frequency in this area; the placeholder
	// keeps the entry tunable without crashing FM mode.
	{ID: "tsf_jazz", Name: "TSF Jazz", FMFrequency: 1.0, StreamURL: "https://tsfjazz.ice.infomaniak.ch/tsfjazz-high.mp3"},
}

// All returns the station directory in its fixed order.
func All() []Station {
	out := make([]Station, len(directory))
	copy(out, directory)
	return out
}

// Lookup returns the station with the given identifier.
func Lookup(id string) (Station, error) {
	for _, s := range directory {
		if s.ID == id {
			return s, nil
		}
	}
	return Station{}, fmt.Errorf("%w: %q", ErrUnknownStation, id)
}

// Name returns the display name for an identifier.
func Name(id string) (string, error) {
	s, err := Lookup(id)
	if err != nil {
		return "", err
	}
	return s.Name, nil
}

// FMFrequency returns the FM frequency in MHz for an identifier.
func FMFrequency(id string) (float64, error) {
	s, err := Lookup(id)
	if err != nil {
		return 0, err
	}
	return s.FMFrequency, nil
}

// StreamURL returns the web stream URL for an identifier; the URL may be
// empty for FM-only stations.
func StreamURL(id string) (string, error) {
	s, err := Lookup(id)
	if err != nil {
		return "", err
	}
	return s.StreamURL, nil
}
