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

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// state is what survives a restart: the station playing before the power
// went out comes back by itself.
type state struct {
	LastSource  string `json:"last_source"`
	LastStation string `json:"last_station"`
	LastVolume  int    `json:"last_volume"`
}

func defaultState() state {
	return state{
		LastSource:  "fm",
		LastStation: "france_info",
		LastVolume:  50,
	}
}

// loadState reads the persisted state, falling back to defaults when the
// file is missing or unreadable.
func loadState(path string) state {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultState()
	}
	s := defaultState()
	if err := json.Unmarshal(data, &s); err != nil {
		return defaultState()
	}
	return s
}

// saveState writes the state atomically via a rename.
func saveState(path string, s state) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
