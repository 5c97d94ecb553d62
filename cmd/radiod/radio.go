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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	vs1053 "github.com/ondes-project/go-vs1053"
	"github.com/ondes-project/go-vs1053/stations"
	"github.com/ondes-project/go-vs1053/tuner"
)

var errNoDecoder = errors.New("no decoder available")

// radio owns the decoder, the FM tuner and the persisted state. The driver
// is not thread-safe, so the mutex is held across every whole driver call,
// never just across a sub-step.
//
// Audio sources: FM goes through the TEA5767; web stations are resolved to
// their stream URL and handed to the decoder feed (an external process such
// as playmp3 reading from a pipe). The daemon itself does no network fetch.
type radio struct {
	logger    *slog.Logger
	statePath string

	mu  sync.Mutex
	dev *vs1053.Device
	tun *tuner.Tuner
	st  state
}

func newRadio(logger *slog.Logger, dev *vs1053.Device, tun *tuner.Tuner, statePath string) *radio {
	return &radio{
		logger:    logger,
		statePath: statePath,
		dev:       dev,
		tun:       tun,
		st:        loadState(statePath),
	}
}

// restore replays the persisted state against the hardware at startup.
func (r *radio) restore() {
	if err := r.setVolume(r.st.LastVolume); err != nil {
		r.logger.Warn("failed to restore volume", "err", err)
	}
	if err := r.selectStation(r.st.LastStation, r.st.LastSource == "web"); err != nil {
		r.logger.Warn("failed to restore station", "station", r.st.LastStation, "err", err)
	}
}

func (r *radio) setVolume(vol int) error {
	if vol < 0 {
		vol = 0
	}
	if vol > 100 {
		vol = 100
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev != nil {
		if err := r.dev.SetVolume(uint8(vol)); err != nil {
			return fmt.Errorf("failed to set volume: %w", err)
		}
	}
	r.st.LastVolume = vol
	r.persistLocked()
	return nil
}

// selectStation switches to the given station, over the web stream when
// webradio is requested and over FM otherwise.
func (r *radio) selectStation(id string, webradio bool) error {
	station, err := stations.Lookup(id)
	if err != nil {
		return err
	}
	if webradio && !station.HasStream() {
		return fmt.Errorf("station %q has no web stream", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if webradio {
		if r.dev == nil {
			return errNoDecoder
		}
		if r.tun != nil {
			if err := r.tun.SetMute(true); err != nil {
				r.logger.Warn("failed to mute tuner", "err", err)
			}
		}
		// Drain whatever the decoder was playing and prime it for the new
		// stream; the stream bytes themselves arrive through the feed.
		if err := r.dev.StopSong(); err != nil {
			r.logger.Warn("failed to stop current song", "err", err)
		}
		if err := r.dev.StartSong(); err != nil {
			return fmt.Errorf("failed to prime decoder: %w", err)
		}
		r.st.LastSource = "web"
		r.logger.Info("web station selected", "station", station.Name, "url", station.StreamURL)
	} else {
		if r.tun == nil {
			return errors.New("no tuner available")
		}
		if err := r.tun.SetFrequency(station.FMFrequency); err != nil {
			return fmt.Errorf("failed to tune %s: %w", station.Name, err)
		}
		if err := r.tun.SetMute(false); err != nil {
			r.logger.Warn("failed to unmute tuner", "err", err)
		}
		if r.dev != nil {
			if err := r.dev.StopSong(); err != nil {
				r.logger.Warn("failed to stop current song", "err", err)
			}
		}
		r.st.LastSource = "fm"
		r.logger.Info("tuned FM station", "station", station.Name, "mhz", station.FMFrequency)
	}

	r.st.LastStation = id
	r.persistLocked()
	return nil
}

// status is a point-in-time snapshot for the HTTP surface.
type radioStatus struct {
	Source       string  `json:"source"`
	Station      string  `json:"station"`
	StationName  string  `json:"station_name,omitempty"`
	StreamURL    string  `json:"stream_url,omitempty"`
	Volume       int     `json:"volume"`
	DecoderReady bool    `json:"decoder_ready"`
	FMFrequency  float64 `json:"fm_frequency,omitempty"`
}

func (r *radio) status() radioStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := radioStatus{
		Source:       r.st.LastSource,
		Station:      r.st.LastStation,
		Volume:       r.st.LastVolume,
		DecoderReady: r.dev != nil,
	}
	if s, err := stations.Lookup(r.st.LastStation); err == nil {
		st.StationName = s.Name
		st.FMFrequency = s.FMFrequency
		if r.st.LastSource == "web" {
			st.StreamURL = s.StreamURL
		}
	}
	return st
}

// persistLocked saves the state; callers hold r.mu. Persistence failures
// are logged, not fatal: the radio keeps playing.
func (r *radio) persistLocked() {
	if err := saveState(r.statePath, r.st); err != nil {
		r.logger.Warn("failed to persist state", "err", err)
	}
}

// shutdown stops playback and powers the chain down.
func (r *radio) shutdown(_ context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dev != nil {
		if err := r.dev.StopSong(); err != nil {
			r.logger.Warn("failed to stop song", "err", err)
		}
	}
	if r.tun != nil {
		if err := r.tun.Standby(); err != nil {
			r.logger.Warn("failed to put tuner in standby", "err", err)
		}
		if err := r.tun.Close(); err != nil {
			r.logger.Warn("failed to close tuner", "err", err)
		}
	}
	if r.dev != nil {
		if err := r.dev.Close(); err != nil {
			r.logger.Warn("failed to close decoder", "err", err)
		}
	}
}
