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
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ondes-project/go-vs1053/stations"
)

// newTestRadio builds a radio with no hardware attached; the handlers and
// state logic still work, hardware-touching paths report their absence.
func newTestRadio(t *testing.T) *radio {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	statePath := filepath.Join(t.TempDir(), "state.json")
	return newRadio(logger, nil, nil, statePath)
}

func TestStatusEndpoint(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newServeMux(newTestRadio(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st radioStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, "fm", st.Source)
	assert.Equal(t, "france_info", st.Station)
	assert.Equal(t, "France Info", st.StationName)
	assert.Equal(t, 50, st.Volume)
	assert.False(t, st.DecoderReady)
}

func TestStationsEndpoint(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newServeMux(newTestRadio(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/stations")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []stations.Station
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 18)
}

func TestControlPageRenders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newServeMux(newTestRadio(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/radio")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "France Info")
	assert.Contains(t, string(body), `name="station"`)
}

func TestVolumeEndpointPersists(t *testing.T) {
	t.Parallel()

	r := newTestRadio(t)
	srv := httptest.NewServer(newServeMux(r))
	defer srv.Close()

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.PostForm(srv.URL+"/volume", url.Values{"volume": {"75"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	assert.Equal(t, 75, r.status().Volume)
	assert.Equal(t, 75, loadState(r.statePath).LastVolume)
}

func TestVolumeEndpointRejectsGarbage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newServeMux(newTestRadio(t)))
	defer srv.Close()

	resp, err := http.PostForm(srv.URL+"/volume", url.Values{"volume": {"loud"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRadioEndpointUnknownStation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newServeMux(newTestRadio(t)))
	defer srv.Close()

	resp, err := http.PostForm(srv.URL+"/radio", url.Values{
		"station":     {"pirate_radio"},
		"is_webradio": {"true"},
	})
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "unknown station"))
}

func TestRadioEndpointWithoutHardware(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newServeMux(newTestRadio(t)))
	defer srv.Close()

	// FM needs a tuner, web needs a decoder; with neither attached both
	// selections are rejected without crashing.
	resp, err := http.PostForm(srv.URL+"/radio", url.Values{"station": {"france_inter"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, err = http.PostForm(srv.URL+"/radio", url.Values{
		"station":     {"fip"},
		"is_webradio": {"true"},
	})
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
