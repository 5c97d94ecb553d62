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
	"html/template"
	"net/http"
	"strconv"

	"github.com/ondes-project/go-vs1053/stations"
)

var controlPage = template.Must(template.New("control").Parse(`<!DOCTYPE html>
<html>
<head><title>Radio</title></head>
<body>
<h1>Radio</h1>
<p>Playing: {{.Status.StationName}} ({{.Status.Source}}), volume {{.Status.Volume}}</p>
<form method="POST" action="/radio">
<select name="station">
{{range .Stations}}<option value="{{.ID}}"{{if eq .ID $.Status.Station}} selected{{end}}>{{.Name}}</option>
{{end}}</select>
<label><input type="checkbox" name="is_webradio" value="true"> web stream</label>
<button type="submit">Play</button>
</form>
<form method="POST" action="/volume">
<input type="range" name="volume" min="0" max="100" value="{{.Status.Volume}}">
<button type="submit">Set volume</button>
</form>
</body>
</html>
`))

func newServeMux(r *radio) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, r.status())
	})
	mux.HandleFunc("GET /stations", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, stations.All())
	})
	mux.HandleFunc("GET /radio", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = controlPage.Execute(w, struct {
			Status   radioStatus
			Stations []stations.Station
		}{r.status(), stations.All()})
	})
	mux.HandleFunc("POST /radio", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		id := req.PostFormValue("station")
		webradio := req.PostFormValue("is_webradio") == "true"
		if err := r.selectStation(id, webradio); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Redirect(w, req, "/radio", http.StatusSeeOther)
	})
	mux.HandleFunc("POST /volume", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		vol, err := strconv.Atoi(req.PostFormValue("volume"))
		if err != nil {
			http.Error(w, "volume must be an integer", http.StatusBadRequest)
			return
		}
		if err := r.setVolume(vol); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, req, "/radio", http.StatusSeeOther)
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(w, `{"error":%q}`, err.Error())
	}
}
