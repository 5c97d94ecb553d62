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

// playmp3 plays a local MP3 file through the VS1053b, mostly as a wiring
// smoke test: if this works, the decoder, the two SPI ports and the three
// GPIO lines are all correct.
package main

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"

	vs1053 "github.com/ondes-project/go-vs1053"
	"github.com/ondes-project/go-vs1053/transport/spi"
)

func main() {
	var (
		spiSlow  = flag.String("spi-slow", "SPI0.0", "SPI port for the bring-up clock")
		spiFast  = flag.String("spi-fast", "SPI0.1", "SPI port for the steady-state clock")
		xcsName  = flag.String("xcs", "GPIO8", "GPIO line wired to XCS")
		xdcsName = flag.String("xdcs", "GPIO7", "GPIO line wired to XDCS")
		dreqName = flag.String("dreq", "GPIO25", "GPIO line wired to DREQ")
		volume   = flag.Int("volume", 70, "playback volume, 0..100")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if flag.NArg() != 1 {
		logger.Error("usage: playmp3 [flags] <file.mp3>")
		os.Exit(2)
	}

	if err := run(logger, *spiSlow, *spiFast, *xcsName, *xdcsName, *dreqName, *volume, flag.Arg(0)); err != nil {
		logger.Error("playback failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, slowPort, fastPort, xcsName, xdcsName, dreqName string, volume int, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	tr, err := spi.Open(slowPort, fastPort, spi.Pins{XCS: xcsName, XDCS: xdcsName, DREQ: dreqName})
	if err != nil {
		return err
	}

	xcs, xdcs, dreq := tr.Pins()
	dev, err := vs1053.New(tr, xcs, xdcs, dreq, vs1053.WithLogger(logger))
	if err != nil {
		_ = tr.Close()
		return err
	}
	defer func() { _ = dev.Close() }()

	if err := dev.Begin(); err != nil {
		return err
	}
	if err := dev.SwitchToMP3Mode(); err != nil {
		return err
	}
	if volume < 0 || volume > 100 {
		volume = 70
	}
	if err := dev.SetVolume(uint8(volume)); err != nil {
		return err
	}

	if err := dev.StartSong(); err != nil {
		return err
	}
	logger.Info("playing", "file", path)

	buf := make([]byte, 4096)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			if err := dev.PlayChunk(buf[:n], 0); err != nil {
				return err
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return readErr
		}
	}

	return dev.StopSong()
}
