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

// radiod is the network radio appliance daemon: it brings up the VS1053b
// decoder and the TEA5767 FM tuner, restores the last station and volume,
// and exposes a small HTTP control surface.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	vs1053 "github.com/ondes-project/go-vs1053"
	"github.com/ondes-project/go-vs1053/detection"
	"github.com/ondes-project/go-vs1053/transport/spi"
	"github.com/ondes-project/go-vs1053/tuner"
)

func main() {
	var (
		httpAddr  = flag.String("http", ":8080", "HTTP listen address")
		spiSlow   = flag.String("spi-slow", "SPI0.0", "SPI port for the bring-up clock")
		spiFast   = flag.String("spi-fast", "SPI0.1", "SPI port for the steady-state clock")
		xcsName   = flag.String("xcs", "GPIO8", "GPIO line wired to XCS")
		xdcsName  = flag.String("xdcs", "GPIO7", "GPIO line wired to XDCS")
		dreqName  = flag.String("dreq", "GPIO25", "GPIO line wired to DREQ")
		i2cBus    = flag.String("i2c", "", "I2C bus for the FM tuner (empty selects the first)")
		statePath = flag.String("state", "/var/lib/radiod/state.json", "persisted state file")
		chunkSize = flag.Int("chunk", vs1053.DefaultChunkSize, "SDI chunk size in bytes")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if devices, err := detection.DetectAll(nil); err == nil {
		for _, d := range devices {
			logger.Debug("detected bus", "path", d.Path, "kind", string(d.Kind))
		}
	} else if errors.Is(err, detection.ErrNoDevicesFound) {
		logger.Warn("no SPI or I2C device nodes found; is the interface enabled?")
	}

	dev, err := openDecoder(logger, *spiSlow, *spiFast, *xcsName, *xdcsName, *dreqName, *chunkSize)
	if err != nil {
		logger.Error("decoder bring-up failed", "err", err)
		os.Exit(1)
	}

	tun, err := tuner.Open(*i2cBus)
	if err != nil {
		logger.Warn("FM tuner unavailable, web streams only", "err", err)
		tun = nil
	}

	r := newRadio(logger, dev, tun, *statePath)
	r.restore()

	srv := &http.Server{
		Addr:              *httpAddr,
		Handler:           newServeMux(r),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", *httpAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "err", err)
	}
	r.shutdown(shutdownCtx)
}

// openDecoder opens the SPI transport and runs the chip bring-up, retrying
// transient failures.
func openDecoder(logger *slog.Logger, slowPort, fastPort, xcsName, xdcsName, dreqName string, chunkSize int) (*vs1053.Device, error) {
	tr, err := spi.Open(slowPort, fastPort, spi.Pins{XCS: xcsName, XDCS: xdcsName, DREQ: dreqName})
	if err != nil {
		return nil, err
	}

	xcs, xdcs, dreq := tr.Pins()
	dev, err := vs1053.New(tr, xcs, xdcs, dreq,
		vs1053.WithLogger(logger),
		vs1053.WithChunkSize(chunkSize),
	)
	if err != nil {
		_ = tr.Close()
		return nil, err
	}

	err = vs1053.RetryWithConfig(context.Background(), vs1053.DefaultRetryConfig(), func() error {
		return dev.Begin()
	})
	if err != nil {
		_ = tr.Close()
		return nil, err
	}

	if !dev.IsChipConnected() {
		logger.Warn("decoder not responding on the status register")
	} else if version, err := dev.GetChipVersion(); err == nil {
		logger.Info("decoder online", "version", version)
	}

	if err := dev.SwitchToMP3Mode(); err != nil {
		_ = tr.Close()
		return nil, err
	}
	return dev, nil
}
