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

// Package detection enumerates the SPI and I2C device nodes a decoder or
// tuner could be attached to. It reports candidate buses, not chips: whether
// a VS1053b actually answers on a port is the driver's job to find out.
package detection

import (
	"errors"
	"sort"
	"strings"
)

// TransportKind identifies a bus type.
type TransportKind string

const (
	// TransportSPI is a spidev node, candidate for the decoder.
	TransportSPI TransportKind = "spi"
	// TransportI2C is an i2c-dev node, candidate for the FM tuner.
	TransportI2C TransportKind = "i2c"
)

// ErrNoDevicesFound is returned when no matching device nodes exist.
var ErrNoDevicesFound = errors.New("no devices found")

// DeviceInfo describes one detected device node.
type DeviceInfo struct {
	// Path is the device node path, e.g. "/dev/spidev0.0".
	Path string
	// Kind is the bus type.
	Kind TransportKind
	// Metadata carries bus-specific details such as the SPI bus and chip
	// select numbers or the I2C functionality bitmask.
	Metadata map[string]string
}

// Options filters detection.
type Options struct {
	// Kinds restricts the bus types to scan; empty means all.
	Kinds []TransportKind
}

func (o *Options) wants(kind TransportKind) bool {
	if o == nil || len(o.Kinds) == 0 {
		return true
	}
	for _, k := range o.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// DetectAll scans the platform for candidate device nodes. The result is
// sorted by path; ErrNoDevicesFound is returned when nothing matches.
func DetectAll(opts *Options) ([]DeviceInfo, error) {
	devices, err := detectAll(opts)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrNoDevicesFound
	}
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].Path < devices[j].Path
	})
	return devices, nil
}

// parseSPIName extracts the bus and chip select numbers from a spidev node
// name such as "spidev0.1".
func parseSPIName(name string) (bus, cs string, ok bool) {
	rest, found := strings.CutPrefix(name, "spidev")
	if !found {
		return "", "", false
	}
	bus, cs, found = strings.Cut(rest, ".")
	if !found || bus == "" || cs == "" {
		return "", "", false
	}
	return bus, cs, true
}

// parseI2CName extracts the bus number from an i2c-dev node name such as
// "i2c-1".
func parseI2CName(name string) (bus string, ok bool) {
	bus, found := strings.CutPrefix(name, "i2c-")
	if !found || bus == "" {
		return "", false
	}
	return bus, true
}
