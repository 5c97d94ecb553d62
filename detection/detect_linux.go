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

//go:build linux

package detection

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// i2cFuncs is the I2C_FUNCS ioctl request.
const i2cFuncs = 0x0705

func detectAll(opts *Options) ([]DeviceInfo, error) {
	var devices []DeviceInfo

	if opts.wants(TransportSPI) {
		paths, err := filepath.Glob("/dev/spidev*")
		if err != nil {
			return nil, fmt.Errorf("failed to scan spidev nodes: %w", err)
		}
		for _, path := range paths {
			bus, cs, ok := parseSPIName(filepath.Base(path))
			if !ok {
				continue
			}
			devices = append(devices, DeviceInfo{
				Path: path,
				Kind: TransportSPI,
				Metadata: map[string]string{
					"bus": bus,
					"cs":  cs,
				},
			})
		}
	}

	if opts.wants(TransportI2C) {
		paths, err := filepath.Glob("/dev/i2c-*")
		if err != nil {
			return nil, fmt.Errorf("failed to scan i2c-dev nodes: %w", err)
		}
		for _, path := range paths {
			bus, ok := parseI2CName(filepath.Base(path))
			if !ok {
				continue
			}
			info := DeviceInfo{
				Path:     path,
				Kind:     TransportI2C,
				Metadata: map[string]string{"bus": bus},
			}
			if funcs, err := i2cFunctionality(path); err == nil {
				info.Metadata["funcs"] = fmt.Sprintf("%#x", funcs)
			}
			devices = append(devices, info)
		}
	}

	return devices, nil
}

// i2cFunctionality queries the adapter's functionality bitmask. Failure is
// not fatal; the node may simply be busy or permission-restricted.
func i2cFunctionality(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = unix.Close(fd) }()

	funcs, err := unix.IoctlGetInt(fd, i2cFuncs)
	if err != nil {
		return 0, fmt.Errorf("I2C_FUNCS ioctl on %s failed: %w", path, err)
	}
	return funcs, nil
}
