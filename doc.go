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

/*
Package vs1053 provides a pure Go driver for the VLSI VS1053b audio decoder.

The VS1053b decodes MP3, AAC and Ogg Vorbis streams fed to it over a shared
SPI bus. The chip presents two logical interfaces on that bus: SCI, the
register command interface framed by the XCS chip select, and SDI, the raw
audio data interface framed by the XDCS chip select. A third line, DREQ,
signals that the chip's internal input buffer has room; it is the only flow
control mechanism the chip offers and every register write and every streamed
chunk must honour it.

This package implements the protocol state machine on top of small Bus and
pin interfaces so it can run against any SPI/GPIO backend. A periph.io backed
implementation for Linux boards lives in transport/spi.

Basic usage:

	import (
	    "github.com/ondes-project/go-vs1053"
	    "github.com/ondes-project/go-vs1053/transport/spi"
	)

	tr, err := spi.Open("SPI0.0", "SPI0.1", spi.Pins{
	    XCS:  "GPIO8",
	    XDCS: "GPIO25",
	    DREQ: "GPIO24",
	})
	if err != nil {
	    log.Fatal(err)
	}
	defer tr.Close()

	xcs, xdcs, dreq := tr.Pins()
	dev, err := vs1053.New(tr, xcs, xdcs, dreq)
	if err != nil {
	    log.Fatal(err)
	}

	if err := dev.Begin(); err != nil {
	    log.Fatal(err)
	}
	if err := dev.SwitchToMP3Mode(); err != nil {
	    log.Fatal(err)
	}

	dev.SetBalance(0)
	if err := dev.SetVolume(80); err != nil {
	    log.Fatal(err)
	}

	// Feed compressed audio in DREQ-paced chunks.
	if err := dev.PlayChunk(mp3Bytes, 0); err != nil {
	    log.Fatal(err)
	}
	if err := dev.StopSong(); err != nil {
	    log.Fatal(err)
	}

Bus speeds:

The chip is brought up with a conservative SPI clock because its internal
clock multiplier is still at x1.0. Begin raises the multiplier to x3.0 and
subsequent traffic may use the fast clock. The Bus interface therefore takes
an explicit speed per exchange; register reads always use the slow clock
since the SCI read ceiling is lower than the write ceiling.

Error Handling:

All operations return inspectable errors:

	if errors.Is(err, vs1053.ErrDataTimeout) {
	    // DREQ never asserted; chip wedged or missing
	}

Hardware faults abort only the current call. The driver never retries
internally; RetryWithConfig is available for callers that want bounded
retries around bring-up.

Thread Safety:

Device is NOT thread-safe. The command/data mode invariant spans whole
register and streaming calls, so concurrent callers must hold an external
mutex across the entire call, never merely across sub-steps.
*/
package vs1053
