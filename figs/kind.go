// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figs

import "github.com/goki/ki/kit"

// Kind enumerates the paper figures the generator can render.
type Kind int32

//go:generate stringer -type=Kind

var KiT_Kind = kit.Enums.AddEnum(KindN, kit.NotBitFlag, nil)

func (ev Kind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// EvokedTraces is the mean evoked diameter response, per-animal
	// traces with grand mean overlay.
	EvokedTraces Kind = iota

	// EvokedScatter is evoked peak percent change vs time to peak.
	EvokedScatter

	// XCorrTraces is the whisking/diameter cross-correlation traces.
	XCorrTraces

	// XCorrLagSummary is the peak lag per animal, mean and SEM.
	XCorrLagSummary

	// CoherenceSpectra is the whisking/diameter coherence spectra.
	CoherenceSpectra

	// CoherenceSummary is the band-averaged coherence per animal.
	CoherenceSummary

	// DiamPower is the vessel diameter power spectra, log-log.
	DiamPower

	// WhiskPower is the whisking envelope power spectra, log-log.
	WhiskPower

	KindN
)
