// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import "github.com/goki/ki/kit"

// Kind is the analysis pass: each pass appends its own result table to
// the per-animal comparison data.
type Kind int32

//go:generate stringer -type=Kind

var KiT_Kind = kit.Enums.AddEnum(KindN, kit.NotBitFlag, nil)

func (ev Kind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Evoked is the stimulation-evoked diameter response pass.
	Evoked Kind = iota

	// XCorr is the whisking / diameter cross-correlation pass.
	XCorr

	// Coherence is the whisking / diameter coherence pass.
	Coherence

	// Power is the diameter and whisking power spectrum pass.
	Power

	KindN
)
