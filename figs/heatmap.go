// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figs

import (
	"github.com/nvclab/vesselfigs/data"
)

// SpecGrid adapts SpecData to the plotter.GridXYZ interface for heatmap
// rendering: columns are time bins, rows are frequency bins.
type SpecGrid struct {
	SD *data.SpecData
}

// Dims returns (columns, rows) = (time bins, frequency bins).
func (sg SpecGrid) Dims() (c, r int) {
	return len(sg.SD.Times), len(sg.SD.Freqs)
}

// Z returns the normalized power at (time bin c, frequency bin r).
func (sg SpecGrid) Z(c, r int) float64 {
	return sg.SD.Power[r][c]
}

// X returns the time (sec) of column c.
func (sg SpecGrid) X(c int) float64 {
	return sg.SD.Times[c]
}

// Y returns the frequency (Hz) of row r.
func (sg SpecGrid) Y(r int) float64 {
	return sg.SD.Freqs[r]
}
