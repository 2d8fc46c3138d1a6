// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dsp provides the signal conditioning used by the analysis
// passes: Butterworth low-pass filtering applied zero-phase, Welch
// power spectral density, magnitude-squared coherence, normalized
// cross-correlation, and linear resampling.
package dsp

import (
	"fmt"
	"math"
)

// Section is one second-order (biquad) filter section in Direct Form II
// Transposed, with a0 normalized to 1.
type Section struct {
	B0, B1, B2 float64 `desc:"feedforward coefficients"`
	A1, A2     float64 `desc:"feedback coefficients (a0 = 1)"`
}

// process runs the section over x into y (may alias), fresh state.
func (sc *Section) process(x, y []float64) {
	var s1, s2 float64
	for i, xv := range x {
		yv := sc.B0*xv + s1
		s1 = sc.B1*xv - sc.A1*yv + s2
		s2 = sc.B2*xv - sc.A2*yv
		y[i] = yv
	}
}

// Filter is a cascade of biquad sections.  Higher-order Butterworth
// filters are realized as cascaded second-order sections, which keeps
// the coefficients well conditioned at low cutoff fractions.
type Filter struct {
	Secs []Section `desc:"cascaded second-order sections"`
}

// Butterworth designs a low-pass Butterworth filter of the given
// (even) order via the bilinear transform.  cutoffHz must lie strictly
// between 0 and the Nyquist frequency sampleHz/2.
func Butterworth(order int, cutoffHz, sampleHz float64) (*Filter, error) {
	if order < 2 || order%2 != 0 {
		return nil, fmt.Errorf("dsp.Butterworth: order must be even and >= 2, got %d", order)
	}
	if sampleHz <= 0 {
		return nil, fmt.Errorf("dsp.Butterworth: non-positive sample rate %g", sampleHz)
	}
	if cutoffHz <= 0 || cutoffHz >= sampleHz/2 {
		return nil, fmt.Errorf("dsp.Butterworth: cutoff %g Hz outside (0, %g) for sample rate %g Hz", cutoffHz, sampleHz/2, sampleHz)
	}
	w0 := 2 * math.Pi * cutoffHz / sampleHz
	cw, sw := math.Cos(w0), math.Sin(w0)
	ns := order / 2
	ft := &Filter{Secs: make([]Section, ns)}
	for k := 0; k < ns; k++ {
		// pole quality for the k-th Butterworth conjugate pair
		q := 1 / (2 * math.Sin(math.Pi*float64(2*k+1)/float64(2*order)))
		alpha := sw / (2 * q)
		a0 := 1 + alpha
		ft.Secs[k] = Section{
			B0: (1 - cw) / 2 / a0,
			B1: (1 - cw) / a0,
			B2: (1 - cw) / 2 / a0,
			A1: -2 * cw / a0,
			A2: (1 - alpha) / a0,
		}
	}
	return ft, nil
}

// Filter applies the cascade forward over x with fresh state, returning
// a new slice.
func (ft *Filter) Filter(x []float64) []float64 {
	y := make([]float64, len(x))
	copy(y, x)
	for si := range ft.Secs {
		ft.Secs[si].process(y, y)
	}
	return y
}

// FiltFilt applies the cascade forward and backward for zero phase
// distortion.  The input is extended at both ends by odd reflection to
// suppress startup transients, matching the standard filtfilt scheme.
func (ft *Filter) FiltFilt(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	pad := 12 * len(ft.Secs)
	if pad > n-1 {
		pad = n - 1
	}
	ext := make([]float64, pad+n+pad)
	for i := 0; i < pad; i++ {
		ext[i] = 2*x[0] - x[pad-i]
		ext[pad+n+i] = 2*x[n-1] - x[n-2-i]
	}
	copy(ext[pad:], x)

	y := ft.Filter(ext)
	reverse(y)
	y = ft.Filter(y)
	reverse(y)

	out := make([]float64, n)
	copy(out, y[pad:pad+n])
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
