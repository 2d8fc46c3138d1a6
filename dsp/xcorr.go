// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// XCorr computes the normalized cross-correlation of x and y over lags
// [-maxLag, +maxLag].  Both signals are demeaned; coefficients are
// normalized by the zero-lag energies so values lie in [-1, 1].  A
// positive lag means y trails x by that many samples.
func XCorr(x, y []float64, maxLag int) (lags []int, cc []float64, err error) {
	n := len(x)
	if len(y) != n {
		return nil, nil, fmt.Errorf("dsp.XCorr: signal lengths differ: %d vs %d", n, len(y))
	}
	if maxLag < 0 || maxLag >= n {
		return nil, nil, fmt.Errorf("dsp.XCorr: maxLag %d outside [0, %d)", maxLag, n)
	}
	xc := demeaned(x)
	yc := demeaned(y)
	den := math.Sqrt(floats.Dot(xc, xc)) * math.Sqrt(floats.Dot(yc, yc))
	if den == 0 {
		return nil, nil, fmt.Errorf("dsp.XCorr: zero-variance input")
	}
	nl := 2*maxLag + 1
	lags = make([]int, nl)
	cc = make([]float64, nl)
	for li := 0; li < nl; li++ {
		lag := li - maxLag
		lags[li] = lag
		sum := 0.0
		for t := 0; t < n; t++ {
			u := t + lag
			if u < 0 || u >= n {
				continue
			}
			sum += xc[t] * yc[u]
		}
		cc[li] = sum / den
	}
	return lags, cc, nil
}

// PeakCorr returns the extreme coefficient (largest absolute value) and
// its lag from an XCorr result.
func PeakCorr(lags []int, cc []float64) (peak float64, lag int) {
	for i, c := range cc {
		if math.Abs(c) > math.Abs(peak) {
			peak = c
			lag = lags[i]
		}
	}
	return peak, lag
}

// Resample converts x from fromRate to toRate by linear interpolation.
// Used to bring behavioral streams down to the two-photon frame rate
// before correlating against vessel diameter.
func Resample(x []float64, fromRate, toRate float64) ([]float64, error) {
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("dsp.Resample: non-positive rate (%g -> %g)", fromRate, toRate)
	}
	if len(x) == 0 {
		return nil, nil
	}
	dur := float64(len(x)) / fromRate
	no := int(math.Round(dur * toRate))
	out := make([]float64, no)
	for i := range out {
		pos := float64(i) / toRate * fromRate
		lo := int(pos)
		if lo >= len(x)-1 {
			out[i] = x[len(x)-1]
			continue
		}
		frac := pos - float64(lo)
		out[i] = x[lo]*(1-frac) + x[lo+1]*frac
	}
	return out, nil
}

// Velocity returns the first difference of x scaled to units per
// second.  Output has the same length as x (first sample repeated).
func Velocity(x []float64, fs float64) []float64 {
	v := make([]float64, len(x))
	for i := 1; i < len(x); i++ {
		v[i] = (x[i] - x[i-1]) * fs
	}
	if len(x) > 1 {
		v[0] = v[1]
	}
	return v
}

// AbsEnvelope returns the rectified (absolute value) signal, used as
// the whisking movement envelope before low-pass smoothing.
func AbsEnvelope(x []float64) []float64 {
	e := make([]float64, len(x))
	for i, v := range x {
		e[i] = math.Abs(v)
	}
	return e
}

func demeaned(x []float64) []float64 {
	mn := stat.Mean(x, nil)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - mn
	}
	return out
}
