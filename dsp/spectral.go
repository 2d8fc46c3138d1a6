// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// hann returns the Hann window of length n and the sum of its squares.
func hann(n int) ([]float64, float64) {
	w := make([]float64, n)
	ssq := 0.0
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		ssq += w[i] * w[i]
	}
	return w, ssq
}

// segments returns the start indices of overlapping Welch segments.
// overlap is a fraction in [0, 1); seg must fit within the signal.
func segments(n, seg int, overlap float64) ([]int, error) {
	if seg < 8 {
		return nil, fmt.Errorf("dsp: segment length %d too short", seg)
	}
	if seg > n {
		return nil, fmt.Errorf("dsp: segment length %d exceeds signal length %d", seg, n)
	}
	if overlap < 0 || overlap >= 1 {
		return nil, fmt.Errorf("dsp: overlap %g outside [0, 1)", overlap)
	}
	step := int(float64(seg) * (1 - overlap))
	if step < 1 {
		step = 1
	}
	var starts []int
	for st := 0; st+seg <= n; st += step {
		starts = append(starts, st)
	}
	return starts, nil
}

// specEst holds averaged auto- and cross-spectra over Welch segments.
type specEst struct {
	freqs    []float64
	pxx, pyy []float64
	pxy      []complex128
	nseg     int
}

// welchSpectra computes averaged windowed spectra for x (and y when
// non-nil, for cross-spectral estimates).  Each segment is demeaned and
// Hann windowed; scaling is one-sided density (power per Hz).
func welchSpectra(x, y []float64, fs float64, seg int, overlap float64) (*specEst, error) {
	if fs <= 0 {
		return nil, fmt.Errorf("dsp: non-positive sample rate %g", fs)
	}
	if y != nil && len(y) != len(x) {
		return nil, fmt.Errorf("dsp: signal lengths differ: %d vs %d", len(x), len(y))
	}
	starts, err := segments(len(x), seg, overlap)
	if err != nil {
		return nil, err
	}
	win, wssq := hann(seg)
	fft := fourier.NewFFT(seg)
	nf := seg/2 + 1
	est := &specEst{
		freqs: make([]float64, nf),
		pxx:   make([]float64, nf),
		nseg:  len(starts),
	}
	for i := range est.freqs {
		est.freqs[i] = fft.Freq(i) * fs
	}
	if y != nil {
		est.pyy = make([]float64, nf)
		est.pxy = make([]complex128, nf)
	}
	scale := 1 / (fs * wssq)
	bufx := make([]float64, seg)
	bufy := make([]float64, seg)
	for _, st := range starts {
		cx := windowed(x[st:st+seg], win, bufx)
		var cy []complex128
		if y != nil {
			cy = fft.Coefficients(nil, windowed(y[st:st+seg], win, bufy))
		}
		cfs := fft.Coefficients(nil, cx)
		for fi := 0; fi < nf; fi++ {
			est.pxx[fi] += real(cfs[fi])*real(cfs[fi]) + imag(cfs[fi])*imag(cfs[fi])
			if y != nil {
				est.pyy[fi] += real(cy[fi])*real(cy[fi]) + imag(cy[fi])*imag(cy[fi])
				est.pxy[fi] += cfs[fi] * cmplx.Conj(cy[fi])
			}
		}
	}
	// average and apply one-sided density scaling (interior bins doubled)
	for fi := 0; fi < nf; fi++ {
		sc := scale / float64(est.nseg)
		if fi > 0 && fi < nf-1 {
			sc *= 2
		}
		est.pxx[fi] *= sc
		if y != nil {
			est.pyy[fi] *= sc
			est.pxy[fi] *= complex(sc, 0)
		}
	}
	return est, nil
}

// windowed demeans src, multiplies by win into buf, and returns buf.
func windowed(src, win, buf []float64) []float64 {
	mn := stat.Mean(src, nil)
	for i := range src {
		buf[i] = (src[i] - mn) * win[i]
	}
	return buf
}

// Welch estimates the one-sided power spectral density of x via
// Hann-windowed averaged periodograms.  seg is the segment length in
// samples; overlap is the fractional overlap between segments.
func Welch(x []float64, fs float64, seg int, overlap float64) (freqs, psd []float64, err error) {
	est, err := welchSpectra(x, nil, fs, seg, overlap)
	if err != nil {
		return nil, nil, err
	}
	return est.freqs, est.pxx, nil
}

// Coherence estimates the magnitude-squared coherence between x and y.
// At least two segments are required: with a single segment the
// estimate is identically 1 regardless of the signals.
func Coherence(x, y []float64, fs float64, seg int, overlap float64) (freqs, coh []float64, err error) {
	if variance(x) == 0 || variance(y) == 0 {
		return nil, nil, fmt.Errorf("dsp.Coherence: zero-variance input")
	}
	est, err := welchSpectra(x, y, fs, seg, overlap)
	if err != nil {
		return nil, nil, err
	}
	if est.nseg < 2 {
		return nil, nil, fmt.Errorf("dsp.Coherence: only %d segment(s); need at least 2", est.nseg)
	}
	coh = make([]float64, len(est.freqs))
	for fi := range coh {
		den := est.pxx[fi] * est.pyy[fi]
		if den > 0 {
			m := cmplx.Abs(est.pxy[fi])
			coh[fi] = m * m / den
			if coh[fi] > 1 {
				coh[fi] = 1
			}
		}
	}
	return est.freqs, coh, nil
}

// BandMean returns the mean of vals over frequency band [lo, hi].
func BandMean(freqs, vals []float64, lo, hi float64) float64 {
	sum, n := 0.0, 0
	for i, f := range freqs {
		if f >= lo && f <= hi {
			sum += vals[i]
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func variance(x []float64) float64 {
	return stat.Variance(x, nil)
}
