// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import (
	"math"
	"testing"
)

// noise is a deterministic pseudo-noise source for tests.
type noise struct {
	state uint64
}

func (nz *noise) next() float64 {
	nz.state = nz.state*6364136223846793005 + 1442695040888963407
	return float64(nz.state>>11)/float64(1<<53)*2 - 1
}

func TestWelchPeak(t *testing.T) {
	fs := 10.0
	n := 2048
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 0.5 * float64(i) / fs)
	}
	freqs, psd, err := Welch(x, fs, 256, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	pi := 0
	for i := range psd {
		if psd[i] > psd[pi] {
			pi = i
		}
	}
	df := freqs[1] - freqs[0]
	if math.Abs(freqs[pi]-0.5) > df {
		t.Errorf("peak err: at %v Hz, want 0.5 +/- %v", freqs[pi], df)
	}
	// total power of a unit sine is 1/2
	tot := 0.0
	for _, p := range psd {
		tot += p * df
	}
	if math.Abs(tot-0.5) > 0.05 {
		t.Errorf("power err: integrated PSD %v, want ~0.5", tot)
	}
}

func TestWelchErrors(t *testing.T) {
	x := make([]float64, 100)
	if _, _, err := Welch(x, 10, 256, 0.5); err == nil {
		t.Errorf("expected error for segment longer than signal")
	}
	if _, _, err := Welch(x, 10, 64, 1.0); err == nil {
		t.Errorf("expected error for overlap >= 1")
	}
	if _, _, err := Welch(x, 0, 64, 0.5); err == nil {
		t.Errorf("expected error for zero sample rate")
	}
}

func TestCoherenceIdentical(t *testing.T) {
	fs := 5.0
	n := 1500
	nz := &noise{state: 42}
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2*math.Pi*0.1*float64(i)/fs) + 0.2*nz.next()
	}
	freqs, coh, err := Coherence(x, x, fs, 250, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	for i := range freqs {
		if coh[i] < 0.99 {
			t.Errorf("identical coherence err: %v at %v Hz, want ~1", coh[i], freqs[i])
		}
	}
}

func TestCoherenceIndependent(t *testing.T) {
	fs := 5.0
	n := 3000
	nx := &noise{state: 7}
	ny := &noise{state: 99991}
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = nx.next()
		y[i] = ny.next()
	}
	freqs, coh, err := Coherence(x, y, fs, 250, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	mean := 0.0
	for _, c := range coh {
		mean += c
	}
	mean /= float64(len(freqs))
	if mean > 0.25 {
		t.Errorf("independent coherence err: mean %v, want low", mean)
	}
}

func TestCoherenceErrors(t *testing.T) {
	n := 600
	x := make([]float64, n)
	y := make([]float64, n)
	nz := &noise{state: 3}
	for i := range y {
		y[i] = nz.next()
	}
	if _, _, err := Coherence(x, y, 5, 100, 0.5); err == nil {
		t.Errorf("expected error for zero-variance input")
	}
	for i := range x {
		x[i] = nz.next()
	}
	if _, _, err := Coherence(x, y, 5, n, 0.5); err == nil {
		t.Errorf("expected error for single segment")
	}
}

func TestBandMean(t *testing.T) {
	freqs := []float64{0, 0.05, 0.1, 0.15, 0.2}
	vals := []float64{1, 2, 3, 4, 5}
	if bm := BandMean(freqs, vals, 0.05, 0.15); math.Abs(bm-3) > difTol {
		t.Errorf("band mean err: %v, want 3", bm)
	}
	if bm := BandMean(freqs, vals, 1, 2); !math.IsNaN(bm) {
		t.Errorf("band mean err: %v, want NaN for empty band", bm)
	}
}
