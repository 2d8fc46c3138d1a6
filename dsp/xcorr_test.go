// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import (
	"math"
	"testing"
)

func TestXCorrKnownLag(t *testing.T) {
	n := 1000
	shift := 5
	nz := &noise{state: 1234}
	src := make([]float64, n+shift)
	for i := range src {
		src[i] = nz.next()
	}
	x := src[shift:] // x[t] = src[t+shift]
	y := src[:n]     // y[t] = src[t] = x[t-shift], y trails x
	lags, cc, err := XCorr(x, y, 20)
	if err != nil {
		t.Fatal(err)
	}
	peak, lag := PeakCorr(lags, cc)
	if lag != shift {
		t.Errorf("lag err: peak at %v, want %v", lag, shift)
	}
	if peak < 0.9 {
		t.Errorf("peak err: %v, want > 0.9", peak)
	}
}

func TestXCorrIdentity(t *testing.T) {
	n := 500
	nz := &noise{state: 777}
	x := make([]float64, n)
	for i := range x {
		x[i] = nz.next()
	}
	lags, cc, err := XCorr(x, x, 10)
	if err != nil {
		t.Fatal(err)
	}
	peak, lag := PeakCorr(lags, cc)
	if lag != 0 {
		t.Errorf("lag err: peak at %v, want 0", lag)
	}
	if math.Abs(peak-1) > difTol {
		t.Errorf("peak err: %v, want 1", peak)
	}
}

func TestXCorrErrors(t *testing.T) {
	x := make([]float64, 100)
	y := make([]float64, 99)
	if _, _, err := XCorr(x, y, 10); err == nil {
		t.Errorf("expected error for length mismatch")
	}
	y = append(y, 0)
	if _, _, err := XCorr(x, y, 100); err == nil {
		t.Errorf("expected error for maxLag >= n")
	}
	if _, _, err := XCorr(x, y, 10); err == nil {
		t.Errorf("expected error for zero-variance input")
	}
}

func TestResample(t *testing.T) {
	x := make([]float64, 100)
	for i := range x {
		x[i] = float64(i)
	}
	y, err := Resample(x, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(y) != 50 {
		t.Fatalf("length err: %v, want 50", len(y))
	}
	for i := 0; i < 49; i++ {
		want := float64(i) * 2
		if math.Abs(y[i]-want) > difTol {
			t.Errorf("resample err: idx: %v, y: %v, want %v", i, y[i], want)
		}
	}
}

func TestVelocityEnvelope(t *testing.T) {
	x := []float64{0, 1, 2, 1, 0}
	v := Velocity(x, 10)
	want := []float64{10, 10, 10, -10, -10}
	for i := range v {
		if math.Abs(v[i]-want[i]) > difTol {
			t.Errorf("velocity err: idx: %v, v: %v, want %v", i, v[i], want[i])
		}
	}
	e := AbsEnvelope(v)
	for i := range e {
		if math.Abs(e[i]-10) > difTol {
			t.Errorf("envelope err: idx: %v, e: %v, want 10", i, e[i])
		}
	}
}
