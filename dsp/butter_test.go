// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import (
	"math"
	"testing"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-6

func TestButterworthDCGain(t *testing.T) {
	ft, err := Butterworth(4, 1, 30)
	if err != nil {
		t.Fatal(err)
	}
	n := 600
	x := make([]float64, n)
	for i := range x {
		x[i] = 2.5
	}
	y := ft.FiltFilt(x)
	for i := n / 4; i < 3*n/4; i++ {
		if math.Abs(y[i]-2.5) > 1e-3 {
			t.Errorf("DC gain err: idx: %v, y: %v, want 2.5", i, y[i])
		}
	}
}

func TestButterworthStopband(t *testing.T) {
	fs := 150.0
	ft, err := Butterworth(4, 5, fs)
	if err != nil {
		t.Fatal(err)
	}
	n := 3000
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 20 * float64(i) / fs)
	}
	y := ft.FiltFilt(x)
	if r := rms(y[n/4:3*n/4]) / rms(x[n/4:3*n/4]); r > 0.05 {
		t.Errorf("stopband err: 20 Hz attenuation ratio %v > 0.05", r)
	}
}

func TestButterworthPassband(t *testing.T) {
	fs := 5.0
	ft, err := Butterworth(4, 1, fs)
	if err != nil {
		t.Fatal(err)
	}
	n := 1500
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 0.1 * float64(i) / fs)
	}
	y := ft.FiltFilt(x)
	if r := rms(y[n/4:3*n/4]) / rms(x[n/4:3*n/4]); math.Abs(r-1) > 0.05 {
		t.Errorf("passband err: 0.1 Hz gain %v, want ~1", r)
	}
}

func TestFiltFiltZeroPhase(t *testing.T) {
	fs := 30.0
	ft, err := Butterworth(4, 2, fs)
	if err != nil {
		t.Fatal(err)
	}
	n := 1200
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 0.5 * float64(i) / fs)
	}
	y := ft.FiltFilt(x)
	lags, cc, err := XCorr(x, y, 20)
	if err != nil {
		t.Fatal(err)
	}
	_, lag := PeakCorr(lags, cc)
	if lag != 0 {
		t.Errorf("zero phase err: peak correlation at lag %v, want 0", lag)
	}
}

func TestButterworthErrors(t *testing.T) {
	if _, err := Butterworth(3, 1, 30); err == nil {
		t.Errorf("expected error for odd order")
	}
	if _, err := Butterworth(4, 20, 30); err == nil {
		t.Errorf("expected error for cutoff above Nyquist")
	}
	if _, err := Butterworth(4, 0, 30); err == nil {
		t.Errorf("expected error for zero cutoff")
	}
	if _, err := Butterworth(4, 1, 0); err == nil {
		t.Errorf("expected error for zero sample rate")
	}
}

func rms(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v * v
	}
	return math.Sqrt(s / float64(len(x)))
}
