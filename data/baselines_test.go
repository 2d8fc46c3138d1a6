// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"math"
	"testing"
)

func testBaselines() *RestingBaselines {
	return &RestingBaselines{
		AnimalID: "T72",
		Days: []Baseline{
			{Date: "220310", VesselID: "A1", DiamMean: 20, DiamStd: 1.5},
			{Date: "220310", VesselID: "A2", DiamMean: 35, DiamStd: 2.1},
			{Date: "220312", VesselID: "A1", DiamMean: 21, DiamStd: 1.2},
		},
	}
}

func TestBaselinesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rb := testBaselines()
	if err := rb.Save(dir); err != nil {
		t.Fatal(err)
	}
	got, err := OpenRestingBaselines(BaselinesPath(dir, rb.AnimalID))
	if err != nil {
		t.Fatal(err)
	}
	if got.AnimalID != rb.AnimalID {
		t.Errorf("animal err: %v, want %v", got.AnimalID, rb.AnimalID)
	}
	if len(got.Days) != len(rb.Days) {
		t.Fatalf("days err: %v, want %v", len(got.Days), len(rb.Days))
	}
	for i, bl := range rb.Days {
		gb := got.Days[i]
		if gb.Date != bl.Date || gb.VesselID != bl.VesselID {
			t.Errorf("day err: idx: %v, got: %+v, want %+v", i, gb, bl)
		}
		if math.Abs(gb.DiamMean-bl.DiamMean) > difTol || math.Abs(gb.DiamStd-bl.DiamStd) > difTol {
			t.Errorf("stat err: idx: %v, got: %+v, want %+v", i, gb, bl)
		}
	}
}

func TestBaselineLookup(t *testing.T) {
	rb := testBaselines()
	bl, err := rb.Baseline("220312", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(bl.DiamMean-21) > difTol {
		t.Errorf("lookup err: %+v", bl)
	}
	if _, err := rb.Baseline("220399", "A1"); err == nil {
		t.Errorf("expected error for missing day")
	}
	if _, err := rb.Baseline("220310", "A9"); err == nil {
		t.Errorf("expected error for missing vessel")
	}
}

func TestNormalizeDiameter(t *testing.T) {
	bl := Baseline{Date: "220310", VesselID: "A1", DiamMean: 20, DiamStd: 1}
	nrm, err := NormalizeDiameter([]float64{20, 22, 18}, bl)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 10, -10}
	for i := range want {
		if math.Abs(nrm[i]-want[i]) > difTol {
			t.Errorf("normalize err: idx: %v, got: %v, want %v", i, nrm[i], want[i])
		}
	}
	bl.DiamMean = 0
	if _, err := NormalizeDiameter([]float64{20}, bl); err == nil {
		t.Errorf("expected error for non-positive baseline")
	}
}
