// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"math"
	"testing"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
)

func testSpec() *SpecData {
	sd := &SpecData{
		FileKey: FileKey{AnimalID: "T72", VesselID: "A1", FileID: "001", ImageID: "A"},
		Date:    "220310",
		Freqs:   []float64{2, 4, 6},
		Times:   []float64{0, 1, 2, 3},
	}
	sd.Power = make([][]float64, len(sd.Freqs))
	for fi := range sd.Power {
		row := make([]float64, len(sd.Times))
		for ti := range row {
			row[ti] = float64(fi*10 + ti)
		}
		sd.Power[fi] = row
	}
	return sd
}

func TestSpecRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sd := testSpec()
	if err := sd.Save(dir); err != nil {
		t.Fatal(err)
	}
	got, err := OpenSpecData(SpecPath(dir, sd.FileKey))
	if err != nil {
		t.Fatal(err)
	}
	if got.FileKey != sd.FileKey || got.Date != sd.Date {
		t.Errorf("identity err: %+v", got)
	}
	if len(got.Freqs) != 3 || len(got.Times) != 4 {
		t.Fatalf("axes err: %v freqs, %v times", len(got.Freqs), len(got.Times))
	}
	for fi := range sd.Power {
		for ti := range sd.Power[fi] {
			if math.Abs(got.Power[fi][ti]-sd.Power[fi][ti]) > difTol {
				t.Errorf("power err: [%v][%v]: got %v, want %v", fi, ti, got.Power[fi][ti], sd.Power[fi][ti])
			}
		}
	}
}

func TestSpecShapeValidation(t *testing.T) {
	dir := t.TempDir()
	fk := FileKey{AnimalID: "T72", VesselID: "A1", FileID: "002", ImageID: "A"}
	// Power is 2x4 but the Freqs axis has 3 entries
	dt := &etable.Table{}
	sch := etable.Schema{
		{"AnimalID", etensor.STRING, nil, nil},
		{"VesselID", etensor.STRING, nil, nil},
		{"FileID", etensor.STRING, nil, nil},
		{"ImageID", etensor.STRING, nil, nil},
		{"Date", etensor.STRING, nil, nil},
		{"Freqs", etensor.FLOAT64, []int{3}, nil},
		{"Times", etensor.FLOAT64, []int{4}, nil},
		{"Power", etensor.FLOAT64, []int{2, 4}, []string{"Freq", "Time"}},
	}
	dt.SetFromSchema(sch, 1)
	dt.SetCellString("AnimalID", 0, fk.AnimalID)
	dt.SetCellString("VesselID", 0, fk.VesselID)
	dt.SetCellString("FileID", 0, fk.FileID)
	dt.SetCellString("ImageID", 0, fk.ImageID)
	dt.SetCellString("Date", 0, "220310")
	if err := dt.SaveCSV(gi.FileName(SpecPath(dir, fk)), etable.Tab, etable.Headers); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenSpecData(SpecPath(dir, fk)); err == nil {
		t.Errorf("expected shape mismatch error")
	}
}
