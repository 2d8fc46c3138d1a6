// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"fmt"
	"math"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
)

// Default stream sampling rates (Hz) and trial duration (sec) for the
// two-photon experiments.  Each record carries its own values; these
// are used when synthesizing records.
const (
	DefWhiskerRate   = 150
	DefForceRate     = 30
	DefVesselRate    = 5
	DefTrialDuration = 280
)

// MergedData is one trial: the behavioral sensor streams merged with
// the imaging-derived vessel diameter, each at its own sampling rate.
type MergedData struct {
	FileKey
	Date          string    `desc:"recording date, keys the resting baseline"`
	Behavior      string    `desc:"behavioral state label for the trial"`
	TrialDuration float64   `desc:"trial duration in seconds"`
	WhiskerRate   float64   `desc:"whisker angle sampling rate, Hz"`
	ForceRate     float64   `desc:"force sensor sampling rate, Hz"`
	VesselRate    float64   `desc:"vessel diameter sampling rate, Hz (two-photon frame rate)"`
	WhiskerAngle  []float64 `desc:"whisker angle, degrees"`
	ForceSensor   []float64 `desc:"force sensor, volts"`
	VesselDiam    []float64 `desc:"vessel diameter, microns"`
	StimTimes     []float64 `desc:"whisker stimulation event times, sec; empty for resting trials"`
}

// StimTimes is optional: resting trials have no stimulation events and
// omit the column entirely (a zero-width tensor column does not survive
// the TSV round trip).
var mergedCols = []string{"AnimalID", "VesselID", "FileID", "ImageID", "Date", "Behavior",
	"TrialDuration", "WhiskerRate", "ForceRate", "VesselRate",
	"WhiskerAngle", "ForceSensor", "VesselDiam"}

// OpenMergedData loads one MergedData TSV record and validates its
// stream lengths against rate * duration (one sample of slack allowed).
func OpenMergedData(path string) (*MergedData, error) {
	dt, err := openTable(path, mergedCols)
	if err != nil {
		return nil, err
	}
	md := &MergedData{
		FileKey: FileKey{
			AnimalID: dt.CellString("AnimalID", 0),
			VesselID: dt.CellString("VesselID", 0),
			FileID:   dt.CellString("FileID", 0),
			ImageID:  dt.CellString("ImageID", 0),
		},
		Date:          dt.CellString("Date", 0),
		Behavior:      dt.CellString("Behavior", 0),
		TrialDuration: dt.CellFloat("TrialDuration", 0),
		WhiskerRate:   dt.CellFloat("WhiskerRate", 0),
		ForceRate:     dt.CellFloat("ForceRate", 0),
		VesselRate:    dt.CellFloat("VesselRate", 0),
		WhiskerAngle:  cellFloats(dt, "WhiskerAngle", 0),
		ForceSensor:   cellFloats(dt, "ForceSensor", 0),
		VesselDiam:    cellFloats(dt, "VesselDiam", 0),
		StimTimes:     optCellFloats(dt, "StimTimes", 0),
	}
	if err := md.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return md, nil
}

// Validate checks the per-stream sample counts against the stream rate
// and trial duration.
func (md *MergedData) Validate() error {
	if md.TrialDuration <= 0 {
		return fmt.Errorf("MergedData %s: non-positive trial duration %g", md.Stem(), md.TrialDuration)
	}
	streams := []struct {
		nm   string
		rate float64
		n    int
	}{
		{"WhiskerAngle", md.WhiskerRate, len(md.WhiskerAngle)},
		{"ForceSensor", md.ForceRate, len(md.ForceSensor)},
		{"VesselDiam", md.VesselRate, len(md.VesselDiam)},
	}
	for _, st := range streams {
		if st.rate <= 0 {
			return fmt.Errorf("MergedData %s: non-positive rate for %s", md.Stem(), st.nm)
		}
		want := st.rate * md.TrialDuration
		if math.Abs(float64(st.n)-want) > 1 {
			return fmt.Errorf("MergedData %s: %s has %d samples, want %g (rate %g Hz x %g sec)",
				md.Stem(), st.nm, st.n, want, st.rate, md.TrialDuration)
		}
	}
	for _, stm := range md.StimTimes {
		if stm < 0 || stm > md.TrialDuration {
			return fmt.Errorf("MergedData %s: stim time %g outside trial [0, %g]", md.Stem(), stm, md.TrialDuration)
		}
	}
	return nil
}

// Table renders the record as a one-row etable for saving.
func (md *MergedData) Table() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "MergedData")
	dt.SetMetaData("desc", "one trial of merged behavioral and vessel diameter streams")
	sch := etable.Schema{
		{"AnimalID", etensor.STRING, nil, nil},
		{"VesselID", etensor.STRING, nil, nil},
		{"FileID", etensor.STRING, nil, nil},
		{"ImageID", etensor.STRING, nil, nil},
		{"Date", etensor.STRING, nil, nil},
		{"Behavior", etensor.STRING, nil, nil},
		{"TrialDuration", etensor.FLOAT64, nil, nil},
		{"WhiskerRate", etensor.FLOAT64, nil, nil},
		{"ForceRate", etensor.FLOAT64, nil, nil},
		{"VesselRate", etensor.FLOAT64, nil, nil},
		{"WhiskerAngle", etensor.FLOAT64, []int{len(md.WhiskerAngle)}, nil},
		{"ForceSensor", etensor.FLOAT64, []int{len(md.ForceSensor)}, nil},
		{"VesselDiam", etensor.FLOAT64, []int{len(md.VesselDiam)}, nil},
	}
	if len(md.StimTimes) > 0 {
		sch = append(sch, etable.Column{"StimTimes", etensor.FLOAT64, []int{len(md.StimTimes)}, nil})
	}
	dt.SetFromSchema(sch, 1)
	dt.SetCellString("AnimalID", 0, md.AnimalID)
	dt.SetCellString("VesselID", 0, md.VesselID)
	dt.SetCellString("FileID", 0, md.FileID)
	dt.SetCellString("ImageID", 0, md.ImageID)
	dt.SetCellString("Date", 0, md.Date)
	dt.SetCellString("Behavior", 0, md.Behavior)
	dt.SetCellFloat("TrialDuration", 0, md.TrialDuration)
	dt.SetCellFloat("WhiskerRate", 0, md.WhiskerRate)
	dt.SetCellFloat("ForceRate", 0, md.ForceRate)
	dt.SetCellFloat("VesselRate", 0, md.VesselRate)
	setCellFloats(dt, "WhiskerAngle", 0, md.WhiskerAngle)
	setCellFloats(dt, "ForceSensor", 0, md.ForceSensor)
	setCellFloats(dt, "VesselDiam", 0, md.VesselDiam)
	if len(md.StimTimes) > 0 {
		setCellFloats(dt, "StimTimes", 0, md.StimTimes)
	}
	return dt
}

// Save writes the record as a TSV file under dir using the standard
// naming convention.
func (md *MergedData) Save(dir string) error {
	return md.Table().SaveCSV(gi.FileName(MergedPath(dir, md.FileKey)), etable.Tab, etable.Headers)
}
