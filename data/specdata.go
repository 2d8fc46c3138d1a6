// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"fmt"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
)

// SpecData is the precomputed time-frequency spectrogram of the neural
// (LFP) signal for one trial.  Power is stored normalized (dB relative
// to the session resting power), row-major [freq][time].
type SpecData struct {
	FileKey
	Date  string      `desc:"recording date"`
	Freqs []float64   `desc:"frequency axis, Hz"`
	Times []float64   `desc:"time axis, sec"`
	Power [][]float64 `desc:"normalized LFP power, [freq][time]"`
}

var specCols = []string{"AnimalID", "VesselID", "FileID", "ImageID", "Date", "Freqs", "Times", "Power"}

// OpenSpecData loads one SpecData TSV record and validates the power
// matrix shape against its axes.
func OpenSpecData(path string) (*SpecData, error) {
	dt, err := openTable(path, specCols)
	if err != nil {
		return nil, err
	}
	sd := &SpecData{
		FileKey: FileKey{
			AnimalID: dt.CellString("AnimalID", 0),
			VesselID: dt.CellString("VesselID", 0),
			FileID:   dt.CellString("FileID", 0),
			ImageID:  dt.CellString("ImageID", 0),
		},
		Date:  dt.CellString("Date", 0),
		Freqs: cellFloats(dt, "Freqs", 0),
		Times: cellFloats(dt, "Times", 0),
	}
	pw := dt.CellTensor("Power", 0)
	if pw.NumDims() != 2 {
		return nil, fmt.Errorf("data: %s: Power cell must be 2D, got %d dims", path, pw.NumDims())
	}
	nf, nt := pw.Dim(0), pw.Dim(1)
	if nf != len(sd.Freqs) || nt != len(sd.Times) {
		return nil, fmt.Errorf("data: %s: Power is %dx%d but axes are %d freqs x %d times",
			path, nf, nt, len(sd.Freqs), len(sd.Times))
	}
	sd.Power = make([][]float64, nf)
	for fi := 0; fi < nf; fi++ {
		row := make([]float64, nt)
		for ti := 0; ti < nt; ti++ {
			row[ti] = pw.FloatVal1D(fi*nt + ti)
		}
		sd.Power[fi] = row
	}
	return sd, nil
}

// Table renders the record as a one-row etable for saving.
func (sd *SpecData) Table() *etable.Table {
	nf, nt := len(sd.Freqs), len(sd.Times)
	dt := &etable.Table{}
	dt.SetMetaData("name", "SpecData")
	dt.SetMetaData("desc", "normalized LFP spectrogram for one trial")
	sch := etable.Schema{
		{"AnimalID", etensor.STRING, nil, nil},
		{"VesselID", etensor.STRING, nil, nil},
		{"FileID", etensor.STRING, nil, nil},
		{"ImageID", etensor.STRING, nil, nil},
		{"Date", etensor.STRING, nil, nil},
		{"Freqs", etensor.FLOAT64, []int{nf}, nil},
		{"Times", etensor.FLOAT64, []int{nt}, nil},
		{"Power", etensor.FLOAT64, []int{nf, nt}, []string{"Freq", "Time"}},
	}
	dt.SetFromSchema(sch, 1)
	dt.SetCellString("AnimalID", 0, sd.AnimalID)
	dt.SetCellString("VesselID", 0, sd.VesselID)
	dt.SetCellString("FileID", 0, sd.FileID)
	dt.SetCellString("ImageID", 0, sd.ImageID)
	dt.SetCellString("Date", 0, sd.Date)
	setCellFloats(dt, "Freqs", 0, sd.Freqs)
	setCellFloats(dt, "Times", 0, sd.Times)
	pw := etensor.NewFloat64([]int{nf, nt}, nil, []string{"Freq", "Time"})
	for fi := 0; fi < nf; fi++ {
		for ti := 0; ti < nt; ti++ {
			pw.Values[fi*nt+ti] = sd.Power[fi][ti]
		}
	}
	dt.SetCellTensor("Power", 0, pw)
	return dt
}

// Save writes the record as a TSV file under dir using the standard
// naming convention.
func (sd *SpecData) Save(dir string) error {
	return sd.Table().SaveCSV(gi.FileName(SpecPath(dir, sd.FileKey)), etable.Tab, etable.Headers)
}
