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

// Baseline is the resting vessel diameter statistics for one vessel on
// one recording day.  Diameter normalization must never mix days, so
// lookups are always keyed by (date, vessel).
type Baseline struct {
	Date     string  `desc:"recording date"`
	VesselID string  `desc:"vessel ID"`
	DiamMean float64 `desc:"mean resting diameter, microns"`
	DiamStd  float64 `desc:"standard deviation of resting diameter, microns"`
}

// RestingBaselines holds the per-day resting diameter statistics for
// one animal, used to convert raw diameter to percent change.
type RestingBaselines struct {
	AnimalID string     `desc:"animal subject ID"`
	Days     []Baseline `desc:"one entry per (date, vessel)"`
}

var baselineCols = []string{"Date", "VesselID", "DiamMean", "DiamStd"}

// OpenRestingBaselines loads the RestingBaselines TSV record for one animal.
func OpenRestingBaselines(path string) (*RestingBaselines, error) {
	dt, err := openTable(path, baselineCols)
	if err != nil {
		return nil, err
	}
	fk, _, err := ParseStem(path)
	if err != nil {
		return nil, err
	}
	rb := &RestingBaselines{AnimalID: fk.AnimalID}
	for ri := 0; ri < dt.Rows; ri++ {
		rb.Days = append(rb.Days, Baseline{
			Date:     dt.CellString("Date", ri),
			VesselID: dt.CellString("VesselID", ri),
			DiamMean: dt.CellFloat("DiamMean", ri),
			DiamStd:  dt.CellFloat("DiamStd", ri),
		})
	}
	return rb, nil
}

// Baseline returns the resting baseline for the given recording day and
// vessel.  Missing days are an error: normalizing against another day's
// baseline silently skews every downstream statistic.
func (rb *RestingBaselines) Baseline(date, vesselID string) (Baseline, error) {
	for _, bl := range rb.Days {
		if bl.Date == date && bl.VesselID == vesselID {
			return bl, nil
		}
	}
	return Baseline{}, fmt.Errorf("data: %s: no resting baseline for date %s vessel %s", rb.AnimalID, date, vesselID)
}

// Table renders the record as an etable for saving.
func (rb *RestingBaselines) Table() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "RestingBaselines")
	dt.SetMetaData("desc", "per-day resting vessel diameter statistics")
	sch := etable.Schema{
		{"Date", etensor.STRING, nil, nil},
		{"VesselID", etensor.STRING, nil, nil},
		{"DiamMean", etensor.FLOAT64, nil, nil},
		{"DiamStd", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, len(rb.Days))
	for ri, bl := range rb.Days {
		dt.SetCellString("Date", ri, bl.Date)
		dt.SetCellString("VesselID", ri, bl.VesselID)
		dt.SetCellFloat("DiamMean", ri, bl.DiamMean)
		dt.SetCellFloat("DiamStd", ri, bl.DiamStd)
	}
	return dt
}

// Save writes the record as a TSV file under dir using the standard
// naming convention.
func (rb *RestingBaselines) Save(dir string) error {
	return rb.Table().SaveCSV(gi.FileName(BaselinesPath(dir, rb.AnimalID)), etable.Tab, etable.Headers)
}

// NormalizeDiameter converts a raw diameter trace (microns) to percent
// change relative to the given day's resting baseline.
func NormalizeDiameter(diam []float64, bl Baseline) ([]float64, error) {
	if bl.DiamMean <= 0 {
		return nil, fmt.Errorf("data: non-positive baseline diameter %g for date %s vessel %s", bl.DiamMean, bl.Date, bl.VesselID)
	}
	nrm := make([]float64, len(diam))
	for i, d := range diam {
		nrm[i] = (d - bl.DiamMean) / bl.DiamMean * 100
	}
	return nrm, nil
}
