// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"math"

	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/split"
)

// summaryCols are the per-trial scalar statistics gathered across the
// passes, NaN where a pass did not produce a value for the trial.
var summaryCols = []string{"EvokedPeak", "EvokedTimeToPeakSec", "XCorrPeak", "XCorrLagSec", "BandCoh"}

// TrialSummary merges the scalar statistics of all passes into one
// table with a row per (animal, trial), keyed by the trial file stem.
func (pl *Pipeline) TrialSummary() *etable.Table {
	type trialRow struct {
		animal, stem string
		vals         map[string]float64
	}
	var order []string
	rows := map[string]*trialRow{}
	get := func(an, stem string) *trialRow {
		tr, ok := rows[stem]
		if !ok {
			tr = &trialRow{animal: an, stem: stem, vals: map[string]float64{}}
			rows[stem] = tr
			order = append(order, stem)
		}
		return tr
	}
	stemOf := func(dt *etable.Table, ri int) string {
		return dt.CellString("AnimalID", ri) + "_" + dt.CellString("VesselID", ri) + "_" + dt.CellString("FileID", ri)
	}
	for _, an := range pl.Cmp.Animals {
		if dt := pl.Cmp.Table(an, Evoked); dt != nil {
			for ri := 0; ri < dt.Rows; ri++ {
				tr := get(an, stemOf(dt, ri))
				tr.vals["EvokedPeak"] = dt.CellFloat("Peak", ri)
				tr.vals["EvokedTimeToPeakSec"] = dt.CellFloat("TimeToPeakSec", ri)
			}
		}
		if dt := pl.Cmp.Table(an, XCorr); dt != nil {
			for ri := 0; ri < dt.Rows; ri++ {
				tr := get(an, stemOf(dt, ri))
				tr.vals["XCorrPeak"] = dt.CellFloat("PeakCorr", ri)
				tr.vals["XCorrLagSec"] = dt.CellFloat("PeakLagSec", ri)
			}
		}
		if dt := pl.Cmp.Table(an, Coherence); dt != nil {
			for ri := 0; ri < dt.Rows; ri++ {
				get(an, stemOf(dt, ri)).vals["BandCoh"] = dt.CellFloat("BandCoh", ri)
			}
		}
	}
	sch := etable.Schema{
		{"Animal", etensor.STRING, nil, nil},
		{"Trial", etensor.STRING, nil, nil},
	}
	for _, cn := range summaryCols {
		sch = append(sch, etable.Column{cn, etensor.FLOAT64, nil, nil})
	}
	out := &etable.Table{}
	out.SetMetaData("name", "TrialSummary")
	out.SetFromSchema(sch, len(order))
	for ri, stem := range order {
		tr := rows[stem]
		out.SetCellString("Animal", ri, tr.animal)
		out.SetCellString("Trial", ri, tr.stem)
		for _, cn := range summaryCols {
			v, ok := tr.vals[cn]
			if !ok {
				v = math.NaN() // NaN = missing for agg
			}
			out.SetCellFloat(cn, ri, v)
		}
	}
	return out
}

// AnimalSummary aggregates the trial summary per animal: mean and SEM
// of every scalar statistic, one row per animal.
func (pl *Pipeline) AnimalSummary(trial *etable.Table) *etable.Table {
	ix := etable.NewIdxView(trial)
	spl := split.GroupBy(ix, []string{"Animal"})
	for _, cn := range summaryCols {
		split.Agg(spl, cn, agg.AggMean)
		split.Agg(spl, cn, agg.AggSem)
	}
	st := spl.AggsToTable(etable.AddAggName)
	st.SetMetaData("name", "AnimalSummary")
	return st
}

// GrandMeanSem returns the across-animal mean and SEM of one aggregated
// column of the animal summary.
func GrandMeanSem(animalSummary *etable.Table, col string) (mean, sem float64) {
	ix := etable.NewIdxView(animalSummary)
	return agg.Mean(ix, col)[0], agg.Sem(ix, col)[0]
}
