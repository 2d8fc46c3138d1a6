// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"log"
	"math"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/metric"
)

// RunEvoked computes the stimulation-evoked diameter response for one
// animal: normalized diameter aligned to each whisker stimulation event
// (PreSec before to PostSec after onset), baseline-corrected per event
// against its pre-onset mean, averaged across events within a trial.
// One row per stimulation trial; resting trials (no events) are
// skipped.
func (pl *Pipeline) RunEvoked(animalID string) error {
	trls, err := pl.conditionedTrials(animalID)
	if err != nil {
		return err
	}
	ec := &pl.Config.Evoked
	var dt *etable.Table
	var nw int
	var rate float64
	for _, tr := range trls {
		if len(tr.MD.StimTimes) == 0 {
			continue
		}
		r := tr.MD.VesselRate
		npre := int(math.Round(ec.PreSec * r))
		npost := int(math.Round(ec.PostSec * r))
		if dt == nil {
			nw = npre + npost + 1
			rate = r
			dt = newPassTable("EvokedResponse", etable.Schema{
				{"NEvents", etensor.FLOAT64, nil, nil},
				{"Peak", etensor.FLOAT64, nil, nil},
				{"TimeToPeakSec", etensor.FLOAT64, nil, nil},
				{"Consistency", etensor.FLOAT64, nil, nil},
				{"Trace", etensor.FLOAT64, []int{nw}, nil},
			})
			setMetaFloat(dt, "pre-sec", ec.PreSec)
			setMetaFloat(dt, "post-sec", ec.PostSec)
			setMetaFloat(dt, "vessel-rate", rate)
		} else if r != rate || npre+npost+1 != nw {
			log.Printf("analysis: %s: vessel rate %g differs from %g, skipping evoked trial", tr.MD.Stem(), r, rate)
			continue
		}
		trace, nev := evokedTrace(tr.NormDiam, tr.MD.StimTimes, r, npre, npost)
		if nev == 0 {
			continue
		}
		peak, ttp := evokedPeak(trace, npre, r)
		row := dt.Rows
		dt.AddRows(1)
		setIDCells(dt, row, tr)
		dt.SetCellFloat("NEvents", row, float64(nev))
		dt.SetCellFloat("Peak", row, peak)
		dt.SetCellFloat("TimeToPeakSec", row, ttp)
		setVectorCell(dt, "Trace", row, trace)
	}
	if dt == nil {
		dt = &etable.Table{}
		dt.SetMetaData("name", "EvokedResponse")
	}
	// consistency: correlation of each trial's trace with the grand mean
	if dt.Rows > 0 {
		gm := MeanTensorCol(dt, "Trace")
		for ri := 0; ri < dt.Rows; ri++ {
			dt.SetCellFloat("Consistency", ri, metric.Correlation64(CellVector(dt, "Trace", ri), gm))
		}
	}
	return pl.Cmp.Add(animalID, Evoked, dt)
}

// evokedTrace averages the peri-event diameter windows for one trial.
// Events whose window falls outside the trial are dropped.  Each window
// is baseline-corrected by its own pre-onset mean.
func evokedTrace(diam, stimTimes []float64, rate float64, npre, npost int) ([]float64, int) {
	nw := npre + npost + 1
	sum := make([]float64, nw)
	nev := 0
	for _, st := range stimTimes {
		onset := int(math.Round(st * rate))
		if onset-npre < 0 || onset+npost >= len(diam) {
			continue
		}
		pre := 0.0
		if npre > 0 {
			for i := onset - npre; i < onset; i++ {
				pre += diam[i]
			}
			pre /= float64(npre)
		}
		for i := 0; i < nw; i++ {
			sum[i] += diam[onset-npre+i] - pre
		}
		nev++
	}
	if nev == 0 {
		return nil, 0
	}
	for i := range sum {
		sum[i] /= float64(nev)
	}
	return sum, nev
}

// evokedPeak returns the maximum post-onset response and its latency.
func evokedPeak(trace []float64, npre int, rate float64) (peak, ttpSec float64) {
	pi := npre
	peak = trace[npre]
	for i := npre; i < len(trace); i++ {
		if trace[i] > peak {
			peak = trace[i]
			pi = i
		}
	}
	return peak, float64(pi-npre) / rate
}

// EvokedTime returns the peri-event time axis (sec, 0 = stimulation
// onset) for an evoked result table.
func EvokedTime(dt *etable.Table) ([]float64, error) {
	pre, err := MetaFloat(dt, "pre-sec")
	if err != nil {
		return nil, err
	}
	rate, err := MetaFloat(dt, "vessel-rate")
	if err != nil {
		return nil, err
	}
	ct := dt.CellTensor("Trace", 0)
	if ct == nil {
		return nil, nil
	}
	tm := make([]float64, ct.Len())
	for i := range tm {
		tm[i] = float64(i)/rate - pre
	}
	return tm, nil
}
