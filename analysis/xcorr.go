// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"log"
	"math"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"

	"github.com/nvclab/vesselfigs/dsp"
)

// RunXCorr computes the normalized cross-correlation between the
// whisking envelope and normalized vessel diameter for one animal,
// over lags up to MaxLagSec.  A positive peak lag means the diameter
// change trails whisking.  One row per trial.
func (pl *Pipeline) RunXCorr(animalID string) error {
	trls, err := pl.conditionedTrials(animalID)
	if err != nil {
		return err
	}
	xc := &pl.Config.XCorr
	var dt *etable.Table
	var nl int
	var rate float64
	for _, tr := range trls {
		r := tr.MD.VesselRate
		maxLag := int(math.Round(xc.MaxLagSec * r))
		if maxLag >= len(tr.NormDiam) {
			log.Printf("analysis: %s: trial too short for %g sec lags, skipping", tr.MD.Stem(), xc.MaxLagSec)
			continue
		}
		lags, cc, err := dsp.XCorr(tr.WhiskEnv, tr.NormDiam, maxLag)
		if err != nil {
			return err
		}
		if dt == nil {
			nl = len(cc)
			rate = r
			dt = newPassTable("XCorr", etable.Schema{
				{"PeakCorr", etensor.FLOAT64, nil, nil},
				{"PeakLagSec", etensor.FLOAT64, nil, nil},
				{"Corr", etensor.FLOAT64, []int{nl}, nil},
			})
			setMetaFloat(dt, "max-lag-sec", xc.MaxLagSec)
			setMetaFloat(dt, "vessel-rate", rate)
		} else if r != rate || len(cc) != nl {
			log.Printf("analysis: %s: vessel rate %g differs from %g, skipping xcorr trial", tr.MD.Stem(), r, rate)
			continue
		}
		peak, lag := dsp.PeakCorr(lags, cc)
		row := dt.Rows
		dt.AddRows(1)
		setIDCells(dt, row, tr)
		dt.SetCellFloat("PeakCorr", row, peak)
		dt.SetCellFloat("PeakLagSec", row, float64(lag)/r)
		setVectorCell(dt, "Corr", row, cc)
	}
	if dt == nil {
		dt = &etable.Table{}
		dt.SetMetaData("name", "XCorr")
	}
	return pl.Cmp.Add(animalID, XCorr, dt)
}

// XCorrLags returns the lag axis (sec) for a cross-correlation result
// table.
func XCorrLags(dt *etable.Table) ([]float64, error) {
	rate, err := MetaFloat(dt, "vessel-rate")
	if err != nil {
		return nil, err
	}
	ct := dt.CellTensor("Corr", 0)
	if ct == nil {
		return nil, nil
	}
	n := ct.Len()
	maxSamp := (n - 1) / 2
	lags := make([]float64, n)
	for i := range lags {
		lags[i] = float64(i-maxSamp) / rate
	}
	return lags, nil
}
