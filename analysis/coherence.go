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

// RunCoherence computes the magnitude-squared coherence between the
// whisking envelope and normalized diameter for one animal, with the
// band-averaged summary over [BandLo, BandHi] Hz.  One row per trial.
func (pl *Pipeline) RunCoherence(animalID string) error {
	trls, err := pl.conditionedTrials(animalID)
	if err != nil {
		return err
	}
	sc := &pl.Config.Spectral
	var dt *etable.Table
	var nf int
	for _, tr := range trls {
		r := tr.MD.VesselRate
		seg := int(math.Round(sc.SegSec * r))
		freqs, coh, err := dsp.Coherence(tr.WhiskEnv, tr.NormDiam, r, seg, sc.Overlap)
		if err != nil {
			log.Printf("analysis: %s: coherence: %v, skipping trial", tr.MD.Stem(), err)
			continue
		}
		if dt == nil {
			nf = len(freqs)
			dt = newPassTable("Coherence", etable.Schema{
				{"BandCoh", etensor.FLOAT64, nil, nil},
				{"Coh", etensor.FLOAT64, []int{nf}, nil},
				{"Freqs", etensor.FLOAT64, []int{nf}, nil},
			})
			setMetaFloat(dt, "band-lo", sc.BandLo)
			setMetaFloat(dt, "band-hi", sc.BandHi)
		} else if len(freqs) != nf {
			log.Printf("analysis: %s: %d coherence bins differ from %d, skipping trial", tr.MD.Stem(), len(freqs), nf)
			continue
		}
		row := dt.Rows
		dt.AddRows(1)
		setIDCells(dt, row, tr)
		dt.SetCellFloat("BandCoh", row, dsp.BandMean(freqs, coh, sc.BandLo, sc.BandHi))
		setVectorCell(dt, "Coh", row, coh)
		setVectorCell(dt, "Freqs", row, freqs)
	}
	if dt == nil {
		dt = &etable.Table{}
		dt.SetMetaData("name", "Coherence")
	}
	return pl.Cmp.Add(animalID, Coherence, dt)
}
