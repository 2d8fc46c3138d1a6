// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package data defines the on-disk processed-data records for the
// vessel figure pipeline (MergedData trials, RestingBaselines,
// SpecData spectrograms), their file naming convention, and loading /
// normalization.  All records are etable TSV files: scalar metadata
// columns plus tensor-valued cells holding each stream at its own
// sampling rate.
package data

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Ext is the file extension for all processed data records.
const Ext = ".tsv"

// Record kind suffixes used in file stems.
const (
	MergedSuffix    = "MergedData"
	SpecSuffix      = "SpecData"
	BaselinesSuffix = "RestingBaselines"
)

// FileKey identifies one recording: animal, vessel, file and image IDs,
// e.g. T72_A1_025_A.  RestingBaselines files carry the animal ID only.
type FileKey struct {
	AnimalID string `desc:"animal subject ID, e.g. T72"`
	VesselID string `desc:"vessel ID, e.g. A1 for first arteriole"`
	FileID   string `desc:"behavioral file ID within the session"`
	ImageID  string `desc:"two-photon image stack ID"`
}

// Stem returns the file stem (no suffix, no extension) for this key.
func (fk FileKey) Stem() string {
	return fk.AnimalID + "_" + fk.VesselID + "_" + fk.FileID + "_" + fk.ImageID
}

// String returns the stem.
func (fk FileKey) String() string {
	return fk.Stem()
}

// ParseStem parses a file stem such as T72_A1_025_A_MergedData into its
// FileKey and record-kind suffix.  The .tsv extension, if present, is
// stripped first.  Baselines stems parse to a key with only AnimalID.
func ParseStem(stem string) (FileKey, string, error) {
	stem = strings.TrimSuffix(filepath.Base(stem), Ext)
	ps := strings.Split(stem, "_")
	switch {
	case len(ps) == 2 && ps[1] == BaselinesSuffix:
		return FileKey{AnimalID: ps[0]}, BaselinesSuffix, nil
	case len(ps) == 5 && (ps[4] == MergedSuffix || ps[4] == SpecSuffix):
		fk := FileKey{AnimalID: ps[0], VesselID: ps[1], FileID: ps[2], ImageID: ps[3]}
		return fk, ps[4], nil
	}
	return FileKey{}, "", fmt.Errorf("data.ParseStem: %q does not follow the processed-data naming convention", stem)
}

// MergedPath returns the full path of the MergedData file for key under dir.
func MergedPath(dir string, fk FileKey) string {
	return filepath.Join(dir, fk.Stem()+"_"+MergedSuffix+Ext)
}

// SpecPath returns the full path of the SpecData file for key under dir.
func SpecPath(dir string, fk FileKey) string {
	return filepath.Join(dir, fk.Stem()+"_"+SpecSuffix+Ext)
}

// BaselinesPath returns the full path of the RestingBaselines file for
// animal under dir.
func BaselinesPath(dir, animalID string) string {
	return filepath.Join(dir, animalID+"_"+BaselinesSuffix+Ext)
}

// FindMergedData returns the sorted MergedData file paths for one
// animal under dir.  An empty result is not an error: animals without
// trials for a given pass are simply skipped by the caller.
func FindMergedData(dir, animalID string) ([]string, error) {
	return findRecords(dir, animalID, MergedSuffix)
}

// FindSpecData returns the sorted SpecData file paths for one animal
// under dir.
func FindSpecData(dir, animalID string) ([]string, error) {
	return findRecords(dir, animalID, SpecSuffix)
}

func findRecords(dir, animalID, suffix string) ([]string, error) {
	pat := filepath.Join(dir, animalID+"_*_"+suffix+Ext)
	fls, err := filepath.Glob(pat)
	if err != nil {
		return nil, fmt.Errorf("data.findRecords: bad pattern %q: %w", pat, err)
	}
	sort.Strings(fls)
	return fls, nil
}
