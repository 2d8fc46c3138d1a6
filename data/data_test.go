// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseStem(t *testing.T) {
	fk, kind, err := ParseStem("T72_A1_025_A_MergedData")
	if err != nil {
		t.Fatal(err)
	}
	if kind != MergedSuffix {
		t.Errorf("kind err: %v, want %v", kind, MergedSuffix)
	}
	want := FileKey{AnimalID: "T72", VesselID: "A1", FileID: "025", ImageID: "A"}
	if fk != want {
		t.Errorf("key err: %v, want %v", fk, want)
	}
	if fk.Stem() != "T72_A1_025_A" {
		t.Errorf("stem err: %v", fk.Stem())
	}

	fk, kind, err = ParseStem("/some/dir/T80_RestingBaselines.tsv")
	if err != nil {
		t.Fatal(err)
	}
	if kind != BaselinesSuffix || fk.AnimalID != "T80" {
		t.Errorf("baselines parse err: %v %v", fk, kind)
	}

	bad := []string{"T72", "T72_A1_MergedData", "T72_A1_025_A_Unknown", ""}
	for _, b := range bad {
		if _, _, err := ParseStem(b); err == nil {
			t.Errorf("expected parse error for %q", b)
		}
	}
}

func TestPaths(t *testing.T) {
	fk := FileKey{AnimalID: "T73", VesselID: "A2", FileID: "001", ImageID: "B"}
	if p := MergedPath("d", fk); p != filepath.Join("d", "T73_A2_001_B_MergedData.tsv") {
		t.Errorf("merged path err: %v", p)
	}
	if p := SpecPath("d", fk); p != filepath.Join("d", "T73_A2_001_B_SpecData.tsv") {
		t.Errorf("spec path err: %v", p)
	}
	if p := BaselinesPath("d", "T73"); p != filepath.Join("d", "T73_RestingBaselines.tsv") {
		t.Errorf("baselines path err: %v", p)
	}
}

func TestFindMergedData(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"T72_A1_001_A_MergedData.tsv",
		"T72_A1_002_A_MergedData.tsv",
		"T72_A1_001_A_SpecData.tsv",
		"T73_A1_001_A_MergedData.tsv",
	}
	for _, nm := range names {
		if err := os.WriteFile(filepath.Join(dir, nm), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	fls, err := FindMergedData(dir, "T72")
	if err != nil {
		t.Fatal(err)
	}
	if len(fls) != 2 {
		t.Fatalf("found %v files, want 2: %v", len(fls), fls)
	}
	if filepath.Base(fls[0]) != names[0] || filepath.Base(fls[1]) != names[1] {
		t.Errorf("sort err: %v", fls)
	}
	fls, err = FindSpecData(dir, "T72")
	if err != nil {
		t.Fatal(err)
	}
	if len(fls) != 1 {
		t.Errorf("found %v spec files, want 1", len(fls))
	}
	fls, err = FindMergedData(dir, "T99")
	if err != nil {
		t.Fatal(err)
	}
	if len(fls) != 0 {
		t.Errorf("found %v files for absent animal, want 0", len(fls))
	}
}
