// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// vesselfigs regenerates the review paper figures from processed
// two-photon recordings: it runs the four analysis passes over the
// animal list, renders the selected paper figures, and optionally
// renders the illustrative single-trial figure.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nvclab/vesselfigs/analysis"
	"github.com/nvclab/vesselfigs/figs"
)

// Config is the full pipeline configuration, loadable from YAML.
type Config struct {
	Analysis analysis.Config `yaml:"analysis" desc:"analysis pass configuration"`
	Figs     figs.Config     `yaml:"figs" desc:"figure rendering configuration"`

	// SingleTrial is a MergedData path to render the four-panel
	// illustrative figure for.
	SingleTrial string `yaml:"singleTrial" desc:"MergedData file for the single-trial figure"`

	// Paper controls whether the paper figures are regenerated.
	Paper bool `yaml:"paper" desc:"regenerate the paper figures"`
}

// Defaults sets all default values.
func (cfg *Config) Defaults() {
	cfg.Analysis.Defaults()
	cfg.Figs.Defaults()
	cfg.Paper = true
}

func main() {
	cfg := &Config{}
	cfg.Defaults()

	cfgFile := flag.String("config", "", "YAML config file overlaying the defaults")
	dataDir := flag.String("data", "", "processed data directory")
	outDir := flag.String("out", "", "output directory for figures")
	single := flag.String("single", "", "MergedData file to render the single-trial figure for")
	figures := flag.String("figures", "", "comma-separated figure names to render (default all)")
	tables := flag.Bool("tables", false, "also save the accumulated comparison tables as TSV")
	montage := flag.Bool("montage", false, "compose rendered figures into a summary sheet")
	paper := flag.Bool("paper", true, "regenerate the paper figures")
	quiet := flag.Bool("quiet", false, "suppress the progress counter")
	flag.Parse()

	if *cfgFile != "" {
		b, err := os.ReadFile(*cfgFile)
		if err != nil {
			log.Fatalln(err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			log.Fatalf("config %s: %v", *cfgFile, err)
		}
	}
	if *dataDir != "" {
		cfg.Analysis.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Figs.OutDir = *outDir
	}
	if *single != "" {
		cfg.SingleTrial = *single
	}
	if *figures != "" {
		cfg.Figs.Figures = strings.Split(*figures, ",")
	}
	if *tables {
		cfg.Analysis.SaveTables = true
	}
	if *montage {
		cfg.Figs.Montage = true
	}
	if *quiet {
		cfg.Analysis.Quiet = true
	}
	cfg.Paper = *paper

	pl := analysis.New(cfg.Analysis)
	gen := figs.NewGenerator(cfg.Figs, pl)

	if cfg.Paper {
		if err := pl.Run(); err != nil {
			log.Fatalln(err)
		}
		if cfg.Analysis.SaveTables {
			if err := os.MkdirAll(cfg.Figs.OutDir, 0755); err != nil {
				log.Fatalln(err)
			}
			if err := pl.Cmp.SaveAll(cfg.Figs.OutDir); err != nil {
				log.Fatalln(err)
			}
		}
		if err := gen.RenderAll(); err != nil {
			log.Fatalln(err)
		}
	}
	if cfg.SingleTrial != "" {
		if err := os.MkdirAll(cfg.Figs.OutDir, 0755); err != nil {
			log.Fatalln(err)
		}
		if err := gen.SingleTrial(cfg.SingleTrial); err != nil {
			log.Fatalln(err)
		}
	}
	fmt.Printf("rendered %d figure(s) to %s\n", len(gen.Saved), cfg.Figs.OutDir)
}
