// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figs

import (
	"fmt"
	"image"
	"image/draw"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// tileWidth is the common width figures are resized to in the summary
// sheet.
const tileWidth = 600

// SummarySheet composes every rendered figure into one review sheet,
// two tiles per row, written as SummarySheet.png under OutDir.
func (gn *Generator) SummarySheet() error {
	if len(gn.Saved) == 0 {
		return fmt.Errorf("figs: no rendered figures to compose")
	}
	var tiles []image.Image
	th := 0
	for _, fnm := range gn.Saved {
		img, err := imgio.Open(fnm)
		if err != nil {
			return err
		}
		b := img.Bounds()
		h := b.Dy() * tileWidth / b.Dx()
		tile := transform.Resize(img, tileWidth, h, transform.Linear)
		if h > th {
			th = h
		}
		tiles = append(tiles, tile)
	}
	cols := 2
	rows := (len(tiles) + cols - 1) / cols
	sheet := image.NewRGBA(image.Rect(0, 0, cols*tileWidth, rows*th))
	draw.Draw(sheet, sheet.Bounds(), image.White, image.Point{}, draw.Src)
	for i, tile := range tiles {
		x := (i % cols) * tileWidth
		y := (i / cols) * th
		r := tile.Bounds().Add(image.Pt(x, y).Sub(tile.Bounds().Min))
		draw.Draw(sheet, r, tile, tile.Bounds().Min, draw.Over)
	}
	fnm := filepath.Join(gn.Config.OutDir, "SummarySheet.png")
	return imgio.Save(fnm, sheet, imgio.PNGEncoder())
}
