/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package bmfont

import (
	"golang.org/x/image/font/basicfont"

	"github.com/unidoc/otbfont/common"
)

// FromBasicFace converts a fixed-size basicfont face, such as basicfont.Face7x13, into a Font with
// family name `family`. Each code point in the face's ranges becomes one glyph; its raster is
// Advance pixels wide with the mask placed at the face's Left offset.
func FromBasicFace(face *basicfont.Face, family string) *Font {
	f := &Font{
		Name:        family,
		Width:       face.Advance,
		Height:      face.Height,
		Ascent:      face.Ascent,
		Descent:     face.Height - face.Ascent,
		AvgWidth:    float64(face.Advance),
		DefaultCode: -1,
		Slant:       "R",
	}
	f.Props.Set("FAMILY_NAME", family)
	f.Props.Set("WEIGHT_NAME", "Medium")
	f.Props.Set("SLANT", "R")
	f.Props.Set("SPACING", "C")

	for _, rng := range face.Ranges {
		for r := rng.Low; r < rng.High; r++ {
			index := rng.Offset + int(r-rng.Low)
			c := NewChar(int(r), "", face.Advance, face.Height)
			for y := 0; y < face.Height; y++ {
				for x := 0; x < face.Width; x++ {
					_, _, _, a := face.Mask.At(x, index*face.Height+y).RGBA()
					if a >= 0x8000 {
						c.SetPixel(face.Left+x, y)
					}
				}
			}
			f.Chars = append(f.Chars, c)
			if r == '\ufffd' {
				f.DefaultCode = int(r)
			}
		}
	}

	common.Log.Debug("basicfont: %d chars from %d ranges", len(f.Chars), len(face.Ranges))
	return f
}
