/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import "time"

// Params are the generation parameters of a compilation.
type Params struct {
	EmSize      int    // units per em, 64..16384.
	DirHint     int    // head.fontDirectionHint, -2..2.
	LineGap     int    // hhea.lineGap and OS/2.sTypoLineGap in em units.
	LowPPEM     int    // head.lowestRecPPEM, 0 selects the cell height.
	Encoding    string // IANA name of the character set of textual font properties.
	WinLanguage int    // Windows language ID of the name records.

	XMaxExtent bool // write hhea.xMaxExtent, otherwise 0.
	SingleLoca bool // write a loca table with a single entry (plus the trailing one).
	PostNames  bool // write glyph names (post format 2.0).

	Created  time.Time
	Modified time.Time
}

// DefaultParams returns the default generation parameters.
func DefaultParams() Params {
	return Params{
		EmSize:      1024,
		Encoding:    "UTF-8",
		WinLanguage: 0x0409,
		XMaxExtent:  true,
	}
}

// Validate checks that all parameters are within range.
func (p *Params) Validate() error {
	checks := []struct {
		field    string
		val      int
		min, max int
	}{
		{"EmSize", p.EmSize, 64, 16384},
		{"DirHint", p.DirHint, -2, 2},
		{"LineGap", p.LineGap, 0, 32767},
		{"LowPPEM", p.LowPPEM, 0, 65535},
		{"WinLanguage", p.WinLanguage, 0, 0x7FFF},
	}
	for _, c := range checks {
		if c.val < c.min || c.val > c.max {
			return &RangeError{Table: "params", Field: c.field, Value: int64(c.val), Min: int64(c.min), Max: int64(c.max)}
		}
	}
	if p.Encoding == "" {
		return errRequiredField
	}
	return nil
}
