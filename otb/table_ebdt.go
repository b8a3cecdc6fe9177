/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import "github.com/unidoc/otbfont/bmfont"

// Embedded bitmap data table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/ebdt

const (
	ebdtHeaderSize   = 4
	smallMetricsSize = 5
)

// buildEBDT writes the version header followed by one record per glyph in glyph index order:
// small metrics and the byte aligned raster (image format 1).
func (m *fontModel) buildEBDT() (*byteTable, error) {
	m.check()
	t := newByteTable("EBDT")
	if err := t.writeFixed("version", 2); err != nil {
		return nil, err
	}

	expected := ebdtHeaderSize
	for _, c := range m.chars {
		if err := m.writeSmallMetrics(t, c); err != nil {
			return nil, err
		}
		t.writeRaw(c.Data)
		expected += m.charSize(c)
	}

	if err := t.checkSize(expected); err != nil {
		return nil, err
	}
	return t, nil
}

// writeSmallMetrics writes the 5 byte small glyph metrics of `c`.
func (m *fontModel) writeSmallMetrics(t *byteTable, c *bmfont.Char) error {
	return t.write(
		u8("height", c.Height),
		u8("width", c.Width),
		i8("bearingX", 0),
		i8("bearingY", m.font.Ascent),
		u8("advance", c.Width),
	)
}
