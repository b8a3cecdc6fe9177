/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import "github.com/unidoc/otbfont/common"

// Embedded bitmap location table. The font has a single strike with a single index subtable
// covering all glyphs.
// https://docs.microsoft.com/en-us/typography/opentype/spec/eblc

const (
	eblcPrefixSize         = 0x38
	eblcIndexTablesSizeOff = 12
	eblcArrayEntrySize     = 8
	eblcSubHeaderSize      = 8
	bigMetricsSize         = 8
)

// Index subtable formats.
const (
	indexFormatProportional = 1 // variable metrics, 4 byte offsets.
	indexFormatMonospace    = 2 // all glyphs have the same metrics.
)

// buildEBLC writes the bitmap size table and the index subtable. A proportional font gets an
// offset array (format 1), a monospace font a single image size and shared metrics (format 2).
func (m *fontModel) buildEBLC() (*byteTable, error) {
	m.check()
	t := newByteTable("EBLC")
	f := m.font
	numGlyphs := m.numGlyphs()

	err := t.write(
		fx("version", 2),
		u32("numSizes", 1),
		u32("indexSubTableArrayOffset", eblcPrefixSize),
		u32("indexTablesSize", 0),
		u32("numberOfIndexSubTables", 1),
		u32("colorRef", 0),
	)
	if err != nil {
		return nil, err
	}

	if err := m.writeLineMetrics(t, "hori", f.Width); err != nil {
		return nil, err
	}
	if err := m.writeLineMetrics(t, "vert", f.Height); err != nil {
		return nil, err
	}

	err = t.write(
		u16("startGlyphIndex", 0),
		u16("endGlyphIndex", numGlyphs-1),
		u8("ppemX", f.Height),
		u8("ppemY", f.Height),
		u8("bitDepth", 1),
		i8("flags", 1), // horizontal small metrics.
	)
	if err != nil {
		return nil, err
	}
	if err := t.checkSize(eblcPrefixSize); err != nil {
		return nil, err
	}

	indexFormat := indexFormatMonospace
	if m.proportional {
		indexFormat = indexFormatProportional
	}

	err = t.write(
		u16("firstGlyphIndex", 0),
		u16("lastGlyphIndex", numGlyphs-1),
		u32("additionalOffsetToIndexSubtable", eblcArrayEntrySize),
		u16("indexFormat", indexFormat),
		u16("imageFormat", 1),
		u32("imageDataOffset", ebdtHeaderSize),
	)
	if err != nil {
		return nil, err
	}

	expected := eblcPrefixSize + eblcArrayEntrySize + eblcSubHeaderSize
	if indexFormat == indexFormatProportional {
		err = m.writeOffsetArray(t)
		expected += 4 * (numGlyphs + 1)
	} else {
		err = m.writeMonospaceMetrics(t)
		expected += 4 + bigMetricsSize
	}
	if err != nil {
		return nil, err
	}
	if err := t.checkSize(expected); err != nil {
		return nil, err
	}

	err = t.rewriteUint32("indexTablesSize", int64(t.size()-eblcPrefixSize), eblcIndexTablesSizeOff)
	if err != nil {
		return nil, err
	}
	common.Log.Debug("EBLC: index format %d, %d glyphs, %d bytes", indexFormat, numGlyphs, t.size())
	return t, nil
}

// writeLineMetrics writes a 12 byte sbitLineMetrics record. Horizontal and vertical metrics are
// identical apart from widthMax.
func (m *fontModel) writeLineMetrics(t *byteTable, prefix string, widthMax int) error {
	f := m.font
	descent := f.Height - f.Ascent
	rise, run := m.caretSlope()
	return t.write(
		i8(prefix+".ascender", f.Ascent),
		i8(prefix+".descender", -descent),
		u8(prefix+".widthMax", widthMax),
		i8(prefix+".caretSlopeNumerator", rise),
		i8(prefix+".caretSlopeDenominator", run),
		i8(prefix+".caretOffset", 0),
		i8(prefix+".minOriginSB", 0),
		i8(prefix+".minAdvanceSB", 0),
		i8(prefix+".maxBeforeBL", f.Ascent),
		i8(prefix+".minAfterBL", -descent),
		i8(prefix+".pad1", 0),
		i8(prefix+".pad2", 0),
	)
}

// writeOffsetArray writes numGlyphs+1 offsets into the EBDT image data.
func (m *fontModel) writeOffsetArray(t *byteTable) error {
	offset := 0
	for _, c := range m.chars {
		if err := t.writeUint32("sbitOffsets", int64(offset)); err != nil {
			return err
		}
		offset += m.charSize(c)
	}
	return t.writeUint32("sbitOffsets", int64(offset))
}

// writeMonospaceMetrics writes the image size and the big metrics shared by every glyph.
func (m *fontModel) writeMonospaceMetrics(t *byteTable) error {
	c := m.chars[0]
	return t.write(
		u32("imageSize", int64(m.charSize(c))),
		u8("height", c.Height),
		u8("width", c.Width),
		i8("horiBearingX", 0),
		i8("horiBearingY", m.font.Ascent),
		u8("horiAdvance", c.Width),
		i8("vertBearingX", floorDiv(-c.Width, 2)),
		i8("vertBearingY", 0),
		u8("vertAdvance", c.Height),
	)
}

// floorDiv returns a/b rounded towards negative infinity, for b > 0.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
