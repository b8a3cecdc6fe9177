/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import "github.com/unidoc/otbfont/common"

const hheaSize = 36

// Horizontal header table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
type hheaTable struct {
	majorVersion        uint16
	minorVersion        uint16
	ascender            int16
	descender           int16
	lineGap             int16
	advanceWidthMax     uint16
	minLeftSideBearing  int16
	minRightSideBearing int16
	xMaxExtent          int16
	caretSlopeRise      int16
	caretSlopeRun       int16
	caretOffset         int16
	reserved1           int16
	reserved2           int16
	reserved3           int16
	reserved4           int16
	metricDataFormat    int16
	numberOfHMetrics    uint16
}

func (f *font) parseHhea(r *byteReader) (*hheaTable, error) {
	_, has, err := f.seekToTable(r, "hhea")
	if err != nil {
		return nil, err
	}
	if !has {
		common.Log.Debug("hhea table missing")
		return nil, errRequiredField
	}

	t := &hheaTable{}
	err = r.read(&t.majorVersion, &t.minorVersion, &t.ascender, &t.descender, &t.lineGap)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.advanceWidthMax, &t.minLeftSideBearing, &t.minRightSideBearing, &t.xMaxExtent)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.caretSlopeRise, &t.caretSlopeRun, &t.caretOffset)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.reserved1, &t.reserved2, &t.reserved3, &t.reserved4)
	if err != nil {
		return nil, err
	}

	return t, r.read(&t.metricDataFormat, &t.numberOfHMetrics)
}

// caretSlope returns the caret rise and run.
func (m *fontModel) caretSlope() (int, int) {
	if m.font.Italic {
		return 100, 20
	}
	return 1, 0
}

func (m *fontModel) buildHhea() (*byteTable, error) {
	m.check()
	t := newByteTable("hhea")

	xMaxExtent := 0
	if m.params.XMaxExtent {
		xMaxExtent = m.emMaxWidth
	}
	rise, run := m.caretSlope()

	err := t.write(
		u16("majorVersion", 1),
		u16("minorVersion", 0),
		i16("ascender", m.emAscender),
		i16("descender", m.emDescender),
		i16("lineGap", m.params.LineGap),
		u16("advanceWidthMax", m.emMaxWidth),
		i16("minLeftSideBearing", 0),
		i16("minRightSideBearing", 0),
		i16("xMaxExtent", xMaxExtent),
		i16("caretSlopeRise", rise),
		i16("caretSlopeRun", run),
		i16("caretOffset", 0),
		i16("reserved1", 0),
		i16("reserved2", 0),
		i16("reserved3", 0),
		i16("reserved4", 0),
		i16("metricDataFormat", 0),
		u16("numberOfHMetrics", m.numGlyphs()),
	)
	if err != nil {
		return nil, err
	}
	if err := t.checkSize(hheaSize); err != nil {
		return nil, err
	}
	return t, nil
}
