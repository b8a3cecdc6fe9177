/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"errors"
	"strconv"
	"strings"

	"github.com/unidoc/otbfont/common"
)

const (
	headSize          = 54
	headMagicNumber   = 0x5F0F3CF5
	headAdjustmentOff = 8 // offset of checksumAdjustment.
)

// head flags.
const (
	headBaselineAtZero = 1 << 0
	headLSBAtZero      = 1 << 1
	headIntegerScaling = 1 << 3
	headStrongRTL      = 1 << 9
)

// Font header.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
type headTable struct {
	majorVersion       uint16
	minorVersion       uint16
	fontRevision       fixed
	checksumAdjustment uint32
	magicNumber        uint32
	flags              uint16
	unitsPerEm         uint16
	created            int64
	modified           int64
	xMin               int16
	yMin               int16
	xMax               int16
	yMax               int16
	macStyle           uint16
	lowestRecPPEM      uint16
	fontDirectionHint  int16
	indexToLocFormat   int16
	glyphDataFormat    int16
}

// parse the font's *head* table from `r` in the context of `f`.
func (f *font) parseHead(r *byteReader) (*headTable, error) {
	_, has, err := f.seekToTable(r, "head")
	if err != nil {
		return nil, err
	}
	if !has {
		common.Log.Debug("head table missing")
		return nil, errRequiredField
	}

	t := &headTable{}
	err = r.read(&t.majorVersion, &t.minorVersion, &t.fontRevision)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.checksumAdjustment, &t.magicNumber)
	if err != nil {
		return nil, err
	}
	if t.magicNumber != headMagicNumber {
		return nil, errors.New("magic number mismatch")
	}

	err = r.read(&t.flags, &t.unitsPerEm, &t.created, &t.modified)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.xMin, &t.yMin, &t.xMax, &t.yMax)
	if err != nil {
		return nil, err
	}

	return t, r.read(&t.macStyle, &t.lowestRecPPEM, &t.fontDirectionHint, &t.indexToLocFormat, &t.glyphDataFormat)
}

// buildHead writes the font header with a zero checksumAdjustment. The assembler patches it once
// the whole font is known.
func (m *fontModel) buildHead() (*byteTable, error) {
	m.check()
	t := newByteTable("head")

	flags := headBaselineAtZero | headLSBAtZero | headIntegerScaling
	if m.hasRTL {
		flags |= headStrongRTL
	}
	lowPPEM := m.params.LowPPEM
	if lowPPEM == 0 {
		lowPPEM = m.font.Height
	}

	err := t.write(
		u16("majorVersion", 1),
		u16("minorVersion", 0),
		fx("fontRevision", m.fontRevision()),
		u32("checksumAdjustment", 0),
		u32("magicNumber", headMagicNumber),
		u16("flags", flags),
		u16("unitsPerEm", m.params.EmSize),
		u64("created", m.created),
		u64("modified", m.modified),
		i16("xMin", 0),
		i16("yMin", m.emDescender),
		i16("xMax", m.emMaxWidth),
		i16("yMax", m.emAscender),
		u16("macStyle", m.macStyle),
		u16("lowestRecPPEM", lowPPEM),
		i16("fontDirectionHint", m.params.DirHint),
		i16("indexToLocFormat", 0),
		i16("glyphDataFormat", 0),
	)
	if err != nil {
		return nil, err
	}
	if err := t.checkSize(headSize); err != nil {
		return nil, err
	}
	return t, nil
}

// fontRevision returns the FONT_VERSION property, or 1.0.
func (m *fontModel) fontRevision() float64 {
	if s, has := m.font.Props.Get("FONT_VERSION"); has {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && v >= 0 && v < 32768 {
			return v
		}
		common.Log.Debug("Ignoring FONT_VERSION %q", s)
	}
	return 1.0
}
