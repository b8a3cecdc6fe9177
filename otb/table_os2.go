/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"math"
	"strconv"

	"github.com/unidoc/otbfont/common"
)

const (
	os2Version = 4
	os2Size    = 96
	os2Vendor  = "Xos4"
)

// fsSelection bits.
const (
	fsSelectionItalic  = 1 << 0
	fsSelectionBold    = 1 << 5
	fsSelectionRegular = 1 << 6
)

// os2Table represents the OS/2 metrics table. It consists of metrics and other data that are required.
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2
type os2Table struct {
	// Version 0+
	version             uint16
	xAvgCharWidth       int16
	usWeightClass       uint16
	usWidthClass        uint16
	fsType              uint16
	ySubscriptXSize     int16
	ySubscriptYSize     int16
	ySubscriptXOffset   int16
	ySubscriptYOffset   int16
	ySuperscriptXSize   int16
	ySuperscriptYSize   int16
	ySuperscriptXOffset int16
	ySuperscriptYOffset int16
	yStrikeoutSize      int16
	yStrikeoutPosition  int16
	sFamilyClass        int16
	panose10            []byte // panose10 len = 10
	ulUnicodeRange1     uint32 // Bits 0-31.
	ulUnicodeRange2     uint32 // Bits 32-63.
	ulUnicodeRange3     uint32 // Bits 64-95.
	ulUnicodeRange4     uint32 // Bits 96-127.
	achVendID           tag
	fsSelection         uint16
	usFirstCharIndex    uint16
	usLastCharIndex     uint16
	sTypoAscender       int16
	sTypoDescender      int16
	sTypoLineGap        int16
	usWinAscent         uint16
	usWinDescent        uint16

	// Version 1-5.
	ulCodePageRange1 uint32 // Bits 0-31
	ulCodePageRange2 uint32 // Bits 32-63.

	// Version 2-5
	sxHeight      int16
	sCapHeight    int16
	usDefaultChar uint16
	usBreakChar   uint16
	usMaxContext  uint16
}

func (f *font) parseOS2Table(r *byteReader) (*os2Table, error) {
	_, has, err := f.seekToTable(r, "OS/2")
	if err != nil {
		return nil, err
	}
	if !has {
		common.Log.Debug("OS/2 table not present")
		return nil, nil
	}

	t := &os2Table{}
	err = r.read(&t.version, &t.xAvgCharWidth, &t.usWeightClass, &t.usWidthClass, &t.fsType)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.ySubscriptXSize, &t.ySubscriptYSize, &t.ySubscriptXOffset, &t.ySubscriptYOffset)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.ySuperscriptXSize, &t.ySuperscriptYSize, &t.ySuperscriptXOffset, &t.ySuperscriptYOffset)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.yStrikeoutSize, &t.yStrikeoutPosition, &t.sFamilyClass)
	if err != nil {
		return nil, err
	}

	err = r.readBytes(&t.panose10, 10)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.ulUnicodeRange1, &t.ulUnicodeRange2, &t.ulUnicodeRange3, &t.ulUnicodeRange4)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.achVendID, &t.fsSelection, &t.usFirstCharIndex, &t.usLastCharIndex)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.sTypoAscender, &t.sTypoDescender, &t.sTypoLineGap, &t.usWinAscent, &t.usWinDescent)
	if err != nil {
		return nil, err
	}
	if t.version < 1 {
		return t, nil
	}

	err = r.read(&t.ulCodePageRange1, &t.ulCodePageRange2)
	if err != nil {
		return nil, err
	}
	if t.version < 2 {
		return t, nil
	}

	return t, r.read(&t.sxHeight, &t.sCapHeight, &t.usDefaultChar, &t.usBreakChar, &t.usMaxContext)
}

// emScalePercent returns em_scale(v * percent / 100).
func (m *fontModel) emScalePercent(v, percent int) int {
	return m.emScaleDiv(float64(v*percent), float64(m.font.Height*100))
}

// avgWidth returns the average advance width in pixels.
func (m *fontModel) avgWidth() float64 {
	if m.font.AvgWidth > 0 {
		return m.font.AvgWidth
	}
	total := 0
	for _, c := range m.chars {
		total += c.Width
	}
	return float64(total) / float64(len(m.chars))
}

// fsSelection returns the italic and bold bits, or the regular bit for upright fonts of medium
// weight.
func (m *fontModel) fsSelection() int {
	sel := 0
	if m.font.Bold {
		sel |= fsSelectionBold
	}
	if m.font.Italic {
		sel |= fsSelectionItalic
	}
	if sel == 0 && m.font.Slant == "R" {
		sel = fsSelectionRegular
	}
	return sel
}

// defaultChar returns the declared default character if it is in the BMP, otherwise 0 when the
// font starts at code 0, otherwise the last character.
func (m *fontModel) defaultChar() int {
	if code := m.font.DefaultCode; code >= 0 && code <= 0xFFFF {
		return code
	}
	if m.minCode == 0 {
		return 0
	}
	return bmpCode(m.maxCode)
}

// breakChar returns the space character if present, otherwise the first character.
func (m *fontModel) breakChar() int {
	if m.hasCode(0x20) {
		return 0x20
	}
	return bmpCode(m.minCode)
}

// panose returns the PANOSE classification. Only the proportion of monospace fonts is known.
func (m *fontModel) panose() []byte {
	p := make([]byte, 10)
	if !m.proportional {
		p[0] = 2 // Latin text.
		p[3] = 9 // monospaced.
	}
	return p
}

func (m *fontModel) buildOS2() (*byteTable, error) {
	m.check()
	t := newByteTable("OS/2")
	f := m.font

	weight := 400
	if f.Bold {
		weight = 700
	}
	subYOffset := m.emScalePercent(f.Height, 30)
	superYOffset := m.emScalePercent(f.Height, 40)
	xfactor := math.Tan(m.italicAngle * math.Pi / 180)
	winAscent := m.emAscender
	if winAscent < 0 {
		winAscent = 0
	}
	winDescent := -m.emDescender
	if winDescent < 0 {
		winDescent = 0
	}
	xHeight, _ := m.emProp("X_HEIGHT")
	capHeight, _ := m.emProp("CAP_HEIGHT")
	unicodeRanges := m.unicodeRanges()
	codePages := m.codePageRanges()

	err := t.write(
		u16("version", os2Version),
		i16("xAvgCharWidth", m.emScale(m.avgWidth())),
		u16("usWeightClass", weight),
		u16("usWidthClass", 5),
		u16("fsType", 0),
		i16("ySubscriptXSize", m.emScalePercent(f.Width, 60)),
		i16("ySubscriptYSize", m.emScalePercent(f.Height, 60)),
		i16("ySubscriptXOffset", int(math.RoundToEven(xfactor*float64(subYOffset)))),
		i16("ySubscriptYOffset", subYOffset),
		i16("ySuperscriptXSize", m.emScalePercent(f.Width, 60)),
		i16("ySuperscriptYSize", m.emScalePercent(f.Height, 60)),
		i16("ySuperscriptXOffset", -int(math.RoundToEven(xfactor*float64(superYOffset)))),
		i16("ySuperscriptYOffset", superYOffset),
		i16("yStrikeoutSize", m.lineSize),
		i16("yStrikeoutPosition", m.emScalePercent(f.Height, 25)),
		i16("sFamilyClass", 0),
	)
	if err != nil {
		return nil, err
	}
	t.writeRaw(m.panose())

	for i, bitsField := range unicodeRanges {
		if err := t.writeUint32("ulUnicodeRange"+strconv.Itoa(i+1), int64(bitsField)); err != nil {
			return nil, err
		}
	}
	t.writeTag(os2Vendor)

	err = t.write(
		u16("fsSelection", m.fsSelection()),
		u16("usFirstCharIndex", bmpCode(m.minCode)),
		u16("usLastCharIndex", bmpCode(m.maxCode)),
		i16("sTypoAscender", m.emAscender),
		i16("sTypoDescender", m.emDescender),
		i16("sTypoLineGap", m.params.LineGap),
		u16("usWinAscent", winAscent),
		u16("usWinDescent", winDescent),
		u32("ulCodePageRange1", int64(codePages[0])),
		u32("ulCodePageRange2", int64(codePages[1])),
		i16("sxHeight", xHeight),
		i16("sCapHeight", capHeight),
		u16("usDefaultChar", m.defaultChar()),
		u16("usBreakChar", m.breakChar()),
		u16("usMaxContext", 1),
	)
	if err != nil {
		return nil, err
	}
	if err := t.checkSize(os2Size); err != nil {
		return nil, err
	}
	common.Log.Debug("OS/2: unicode ranges %08X %08X %08X %08X, code pages %08X %08X",
		unicodeRanges[0], unicodeRanges[1], unicodeRanges[2], unicodeRanges[3], codePages[0], codePages[1])
	return t, nil
}
