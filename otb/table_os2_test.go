/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codeRange(first, last int) []int {
	var codes []int
	for c := first; c <= last; c++ {
		codes = append(codes, c)
	}
	return codes
}

func TestOS2Table(t *testing.T) {
	f := newTestFont(0x20, 65, 66)
	f.Props.Set("X_HEIGHT", "4")
	f.Props.Set("CAP_HEIGHT", "6")
	_, fnt := compileAndParse(t, f, testParams())
	os2 := fnt.os2
	require.NotNil(t, os2)

	assert.Equal(t, uint16(4), os2.version)
	assert.Equal(t, int16(1024), os2.xAvgCharWidth)
	assert.Equal(t, uint16(400), os2.usWeightClass)
	assert.Equal(t, uint16(5), os2.usWidthClass)
	assert.Equal(t, int16(614), os2.ySubscriptXSize)
	assert.Equal(t, int16(614), os2.ySubscriptYSize)
	assert.Equal(t, int16(0), os2.ySubscriptXOffset)
	assert.Equal(t, int16(307), os2.ySubscriptYOffset)
	assert.Equal(t, int16(0), os2.ySuperscriptXOffset)
	assert.Equal(t, int16(410), os2.ySuperscriptYOffset)
	assert.Equal(t, int16(128), os2.yStrikeoutSize)
	assert.Equal(t, int16(256), os2.yStrikeoutPosition)
	assert.Equal(t, []byte{2, 0, 0, 9, 0, 0, 0, 0, 0, 0}, os2.panose10)
	assert.Equal(t, uint32(1), os2.ulUnicodeRange1)
	assert.Equal(t, "Xos4", os2.achVendID.String())
	assert.Equal(t, uint16(fsSelectionRegular), os2.fsSelection)
	assert.Equal(t, uint16(0x20), os2.usFirstCharIndex)
	assert.Equal(t, uint16(66), os2.usLastCharIndex)
	assert.Equal(t, int16(768), os2.sTypoAscender)
	assert.Equal(t, int16(-256), os2.sTypoDescender)
	assert.Equal(t, uint16(768), os2.usWinAscent)
	assert.Equal(t, uint16(256), os2.usWinDescent)
	assert.Equal(t, int16(512), os2.sxHeight)
	assert.Equal(t, int16(768), os2.sCapHeight)
	assert.Equal(t, uint16(66), os2.usDefaultChar)
	assert.Equal(t, uint16(0x20), os2.usBreakChar)
	assert.Equal(t, uint16(1), os2.usMaxContext)
}

func TestOS2Italic(t *testing.T) {
	f := newTestFont(65)
	f.Italic = true
	f.Bold = true
	f.Slant = "I"
	m := preparedModel(t, f, testParams())
	os2, err := m.buildOS2()
	require.NoError(t, err)
	assert.Equal(t, os2Size, os2.size())

	b := os2.bytes()
	i16At := func(off int) int { return int(int16(uint16(b[off])<<8 | uint16(b[off+1]))) }
	assert.Equal(t, 700, i16At(4))   // usWeightClass
	assert.Equal(t, -62, i16At(14))  // ySubscriptXOffset
	assert.Equal(t, 83, i16At(22))   // ySuperscriptXOffset
	assert.Equal(t, 0x21, i16At(62)) // fsSelection
}

func TestOS2Selection(t *testing.T) {
	testcases := []struct {
		bold, italic bool
		slant        string
		expected     int
	}{
		{false, false, "R", fsSelectionRegular},
		{false, false, "", 0},
		{false, false, "O", 0},
		{true, false, "R", fsSelectionBold},
		{false, true, "I", fsSelectionItalic},
		{true, true, "O", fsSelectionBold | fsSelectionItalic},
	}
	for _, tcase := range testcases {
		f := newTestFont(65)
		f.Bold = tcase.bold
		f.Italic = tcase.italic
		f.Slant = tcase.slant
		m := preparedModel(t, f, testParams())
		assert.Equal(t, tcase.expected, m.fsSelection())
	}
}

func TestOS2DefaultAndBreakChar(t *testing.T) {
	testcases := []struct {
		codes        []int
		defaultCode  int
		expDefault   int
		expBreak     int
		expFirstLast [2]int
	}{
		{[]int{0x41, 0x42}, -1, 0x42, 0x41, [2]int{0x41, 0x42}},
		{[]int{0, 0x20, 0x42}, -1, 0, 0x20, [2]int{0, 0x42}},
		{[]int{0x20, 0x41, 0xFFFD}, 0xFFFD, 0xFFFD, 0x20, [2]int{0x20, 0xFFFD}},
		{[]int{0x41, 0x1F600}, 0x1F600, 0xFFFF, 0x41, [2]int{0x41, 0xFFFF}},
	}
	for _, tcase := range testcases {
		f := newTestFont(tcase.codes...)
		f.DefaultCode = tcase.defaultCode
		m := preparedModel(t, f, testParams())
		assert.Equal(t, tcase.expDefault, m.defaultChar(), "%v", tcase.codes)
		assert.Equal(t, tcase.expBreak, m.breakChar(), "%v", tcase.codes)
		assert.Equal(t, tcase.expFirstLast, [2]int{bmpCode(m.minCode), bmpCode(m.maxCode)})
	}
}

func TestOS2UnicodeRanges(t *testing.T) {
	m := preparedModel(t, newTestFont(append(codeRange(0x20, 0x7E), codeRange(0xA0, 0xFF)...)...), testParams())
	assert.Equal(t, [4]uint32{3, 0, 0, 0}, m.unicodeRanges())

	m = preparedModel(t, newTestFont(0x20, 0x410, 0x2500, 0x1F600), testParams())
	ranges := m.unicodeRanges()
	assert.Equal(t, uint32(1|1<<9), ranges[0])
	assert.Equal(t, uint32(1<<(43-32)|1<<(unicodeRangeNonBMP-32)), ranges[1])
}

func TestOS2CodePageRanges(t *testing.T) {
	latin1 := append(codeRange(0x20, 0x7E), codeRange(0xA0, 0xFF)...)
	m := preparedModel(t, newTestFont(latin1...), testParams())
	ranges := m.codePageRanges()
	assert.NotZero(t, ranges[0]&1, "Latin 1")
	assert.Zero(t, ranges[0]&(1<<2), "Cyrillic")

	cyrillic := append(codeRange(0x20, 0x7E), codeRange(0x410, 0x44F)...)
	m = preparedModel(t, newTestFont(cyrillic...), testParams())
	ranges = m.codePageRanges()
	assert.NotZero(t, ranges[0]&(1<<2), "Cyrillic")
	assert.Zero(t, ranges[0]&1, "Latin 1")

	// Not all of ASCII.
	m = preparedModel(t, newTestFont(codeRange(0xA0, 0xFF)...), testParams())
	assert.Equal(t, [2]uint32{0, 0}, m.codePageRanges())

	// Outside the BMP.
	m = preparedModel(t, newTestFont(append(latin1, 0x1F600)...), testParams())
	assert.Equal(t, [2]uint32{0, 0}, m.codePageRanges())
}

func TestRepertoire(t *testing.T) {
	for _, cp := range codePages {
		runes := repertoire(cp.charmap)
		assert.NotEmpty(t, runes, "bit %d", cp.bit)
		for _, r := range runes {
			assert.True(t, r >= 0x80, "bit %d: %U", cp.bit, r)
		}
	}
}
