/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEBDT(t *testing.T) {
	f := newTestFont(66, 65)
	m := preparedModel(t, f, testParams())

	ebdt, err := m.buildEBDT()
	require.NoError(t, err)

	expected := []byte{0, 2, 0, 0}
	// Glyph order is code order: 65 (f.Chars[1]) comes first.
	for _, c := range []int{1, 0} {
		expected = append(expected, 8, 8, 0, 6, 8)
		expected = append(expected, f.Chars[c].Data...)
	}
	assert.Equal(t, expected, ebdt.bytes())
	assert.Equal(t, ebdtHeaderSize+2*13, ebdt.size())
}

func TestEBLCMonospace(t *testing.T) {
	m := preparedModel(t, newTestFont(65, 66, 67), testParams())
	eblc, err := m.buildEBLC()
	require.NoError(t, err)

	b := eblc.bytes()
	require.Len(t, b, eblcPrefixSize+eblcArrayEntrySize+eblcSubHeaderSize+4+bigMetricsSize)

	assert.Equal(t, uint32(0x00020000), binary.BigEndian.Uint32(b[0:]))
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(b[4:]))
	assert.Equal(t, uint32(eblcPrefixSize), binary.BigEndian.Uint32(b[8:]))
	assert.Equal(t, uint32(len(b)-eblcPrefixSize), binary.BigEndian.Uint32(b[12:]))
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(b[16:]))

	lineMetrics := []byte{6, 0xFE, 8, 1, 0, 0, 0, 0, 6, 0xFE, 0, 0}
	assert.Equal(t, lineMetrics, b[24:36])
	assert.Equal(t, lineMetrics, b[36:48])

	assert.Equal(t, uint16(0), binary.BigEndian.Uint16(b[48:]))
	assert.Equal(t, uint16(2), binary.BigEndian.Uint16(b[50:]))
	assert.Equal(t, []byte{8, 8, 1, 1}, b[52:56])

	// Index subtable array entry.
	sub := b[eblcPrefixSize:]
	assert.Equal(t, uint16(0), binary.BigEndian.Uint16(sub[0:]))
	assert.Equal(t, uint16(2), binary.BigEndian.Uint16(sub[2:]))
	assert.Equal(t, uint32(eblcArrayEntrySize), binary.BigEndian.Uint32(sub[4:]))

	// Index subtable header and format 2 body.
	sub = sub[eblcArrayEntrySize:]
	assert.Equal(t, uint16(indexFormatMonospace), binary.BigEndian.Uint16(sub[0:]))
	assert.Equal(t, uint16(1), binary.BigEndian.Uint16(sub[2:]))
	assert.Equal(t, uint32(ebdtHeaderSize), binary.BigEndian.Uint32(sub[4:]))
	assert.Equal(t, uint32(13), binary.BigEndian.Uint32(sub[8:]))
	assert.Equal(t, []byte{8, 8, 0, 6, 8, 0xFC, 0, 8}, sub[12:20])
}

func TestEBLCProportional(t *testing.T) {
	f := newTestFont(65, 66)
	f.Chars[1].Width = 4
	f.Chars[1].Data = make([]byte, 8)
	f.Italic = true
	m := preparedModel(t, f, testParams())
	require.True(t, m.proportional)

	eblc, err := m.buildEBLC()
	require.NoError(t, err)

	b := eblc.bytes()
	require.Len(t, b, 84)
	assert.Equal(t, uint32(28), binary.BigEndian.Uint32(b[12:]))

	// Italic caret slope in both line metrics.
	assert.Equal(t, []byte{100, 20}, b[27:29])
	assert.Equal(t, []byte{100, 20}, b[39:41])

	sub := b[eblcPrefixSize+eblcArrayEntrySize:]
	assert.Equal(t, uint16(indexFormatProportional), binary.BigEndian.Uint16(sub[0:]))

	var offsets []uint32
	for i := eblcSubHeaderSize; i < len(sub); i += 4 {
		offsets = append(offsets, binary.BigEndian.Uint32(sub[i:]))
	}
	assert.Equal(t, []uint32{0, 13, 26}, offsets)
}

func TestEBLCRange(t *testing.T) {
	f := newTestFont(65)
	f.Ascent = 200
	f.Height = 256
	f.Descent = 56
	f.Chars[0].Height = 256
	f.Chars[0].Data = make([]byte, 256)
	m := preparedModel(t, f, testParams())

	_, err := m.buildEBLC()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRangeCheck)
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, -4, floorDiv(-8, 2))
	assert.Equal(t, -4, floorDiv(-7, 2))
	assert.Equal(t, 3, floorDiv(7, 2))
	assert.Equal(t, 0, floorDiv(0, 2))
}
