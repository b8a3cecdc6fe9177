/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/unidoc/otbfont/bmfont"
)

var expectedTags = []string{
	"EBDT", "EBLC", "OS/2", "cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp", "name", "post",
}

// Five monospace 8x8 glyphs A..E with the default em size.
func TestCompileScenario(t *testing.T) {
	data, fnt := compileAndParse(t, newTestFont(65, 66, 67, 68, 69), testParams())

	assert.Equal(t, expectedTags, fnt.Tags())
	assert.Equal(t, offsetTable{
		sfntVersion:   0x10000,
		numTables:     12,
		searchRange:   128,
		entrySelector: 3,
		rangeShift:    64,
	}, *fnt.ot)

	// Tables are aligned, ordered, do not overlap and cover the content region.
	offset := int64(sfntHeaderSize + tableRecordSize*12)
	for _, tr := range fnt.trec.list {
		assert.Equal(t, offset, int64(tr.offset), tr.tableTag.String())
		assert.Equal(t, 0, int(tr.offset)%4)
		offset = tr.end() + int64(padding(int(tr.length)))
	}
	assert.Equal(t, int64(len(data)), offset)

	assert.Equal(t, 1024, fnt.UnitsPerEm())
	assert.Equal(t, 5, fnt.NumGlyphs())
	assert.Equal(t, uint16(1024), fnt.hhea.advanceWidthMax)
	assert.Equal(t, int16(1024), fnt.head.xMax)
	assert.Equal(t, int16(768), fnt.head.yMax)
	assert.Equal(t, int16(-256), fnt.head.yMin)

	// Monospace index subtable.
	eblc := fnt.trec.trMap["EBLC"]
	assert.Equal(t, uint16(indexFormatMonospace), binary.BigEndian.Uint16(data[eblc.offset+eblcPrefixSize+8:]))

	// One merged range and the sentinel.
	require.NotNil(t, fnt.cmap)
	assert.Equal(t, []cmapRange{{65, 69, 0}, {0xFFFF, 0xFFFF, 0}}, fnt.cmap.ranges)

	require.NoError(t, Validate(data))
}

func TestFixedTableSizes(t *testing.T) {
	fonts := map[string]*bmfont.Font{
		"monospace": newTestFont(65, 66, 67),
		"bmp":       newTestFont(0, 0x20, 0x5D0, 0xFFFD),
		"full":      newTestFont(0x20, 0x1F600),
		"basicfont": bmfont.FromBasicFace(basicfont.Face7x13, "Fixed"),
	}
	for name, f := range fonts {
		for _, postNames := range []bool{false, true} {
			params := testParams()
			params.PostNames = postNames
			data, fnt := compileAndParse(t, f, params)

			assert.Equal(t, uint32(headSize), fnt.trec.trMap["head"].length, name)
			assert.Equal(t, uint32(hheaSize), fnt.trec.trMap["hhea"].length, name)
			assert.Equal(t, uint32(maxpSize), fnt.trec.trMap["maxp"].length, name)
			assert.Equal(t, uint32(os2Size), fnt.trec.trMap["OS/2"].length, name)
			assert.Equal(t, uint32(0), fnt.trec.trMap["glyf"].length, name)
			if !postNames {
				assert.Equal(t, uint32(postHeaderSize), fnt.trec.trMap["post"].length, name)
			}
			assert.NoError(t, Validate(data), name)
		}
	}
}

func TestChecksumAdjustment(t *testing.T) {
	data, fnt := compileAndParse(t, newTestFont(65, 66, 67, 68, 69), testParams())

	head := fnt.trec.trMap["head"]
	adjustment := binary.BigEndian.Uint32(data[head.offset+headAdjustmentOff:])
	assert.Equal(t, fnt.head.checksumAdjustment, adjustment)

	// The whole file including the adjustment sums to the magic value, and so does the
	// adjustment plus the file checksum without it.
	assert.Equal(t, uint32(checksumMagic), checksum(data))
	zeroed := make([]byte, len(data))
	copy(zeroed, data)
	copy(zeroed[head.offset+headAdjustmentOff:], []byte{0, 0, 0, 0})
	assert.Equal(t, uint32(checksumMagic), adjustment+checksum(zeroed))

	// Directory checksums match the padded table bodies.
	for _, tr := range fnt.trec.list {
		body := make([]byte, tr.length)
		copy(body, zeroed[tr.offset:tr.end()])
		assert.Equal(t, checksum(body), tr.checksum, tr.tableTag.String())
	}
}

func TestCompileDeduplication(t *testing.T) {
	f := newTestFont(65, 66, 67, 66)
	data, fnt := compileAndParse(t, f, testParams())

	assert.Equal(t, 3, fnt.NumGlyphs())
	assert.Equal(t, uint16(3), fnt.hhea.numberOfHMetrics)
	eblc := fnt.trec.trMap["EBLC"]
	assert.Equal(t, uint16(2), binary.BigEndian.Uint16(data[eblc.offset+50:])) // endGlyphIndex
	gid, ok := fnt.GlyphIndex(66)
	assert.True(t, ok)
	assert.Equal(t, GlyphIndex(1), gid)

	// The first glyph with code 66 is kept: it has its pixel at (1,1).
	ebdt := fnt.trec.trMap["EBDT"]
	glyph1 := data[int(ebdt.offset)+ebdtHeaderSize+(smallMetricsSize+8):]
	assert.Equal(t, []byte{8, 8, 0, 6, 8}, glyph1[:smallMetricsSize])
	assert.Equal(t, byte(0x40), glyph1[smallMetricsSize+1])
}

func TestCompileDeterministic(t *testing.T) {
	a, err := Compile(newTestFont(65, 66), testParams())
	require.NoError(t, err)
	b, err := Compile(newTestFont(65, 66), testParams())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompileErrors(t *testing.T) {
	// Cell too tall for the 8 bit EBLC fields.
	f := newTestFont(65)
	f.Height = 300
	f.Ascent = 280
	f.Chars[0] = bmfont.NewChar(65, "", 8, 300)
	_, err := Compile(f, testParams())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRangeCheck))

	data, err := Compile(&bmfont.Font{}, testParams())
	assert.Error(t, err)
	assert.Nil(t, data)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, newTestFont(65), testParams()))
	data, err := Compile(newTestFont(65), testParams())
	require.NoError(t, err)
	assert.Equal(t, data, buf.Bytes())
}

func BenchmarkCompile(b *testing.B) {
	f := bmfont.FromBasicFace(basicfont.Face7x13, "Fixed")
	params := DefaultParams()
	for i := 0; i < b.N; i++ {
		if _, err := Compile(f, params); err != nil {
			b.Fatalf("Error: %v", err)
		}
	}
}
