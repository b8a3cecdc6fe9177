/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"math/bits"

	"github.com/unidoc/otbfont/bmfont"
	"github.com/unidoc/otbfont/common"
)

// cmapTable represents a Character to Glyph Index Mapping Table (cmap).
// This table defines the mapping of character codes to the glyph index values used
// in the font.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
type cmapTable struct {
	version         uint16
	numTables       uint16
	encodingRecords []encodingRecord // len == numTables

	// Processed data: the ranges of the first format 4 or 12 subtable.
	format uint16
	ranges []cmapRange
}

type encodingRecord struct {
	platformID uint16
	encodingID uint16
	offset     offset32
}

// Sizes of the cmap structures written by this package.
const (
	cmap4PrefixSize  = 12 // header and one encoding record.
	cmap4FormatSize  = 16 // subtable header and reservedPad.
	cmap4SegSize     = 8
	cmap12PrefixSize = 20 // header and two encoding records.
	cmap12FormatSize = 16
	cmap12GroupSize  = 12
)

// cmapRange maps the codes startCode..finalCode to consecutive glyph indices starting at
// glyphIndex.
type cmapRange struct {
	startCode  int
	finalCode  int
	glyphIndex int
}

// idDelta returns the format 4 delta of `cr`, modulo 65536.
func (cr cmapRange) idDelta() int {
	return (cr.glyphIndex - cr.startCode) & 0xFFFF
}

// makeCmapRanges returns the maximal runs of consecutive codes in `chars`, which must be sorted
// by code without duplicates. Glyph indices are the positions in `chars`.
func makeCmapRanges(chars []*bmfont.Char) []cmapRange {
	var ranges []cmapRange
	for i, c := range chars {
		n := len(ranges)
		if n > 0 && ranges[n-1].finalCode+1 == c.Code {
			ranges[n-1].finalCode = c.Code
			continue
		}
		ranges = append(ranges, cmapRange{startCode: c.Code, finalCode: c.Code, glyphIndex: i})
	}
	return ranges
}

// buildCmap writes a format 4 subtable for fonts limited to the BMP and a format 12 subtable
// otherwise.
func (m *fontModel) buildCmap() (*byteTable, error) {
	m.check()
	ranges := makeCmapRanges(m.chars)
	if m.bmpOnly {
		return buildCmap4(ranges, m.maxCode)
	}
	return buildCmap12(ranges)
}

func buildCmap4(ranges []cmapRange, maxCode int) (*byteTable, error) {
	if maxCode < 0xFFFF {
		ranges = append(ranges, cmapRange{startCode: 0xFFFF, finalCode: 0xFFFF, glyphIndex: 0})
	}
	segCount := len(ranges)
	searchRange := 2 << uint(bits.Len(uint(segCount))-1)
	entrySelector := bits.Len(uint(searchRange/2)) - 1

	t := newByteTable("cmap")
	err := t.write(
		u16("version", 0),
		u16("numTables", 1),
		u16("platformID", 3),
		u16("encodingID", 1),
		u32("offset", cmap4PrefixSize),
		u16("format", 4),
		u16("length", cmap4FormatSize+cmap4SegSize*segCount),
		u16("language", 0),
		u16("segCountX2", 2*segCount),
		u16("searchRange", searchRange),
		u16("entrySelector", entrySelector),
		u16("rangeShift", 2*segCount-searchRange),
	)
	if err != nil {
		return nil, err
	}

	for _, cr := range ranges {
		if err := t.writeUint16("endCode", cr.finalCode); err != nil {
			return nil, err
		}
	}
	if err := t.writeUint16("reservedPad", 0); err != nil {
		return nil, err
	}
	for _, cr := range ranges {
		if err := t.writeUint16("startCode", cr.startCode); err != nil {
			return nil, err
		}
	}
	for _, cr := range ranges {
		if err := t.writeUint16("idDelta", cr.idDelta()); err != nil {
			return nil, err
		}
	}
	for range ranges {
		if err := t.writeUint16("idRangeOffset", 0); err != nil {
			return nil, err
		}
	}

	if err := t.checkSize(cmap4PrefixSize + cmap4FormatSize + cmap4SegSize*segCount); err != nil {
		return nil, err
	}
	common.Log.Debug("cmap: format 4, %d segments", segCount)
	return t, nil
}

func buildCmap12(ranges []cmapRange) (*byteTable, error) {
	t := newByteTable("cmap")
	err := t.write(
		u16("version", 0),
		u16("numTables", 2),
		u16("platformID", 0),
		u16("encodingID", 4),
		u32("offset", cmap12PrefixSize),
		u16("platformID", 3),
		u16("encodingID", 10),
		u32("offset", cmap12PrefixSize),
		fx("version", 12),
		u32("length", int64(cmap12FormatSize+cmap12GroupSize*len(ranges))),
		u32("language", 0),
		u32("nGroups", int64(len(ranges))),
	)
	if err != nil {
		return nil, err
	}

	for _, cr := range ranges {
		err := t.write(
			u32("startCharCode", int64(cr.startCode)),
			u32("endCharCode", int64(cr.finalCode)),
			u32("startGlyphID", int64(cr.glyphIndex)),
		)
		if err != nil {
			return nil, err
		}
	}

	if err := t.checkSize(cmap12PrefixSize + cmap12FormatSize + cmap12GroupSize*len(ranges)); err != nil {
		return nil, err
	}
	common.Log.Debug("cmap: format 12, %d groups", len(ranges))
	return t, nil
}

// parseCmap reads the encoding records and the ranges of the first format 4 or 12 subtable.
// Subtables using idRangeOffset are not supported.
func (f *font) parseCmap(r *byteReader) (*cmapTable, error) {
	tr, has, err := f.seekToTable(r, "cmap")
	if err != nil {
		return nil, err
	}
	if !has {
		common.Log.Debug("cmap table missing")
		return nil, nil
	}

	t := &cmapTable{}
	err = r.read(&t.version, &t.numTables)
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(t.numTables); i++ {
		var er encodingRecord
		err = r.read(&er.platformID, &er.encodingID, &er.offset)
		if err != nil {
			return nil, err
		}
		t.encodingRecords = append(t.encodingRecords, er)
	}

	for _, er := range t.encodingRecords {
		if int64(er.offset) >= int64(tr.length) {
			common.Log.Debug("cmap subtable offset outside table")
			return nil, errRangeCheck
		}
		err = r.Seek(int64(tr.offset) + int64(er.offset))
		if err != nil {
			return nil, err
		}
		err = r.read(&t.format)
		if err != nil {
			return nil, err
		}
		switch t.format {
		case 4:
			t.ranges, err = parseCmap4(r)
			return t, err
		case 12:
			t.ranges, err = parseCmap12(r)
			return t, err
		default:
			common.Log.Debug("Skipping cmap format %d", t.format)
		}
	}
	return t, nil
}

func parseCmap4(r *byteReader) ([]cmapRange, error) {
	var length, language, segCountX2 uint16
	err := r.read(&length, &language, &segCountX2)
	if err != nil {
		return nil, err
	}
	if err := r.Skip(6); err != nil {
		return nil, err
	}

	segCount := int(segCountX2 / 2)
	var endCodes, startCodes, idDeltas, idRangeOffsets []uint16
	if err := r.readSlice(&endCodes, segCount); err != nil {
		return nil, err
	}
	if err := r.Skip(2); err != nil {
		return nil, err
	}
	if err := r.readSlice(&startCodes, segCount); err != nil {
		return nil, err
	}
	if err := r.readSlice(&idDeltas, segCount); err != nil {
		return nil, err
	}
	if err := r.readSlice(&idRangeOffsets, segCount); err != nil {
		return nil, err
	}

	ranges := make([]cmapRange, 0, segCount)
	for i := 0; i < segCount; i++ {
		if idRangeOffsets[i] != 0 {
			common.Log.Debug("Unsupported idRangeOffset %d", idRangeOffsets[i])
			return nil, errRangeCheck
		}
		start := int(startCodes[i])
		ranges = append(ranges, cmapRange{
			startCode:  start,
			finalCode:  int(endCodes[i]),
			glyphIndex: (start + int(idDeltas[i])) & 0xFFFF,
		})
	}
	return ranges, nil
}

func parseCmap12(r *byteReader) ([]cmapRange, error) {
	var reserved uint16
	var length, language, nGroups uint32
	err := r.read(&reserved, &length, &language, &nGroups)
	if err != nil {
		return nil, err
	}

	var ranges []cmapRange
	for i := 0; i < int(nGroups); i++ {
		var start, end, gid uint32
		err = r.read(&start, &end, &gid)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, cmapRange{startCode: int(start), finalCode: int(end), glyphIndex: int(gid)})
	}
	return ranges, nil
}

// lookup returns the glyph index of `code`.
func (t *cmapTable) lookup(code int) (GlyphIndex, bool) {
	for _, cr := range t.ranges {
		if code >= cr.startCode && code <= cr.finalCode {
			return GlyphIndex(cr.glyphIndex + code - cr.startCode), true
		}
	}
	return 0, false
}
