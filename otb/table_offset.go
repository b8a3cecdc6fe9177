/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import "math/bits"

const (
	sfntVersion     = 0x00010000
	sfntHeaderSize  = 12
	tableRecordSize = 16
)

// offsetTable is the sfnt header that precedes the table directory.
type offsetTable struct {
	sfntVersion   uint32
	numTables     uint16
	searchRange   uint16
	entrySelector uint16
	rangeShift    uint16
}

// makeOffsetTable returns the header of a font with `numTables` tables.
// entrySelector = floor(log2(numTables)), searchRange = 16 * 2^entrySelector.
func makeOffsetTable(numTables int) offsetTable {
	entrySelector := 0
	if numTables > 0 {
		entrySelector = bits.Len(uint(numTables)) - 1
	}
	searchRange := tableRecordSize << uint(entrySelector)
	return offsetTable{
		sfntVersion:   sfntVersion,
		numTables:     uint16(numTables),
		searchRange:   uint16(searchRange),
		entrySelector: uint16(entrySelector),
		rangeShift:    uint16(numTables*tableRecordSize - searchRange),
	}
}

func (f *font) parseOffsetTable(r *byteReader) (*offsetTable, error) {
	ot := &offsetTable{}

	err := r.read(&ot.sfntVersion, &ot.numTables, &ot.searchRange)
	if err != nil {
		return nil, err
	}

	err = r.read(&ot.entrySelector, &ot.rangeShift)
	if err != nil {
		return nil, err
	}

	return ot, nil
}

func (ot offsetTable) write(w *byteTable) error {
	return w.write(
		u32("sfntVersion", int64(ot.sfntVersion)),
		u16("numTables", int(ot.numTables)),
		u16("searchRange", int(ot.searchRange)),
		u16("entrySelector", int(ot.entrySelector)),
		u16("rangeShift", int(ot.rangeShift)),
	)
}
