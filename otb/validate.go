/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/unidoc/otbfont/common"
)

// validate font data model `f` in `r`. Checks the whole file checksum adjustment, the table
// checksums and that the tables are 4 byte aligned and do not overlap.
func (f *font) validate(r *byteReader) error {
	if f.trec == nil {
		common.Log.Debug("Table records missing")
		return errRequiredField
	}
	if f.ot == nil {
		common.Log.Debug("Offsets table missing")
		return errRequiredField
	}
	if f.head == nil {
		common.Log.Debug("head table missing")
		return errRequiredField
	}

	err := r.Seek(0)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r.reader)
	if err != nil {
		return err
	}
	data := buf.Bytes()

	if err := f.validateLayout(int64(len(data))); err != nil {
		return err
	}

	// Validate the font.
	common.Log.Debug("Validating entire font")
	{
		headRec, ok := f.trec.trMap["head"]
		if !ok {
			common.Log.Debug("head not set")
			return errRequiredField
		}
		if headRec.length < headAdjustmentOff+4 {
			return errors.New("head too short")
		}
		hoff := int(headRec.offset)

		// set checksumAdjustment data to 0 in the head table.
		zeroed := make([]byte, len(data))
		copy(zeroed, data)
		zeroed[hoff+8], zeroed[hoff+9], zeroed[hoff+10], zeroed[hoff+11] = 0, 0, 0, 0

		adjustment := uint32(checksumMagic) - checksum(zeroed)
		if f.head.checksumAdjustment != adjustment {
			common.Log.Debug("checksumAdjustment 0x%08X, expected 0x%08X", f.head.checksumAdjustment, adjustment)
			return errors.New("file checksum mismatch")
		}
	}

	// Validate each table.
	common.Log.Debug("Validating font tables")
	for _, tr := range f.trec.list {
		common.Log.Trace("Validating %s", tr.tableTag.String())

		b := make([]byte, tr.length)
		copy(b, data[tr.offset:tr.end()])
		if tr.tableTag.String() == "head" {
			// Set the checksumAdjustment to 0 so that head checksum is valid.
			b[8], b[9], b[10], b[11] = 0, 0, 0, 0
		}

		if cs := checksum(b); tr.checksum != cs {
			common.Log.Debug("Invalid checksum (%d != %d)", cs, tr.checksum)
			return fmt.Errorf("%s: checksum incorrect", tr.tableTag)
		}
	}

	return nil
}

// validateLayout checks that the tables lie inside a file of `size` bytes, after the directory,
// start at 4 byte boundaries and do not overlap.
func (f *font) validateLayout(size int64) error {
	dirEnd := int64(sfntHeaderSize + tableRecordSize*f.numTables())
	if len(f.trec.list) != f.numTables() {
		return errRangeCheck
	}

	list := make([]tableRecord, len(f.trec.list))
	copy(list, f.trec.list)
	sort.Slice(list, func(i, j int) bool {
		return list[i].offset < list[j].offset
	})

	prevEnd := dirEnd
	for _, tr := range list {
		if tr.offset%4 != 0 {
			common.Log.Debug("%s: offset %d not aligned", tr.tableTag, tr.offset)
			return fmt.Errorf("%s: unaligned offset %d", tr.tableTag, tr.offset)
		}
		if int64(tr.offset) < prevEnd {
			common.Log.Debug("%s: offset %d overlaps (%d)", tr.tableTag, tr.offset, prevEnd)
			return fmt.Errorf("%s: overlapping offset %d", tr.tableTag, tr.offset)
		}
		if tr.end() > size {
			common.Log.Debug("Range check error")
			return errRangeCheck
		}
		prevEnd = tr.end()
	}
	return nil
}
