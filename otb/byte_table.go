/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"encoding/binary"
	"math"

	"github.com/unidoc/otbfont/common"
)

// byteTable is a named, append-only buffer of big-endian binary data as fit for sfnt tables.
// Every integer write is range checked against the width of the target field. Provides methods
// to calculate the padding and checksum of the current buffer.
type byteTable struct {
	name string
	data []byte
}

func newByteTable(name string) *byteTable {
	return &byteTable{name: name}
}

// size returns the unpadded length of the table.
func (t *byteTable) size() int {
	return len(t.data)
}

// padding returns the number of zero bytes needed to round the table up to a multiple of 4.
func (t *byteTable) padding() int {
	return padding(len(t.data))
}

// bytes returns the table data without padding.
func (t *byteTable) bytes() []byte {
	return t.data
}

// paddedBytes returns a copy of the table data followed by its padding.
func (t *byteTable) paddedBytes() []byte {
	b := make([]byte, len(t.data)+t.padding())
	copy(b, t.data)
	return b
}

// checksum returns the checksum of the padded table.
func (t *byteTable) checksum() uint32 {
	return checksum(t.data)
}

// checkSize returns a *SizeError if the table size is not `expected`.
func (t *byteTable) checkSize(expected int) error {
	if len(t.data) != expected {
		common.Log.Debug("ERROR: %s size %d != %d", t.name, len(t.data), expected)
		return &SizeError{Table: t.name, Actual: len(t.data), Expected: expected}
	}
	return nil
}

// padding returns the number of zero bytes needed to round `size` up to a multiple of 4.
func padding(size int) int {
	return (4 - size%4) % 4
}

// checksum returns the sum of `data` as big-endian uint32 words, modulo 2^32. A trailing partial
// word is zero extended, i.e. the sum covers the padded data.
func checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}

type fieldKind int

const (
	kindUint8 fieldKind = iota
	kindInt8
	kindUint16
	kindInt16
	kindUint32
	kindInt32
	kindUint64
)

var fieldRanges = []struct {
	min  int64
	max  int64
	size int
}{
	kindUint8:  {0, math.MaxUint8, 1},
	kindInt8:   {math.MinInt8, math.MaxInt8, 1},
	kindUint16: {0, math.MaxUint16, 2},
	kindInt16:  {math.MinInt16, math.MaxInt16, 2},
	kindUint32: {0, math.MaxUint32, 4},
	kindInt32:  {math.MinInt32, math.MaxInt32, 4},
	kindUint64: {0, math.MaxInt64, 8},
}

// field is a named value to be written with a fixed binary width.
type field struct {
	name  string
	kind  fieldKind
	value int64
}

func u8(name string, v int) field { return field{name, kindUint8, int64(v)} }
func i8(name string, v int) field { return field{name, kindInt8, int64(v)} }
func u16(name string, v int) field { return field{name, kindUint16, int64(v)} }
func i16(name string, v int) field { return field{name, kindInt16, int64(v)} }
func u32(name string, v int64) field { return field{name, kindUint32, v} }
func u64(name string, v int64) field { return field{name, kindUint64, v} }
func fx(name string, v float64) field { return field{name, kindInt32, makeFixed(v)} }
func bool32(name string, v bool) field { return u32(name, int64(boolInt(v))) }

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// encode checks that `f` fits its width and returns it as big-endian bytes.
func (t *byteTable) encode(f field) ([]byte, error) {
	r := fieldRanges[f.kind]
	if f.value < r.min || f.value > r.max {
		common.Log.Debug("ERROR: %s.%s = %d out of range", t.name, f.name, f.value)
		return nil, &RangeError{Table: t.name, Field: f.name, Value: f.value, Min: r.min, Max: r.max}
	}

	b := make([]byte, r.size)
	switch r.size {
	case 1:
		b[0] = byte(f.value)
	case 2:
		binary.BigEndian.PutUint16(b, uint16(f.value))
	case 4:
		binary.BigEndian.PutUint32(b, uint32(f.value))
	case 8:
		binary.BigEndian.PutUint64(b, uint64(f.value))
	}
	return b, nil
}

// write appends a series of fields to `t`. Nothing is written past the first field that does not
// fit.
func (t *byteTable) write(fields ...field) error {
	for _, f := range fields {
		b, err := t.encode(f)
		if err != nil {
			return err
		}
		t.data = append(t.data, b...)
	}
	return nil
}

func (t *byteTable) writeUint8(name string, v int) error {
	return t.write(u8(name, v))
}

func (t *byteTable) writeInt8(name string, v int) error {
	return t.write(i8(name, v))
}

func (t *byteTable) writeUint16(name string, v int) error {
	return t.write(u16(name, v))
}

func (t *byteTable) writeInt16(name string, v int) error {
	return t.write(i16(name, v))
}

func (t *byteTable) writeUint32(name string, v int64) error {
	return t.write(u32(name, v))
}

func (t *byteTable) writeUint64(name string, v int64) error {
	return t.write(u64(name, v))
}

// writeFixed writes `v` as a 16.16 fixed point number.
func (t *byteTable) writeFixed(name string, v float64) error {
	return t.write(fx(name, v))
}

func (t *byteTable) writeTag(s string) {
	tg := makeTag(s)
	t.data = append(t.data, tg[:]...)
}

func (t *byteTable) writeRaw(b []byte) {
	t.data = append(t.data, b...)
}

// rewriteUint32 replaces the 4 bytes at `offset`, which must have been written already.
func (t *byteTable) rewriteUint32(name string, v int64, offset int) error {
	if offset < 0 || offset+4 > len(t.data) {
		common.Log.Debug("ERROR: %s.%s rewrite at %d outside table (%d)", t.name, name, offset, len(t.data))
		return &SizeError{Table: t.name, Actual: len(t.data), Expected: offset + 4}
	}
	b, err := t.encode(u32(name, v))
	if err != nil {
		return err
	}
	copy(t.data[offset:], b)
	return nil
}

// append appends the content of `other`, without padding.
func (t *byteTable) append(other *byteTable) {
	t.data = append(t.data, other.data...)
}

// appendPadded appends the content of `other` followed by its padding.
func (t *byteTable) appendPadded(other *byteTable) {
	t.data = append(t.data, other.paddedBytes()...)
}
