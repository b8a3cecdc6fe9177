/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordOffset returns the offset of the directory record of table number `i`.
func recordOffset(i int) int {
	return sfntHeaderSize + tableRecordSize*i
}

// fixAdjustment recomputes the checksum adjustment of `data` in place.
func fixAdjustment(t *testing.T, data []byte, fnt *Font) {
	hoff := int(fnt.trec.trMap["head"].offset) + headAdjustmentOff
	binary.BigEndian.PutUint32(data[hoff:], 0)
	binary.BigEndian.PutUint32(data[hoff:], checksumMagic-checksum(data))
	require.Equal(t, uint32(checksumMagic), checksum(data))
}

func TestValidate(t *testing.T) {
	data, fnt := compileAndParse(t, newTestFont(65, 66, 67), testParams())
	require.NoError(t, Validate(data))

	corrupt := func(modify func(b []byte)) []byte {
		b := make([]byte, len(data))
		copy(b, data)
		modify(b)
		return b
	}
	ebdt := fnt.trec.trMap["EBDT"]

	t.Run("table data", func(t *testing.T) {
		b := corrupt(func(b []byte) { b[ebdt.offset+ebdtHeaderSize+smallMetricsSize] ^= 0xFF })
		err := Validate(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file checksum mismatch")
	})

	t.Run("adjustment", func(t *testing.T) {
		hoff := fnt.trec.trMap["head"].offset + headAdjustmentOff
		b := corrupt(func(b []byte) { b[hoff+3]++ })
		assert.Error(t, Validate(b))
	})

	t.Run("table checksum", func(t *testing.T) {
		b := corrupt(func(b []byte) {
			off := recordOffset(0) + 4
			binary.BigEndian.PutUint32(b[off:], binary.BigEndian.Uint32(b[off:])+1)
		})
		fixAdjustment(t, b, fnt)
		err := Validate(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EBDT: checksum incorrect")
	})

	t.Run("unaligned", func(t *testing.T) {
		b := corrupt(func(b []byte) {
			binary.BigEndian.PutUint32(b[recordOffset(0)+8:], uint32(ebdt.offset)+2)
		})
		err := Validate(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unaligned")
	})

	t.Run("overlap", func(t *testing.T) {
		b := corrupt(func(b []byte) {
			binary.BigEndian.PutUint32(b[recordOffset(1)+8:], uint32(ebdt.offset))
		})
		err := Validate(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "overlapping")
	})

	t.Run("out of bounds", func(t *testing.T) {
		b := corrupt(func(b []byte) {
			binary.BigEndian.PutUint32(b[recordOffset(len(sfntTables)-1)+12:], uint32(len(data)))
		})
		assert.ErrorIs(t, Validate(b), ErrRangeCheck)
	})

	t.Run("truncated", func(t *testing.T) {
		assert.Error(t, Validate(data[:sfntHeaderSize+4]))
		assert.Error(t, Validate(nil))
	})
}

func TestValidateFile(t *testing.T) {
	data, err := Compile(newTestFont(65, 0x263A), testParams())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "test.otb")
	require.NoError(t, os.WriteFile(path, data, 0644))
	assert.NoError(t, ValidateFile(path))

	fnt, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, fnt.NumGlyphs())
	assert.Equal(t, 1024, fnt.UnitsPerEm())

	assert.Error(t, ValidateFile(filepath.Join(t.TempDir(), "missing.otb")))
}
