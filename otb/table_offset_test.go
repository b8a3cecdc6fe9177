/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unidoc/otbfont/common"
)

// Test marshalling and unmarshalling offset table.
func TestOffsetTableReadWrite(t *testing.T) {
	testcases := []struct {
		numTables int
		// Expected offset table parameters.
		expected offsetTable
	}{
		{
			12,
			offsetTable{
				sfntVersion:   0x10000,
				numTables:     12,
				searchRange:   128,
				entrySelector: 3,
				rangeShift:    64,
			},
		},
		{
			16,
			offsetTable{
				sfntVersion:   0x10000,
				numTables:     16,
				searchRange:   256,
				entrySelector: 4,
				rangeShift:    0,
			},
		},
		{
			15,
			offsetTable{
				sfntVersion:   0x10000,
				numTables:     15,
				searchRange:   128,
				entrySelector: 3,
				rangeShift:    112,
			},
		},
		{
			18,
			offsetTable{
				sfntVersion:   0x10000,
				numTables:     18,
				searchRange:   256,
				entrySelector: 4,
				rangeShift:    32,
			},
		},
	}

	for _, tcase := range testcases {
		t.Logf("%d tables", tcase.numTables)
		ot := makeOffsetTable(tcase.numTables)
		assert.Equal(t, tcase.expected, ot)

		common.Log.Debug("Write offset table")
		bt := newByteTable("sfnt")
		err := ot.write(bt)
		require.NoError(t, err)
		require.Equal(t, sfntHeaderSize, bt.size())

		// Reload from buffer.
		br := newByteReader(bytes.NewReader(bt.bytes()))
		var f font
		parsed, err := f.parseOffsetTable(br)
		require.NoError(t, err)
		assert.Equal(t, ot, *parsed)
	}
}

func TestCompiledOffsetTable(t *testing.T) {
	_, fnt := compileAndParse(t, newTestFont(65), testParams())
	assert.Equal(t, makeOffsetTable(len(sfntTables)), *fnt.ot)
	assert.Equal(t, 12, fnt.numTables())
}
