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
)

// Test marshalling and unmarshalling table records.
func TestTableRecordsReadWrite(t *testing.T) {
	records := []tableRecord{
		{
			tableTag: makeTag("OS/2"),
			checksum: 3829110115,
			offset:   392,
			length:   96,
		},
		{
			tableTag: makeTag("cmap"),
			checksum: 4271469241,
			offset:   488,
			length:   28,
		},
		{
			tableTag: makeTag("cvt"),
			checksum: 2,
			offset:   516,
			length:   0,
		},
	}

	bt := newByteTable("sfnt")
	ot := makeOffsetTable(len(records))
	require.NoError(t, ot.write(bt))
	for _, tr := range records {
		require.NoError(t, tr.write(bt))
	}
	require.Equal(t, sfntHeaderSize+tableRecordSize*len(records), bt.size())

	br := newByteReader(bytes.NewReader(bt.bytes()))
	f := &font{}
	var err error
	f.ot, err = f.parseOffsetTable(br)
	require.NoError(t, err)
	f.trec, err = f.parseTableRecords(br)
	require.NoError(t, err)

	assert.Equal(t, records, f.trec.list)
	assert.Len(t, f.trec.trMap, 3)
	assert.Equal(t, int64(516), f.trec.trMap["cmap"].end())

	assert.True(t, f.trec.HasTable("cmap"))
	assert.True(t, f.trec.HasTable("cvt "))
	assert.True(t, f.trec.HasTable("cvt"))
	assert.False(t, f.trec.HasTable("glyf"))

	assert.Equal(t,
		"Table record 1: OS/2 checksum=0xE43B9563 offset=392 length=96\n"+
			"Table record 2: cmap checksum=0xFE9972B9 offset=488 length=28\n"+
			"Table record 3: cvt checksum=0x00000002 offset=516 length=0\n",
		f.trec.String())
}

func TestTableRecordsEmpty(t *testing.T) {
	bt := newByteTable("sfnt")
	require.NoError(t, makeOffsetTable(0).write(bt))

	br := newByteReader(bytes.NewReader(bt.bytes()))
	f := &font{}
	var err error
	f.ot, err = f.parseOffsetTable(br)
	require.NoError(t, err)
	_, err = f.parseTableRecords(br)
	assert.Equal(t, errRequiredField, err)
}

func TestCompiledTableRecords(t *testing.T) {
	_, fnt := compileAndParse(t, newTestFont(65, 66), testParams())
	assert.Equal(t, []string{"EBDT", "EBLC", "OS/2", "cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp", "name", "post"},
		fnt.Tags())

	for _, tb := range sfntTables {
		assert.True(t, fnt.trec.HasTable(tb.tag), tb.tag)
	}
	assert.Equal(t, uint32(0), fnt.trec.trMap["glyf"].length)
	assert.Equal(t, uint32(headSize), fnt.trec.trMap["head"].length)
}
