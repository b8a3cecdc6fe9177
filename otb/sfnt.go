/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import "github.com/unidoc/otbfont/common"

// Target value of the whole font checksum.
const checksumMagic = 0xB1B0AFBA

// tableBuilder builds the table `tag` from a prepared font model.
type tableBuilder struct {
	tag   string
	build func(m *fontModel) (*byteTable, error)
}

// sfntTables lists the tables of a compiled font in directory order, which is also ascending tag
// order.
var sfntTables = []tableBuilder{
	{"EBDT", (*fontModel).buildEBDT},
	{"EBLC", (*fontModel).buildEBLC},
	{"OS/2", (*fontModel).buildOS2},
	{"cmap", (*fontModel).buildCmap},
	{"glyf", (*fontModel).buildGlyf},
	{"head", (*fontModel).buildHead},
	{"hhea", (*fontModel).buildHhea},
	{"hmtx", (*fontModel).buildHmtx},
	{"loca", (*fontModel).buildLoca},
	{"maxp", (*fontModel).buildMaxp},
	{"name", (*fontModel).buildName},
	{"post", (*fontModel).buildPost},
}

// assemble builds every table and lays out the font: header, table directory and the padded
// table bodies. The head checksumAdjustment is patched last, over the complete output.
func (m *fontModel) assemble() ([]byte, error) {
	m.check()

	tables := make([]*byteTable, 0, len(sfntTables))
	for _, tb := range sfntTables {
		t, err := tb.build(m)
		if err != nil {
			common.Log.Debug("ERROR: building %s: %v", tb.tag, err)
			return nil, err
		}
		common.Log.Debug("%s: %d bytes, checksum 0x%08X", tb.tag, t.size(), t.checksum())
		tables = append(tables, t)
	}

	out := newByteTable("sfnt")
	if err := makeOffsetTable(len(tables)).write(out); err != nil {
		return nil, err
	}

	content := newByteTable("sfnt")
	offset := sfntHeaderSize + tableRecordSize*len(tables)
	adjustmentOffset := -1
	for i, t := range tables {
		tr := tableRecord{
			tableTag: makeTag(sfntTables[i].tag),
			checksum: t.checksum(),
			offset:   offset32(offset),
			length:   uint32(t.size()),
		}
		if err := tr.write(out); err != nil {
			return nil, err
		}
		if sfntTables[i].tag == "head" {
			adjustmentOffset = offset + headAdjustmentOff
		}
		content.appendPadded(t)
		offset += t.size() + t.padding()
	}

	out.append(content)
	if err := out.checkSize(offset); err != nil {
		return nil, err
	}
	if adjustmentOffset < 0 {
		return nil, errRequiredField
	}

	adjustment := uint32(checksumMagic) - out.checksum()
	if err := out.rewriteUint32("checksumAdjustment", int64(adjustment), adjustmentOffset); err != nil {
		return nil, err
	}
	common.Log.Debug("sfnt: %d tables, %d bytes, checksumAdjustment 0x%08X", len(tables), out.size(), adjustment)
	return out.bytes(), nil
}
