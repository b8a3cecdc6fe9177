/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

// buildLoca writes short offsets into the empty glyf table, so all of them are zero.
// With the single loca option only one glyph entry is written.
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
func (m *fontModel) buildLoca() (*byteTable, error) {
	m.check()
	t := newByteTable("loca")

	entries := m.numGlyphs()
	if m.params.SingleLoca {
		entries = 1
	}
	for i := 0; i <= entries; i++ {
		if err := t.writeUint16("offsets", 0); err != nil {
			return nil, err
		}
	}
	if err := t.checkSize(2 * (entries + 1)); err != nil {
		return nil, err
	}
	return t, nil
}
