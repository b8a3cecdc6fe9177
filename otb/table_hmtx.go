/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

// buildHmtx writes one long horizontal metric per glyph: the em scaled advance and a zero left
// side bearing.
// https://docs.microsoft.com/en-us/typography/opentype/spec/hmtx
func (m *fontModel) buildHmtx() (*byteTable, error) {
	m.check()
	t := newByteTable("hmtx")
	for _, c := range m.chars {
		err := t.write(
			u16("advanceWidth", m.emScale(float64(c.Width))),
			i16("lsb", 0),
		)
		if err != nil {
			return nil, err
		}
	}
	if err := t.checkSize(4 * m.numGlyphs()); err != nil {
		return nil, err
	}
	return t, nil
}
