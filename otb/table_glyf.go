/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

// buildGlyf returns the glyph data table. Bitmap only fonts have no outlines, so it is empty.
func (m *fontModel) buildGlyf() (*byteTable, error) {
	m.check()
	t := newByteTable("glyf")
	return t, t.checkSize(0)
}
