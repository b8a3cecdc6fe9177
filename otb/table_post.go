/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"errors"
	"fmt"

	"github.com/unidoc/otbfont/bmfont"
	"github.com/unidoc/otbfont/common"
)

const (
	postHeaderSize     = 32
	numMacGlyphNames   = 258
	maxCustomNameIndex = 32767
)

// postTable represents a PostScript (post) table.
// This table contains additional information needed for use on PostScript printers.
// Includes FontInfo dictionary entries and the PostScript names of all glyphs.
//
//   - version 2.0 is written when glyph names are requested: standard Macintosh names are
//     referred to by index, other names are stored in the table.
//   - version 3.0 is written otherwise and carries no glyph names.
type postTable struct {
	// header (all versions).
	version            fixed
	italicAngle        fixed // in degrees.
	underlinePosition  int16
	underlineThickness int16
	isFixedPitch       uint32
	minMemType42       uint32
	maxMemType42       uint32
	minMemType1        uint32
	maxMemType1        uint32

	// version 2.0.
	numGlyphs      uint16   // should equal maxp.numGlyphs
	glyphNameIndex []uint16 // len = numGlyphs

	// Processed data:
	glyphNames []GlyphName // index is GlyphID (GID), glyphNames[GlyphID] -> GlyphName.
}

// underline returns the em scaled underline position and thickness. The UNDERLINE_POSITION
// property is the distance below the baseline in pixels.
func (m *fontModel) underline() (int, int) {
	thickness := m.lineSize
	if v, has := m.emProp("UNDERLINE_THICKNESS"); has && v > 0 {
		thickness = v
	}
	if v, has := m.emProp("UNDERLINE_POSITION"); has {
		return -v, thickness
	}
	position := floorDiv(m.emDescender, 2)
	if position > -m.lineSize {
		position = -m.lineSize
	}
	return position, thickness
}

// glyphName returns the PostScript name of `c`, synthesizing a uniXXXX name when it has none.
func glyphName(c *bmfont.Char) GlyphName {
	if c.Name != "" {
		return GlyphName(c.Name)
	}
	if c.Code <= 0xFFFF {
		return GlyphName(fmt.Sprintf("uni%04X", c.Code))
	}
	return GlyphName(fmt.Sprintf("u%05X", c.Code))
}

func (m *fontModel) buildPost() (*byteTable, error) {
	m.check()
	t := newByteTable("post")

	version := 3.0
	if m.params.PostNames {
		version = 2.0
	}
	position, thickness := m.underline()
	err := t.write(
		fx("version", version),
		fx("italicAngle", m.italicAngle),
		i16("underlinePosition", position),
		i16("underlineThickness", thickness),
		bool32("isFixedPitch", !m.proportional),
		u32("minMemType42", 0),
		u32("maxMemType42", 0),
		u32("minMemType1", 0),
		u32("maxMemType1", 0),
	)
	if err != nil {
		return nil, err
	}
	if err := t.checkSize(postHeaderSize); err != nil {
		return nil, err
	}
	if !m.params.PostNames {
		return t, nil
	}

	if err := m.writeGlyphNames(t); err != nil {
		return nil, err
	}
	common.Log.Debug("post: version 2.0, %d bytes", t.size())
	return t, nil
}

// writeGlyphNames writes the glyph name indices followed by the Pascal strings of the names that
// are not standard Macintosh names, in first seen order.
func (m *fontModel) writeGlyphNames(t *byteTable) error {
	if err := t.writeUint16("numGlyphs", m.numGlyphs()); err != nil {
		return err
	}

	custom := map[GlyphName]int{}
	var customNames []GlyphName
	for _, c := range m.chars {
		name := glyphName(c)
		index, has := macGlyphNameIndex[name]
		if !has {
			index, has = custom[name]
			if !has {
				index = numMacGlyphNames + len(customNames)
				custom[name] = index
				customNames = append(customNames, name)
			}
		}
		if index > maxCustomNameIndex {
			return &RangeError{Table: "post", Field: "glyphNameIndex", Value: int64(index), Min: 0, Max: maxCustomNameIndex}
		}
		if err := t.writeUint16("glyphNameIndex", index); err != nil {
			return err
		}
	}

	for _, name := range customNames {
		if err := t.writeUint8("nameLength", len(name)); err != nil {
			return err
		}
		t.writeRaw([]byte(name))
	}
	return nil
}

/*
 See https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6post.html
 and https://docs.microsoft.com/en-us/typography/opentype/spec/post
 for details regarding the format.
*/

func (f *font) parsePost(r *byteReader) (*postTable, error) {
	common.Log.Debug("Parsing post table")
	if f.maxp == nil {
		common.Log.Debug("Required maxp table missing")
		return nil, errRequiredField
	}

	tr, has, err := f.seekToTable(r, "post")
	if err != nil {
		return nil, err
	}
	if !has {
		common.Log.Debug("Post table not present")
		return nil, nil
	}

	start := r.Offset()

	t := &postTable{}
	err = r.read(&t.version, &t.italicAngle, &t.underlinePosition, &t.underlineThickness, &t.isFixedPitch)
	if err != nil {
		return nil, err
	}
	err = r.read(&t.minMemType42, &t.maxMemType42, &t.minMemType1, &t.maxMemType1)
	if err != nil {
		return nil, err
	}

	switch uint32(t.version) {
	case 0x00020000: // 2.0
		err = r.read(&t.numGlyphs)
		if err != nil {
			return nil, err
		}
		if t.numGlyphs != f.maxp.numGlyphs {
			common.Log.Debug("post numGlyphs != maxp.numGlyphs (%d != %d)", t.numGlyphs, f.maxp.numGlyphs)
			return nil, errRangeCheck
		}
		err = r.readSlice(&t.glyphNameIndex, int(t.numGlyphs))
		if err != nil {
			return nil, err
		}
		newGlyphs := 0
		for _, ni := range t.glyphNameIndex {
			if ni >= numMacGlyphNames && int(ni)-numMacGlyphNames+1 > newGlyphs {
				newGlyphs = int(ni) - numMacGlyphNames + 1
			}
		}
		var names []GlyphName
		for i := 0; i < newGlyphs; i++ {
			if r.Offset()-start >= int64(tr.length) {
				common.Log.Debug("ERROR: Reading outside post table")
				return nil, errors.New("reading outside table")
			}
			var numChars uint8
			err = r.read(&numChars)
			if err != nil {
				return nil, err
			}
			var name []byte
			err = r.readBytes(&name, int(numChars))
			if err != nil {
				return nil, err
			}
			names = append(names, GlyphName(name))
		}

		t.glyphNames = make([]GlyphName, int(t.numGlyphs))
		for i, ni := range t.glyphNameIndex {
			if ni < numMacGlyphNames {
				t.glyphNames[i] = macGlyphNames[ni]
				continue
			}
			t.glyphNames[i] = names[int(ni)-numMacGlyphNames]
		}

	case 0x00030000: // 3.0
		common.Log.Debug("Version 3.0 - no postscript data")
	default:
		common.Log.Debug("Unsupported version of post (0x%X) - no post data loaded", uint32(t.version))
	}

	return t, nil
}
