/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package bmfont

import (
	"strconv"
	"strings"
)

// Char represents a single glyph of a bitmap font.
type Char struct {
	Code   int    // character code (Unicode code point).
	Name   string // glyph name, e.g. from STARTCHAR.
	Width  int    // raster width in pixels, also the advance width.
	Height int    // raster height in pixels.
	Data   []byte // len = RowSize() * Height.
}

// NewChar returns a blank glyph of the given dimensions.
func NewChar(code int, name string, width, height int) *Char {
	c := &Char{
		Code:   code,
		Name:   name,
		Width:  width,
		Height: height,
	}
	c.Data = make([]byte, c.RowSize()*height)
	return c
}

// RowSize returns the number of bytes per raster row.
func (c *Char) RowSize() int {
	return (c.Width + 7) / 8
}

// Pixel returns true if the pixel at (`x`,`y`) is set. Out of range pixels are never set.
func (c *Char) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return false
	}
	return c.Data[y*c.RowSize()+x/8]&(0x80>>uint(x%8)) != 0
}

// SetPixel sets the pixel at (`x`,`y`). Out of range coordinates are ignored.
func (c *Char) SetPixel(x, y int) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.Data[y*c.RowSize()+x/8] |= 0x80 >> uint(x%8)
}

// Property is a single font property. Values are kept exactly as found in the source, without
// character set decoding.
type Property struct {
	Name  string
	Value string
}

// Properties is an ordered list of font properties.
type Properties []Property

// Get returns the value of property `name` and whether it is present.
func (p Properties) Get(name string) (string, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return "", false
}

// Int returns the value of property `name` as an integer. The bool flag is false if the property
// is absent or not an integer.
func (p Properties) Int(name string) (int, bool) {
	s, has := p.Get(name)
	if !has {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Set sets property `name` to `value`, replacing an existing entry or appending a new one.
func (p *Properties) Set(name, value string) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Property{Name: name, Value: value})
}

// Font is a parsed bitmap font.
type Font struct {
	Name  string // the font name (XLFD for BDF fonts).
	Chars []*Char
	Props Properties

	// Font cell in pixels.
	Width  int
	Height int

	// Ascender and descender in pixels, both positive. Ascent + Descent == Height.
	Ascent  int
	Descent int

	AvgWidth    float64 // average advance width in pixels.
	DefaultCode int     // code of the default character, -1 if not declared.

	Bold   bool
	Italic bool
	Slant  string // XLFD slant: "R", "I", "O", ...
}

// Family returns the (undecoded) family name: the FAMILY_NAME property, the XLFD family field of
// the font name, or the font name itself.
func (f *Font) Family() string {
	if family, has := f.Props.Get("FAMILY_NAME"); has && family != "" {
		return family
	}
	if family := xlfdField(f.Name, xlfdFamilyName); family != "" {
		return family
	}
	return f.Name
}

// Foundry returns the (undecoded) foundry: the FOUNDRY property or the XLFD foundry field.
func (f *Font) Foundry() string {
	if foundry, has := f.Props.Get("FOUNDRY"); has {
		return foundry
	}
	return xlfdField(f.Name, xlfdFoundry)
}

// Proportional returns true if the glyphs do not all share the same raster dimensions.
func (f *Font) Proportional() bool {
	for _, c := range f.Chars {
		if c.Width != f.Chars[0].Width || c.Height != f.Chars[0].Height {
			return true
		}
	}
	return false
}

// XLFD field indices.
const (
	xlfdFoundry = iota + 1
	xlfdFamilyName
	xlfdWeightName
	xlfdSlant
)

// xlfdField returns field `index` of XLFD font name `name`, or "" if `name` is not an XLFD name.
func xlfdField(name string, index int) string {
	if !strings.HasPrefix(name, "-") {
		return ""
	}
	fields := strings.Split(name, "-")
	if len(fields) != 15 {
		return ""
	}
	return fields[index]
}
