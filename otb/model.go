/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/unicode/bidi"

	"github.com/unidoc/otbfont/bmfont"
	"github.com/unidoc/otbfont/common"
)

// Seconds between the sfnt epoch (1904-01-01T00:00:00Z) and the Unix epoch.
const sfntEpochOffset = 2082844800

// Default italic angle in degrees for italic fonts that do not declare one.
const defaultItalicAngle = -11.5

// fontModel wraps a bitmap font and the generation parameters and derives every quantity that
// is shared by several table builders. All em values are rounded half to even.
type fontModel struct {
	font     *bmfont.Font
	params   Params
	prepared bool

	chars   []*bmfont.Char // sorted by code, no duplicates.
	minCode int
	maxCode int

	emAscender   int
	emDescender  int
	emMaxWidth   int
	macStyle     int // bit 0 bold, bit 1 italic.
	lineSize     int // underline and strikeout thickness.
	bmpOnly      bool
	italicAngle  float64
	proportional bool
	hasRTL       bool
	created      int64 // seconds since 1904.
	modified     int64

	decoder *encoding.Decoder
}

func newFontModel(f *bmfont.Font, params Params) *fontModel {
	return &fontModel{
		font:   f,
		params: params,
	}
}

// prepare sorts and deduplicates the glyphs and derives the shared quantities.
func (m *fontModel) prepare() error {
	f := m.font
	if f == nil || len(f.Chars) == 0 {
		common.Log.Debug("ERROR: font has no chars")
		return errRequiredField
	}
	if err := m.params.Validate(); err != nil {
		return err
	}
	if f.Height <= 0 || f.Width <= 0 || f.Ascent < 0 {
		return fmt.Errorf("invalid font cell %dx%d, ascent %d", f.Width, f.Height, f.Ascent)
	}

	chars := make([]*bmfont.Char, len(f.Chars))
	copy(chars, f.Chars)
	sort.SliceStable(chars, func(i, j int) bool {
		return chars[i].Code < chars[j].Code
	})
	m.chars = chars[:0]
	for i, c := range chars {
		if c.Code < 0 {
			return &RangeError{Table: "cmap", Field: "code", Value: int64(c.Code), Min: 0, Max: math.MaxUint32}
		}
		if len(c.Data) != c.RowSize()*c.Height {
			return fmt.Errorf("char %d: raster size %d, expected %d", c.Code, len(c.Data), c.RowSize()*c.Height)
		}
		if i > 0 && c.Code == chars[i-1].Code {
			common.Log.Debug("Dropping duplicate char %d", c.Code)
			continue
		}
		m.chars = append(m.chars, c)
	}
	m.minCode = m.chars[0].Code
	m.maxCode = m.chars[len(m.chars)-1].Code

	enc, err := ianaindex.IANA.Encoding(m.params.Encoding)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", m.params.Encoding, err)
	}
	if enc == nil {
		return fmt.Errorf("encoding %q: %w", m.params.Encoding, errors.New("unsupported"))
	}
	m.decoder = enc.NewDecoder()

	m.emAscender = m.emScale(float64(f.Ascent))
	m.emDescender = m.emAscender - m.params.EmSize
	m.emMaxWidth = m.emScale(float64(f.Width))
	m.macStyle = boolInt(f.Bold) + 2*boolInt(f.Italic)

	lineSize := int(math.RoundToEven(float64(f.Height) / 17))
	if lineSize == 0 {
		lineSize = 1
	}
	m.lineSize = m.emScale(float64(lineSize))

	m.bmpOnly = m.maxCode <= 0xFFFF
	m.italicAngle = m.deriveItalicAngle()
	m.proportional = m.deriveProportional()
	m.hasRTL = m.containsRTL()
	m.created = sfntTime(m.params.Created)
	m.modified = sfntTime(m.params.Modified)

	m.prepared = true
	common.Log.Debug("Font model: %d glyphs (%d dropped), codes %d-%d, ascender %d, descender %d, max width %d",
		len(m.chars), len(f.Chars)-len(m.chars), m.minCode, m.maxCode, m.emAscender, m.emDescender, m.emMaxWidth)
	return nil
}

// check panics if the model is used before prepare.
func (m *fontModel) check() {
	if !m.prepared {
		panic("otb: font model used before prepare")
	}
}

// emScale scales pixel value `v` to em units, with the cell height as divisor.
func (m *fontModel) emScale(v float64) int {
	return m.emScaleDiv(v, float64(m.font.Height))
}

// emScaleDiv returns round(v * emSize / div).
func (m *fontModel) emScaleDiv(v, div float64) int {
	return int(math.RoundToEven(v * float64(m.params.EmSize) / div))
}

func (m *fontModel) numGlyphs() int {
	return len(m.chars)
}

// charSize returns the size of the EBDT record of `c`: small metrics plus raster.
func (m *fontModel) charSize(c *bmfont.Char) int {
	return smallMetricsSize + len(c.Data)
}

// bmpCode clamps `code` to the Basic Multilingual Plane.
func bmpCode(code int) int {
	if code > 0xFFFF {
		return 0xFFFF
	}
	return code
}

// hasCode returns true if the font has a glyph for `code`.
func (m *fontModel) hasCode(code int) bool {
	i := sort.Search(len(m.chars), func(i int) bool {
		return m.chars[i].Code >= code
	})
	return i < len(m.chars) && m.chars[i].Code == code
}

// prop returns the property `name` decoded with the configured character set.
func (m *fontModel) prop(name string) (string, bool) {
	raw, has := m.font.Props.Get(name)
	if !has {
		return "", false
	}
	return m.decode(raw), true
}

// decode converts `raw` to UTF-8. Undecodable input is returned unchanged.
func (m *fontModel) decode(raw string) string {
	s, err := m.decoder.String(raw)
	if err != nil {
		common.Log.Debug("Unable to decode %q: %v", raw, err)
		return raw
	}
	return s
}

// emProp returns the em scaled integer property `name`.
func (m *fontModel) emProp(name string) (int, bool) {
	v, has := m.font.Props.Int(name)
	if !has {
		return 0, false
	}
	return m.emScale(float64(v)), true
}

func (m *fontModel) family() string {
	return m.decode(m.font.Family())
}

func (m *fontModel) deriveItalicAngle() float64 {
	if s, has := m.font.Props.Get("ITALIC_ANGLE"); has {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err == nil && v >= -45 && v <= 45 {
			return float64(v)
		}
		common.Log.Debug("Ignoring ITALIC_ANGLE %q", s)
	}
	if m.font.Italic {
		return defaultItalicAngle
	}
	return 0
}

func (m *fontModel) deriveProportional() bool {
	for _, c := range m.chars {
		if c.Width != m.chars[0].Width || c.Height != m.chars[0].Height {
			return true
		}
	}
	return false
}

// containsRTL returns true if any glyph has a strong right-to-left bidi class.
func (m *fontModel) containsRTL() bool {
	for _, c := range m.chars {
		if c.Code > unicode.MaxRune {
			break
		}
		props, _ := bidi.LookupRune(rune(c.Code))
		if class := props.Class(); class == bidi.R || class == bidi.AL {
			common.Log.Trace("RTL char %d", c.Code)
			return true
		}
	}
	return false
}

// sfntTime converts `t` to seconds since 1904-01-01. The zero time maps to the Unix epoch.
func sfntTime(t time.Time) int64 {
	if t.IsZero() {
		return sfntEpochOffset
	}
	return t.Unix() + sfntEpochOffset
}
