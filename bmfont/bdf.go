/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package bmfont

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/unidoc/otbfont/common"
)

// ParseError is returned for malformed BDF input.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bdf: line %d: %s", e.Line, e.Msg)
}

// bdfChar is a glyph as found in the BDF source, before normalization onto the font cell.
type bdfChar struct {
	name     string
	encoding int
	dwidth   int
	bbx      [4]int // width, height, x offset, y offset.
	rows     [][]byte
}

// bdfReader holds the parsing state of a BDF file.
// https://adobe-type-tools.github.io/font-tech-notes/pdfs/5005.BDF_Spec.pdf
type bdfReader struct {
	s    *bufio.Scanner
	line int

	font  *Font
	bbx   [4]int
	chars []*bdfChar
}

// LoadBDF reads the BDF font file at `filePath`.
func LoadBDF(filePath string) (*Font, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadBDF(f)
}

// ReadBDF parses a BDF font from `r`. Glyphs with no Unicode encoding (ENCODING -1) are skipped.
func ReadBDF(r io.Reader) (*Font, error) {
	br := &bdfReader{
		s:    bufio.NewScanner(r),
		font: &Font{DefaultCode: -1},
	}
	br.s.Buffer(make([]byte, 64*1024), 1024*1024)

	keyword, _, err := br.next()
	if err != nil {
		return nil, err
	}
	if keyword != "STARTFONT" {
		return nil, br.errorf("expected STARTFONT, got %q", keyword)
	}

	if err := br.parseHeader(); err != nil {
		return nil, err
	}
	return br.finish()
}

// next returns the next non-comment line split into keyword and remainder.
func (br *bdfReader) next() (string, string, error) {
	for br.s.Scan() {
		br.line++
		line := strings.TrimSpace(br.s.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if parts[0] == "COMMENT" {
			continue
		}
		if len(parts) == 1 {
			return parts[0], "", nil
		}
		return parts[0], strings.TrimSpace(parts[1]), nil
	}
	if err := br.s.Err(); err != nil {
		return "", "", err
	}
	return "", "", br.errorf("unexpected end of file")
}

func (br *bdfReader) errorf(format string, args ...interface{}) error {
	return &ParseError{Line: br.line, Msg: fmt.Sprintf(format, args...)}
}

// ints parses exactly `n` whitespace separated integers from `s`.
func (br *bdfReader) ints(s string, n int) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) < n {
		return nil, br.errorf("expected %d numbers, got %q", n, s)
	}
	vals := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, br.errorf("invalid number %q", fields[i])
		}
		vals[i] = v
	}
	return vals, nil
}

func (br *bdfReader) parseHeader() error {
	for {
		keyword, rest, err := br.next()
		if err != nil {
			return err
		}

		switch keyword {
		case "FONT":
			br.font.Name = rest
		case "SIZE", "METRICSSET", "SWIDTH", "DWIDTH", "SWIDTH1", "DWIDTH1", "VVECTOR":
			// Not needed for the model.
		case "FONTBOUNDINGBOX":
			vals, err := br.ints(rest, 4)
			if err != nil {
				return err
			}
			copy(br.bbx[:], vals)
		case "STARTPROPERTIES":
			if err := br.parseProperties(); err != nil {
				return err
			}
		case "CHARS":
			if _, err := br.ints(rest, 1); err != nil {
				return err
			}
		case "STARTCHAR":
			if err := br.parseChar(rest); err != nil {
				return err
			}
		case "ENDFONT":
			return nil
		default:
			common.Log.Debug("bdf: line %d: ignoring %s", br.line, keyword)
		}
	}
}

func (br *bdfReader) parseProperties() error {
	for {
		keyword, rest, err := br.next()
		if err != nil {
			return err
		}
		if keyword == "ENDPROPERTIES" {
			return nil
		}
		br.font.Props.Set(keyword, unquote(rest))
	}
}

// unquote strips BDF string quoting, where a literal quote is written as "".
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return strings.Replace(s[1:len(s)-1], `""`, `"`, -1)
	}
	return s
}

func (br *bdfReader) parseChar(name string) error {
	ch := &bdfChar{name: name, encoding: -1, dwidth: -1}

	for {
		keyword, rest, err := br.next()
		if err != nil {
			return err
		}

		switch keyword {
		case "ENCODING":
			fields := strings.Fields(rest)
			vals, err := br.ints(rest, 1)
			if err != nil {
				return err
			}
			ch.encoding = vals[0]
			if ch.encoding < 0 && len(fields) > 1 {
				alt, err := br.ints(fields[1], 1)
				if err != nil {
					return err
				}
				ch.encoding = alt[0]
			}
		case "DWIDTH":
			vals, err := br.ints(rest, 1)
			if err != nil {
				return err
			}
			ch.dwidth = vals[0]
		case "BBX":
			vals, err := br.ints(rest, 4)
			if err != nil {
				return err
			}
			if vals[0] < 0 || vals[1] < 0 {
				return br.errorf("negative BBX size")
			}
			copy(ch.bbx[:], vals)
		case "BITMAP":
			for i := 0; i < ch.bbx[1]; i++ {
				row, _, err := br.next()
				if err != nil {
					return err
				}
				data, err := hex.DecodeString(row)
				if err != nil {
					return br.errorf("invalid bitmap row %q", row)
				}
				ch.rows = append(ch.rows, data)
			}
		case "ENDCHAR":
			if ch.encoding < 0 {
				common.Log.Debug("bdf: skipping unencoded char %q", ch.name)
				return nil
			}
			br.chars = append(br.chars, ch)
			return nil
		}
	}
}

// finish derives the font-wide metrics and normalizes every glyph onto the font cell.
func (br *bdfReader) finish() (*Font, error) {
	f := br.font

	f.Ascent = br.bbx[1] + br.bbx[3]
	if v, has := f.Props.Int("FONT_ASCENT"); has {
		f.Ascent = v
	}
	f.Descent = -br.bbx[3]
	if v, has := f.Props.Int("FONT_DESCENT"); has {
		f.Descent = v
	}
	f.Height = f.Ascent + f.Descent
	if f.Height <= 0 {
		return nil, br.errorf("invalid font height %d", f.Height)
	}
	if len(br.chars) == 0 {
		return nil, br.errorf("no encoded chars")
	}

	f.Width = br.bbx[0]
	totalWidth := 0
	for _, bc := range br.chars {
		width := bc.dwidth
		if width < 0 {
			width = bc.bbx[0]
		}
		if width > f.Width {
			f.Width = width
		}
		totalWidth += width
		f.Chars = append(f.Chars, br.normalize(bc, width))
	}

	f.AvgWidth = float64(totalWidth) / float64(len(f.Chars))
	if v, has := f.Props.Int("AVERAGE_WIDTH"); has && v > 0 {
		f.AvgWidth = float64(v) / 10
	}

	weight, has := f.Props.Get("WEIGHT_NAME")
	if !has {
		weight = xlfdField(f.Name, xlfdWeightName)
	}
	f.Bold = strings.Contains(strings.ToLower(weight), "bold")

	slant, has := f.Props.Get("SLANT")
	if !has {
		slant = xlfdField(f.Name, xlfdSlant)
	}
	f.Slant = strings.ToUpper(strings.TrimSpace(slant))
	f.Italic = f.Slant == "I" || f.Slant == "O"

	if v, has := f.Props.Int("DEFAULT_CHAR"); has && v >= 0 {
		f.DefaultCode = v
	}

	common.Log.Debug("bdf: %d chars, cell %dx%d, ascent %d", len(f.Chars), f.Width, f.Height, f.Ascent)
	return f, nil
}

// normalize places the BBX-relative bitmap of `bc` into a cell-sized raster `width` pixels wide.
func (br *bdfReader) normalize(bc *bdfChar, width int) *Char {
	f := br.font
	c := NewChar(bc.encoding, bc.name, width, f.Height)

	w, h, xoff, yoff := bc.bbx[0], bc.bbx[1], bc.bbx[2], bc.bbx[3]
	top := f.Ascent - (yoff + h)
	for row, data := range bc.rows {
		for col := 0; col < w && col/8 < len(data); col++ {
			if data[col/8]&(0x80>>uint(col%8)) != 0 {
				c.SetPixel(xoff+col, top+row)
			}
		}
	}
	return c
}
