/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"bytes"
	"io"
	"os"

	"github.com/unidoc/otbfont/bmfont"
)

// Compile compiles bitmap font `f` into an sfnt font with embedded bitmaps, using the generation
// parameters `params`. No output is returned on error.
func Compile(f *bmfont.Font, params Params) ([]byte, error) {
	m := newFontModel(f, params)
	if err := m.prepare(); err != nil {
		return nil, err
	}
	return m.assemble()
}

// Write compiles `f` and writes the result to `w`.
func Write(w io.Writer, f *bmfont.Font, params Params) error {
	data, err := Compile(f, params)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Font wraps font for outside access.
type Font struct {
	br *byteReader
	*font
}

// Parse parses the sfnt font from `rs` and returns a new Font.
func Parse(rs io.ReadSeeker) (*Font, error) {
	r := newByteReader(rs)

	fnt, err := parseFont(r)
	if err != nil {
		return nil, err
	}

	return &Font{
		br:   r,
		font: fnt,
	}, nil
}

// ParseFile parses the sfnt font from file given by path.
func ParseFile(filePath string) (*Font, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}

	defer f.Close()
	return Parse(f)
}

// Validate validates the sfnt font in `data`: table checksums, the checksum adjustment and the
// table layout.
func Validate(data []byte) error {
	br := newByteReader(bytes.NewReader(data))
	fnt, err := parseFont(br)
	if err != nil {
		return err
	}
	return fnt.validate(br)
}

// ValidateFile validates the sfnt font given by `filePath`.
func ValidateFile(filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	br := newByteReader(f)
	fnt, err := parseFont(br)
	if err != nil {
		return err
	}

	return fnt.validate(br)
}
