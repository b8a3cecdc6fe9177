/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unidoc/otbfont/bmfont"
	"github.com/unidoc/otbfont/common"
)

func init() {
	//common.SetLogger(common.NewConsoleLogger(common.LogLevelDebug))
	common.SetLogger(common.NewConsoleLogger(common.LogLevelInfo))
}

// newTestFont returns a monospace 8x8 font with ascent 6 and one glyph per code. Each glyph has
// a distinct diagonal pattern.
func newTestFont(codes ...int) *bmfont.Font {
	f := &bmfont.Font{
		Name:        "-Test-Fixed-Medium-R-Normal--8-80-75-75-C-80-ISO10646-1",
		Width:       8,
		Height:      8,
		Ascent:      6,
		Descent:     2,
		AvgWidth:    8,
		DefaultCode: -1,
		Slant:       "R",
	}
	f.Props.Set("FAMILY_NAME", "Fixed")
	for i, code := range codes {
		c := bmfont.NewChar(code, "", 8, 8)
		c.SetPixel(i%8, i%8)
		f.Chars = append(f.Chars, c)
	}
	return f
}

// testParams returns the default parameters with fixed timestamps.
func testParams() Params {
	params := DefaultParams()
	params.Created = time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	params.Modified = params.Created
	return params
}

// preparedModel returns a prepared model of `f`.
func preparedModel(t *testing.T, f *bmfont.Font, params Params) *fontModel {
	m := newFontModel(f, params)
	require.NoError(t, m.prepare())
	return m
}

// compileAndParse compiles `f` and reads the result back.
func compileAndParse(t *testing.T, f *bmfont.Font, params Params) ([]byte, *Font) {
	data, err := Compile(f, params)
	require.NoError(t, err)
	fnt, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	return data, fnt
}
