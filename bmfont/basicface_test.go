/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package bmfont

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestFromBasicFace(t *testing.T) {
	f := FromBasicFace(basicfont.Face7x13, "Fixed")

	assert.Equal(t, "Fixed", f.Family())
	assert.Equal(t, 7, f.Width)
	assert.Equal(t, 13, f.Height)
	assert.Equal(t, 11, f.Ascent)
	assert.Equal(t, 2, f.Descent)
	assert.Equal(t, 0xFFFD, f.DefaultCode)
	assert.False(t, f.Proportional())
	assert.Greater(t, len(f.Chars), 95)

	chars := map[int]*Char{}
	for _, c := range f.Chars {
		chars[c.Code] = c
	}

	space, has := chars[' ']
	require.True(t, has)
	assert.Equal(t, make([]byte, 13), space.Data)

	a, has := chars['A']
	require.True(t, has)
	assert.Equal(t, 7, a.Width)
	assert.Equal(t, 13, a.Height)
	assert.NotEqual(t, make([]byte, 13), a.Data)

	_, has = chars[0x7F]
	assert.False(t, has)
}
