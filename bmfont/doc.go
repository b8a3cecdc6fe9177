/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package bmfont contains the in-memory model of a bitmap font as consumed by the otb compiler,
// together with loaders that produce it: a BDF (Glyph Bitmap Distribution Format) reader and an
// adapter for golang.org/x/image/font/basicfont faces.
//
// All glyph rasters in the model are normalized onto the font cell: every Char is Height pixels
// tall with its top row at the font ascender, stored row-major with 1 bit per pixel and each row
// padded to a whole byte (most significant bit first).
package bmfont
