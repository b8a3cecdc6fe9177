/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package otb compiles bitmap fonts into sfnt containers holding embedded bitmaps only
// (OpenType Bitmap, .otb). The output contains the EBDT, EBLC, OS/2, cmap, glyf, head, hhea,
// hmtx, loca, maxp, name and post tables; glyf is always empty.
//
// The package also reads back the tables it writes, for verification of compiled fonts.
package otb
