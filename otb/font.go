/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

// font is the data model of a parsed sfnt font. Only the tables needed to check compiled fonts
// are loaded.
type font struct {
	ot   *offsetTable
	trec *tableRecords // table records (references other tables).
	head *headTable
	maxp *maxpTable
	hhea *hheaTable
	os2  *os2Table
	cmap *cmapTable
	name *nameTable
	post *postTable
}

func (f font) numTables() int {
	return int(f.ot.numTables)
}

func parseFont(r *byteReader) (*font, error) {
	f := &font{}

	var err error

	f.ot, err = f.parseOffsetTable(r)
	if err != nil {
		return nil, err
	}

	f.trec, err = f.parseTableRecords(r)
	if err != nil {
		return nil, err
	}

	f.head, err = f.parseHead(r)
	if err != nil {
		return nil, err
	}

	f.maxp, err = f.parseMaxp(r)
	if err != nil {
		return nil, err
	}

	f.hhea, err = f.parseHhea(r)
	if err != nil {
		return nil, err
	}

	f.os2, err = f.parseOS2Table(r)
	if err != nil {
		return nil, err
	}

	f.cmap, err = f.parseCmap(r)
	if err != nil {
		return nil, err
	}

	f.name, err = f.parseNameTable(r)
	if err != nil {
		return nil, err
	}

	f.post, err = f.parsePost(r)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Tags returns the table tags in directory order.
func (f *font) Tags() []string {
	tags := make([]string, 0, len(f.trec.list))
	for _, tr := range f.trec.list {
		tags = append(tags, string(tr.tableTag[:]))
	}
	return tags
}

// NumGlyphs returns the number of glyphs declared in maxp.
func (f *font) NumGlyphs() int {
	return int(f.maxp.numGlyphs)
}

// UnitsPerEm returns the em size declared in head.
func (f *font) UnitsPerEm() int {
	return int(f.head.unitsPerEm)
}

// GlyphIndex returns the glyph index mapped to character code `code` by the cmap table.
// The bool flag is false if the code is not mapped.
func (f *font) GlyphIndex(code int) (GlyphIndex, bool) {
	if f.cmap == nil {
		return 0, false
	}
	return f.cmap.lookup(code)
}

// Name returns the name record `nameID`, or "" if the font has none.
func (f *font) Name(nameID NameID) string {
	return f.GetNameByID(nameID)
}

// GlyphName returns the PostScript name of glyph `gid`, or "" if the font has no glyph names.
func (f *font) GlyphName(gid GlyphIndex) GlyphName {
	if f.post == nil || int(gid) >= len(f.post.glyphNames) {
		return ""
	}
	return f.post.glyphNames[gid]
}
