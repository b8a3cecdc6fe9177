/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	textunicode "golang.org/x/text/encoding/unicode"

	"github.com/unidoc/otbfont/common"
)

// NameID identifies a name record.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name#name-ids
type NameID uint16

// Name IDs written by this package.
const (
	NameCopyright       NameID = 0
	NameFontFamily      NameID = 1
	NameFontSubfamily   NameID = 2
	NameUniqueSubfamily NameID = 3
	NameFullFontName    NameID = 4
	NameLicense         NameID = 13
)

const (
	platformUnicode   = 0
	platformMacintosh = 1
	platformWindows   = 3

	nameHeaderSize = 6
	nameRecordSize = 12
)

var styleNames = [...]string{"Regular", "Bold", "Italic", "Bold Italic"}

var utf16BE = textunicode.UTF16(textunicode.BigEndian, textunicode.IgnoreBOM)

// nameTable represents the Naming table (name).
// The naming table allows multilingual strings to be associated with the font.
// These strings can represent copyright notices, font names, family names, style names, and so on.
type nameTable struct {
	format       uint16
	count        uint16
	stringOffset uint16
	nameRecords  []*nameRecord // len = count.
}

// Each string in the string storage is referenced by a name record.
type nameRecord struct {
	platformID uint16
	encodingID uint16
	languageID uint16
	nameID     uint16
	length     uint16
	offset     uint16
	data       []byte // actual string data.
}

// nameEntry is a name value before encoding.
type nameEntry struct {
	id    NameID
	value string
}

// nameEntries returns the names of the font in record order.
func (m *fontModel) nameEntries() []nameEntry {
	family := m.family()
	style := styleNames[m.macStyle]
	full := family + " " + style

	var entries []nameEntry
	if s, has := m.prop("COPYRIGHT"); has {
		entries = append(entries, nameEntry{NameCopyright, s})
	}
	entries = append(entries,
		nameEntry{NameFontFamily, family},
		nameEntry{NameFontSubfamily, style},
		nameEntry{NameUniqueSubfamily, m.uniqueName(full)},
		nameEntry{NameFullFontName, full},
	)
	if s, has := m.license(); has {
		entries = append(entries, nameEntry{NameLicense, s})
	}
	return entries
}

// uniqueName returns the unique font identifier: the foundry if known, the full name and the
// pixel size.
func (m *fontModel) uniqueName(full string) string {
	foundry := m.decode(m.font.Foundry())
	unique := full + " " + strconv.Itoa(m.font.Height) + "px"
	if foundry != "" {
		unique = foundry + ": " + unique
	}
	return unique
}

// license returns the LICENSE property, or a NOTICE property that mentions a license.
func (m *fontModel) license() (string, bool) {
	if s, has := m.prop("LICENSE"); has {
		return s, true
	}
	if s, has := m.prop("NOTICE"); has && strings.Contains(strings.ToLower(s), "license") {
		return s, true
	}
	return "", false
}

// buildName writes a format 0 name table. Every name gets a Unicode platform and a Windows
// platform record, both referring to the same UTF-16BE value.
func (m *fontModel) buildName() (*byteTable, error) {
	m.check()
	entries := m.nameEntries()

	values := newByteTable("name")
	type encoded struct {
		id             NameID
		length, offset int
		ucs2           bool
	}
	var names []encoded
	for _, e := range entries {
		data, err := utf16BE.NewEncoder().Bytes([]byte(e.value))
		if err != nil {
			common.Log.Debug("ERROR: name %d %q: %v", e.id, e.value, err)
			return nil, err
		}
		names = append(names, encoded{
			id:     e.id,
			length: len(data),
			offset: values.size(),
			ucs2:   len(data) == 2*utf8.RuneCountInString(e.value),
		})
		values.writeRaw(data)
	}

	count := 2 * len(names)
	t := newByteTable("name")
	err := t.write(
		u16("format", 0),
		u16("count", count),
		u16("stringOffset", nameHeaderSize+nameRecordSize*count),
	)
	if err != nil {
		return nil, err
	}

	for _, platform := range []int{platformUnicode, platformWindows} {
		for _, n := range names {
			encodingID, languageID := m.nameEncoding(platform, n.ucs2)
			err := t.write(
				u16("platformID", platform),
				u16("encodingID", encodingID),
				u16("languageID", languageID),
				u16("nameID", int(n.id)),
				u16("length", n.length),
				u16("offset", n.offset),
			)
			if err != nil {
				return nil, err
			}
		}
	}

	t.append(values)
	if err := t.checkSize(nameHeaderSize + nameRecordSize*count + values.size()); err != nil {
		return nil, err
	}
	common.Log.Debug("name: %d records, %d bytes of strings", count, values.size())
	return t, nil
}

// nameEncoding returns the encoding and language IDs of a record. Values that fit UCS-2 in a font
// limited to the BMP use the BMP encodings, everything else the full repertoire ones.
func (m *fontModel) nameEncoding(platform int, ucs2 bool) (int, int) {
	bmp := ucs2 && m.bmpOnly
	switch platform {
	case platformUnicode:
		if bmp {
			return 3, 0
		}
		return 4, 0
	default:
		if bmp {
			return 1, m.params.WinLanguage
		}
		return 10, m.params.WinLanguage
	}
}

// Decoded returns the string value of `nr`.
func (nr nameRecord) Decoded() string {
	switch nr.platformID {
	case platformUnicode, platformWindows:
		s, err := utf16BE.NewDecoder().Bytes(nr.data)
		if err != nil {
			common.Log.Debug("ERROR: decoding name %d: %v", nr.nameID, err)
			return string(nr.data)
		}
		return string(s)
	case platformMacintosh:
		var b strings.Builder
		for _, val := range nr.data {
			b.WriteRune(charmap.Macintosh.DecodeByte(val))
		}
		return b.String()
	}
	return string(nr.data)
}

func (f *font) parseNameTable(r *byteReader) (*nameTable, error) {
	tr, has, err := f.seekToTable(r, "name")
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}

	t := &nameTable{}
	err = r.read(&t.format, &t.count, &t.stringOffset)
	if err != nil {
		return nil, err
	}
	if t.format > 1 {
		common.Log.Debug("ERROR: format > 1 (%d)", t.format)
		return nil, errRangeCheck
	}

	for i := 0; i < int(t.count); i++ {
		var nr nameRecord
		err = r.read(&nr.platformID, &nr.encodingID, &nr.languageID, &nr.nameID, &nr.length, &nr.offset)
		if err != nil {
			return nil, err
		}
		t.nameRecords = append(t.nameRecords, &nr)
	}

	// Get the actual string data.
	for _, nr := range t.nameRecords {
		if int(t.stringOffset)+int(nr.offset)+int(nr.length) > int(tr.length) {
			common.Log.Debug("name string offset outside table")
			return nil, errRangeCheck
		}

		err = r.Seek(int64(t.stringOffset) + int64(tr.offset) + int64(nr.offset))
		if err != nil {
			common.Log.Debug("Error: %v", err)
			return nil, err
		}

		err = r.readBytes(&nr.data, int(nr.length))
		if err != nil {
			common.Log.Debug("Error: %v", err)
			return nil, err
		}
	}

	common.Log.Debug("Name records: %d", len(t.nameRecords))
	for _, nr := range t.nameRecords {
		common.Log.Trace("%d %d %d - '%s' (%d)", nr.platformID, nr.encodingID, nr.nameID, nr.Decoded(), len(nr.data))
	}

	return t, nil
}

// GetNameByID returns the value of the first Windows record with `nameID`, falling back to any
// platform. An empty string is returned otherwise (nothing found).
func (f *font) GetNameByID(nameID NameID) string {
	if f == nil || f.name == nil {
		common.Log.Debug("ERROR: Font or name not set")
		return ""
	}
	var fallback *nameRecord
	for _, nr := range f.name.nameRecords {
		if NameID(nr.nameID) != nameID {
			continue
		}
		if nr.platformID == platformWindows {
			return nr.Decoded()
		}
		if fallback == nil {
			fallback = nr
		}
	}
	if fallback != nil {
		return fallback.Decoded()
	}
	return ""
}
