/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import "github.com/unidoc/otbfont/common"

const maxpSize = 32

// Maximum profile (maxp) table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/maxp
type maxpTable struct {
	version   fixed
	numGlyphs uint16

	// version 1.0 only.
	maxPoints             uint16
	maxContours           uint16
	maxCompositePoints    uint16
	maxCompositeContours  uint16
	maxZones              uint16
	maxTwilightPoints     uint16
	maxStorage            uint16
	maxFunctionDefs       uint16
	maxInstructionDefs    uint16
	maxStackElements      uint16
	maxSizeOfInstructions uint16
	maxComponentElements  uint16
	maxComponentDepth     uint16
}

func (f *font) parseMaxp(r *byteReader) (*maxpTable, error) {
	_, has, err := f.seekToTable(r, "maxp")
	if err != nil {
		return nil, err
	}
	if !has {
		common.Log.Debug("maxp table missing")
		return nil, errRequiredField
	}

	t := &maxpTable{}
	err = r.read(&t.version, &t.numGlyphs)
	if err != nil {
		return nil, err
	}

	if t.version < 0x00010000 {
		common.Log.Trace("maxp version 0.5")
		return t, nil
	}

	err = r.read(&t.maxPoints, &t.maxContours, &t.maxCompositePoints, &t.maxCompositeContours)
	if err != nil {
		return nil, err
	}

	err = r.read(&t.maxZones, &t.maxTwilightPoints, &t.maxStorage, &t.maxFunctionDefs)
	if err != nil {
		return nil, err
	}

	return t, r.read(&t.maxInstructionDefs, &t.maxStackElements, &t.maxSizeOfInstructions,
		&t.maxComponentElements, &t.maxComponentDepth)
}

// buildMaxp writes a version 1.0 maximum profile. Outline maxima are zero, the instruction
// related fields hold the minimum values accepted by rasterizers.
func (m *fontModel) buildMaxp() (*byteTable, error) {
	m.check()
	t := newByteTable("maxp")
	err := t.write(
		fx("version", 1),
		u16("numGlyphs", m.numGlyphs()),
		u16("maxPoints", 0),
		u16("maxContours", 0),
		u16("maxCompositePoints", 0),
		u16("maxCompositeContours", 0),
		u16("maxZones", 2),
		u16("maxTwilightPoints", 0),
		u16("maxStorage", 1),
		u16("maxFunctionDefs", 1),
		u16("maxInstructionDefs", 0),
		u16("maxStackElements", 64),
		u16("maxSizeOfInstructions", 0),
		u16("maxComponentElements", 0),
		u16("maxComponentDepth", 0),
	)
	if err != nil {
		return nil, err
	}
	if err := t.checkSize(maxpSize); err != nil {
		return nil, err
	}
	return t, nil
}
