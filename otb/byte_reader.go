/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/unidoc/otbfont/common"
)

// byteReader encapsulates io.ReadSeeker with buffering and provides methods to read the big-endian
// binary data of sfnt fonts. The buffered reader is used to enhance the performance when reading
// binary data types one at a time.
type byteReader struct {
	rs     io.ReadSeeker
	reader *bufio.Reader
}

func newByteReader(rs io.ReadSeeker) *byteReader {
	return &byteReader{
		rs:     rs,
		reader: bufio.NewReader(rs),
	}
}

// Offset returns current offset position of `r`.
func (r byteReader) Offset() int64 {
	offset, _ := r.rs.Seek(0, io.SeekCurrent)
	offset -= int64(r.reader.Buffered())
	return offset
}

// Seek seeks to offset.
func (r *byteReader) Seek(offset int64) error {
	_, err := r.rs.Seek(offset, io.SeekStart)
	if err != nil {
		return err
	}
	r.reader.Reset(r.rs)
	return nil
}

// Skip skips over `n` bytes.
func (r *byteReader) Skip(n int) error {
	_, err := r.reader.Discard(n)
	return err
}

// readBytes reads bytes straight from `r`.
func (r *byteReader) readBytes(bp *[]byte, length int) error {
	*bp = make([]byte, length)
	_, err := io.ReadFull(r.reader, *bp)
	return err
}

// readSlice reads a series of values into `slice` from `r` (big endian).
func (r *byteReader) readSlice(slice interface{}, length int) error {
	switch t := slice.(type) {
	case *[]uint16:
		for i := 0; i < length; i++ {
			var val uint16
			if err := r.read(&val); err != nil {
				return err
			}
			*t = append(*t, val)
		}
	case *[]uint32:
		for i := 0; i < length; i++ {
			var val uint32
			if err := r.read(&val); err != nil {
				return err
			}
			*t = append(*t, val)
		}
	default:
		common.Log.Debug("Unsupported type: %T (readSlice)", t)
		return errTypeCheck
	}
	return nil
}

// read reads a series of fields from `r`. Every field must be a pointer to a fixed size type.
func (r *byteReader) read(fields ...interface{}) error {
	for _, f := range fields {
		switch t := f.(type) {
		case *uint8, *int8, *uint16, *int16, *uint32, *int32, *int64, *fixed, *tag, *offset32:
			if err := binary.Read(r.reader, binary.BigEndian, t); err != nil {
				return err
			}
		default:
			common.Log.Debug("Unsupported type: %T (read)", t)
			return errTypeCheck
		}
	}
	return nil
}
