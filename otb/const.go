/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package otb

import (
	"errors"
	"fmt"
)

var (
	errTypeCheck     = errors.New("type check error")
	errRangeCheck    = errors.New("range check error")
	errInternal      = errors.New("internal error")
	errRequiredField = errors.New("required field missing")
)

// Exported sentinels for use with errors.Is.
var (
	// ErrRangeCheck matches every *RangeError.
	ErrRangeCheck = errRangeCheck
	// ErrInternal matches every *SizeError.
	ErrInternal = errInternal
)

// RangeError is returned when a value does not fit the binary field it is written to.
type RangeError struct {
	Table string
	Field string
	Value int64
	Min   int64
	Max   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s.%s: value %d out of range [%d, %d]", e.Table, e.Field, e.Value, e.Min, e.Max)
}

// Is reports whether `target` is the range check sentinel.
func (e *RangeError) Is(target error) bool {
	return target == errRangeCheck
}

// SizeError is returned when a table with a fixed layout does not have its expected size.
// It indicates a bug in the table builder.
type SizeError struct {
	Table    string
	Actual   int
	Expected int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("internal error: %s size %d, expected %d", e.Table, e.Actual, e.Expected)
}

// Is reports whether `target` is the internal error sentinel.
func (e *SizeError) Is(target error) bool {
	return target == errInternal
}
