// Package fortran provides byte-level helpers for the engine's data
// exchange conventions: NUL-terminated string buffers, packed string
// lists with 1-indexed start positions, and flat row-major matrices.
package fortran

import (
	"bytes"
	"strings"
	"unsafe"
)

// Ptr returns a pointer to the first element of s, or nil when s is
// empty. The engine never dereferences array arguments whose length
// argument is zero.
func Ptr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}

// CString copies s into a new buffer with a trailing NUL byte. The
// engine expects inbound string lengths to count the NUL, so callers
// pass len of the returned buffer, not len(s).
func CString(s string) []byte {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return buf
}

// GoString decodes an engine-filled buffer up to the first NUL byte.
func GoString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

// TrimString decodes an engine-filled buffer and strips the space
// padding the engine writes into fixed-width fields.
func TrimString(buf []byte) string {
	return strings.TrimSpace(GoString(buf))
}

// SplitByStarts splits raw at the 1-indexed start positions the engine
// reports in its delimiter arrays. starts holds the first character
// position of each item; the last item extends to the end of raw. Each
// item is returned with surrounding spaces trimmed.
func SplitByStarts(raw string, starts []int32) []string {
	items := make([]string, 0, len(starts))
	for i, start := range starts {
		begin := int(start) - 1
		if begin < 0 {
			begin = 0
		}
		if begin > len(raw) {
			begin = len(raw)
		}
		end := len(raw)
		if i+1 < len(starts) {
			end = int(starts[i+1]) - 1
			if end > len(raw) {
				end = len(raw)
			}
			if end < begin {
				end = begin
			}
		}
		items = append(items, strings.TrimSpace(raw[begin:end]))
	}
	return items
}

// PackStrings concatenates items into one buffer and returns the
// 1-indexed start position of each item, the layout the engine expects
// for inbound string lists.
func PackStrings(items []string) ([]byte, []int32) {
	starts := make([]int32, len(items))
	var b bytes.Buffer
	for i, item := range items {
		starts[i] = int32(b.Len() + 1)
		b.WriteString(item)
	}
	return b.Bytes(), starts
}

// Matrix reshapes a flat row-major buffer into rows slices of cols
// values each. The flat buffer must hold exactly rows*cols values.
func Matrix(flat []float64, rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = flat[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// Int32s converts a Go int slice to the 32-bit layout the engine reads.
func Int32s(values []int) []int32 {
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = int32(v)
	}
	return out
}

// Ints converts an engine-filled 32-bit slice to a Go int slice.
func Ints(values []int32) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}
