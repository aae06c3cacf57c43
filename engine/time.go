package engine

import (
	"unsafe"

	"github.com/SGMOModeling/gowfm"
	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// NIntervals returns the number of steps of the given interval between
// two timestamps. includeEnd counts the end timestamp itself, the way
// budget windows span their last row.
func (s *Session) NIntervals(begin, end, interval string, includeEnd bool) (int, error) {
	if err := gowfm.ValidateTimeStamp(begin); err != nil {
		return 0, err
	}
	if err := gowfm.ValidateTimeStamp(end); err != nil {
		return 0, err
	}
	canon, err := gowfm.CanonicalInterval(interval)
	if err != nil {
		return 0, err
	}

	beginTime, _ := gowfm.ParseTimeStamp(begin)
	endTime, _ := gowfm.ParseTimeStamp(end)
	if beginTime.After(endTime) {
		return 0, &errors.TimeWindowError{Begin: begin, End: end}
	}

	beginBuf := fortran.CString(begin)
	endBuf := fortran.CString(end)
	lenDate := int32(len(beginBuf))
	intervalBuf := fortran.CString(canon)
	lenInterval := int32(len(intervalBuf))

	var n int32
	err = s.Call("IW_GetNIntervals",
		unsafe.Pointer(&beginBuf[0]),
		unsafe.Pointer(&endBuf[0]),
		unsafe.Pointer(&lenDate),
		unsafe.Pointer(&intervalBuf[0]),
		unsafe.Pointer(&lenInterval),
		unsafe.Pointer(&n),
	)
	if err != nil {
		return 0, err
	}
	if includeEnd {
		return int(n) + 1, nil
	}
	return int(n), nil
}

// IncrementTime advances a timestamp by n steps of the given interval
// and returns the resulting timestamp. n may be negative.
func (s *Session) IncrementTime(timestamp, interval string, n int) (string, error) {
	if err := gowfm.ValidateTimeStamp(timestamp); err != nil {
		return "", err
	}
	canon, err := gowfm.CanonicalInterval(interval)
	if err != nil {
		return "", err
	}

	// The engine rewrites the timestamp buffer in place.
	buf := fortran.CString(timestamp)
	lenDate := int32(len(buf))
	intervalBuf := fortran.CString(canon)
	lenInterval := int32(len(intervalBuf))
	count := int32(n)

	err = s.Call("IW_IncrementTime",
		unsafe.Pointer(&lenDate),
		unsafe.Pointer(&buf[0]),
		unsafe.Pointer(&lenInterval),
		unsafe.Pointer(&intervalBuf[0]),
		unsafe.Pointer(&count),
	)
	if err != nil {
		return "", err
	}
	return fortran.GoString(buf), nil
}

// IsTimeGreaterThan reports whether first falls after comparison.
func (s *Session) IsTimeGreaterThan(first, comparison string) (bool, error) {
	if err := gowfm.ValidateTimeStamp(first); err != nil {
		return false, err
	}
	if err := gowfm.ValidateTimeStamp(comparison); err != nil {
		return false, err
	}

	firstBuf := fortran.CString(first)
	comparisonBuf := fortran.CString(comparison)
	lenDates := int32(len(firstBuf))

	// The engine reports +1 for greater, -1 otherwise.
	var result int32
	err := s.Call("IW_IsTimeGreaterThan",
		unsafe.Pointer(&lenDates),
		unsafe.Pointer(&firstBuf[0]),
		unsafe.Pointer(&comparisonBuf[0]),
		unsafe.Pointer(&result),
	)
	if err != nil {
		return false, err
	}
	return result == 1, nil
}
