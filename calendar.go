package gowfm

import (
	"fmt"
	"strings"
	"time"

	"github.com/SGMOModeling/gowfm/domain/errors"
)

// TimeStampLen is the fixed width of an IWFM timestamp, MM/DD/YYYY_hh:mm.
const TimeStampLen = 16

// IntervalLen is the buffer width for a time interval token. The
// longest token, 12HOUR, leaves two bytes of padding.
const IntervalLen = 8

// serialEpoch anchors the engine's floating-point dates. Day zero is
// 1899-12-30, the Excel serial convention.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// intervals lists every time interval token the engine recognizes,
// ordered from shortest to longest.
var intervals = []string{
	"1MIN", "2MIN", "3MIN", "4MIN", "5MIN", "10MIN", "15MIN", "20MIN", "30MIN",
	"1HOUR", "2HOUR", "3HOUR", "4HOUR", "6HOUR", "8HOUR", "12HOUR",
	"1DAY", "1WEEK", "1MON", "1YEAR",
}

// Intervals returns the time interval tokens the engine recognizes,
// ordered from shortest to longest.
func Intervals() []string {
	out := make([]string, len(intervals))
	copy(out, intervals)
	return out
}

// ParseTimeStamp converts an IWFM timestamp to a time.Time. The engine's
// end-of-day convention 24:00 becomes midnight of the following day.
func ParseTimeStamp(s string) (time.Time, error) {
	if err := ValidateTimeStamp(s); err != nil {
		return time.Time{}, err
	}
	if s[11:] == "24:00" {
		t, err := time.Parse("01/02/2006", s[:10])
		if err != nil {
			return time.Time{}, &errors.TimeStampError{Value: s, Reason: err.Error()}
		}
		return t.AddDate(0, 0, 1), nil
	}
	t, err := time.Parse("01/02/2006_15:04", s)
	if err != nil {
		return time.Time{}, &errors.TimeStampError{Value: s, Reason: err.Error()}
	}
	return t, nil
}

// FormatTimeStamp converts a time.Time to an IWFM timestamp. Midnight
// renders as 24:00 of the preceding day, so ParseTimeStamp and
// FormatTimeStamp round-trip.
func FormatTimeStamp(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.AddDate(0, 0, -1).Format("01/02/2006") + "_24:00"
	}
	return t.Format("01/02/2006_15:04")
}

// FromSerial converts an engine serial date (floating-point days since
// 1899-12-30) to a time.Time. Fractional days become clock time.
func FromSerial(days float64) time.Time {
	return serialEpoch.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// ToSerial converts a time.Time to an engine serial date.
func ToSerial(t time.Time) float64 {
	return t.Sub(serialEpoch).Hours() / 24
}

// CanonicalInterval upper-cases an interval token after checking it
// against the set the engine recognizes.
func CanonicalInterval(s string) (string, error) {
	canon := strings.ToUpper(strings.TrimSpace(s))
	for _, iv := range intervals {
		if iv == canon {
			return canon, nil
		}
	}
	return "", &errors.IntervalError{Value: s}
}

// IntervalGE reports whether interval a spans at least as much time as
// interval b.
func IntervalGE(a, b string) (bool, error) {
	ra, err := intervalRank(a)
	if err != nil {
		return false, err
	}
	rb, err := intervalRank(b)
	if err != nil {
		return false, err
	}
	return ra >= rb, nil
}

func intervalRank(s string) (int, error) {
	canon, err := CanonicalInterval(s)
	if err != nil {
		return 0, err
	}
	for i, iv := range intervals {
		if iv == canon {
			return i, nil
		}
	}
	return 0, &errors.IntervalError{Value: s}
}

// TimeWindow bounds a time-series read. The zero value means the full
// simulation span; facades substitute the first and last timestamps of
// the file or model being read.
type TimeWindow struct {
	Begin string
	End   string
}

// IsZero reports whether the window leaves both bounds open.
func (w TimeWindow) IsZero() bool {
	return w.Begin == "" && w.End == ""
}

// Validate checks both bounds, where set, for well-formed timestamps.
func (w TimeWindow) Validate() error {
	if w.Begin != "" {
		if err := ValidateTimeStamp(w.Begin); err != nil {
			return err
		}
	}
	if w.End != "" {
		if err := ValidateTimeStamp(w.End); err != nil {
			return err
		}
	}
	return nil
}

// String renders the window for logs.
func (w TimeWindow) String() string {
	if w.IsZero() {
		return "full span"
	}
	return fmt.Sprintf("%s .. %s", w.Begin, w.End)
}
