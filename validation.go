package gowfm

import (
	"fmt"

	"github.com/SGMOModeling/gowfm/domain/errors"
)

// ValidateTimeStamp checks that s is a well-formed IWFM timestamp,
// MM/DD/YYYY_hh:mm. The engine's end-of-day hour 24 is accepted with
// minute 00 only.
func ValidateTimeStamp(s string) error {
	if len(s) != TimeStampLen {
		return &errors.TimeStampError{Value: s, Reason: fmt.Sprintf("length %d, want %d", len(s), TimeStampLen)}
	}
	for i, c := range s {
		switch i {
		case 2, 5:
			if c != '/' {
				return &errors.TimeStampError{Value: s, Reason: fmt.Sprintf("separator at position %d must be '/'", i)}
			}
		case 10:
			if c != '_' {
				return &errors.TimeStampError{Value: s, Reason: "separator at position 10 must be '_'"}
			}
		case 13:
			if c != ':' {
				return &errors.TimeStampError{Value: s, Reason: "separator at position 13 must be ':'"}
			}
		default:
			if c < '0' || c > '9' {
				return &errors.TimeStampError{Value: s, Reason: fmt.Sprintf("position %d must be a digit", i)}
			}
		}
	}

	month := 10*int(s[0]-'0') + int(s[1]-'0')
	day := 10*int(s[3]-'0') + int(s[4]-'0')
	year := 1000*int(s[6]-'0') + 100*int(s[7]-'0') + 10*int(s[8]-'0') + int(s[9]-'0')
	hour := 10*int(s[11]-'0') + int(s[12]-'0')
	minute := 10*int(s[14]-'0') + int(s[15]-'0')

	if month < 1 || month > 12 {
		return &errors.TimeStampError{Value: s, Reason: fmt.Sprintf("month %d out of range", month)}
	}
	if day < 1 || day > daysIn(month, year) {
		return &errors.TimeStampError{Value: s, Reason: fmt.Sprintf("day %d out of range for month %d", day, month)}
	}
	if hour > 24 {
		return &errors.TimeStampError{Value: s, Reason: fmt.Sprintf("hour %d out of range", hour)}
	}
	if hour == 24 && minute != 0 {
		return &errors.TimeStampError{Value: s, Reason: "hour 24 requires minute 00"}
	}
	if minute > 59 {
		return &errors.TimeStampError{Value: s, Reason: fmt.Sprintf("minute %d out of range", minute)}
	}
	return nil
}

func daysIn(month, year int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// ValidateInterval checks s against the time interval tokens the engine
// recognizes. Matching is case-insensitive.
func ValidateInterval(s string) error {
	_, err := CanonicalInterval(s)
	return err
}
