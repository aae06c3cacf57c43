package gowfm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SGMOModeling/gowfm/domain/errors"
)

func TestValidateTimeStamp(t *testing.T) {
	valid := []string{
		"10/01/1990_00:00",
		"10/01/1990_24:00",
		"02/29/2000_12:00",
		"01/31/2025_23:59",
	}
	for _, s := range valid {
		assert.NoError(t, ValidateTimeStamp(s), s)
	}
}

func TestValidateTimeStamp_Invalid(t *testing.T) {
	invalid := map[string]string{
		"10/01/1990":        "too short",
		"10/01/1990_24:001": "too long",
		"10-01-1990_00:00":  "wrong date separator",
		"10/01/1990 00:00":  "space instead of underscore",
		"10/01/1990_00.00":  "wrong clock separator",
		"13/01/1990_00:00":  "month out of range",
		"02/30/1990_00:00":  "day out of range",
		"02/29/1900_00:00":  "1900 is not a leap year",
		"10/01/1990_25:00":  "hour out of range",
		"10/01/1990_24:30":  "hour 24 with nonzero minute",
		"10/01/1990_12:60":  "minute out of range",
		"1O/01/1990_00:00":  "letter in a digit position",
	}
	for s, why := range invalid {
		err := ValidateTimeStamp(s)
		require.Error(t, err, why)

		var tsErr *errors.TimeStampError
		require.ErrorAs(t, err, &tsErr, why)
		assert.Equal(t, s, tsErr.Value, why)
	}
}

func TestValidateInterval(t *testing.T) {
	for _, iv := range Intervals() {
		assert.NoError(t, ValidateInterval(iv), iv)
	}
	assert.NoError(t, ValidateInterval("1mon"))
	assert.NoError(t, ValidateInterval(" 1DAY "))
}

func TestValidateInterval_Invalid(t *testing.T) {
	for _, iv := range []string{"", "7MIN", "2DAY", "MONTH", "1 MON"} {
		err := ValidateInterval(iv)
		require.Error(t, err, iv)

		var ivErr *errors.IntervalError
		assert.ErrorAs(t, err, &ivErr, iv)
	}
}
