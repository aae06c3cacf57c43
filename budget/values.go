package budget

import (
	"strconv"
	"time"
	"unsafe"

	"github.com/SGMOModeling/gowfm"
	"github.com/SGMOModeling/gowfm/domain/entities"
	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// columnNumbers resolves a column selection against one location's
// headers. A nil selection selects every data column; each entry is
// either a header name or a 1-based column number in string form. Time
// always comes back as the leading values in a read, so it cannot be
// selected.
func (b *Budget) columnNumbers(locationID int, columns []string) (names []string, numbers []int32, err error) {
	headers, err := b.ColumnHeaders(locationID, DefaultLengthUnit, DefaultAreaUnit, DefaultVolumeUnit)
	if err != nil {
		return nil, nil, err
	}

	if columns == nil {
		names = headers[1:]
		numbers = make([]int32, len(names))
		for i := range numbers {
			numbers[i] = int32(i + 1)
		}
		return names, numbers, nil
	}

	names = make([]string, 0, len(columns))
	numbers = make([]int32, 0, len(columns))
	for _, want := range columns {
		idx := -1
		if n, convErr := strconv.Atoi(want); convErr == nil {
			if n < 1 || n >= len(headers) {
				return nil, nil, &errors.NotFoundError{ID: want, Kind: "budget column"}
			}
			idx = n
		} else {
			for i, header := range headers {
				if header == want {
					idx = i
					break
				}
			}
		}
		switch {
		case idx < 0:
			return nil, nil, &errors.NotFoundError{ID: want, Kind: "budget column"}
		case idx == 0:
			return nil, nil, &errors.UnsupportedError{Operation: "column selection", Target: "the Time column"}
		}
		names = append(names, headers[idx])
		numbers = append(numbers, int32(idx))
	}
	return names, numbers, nil
}

// Values returns the budget table for one location over the window.
// columns selects data columns by header name or 1-based number; nil
// selects all of them. The three factors convert values from the simulation units,
// each applied to the columns of its dimension.
func (b *Budget) Values(locationID int, columns []string, window gowfm.TimeWindow, lengthFactor, areaFactor, volumeFactor float64) (entities.Table, error) {
	names, numbers, err := b.columnNumbers(locationID, columns)
	if err != nil {
		return entities.Table{}, err
	}

	begin, end, specs, err := b.resolveWindow(window)
	if err != nil {
		return entities.Table{}, err
	}
	n, err := b.s.NIntervals(begin, end, specs.Interval, true)
	if err != nil {
		return entities.Table{}, err
	}

	id := int32(locationID)
	nCols := int32(len(numbers))
	beginBuf := fortran.CString(begin)
	endBuf := fortran.CString(end)
	lenDate := int32(len(beginBuf))
	intervalBuf := fortran.CString(specs.Interval)
	lenInterval := int32(len(intervalBuf))
	nIn := int32(n)
	// Every row starts with the time stamp as a serial date.
	width := len(numbers) + 1
	flat := make([]float64, n*width)
	var nOut int32

	err = b.call("IW_Budget_GetValues",
		unsafe.Pointer(&id),
		unsafe.Pointer(&nCols),
		fortran.Ptr(numbers),
		unsafe.Pointer(&beginBuf[0]),
		unsafe.Pointer(&endBuf[0]),
		unsafe.Pointer(&lenDate),
		unsafe.Pointer(&intervalBuf[0]),
		unsafe.Pointer(&lenInterval),
		unsafe.Pointer(&lengthFactor),
		unsafe.Pointer(&areaFactor),
		unsafe.Pointer(&volumeFactor),
		unsafe.Pointer(&nIn),
		fortran.Ptr(flat),
		unsafe.Pointer(&nOut),
	)
	if err != nil {
		return entities.Table{}, err
	}

	rows := n
	if nOut > 0 && int(nOut) < n {
		rows = int(nOut)
	}
	times := make([]time.Time, rows)
	data := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		row := flat[i*width : (i+1)*width]
		times[i] = gowfm.FromSerial(row[0])
		data[i] = row[1:]
	}
	return entities.Table{Columns: names, Times: times, Data: data}, nil
}

// ValuesForAColumn returns one budget column for one location over the
// window as a time series. The default conversion factors for a
// single-column read are 1.0, SqFtToAcres and CuFtToTAF.
func (b *Budget) ValuesForAColumn(locationID int, column string, window gowfm.TimeWindow, lengthFactor, areaFactor, volumeFactor float64) (entities.TimeSeries, error) {
	_, numbers, err := b.columnNumbers(locationID, []string{column})
	if err != nil {
		return entities.TimeSeries{}, err
	}

	begin, end, specs, err := b.resolveWindow(window)
	if err != nil {
		return entities.TimeSeries{}, err
	}
	n, err := b.s.NIntervals(begin, end, specs.Interval, true)
	if err != nil {
		return entities.TimeSeries{}, err
	}

	id := int32(locationID)
	col := numbers[0]
	intervalBuf := fortran.CString(specs.Interval)
	lenInterval := int32(len(intervalBuf))
	beginBuf := fortran.CString(begin)
	endBuf := fortran.CString(end)
	lenDate := int32(len(beginBuf))
	nIn := int32(n)
	var nOut int32
	serials := make([]float64, n)
	values := make([]float64, n)

	err = b.call("IW_Budget_GetValues_ForAColumn",
		unsafe.Pointer(&id),
		unsafe.Pointer(&col),
		unsafe.Pointer(&intervalBuf[0]),
		unsafe.Pointer(&lenInterval),
		unsafe.Pointer(&beginBuf[0]),
		unsafe.Pointer(&endBuf[0]),
		unsafe.Pointer(&lenDate),
		unsafe.Pointer(&lengthFactor),
		unsafe.Pointer(&areaFactor),
		unsafe.Pointer(&volumeFactor),
		unsafe.Pointer(&nIn),
		unsafe.Pointer(&nOut),
		fortran.Ptr(serials),
		fortran.Ptr(values),
	)
	if err != nil {
		return entities.TimeSeries{}, err
	}

	if nOut > 0 && int(nOut) < n {
		serials = serials[:nOut]
		values = values[:nOut]
	}
	times := make([]time.Time, len(serials))
	for i, serial := range serials {
		times[i] = gowfm.FromSerial(serial)
	}
	return entities.TimeSeries{Times: times, Values: values}, nil
}
