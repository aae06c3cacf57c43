package model

import (
	"unsafe"

	"github.com/SGMOModeling/gowfm"
	"github.com/SGMOModeling/gowfm/domain/entities"
	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

const (
	// outputIntervalsLen fits every interval token the engine can
	// report at once.
	outputIntervalsLen = 160

	// maxOutputIntervals caps the interval list the engine returns.
	maxOutputIntervals = 20
)

// CurrentDateAndTime returns the model's current timestamp. During a
// simulation this advances with AdvanceTime; an inquiry model reports
// the simulation begin time.
func (m *Model) CurrentDateAndTime() (string, error) {
	length := int32(gowfm.TimeStampLen)
	buf := make([]byte, gowfm.TimeStampLen)
	err := m.call("IW_Model_GetCurrentDateAndTime",
		unsafe.Pointer(&length),
		unsafe.Pointer(&buf[0]),
	)
	if err != nil {
		return "", err
	}
	return fortran.GoString(buf), nil
}

// NumTimeSteps returns the number of time steps in the simulation
// period.
func (m *Model) NumTimeSteps() (int, error) {
	return m.cached(&m.dims.timeSteps, "IW_Model_GetNTimeSteps")
}

// TimeSpecs returns every simulation timestamp plus the simulation
// time step interval.
func (m *Model) TimeSpecs() (entities.TimeSpecs, error) {
	n, err := m.NumTimeSteps()
	if err != nil {
		return entities.TimeSpecs{}, err
	}

	datesBuf := make([]byte, n*gowfm.TimeStampLen)
	lenDates := int32(len(datesBuf))
	intervalBuf := make([]byte, gowfm.IntervalLen)
	lenInterval := int32(len(intervalBuf))
	nData := int32(n)
	starts := make([]int32, n)

	err = m.call("IW_Model_GetTimeSpecs",
		fortran.Ptr(datesBuf),
		unsafe.Pointer(&lenDates),
		unsafe.Pointer(&intervalBuf[0]),
		unsafe.Pointer(&lenInterval),
		unsafe.Pointer(&nData),
		fortran.Ptr(starts),
	)
	if err != nil {
		return entities.TimeSpecs{}, err
	}

	return entities.TimeSpecs{
		Timestamps: fortran.SplitByStarts(fortran.GoString(datesBuf), starts),
		Interval:   fortran.TrimString(intervalBuf),
	}, nil
}

// OutputIntervals returns the output interval tokens valid for this
// model, the simulation interval and every coarser one.
func (m *Model) OutputIntervals() ([]string, error) {
	buf := make([]byte, outputIntervalsLen)
	length := int32(outputIntervalsLen)
	starts := make([]int32, maxOutputIntervals)
	maxN := int32(maxOutputIntervals)
	var actual int32

	err := m.call("IW_Model_GetOutputIntervals",
		unsafe.Pointer(&buf[0]),
		unsafe.Pointer(&length),
		unsafe.Pointer(&starts[0]),
		unsafe.Pointer(&maxN),
		unsafe.Pointer(&actual),
	)
	if err != nil {
		return nil, err
	}
	return fortran.SplitByStarts(fortran.GoString(buf), starts[:actual]), nil
}

// resolveWindow fills an open window bound from the simulation span and
// checks both bounds are model time steps in the right order.
func (m *Model) resolveWindow(window gowfm.TimeWindow) (begin, end string, specs entities.TimeSpecs, err error) {
	specs, err = m.TimeSpecs()
	if err != nil {
		return "", "", entities.TimeSpecs{}, err
	}

	begin, end = window.Begin, window.End
	first, last := specs.Span()
	if begin == "" {
		begin = first
	}
	if end == "" {
		end = last
	}

	for _, stamp := range []string{begin, end} {
		if err := gowfm.ValidateTimeStamp(stamp); err != nil {
			return "", "", entities.TimeSpecs{}, err
		}
		if !specs.Contains(stamp) {
			return "", "", entities.TimeSpecs{}, &errors.NotFoundError{ID: stamp, Kind: "model time step"}
		}
	}

	beginTime, _ := gowfm.ParseTimeStamp(begin)
	endTime, _ := gowfm.ParseTimeStamp(end)
	if beginTime.After(endTime) {
		return "", "", entities.TimeSpecs{}, &errors.TimeWindowError{Begin: begin, End: end}
	}
	return begin, end, specs, nil
}
