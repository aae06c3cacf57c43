// Package budget reads IWFM budget output files: the per-location
// water accounting tables the engine writes in HDF form during a
// simulation.
//
// A Budget wraps the engine's single open budget file. Open one
// against an engine session, query it, and Close it when done; the
// engine holds one budget file at a time, so close the current file
// before opening the next.
package budget

import (
	"log/slog"
	"unsafe"

	"github.com/SGMOModeling/gowfm"
	"github.com/SGMOModeling/gowfm/domain/entities"
	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/engine"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

const (
	// nameLen is the buffer width for one location name or column
	// header, per the engine programmer's guide.
	nameLen = 30
)

// Unit labels and conversion factors matching the engine's budget
// post-processor defaults. Budget files store values in the simulation
// units, feet and square/cubic feet for the typical model.
const (
	DefaultLengthUnit = "ft"
	DefaultAreaUnit   = "Acres"
	DefaultVolumeUnit = "TAF"

	// SqFtToAcres converts areas from square feet to acres.
	SqFtToAcres = 2.295684e-05

	// CuFtToTAF converts volumes from cubic feet to thousand
	// acre-feet.
	CuFtToTAF = 2.295684e-08
)

// Budget is an open handle to one budget output file.
type Budget struct {
	s      *engine.Session
	log    *slog.Logger
	path   string
	closed bool

	locations *int
	timeSteps *int
}

// Open opens the budget file at path through the engine.
func Open(s *engine.Session, path string) (*Budget, error) {
	buf := fortran.CString(path)
	length := int32(len(buf))
	err := s.Call("IW_Budget_OpenFile",
		unsafe.Pointer(&buf[0]),
		unsafe.Pointer(&length),
	)
	if err != nil {
		return nil, err
	}

	b := &Budget{s: s, log: s.Logger(), path: path}
	b.log.Info("budget: opened file", "path", path)
	return b, nil
}

// Close closes the budget file. Closing an already closed file is a
// no-op.
func (b *Budget) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if err := b.s.Call("IW_Budget_CloseFile"); err != nil {
		return err
	}
	b.log.Info("budget: closed file", "path", b.path)
	return nil
}

// call forwards to the session after checking the file is still open.
func (b *Budget) call(name string, args ...unsafe.Pointer) error {
	if b.closed {
		return &errors.ClosedError{Resource: "budget file"}
	}
	return b.s.Call(name, args...)
}

func (b *Budget) int(name string, args ...unsafe.Pointer) (int, error) {
	if b.closed {
		return 0, &errors.ClosedError{Resource: "budget file"}
	}
	return b.s.Int(name, args...)
}

// NumLocations returns the number of locations the file holds budgets
// for: subregions for a groundwater budget, reaches for a stream reach
// budget, and so on.
func (b *Budget) NumLocations() (int, error) {
	if b.locations != nil {
		return *b.locations, nil
	}
	n, err := b.int("IW_Budget_GetNLocations")
	if err != nil {
		return 0, err
	}
	b.locations = &n
	return n, nil
}

// LocationNames returns the name of every budget location, in location
// id order.
func (b *Budget) LocationNames() ([]string, error) {
	n, err := b.NumLocations()
	if err != nil || n == 0 {
		return nil, err
	}

	buf := make([]byte, n*nameLen)
	bufLen := int32(len(buf))
	n32 := int32(n)
	starts := make([]int32, n)
	err = b.call("IW_Budget_GetLocationNames",
		unsafe.Pointer(&buf[0]),
		unsafe.Pointer(&bufLen),
		unsafe.Pointer(&n32),
		fortran.Ptr(starts),
	)
	if err != nil {
		return nil, err
	}
	return fortran.SplitByStarts(fortran.GoString(buf), starts), nil
}

// NumTimeSteps returns the number of time steps of budget data.
func (b *Budget) NumTimeSteps() (int, error) {
	if b.timeSteps != nil {
		return *b.timeSteps, nil
	}
	n, err := b.int("IW_Budget_GetNTimeSteps")
	if err != nil {
		return 0, err
	}
	b.timeSteps = &n
	return n, nil
}

// TimeSpecs returns every output timestamp in the file plus the output
// interval.
func (b *Budget) TimeSpecs() (entities.TimeSpecs, error) {
	n, err := b.NumTimeSteps()
	if err != nil {
		return entities.TimeSpecs{}, err
	}

	datesBuf := make([]byte, n*gowfm.TimeStampLen)
	lenDates := int32(len(datesBuf))
	intervalBuf := make([]byte, gowfm.IntervalLen)
	lenInterval := int32(len(intervalBuf))
	nData := int32(n)
	starts := make([]int32, n)

	err = b.call("IW_Budget_GetTimeSpecs",
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

// NumTitleLines returns the number of title lines the file generates
// for one location's budget.
func (b *Budget) NumTitleLines() (int, error) {
	return b.int("IW_Budget_GetNTitleLines")
}

// TitleLength returns the character width of one title line.
func (b *Budget) TitleLength() (int, error) {
	return b.int("IW_Budget_GetTitleLength")
}

// TitleLines returns the title lines for one location's budget, the
// header block the post-processor prints above the table. areaFactor
// converts the location area shown in the titles from the simulation
// area unit; the unit labels are echoed into the title text. An empty
// alternateName keeps the location's own name.
func (b *Budget) TitleLines(locationID int, areaFactor float64, lengthUnit, areaUnit, volumeUnit, alternateName string) ([]string, error) {
	if err := b.validLocation(locationID); err != nil {
		return nil, err
	}
	nTitles, err := b.NumTitleLines()
	if err != nil {
		return nil, err
	}
	titleLen, err := b.TitleLength()
	if err != nil {
		return nil, err
	}

	id := int32(locationID)
	nTitles32 := int32(nTitles)
	lengthBuf := fortran.CString(lengthUnit)
	areaBuf := fortran.CString(areaUnit)
	volumeBuf := fortran.CString(volumeUnit)
	unitLen := int32(maxLen(lengthUnit, areaUnit, volumeUnit))
	altBuf := fortran.CString(alternateName)
	lenAlt := int32(len(altBuf))
	buf := make([]byte, nTitles*titleLen)
	bufLen := int32(len(buf))
	starts := make([]int32, nTitles)

	err = b.call("IW_Budget_GetTitleLines",
		unsafe.Pointer(&nTitles32),
		unsafe.Pointer(&id),
		unsafe.Pointer(&areaFactor),
		unsafe.Pointer(&lengthBuf[0]),
		unsafe.Pointer(&areaBuf[0]),
		unsafe.Pointer(&volumeBuf[0]),
		unsafe.Pointer(&unitLen),
		unsafe.Pointer(&altBuf[0]),
		unsafe.Pointer(&lenAlt),
		fortran.Ptr(buf),
		unsafe.Pointer(&bufLen),
		fortran.Ptr(starts),
	)
	if err != nil {
		return nil, err
	}
	return fortran.SplitByStarts(fortran.GoString(buf), starts), nil
}

// NumColumns returns the number of data columns for one location,
// including the leading Time column.
func (b *Budget) NumColumns(locationID int) (int, error) {
	if err := b.validLocation(locationID); err != nil {
		return 0, err
	}
	id := int32(locationID)
	return b.int("IW_Budget_GetNColumns", unsafe.Pointer(&id))
}

// ColumnHeaders returns the column headers for one location's budget
// table. The first header is Time; the unit labels are substituted
// into headers that carry a unit.
func (b *Budget) ColumnHeaders(locationID int, lengthUnit, areaUnit, volumeUnit string) ([]string, error) {
	n, err := b.NumColumns(locationID)
	if err != nil {
		return nil, err
	}

	id := int32(locationID)
	buf := make([]byte, n*nameLen)
	bufLen := int32(len(buf))
	n32 := int32(n)
	lengthBuf := fortran.CString(lengthUnit)
	areaBuf := fortran.CString(areaUnit)
	volumeBuf := fortran.CString(volumeUnit)
	unitLen := int32(maxLen(lengthUnit, areaUnit, volumeUnit))
	starts := make([]int32, n)

	err = b.call("IW_Budget_GetColumnHeaders",
		unsafe.Pointer(&id),
		fortran.Ptr(buf),
		unsafe.Pointer(&bufLen),
		unsafe.Pointer(&n32),
		unsafe.Pointer(&lengthBuf[0]),
		unsafe.Pointer(&areaBuf[0]),
		unsafe.Pointer(&volumeBuf[0]),
		unsafe.Pointer(&unitLen),
		fortran.Ptr(starts),
	)
	if err != nil {
		return nil, err
	}
	return fortran.SplitByStarts(fortran.GoString(buf), starts), nil
}

// validLocation checks a 1-based budget location id.
func (b *Budget) validLocation(id int) error {
	n, err := b.NumLocations()
	if err != nil {
		return err
	}
	if id < 1 || id > n {
		return &errors.NotFoundError{ID: id, Kind: "budget location"}
	}
	return nil
}

// resolveWindow fills open window bounds from the file's span and
// checks both bounds are file time steps in the right order.
func (b *Budget) resolveWindow(window gowfm.TimeWindow) (begin, end string, specs entities.TimeSpecs, err error) {
	specs, err = b.TimeSpecs()
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
			return "", "", entities.TimeSpecs{}, &errors.NotFoundError{ID: stamp, Kind: "budget time step"}
		}
	}

	beginTime, _ := gowfm.ParseTimeStamp(begin)
	endTime, _ := gowfm.ParseTimeStamp(end)
	if beginTime.After(endTime) {
		return "", "", entities.TimeSpecs{}, &errors.TimeWindowError{Begin: begin, End: end}
	}
	return begin, end, specs, nil
}

func maxLen(strs ...string) int {
	n := 0
	for _, s := range strs {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}
