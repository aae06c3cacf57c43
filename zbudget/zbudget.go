// Package zbudget reads IWFM zone budget output files: water
// accounting over user-defined zones of elements rather than the
// fixed locations of a budget file.
//
// A ZBudget wraps the engine's single open zone budget file. After
// opening, define zones with GenerateZoneListFromFile or
// GenerateZoneList before reading values; the engine computes zone
// flows against the active zone definition.
package zbudget

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
	// nameLen is the buffer width for one zone name or column header.
	nameLen = 30

	// titleLineLen is the buffer width for one title line.
	titleLineLen = 200

	// maxColumns caps the column list one zone can diversify into.
	maxColumns = 200
)

// Unit labels matching the engine's zone budget defaults. Zone budget
// files report in the simulation units; conversion factors default to
// 1.0.
const (
	DefaultAreaUnit   = "SQ FT"
	DefaultVolumeUnit = "CU FT"
)

// ZBudget is an open handle to one zone budget output file.
type ZBudget struct {
	s      *engine.Session
	log    *slog.Logger
	path   string
	closed bool

	timeSteps *int
}

// Open opens the zone budget file at path through the engine.
func Open(s *engine.Session, path string) (*ZBudget, error) {
	buf := fortran.CString(path)
	length := int32(len(buf))
	err := s.Call("IW_ZBudget_OpenFile",
		unsafe.Pointer(&buf[0]),
		unsafe.Pointer(&length),
	)
	if err != nil {
		return nil, err
	}

	z := &ZBudget{s: s, log: s.Logger(), path: path}
	z.log.Info("zbudget: opened file", "path", path)
	return z, nil
}

// Close closes the zone budget file. Closing an already closed file is
// a no-op.
func (z *ZBudget) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true
	if err := z.s.Call("IW_ZBudget_CloseFile"); err != nil {
		return err
	}
	z.log.Info("zbudget: closed file", "path", z.path)
	return nil
}

func (z *ZBudget) call(name string, args ...unsafe.Pointer) error {
	if z.closed {
		return &errors.ClosedError{Resource: "zone budget file"}
	}
	return z.s.Call(name, args...)
}

func (z *ZBudget) int(name string, args ...unsafe.Pointer) (int, error) {
	if z.closed {
		return 0, &errors.ClosedError{Resource: "zone budget file"}
	}
	return z.s.Int(name, args...)
}

// GenerateZoneListFromFile defines zones from a zone definition file,
// the same text format the Z-Budget post-processor reads.
func (z *ZBudget) GenerateZoneListFromFile(path string) error {
	buf := fortran.CString(path)
	length := int32(len(buf))
	err := z.call("IW_ZBudget_GenerateZoneList_FromFile",
		unsafe.Pointer(&buf[0]),
		unsafe.Pointer(&length),
	)
	if err != nil {
		return err
	}
	z.log.Info("zbudget: zones defined", "from", path)
	return nil
}

// GenerateZoneList defines zones directly from element assignments.
func (z *ZBudget) GenerateZoneList(def entities.ZoneDefinition) error {
	if len(def.Assignments) == 0 {
		return &errors.DimensionError{What: "zone assignments", Want: 1, Got: 0}
	}

	extents, err := z.s.ZoneExtentIDs()
	if err != nil {
		return err
	}
	extent := int32(extents.Horizontal)
	if def.Vertical {
		extent = int32(extents.Vertical)
	}

	n := len(def.Assignments)
	elements := make([]int32, n)
	layers := make([]int32, n)
	zones := make([]int32, n)
	for i, a := range def.Assignments {
		elements[i] = int32(a.Element)
		layers[i] = int32(a.Layer)
		zones[i] = int32(a.Zone)
	}

	namedIDs, names := def.NamedZones()
	nameBuf, starts := fortran.PackStrings(names)
	nNamed := int32(len(namedIDs))
	namedIDs32 := fortran.Int32s(namedIDs)
	lenNames := int32(len(nameBuf))

	n32 := int32(n)
	err = z.call("IW_ZBudget_GenerateZoneList",
		unsafe.Pointer(&extent),
		unsafe.Pointer(&n32),
		fortran.Ptr(elements),
		fortran.Ptr(layers),
		fortran.Ptr(zones),
		unsafe.Pointer(&nNamed),
		fortran.Ptr(namedIDs32),
		unsafe.Pointer(&lenNames),
		fortran.Ptr(nameBuf),
		fortran.Ptr(starts),
	)
	if err != nil {
		return err
	}
	z.log.Info("zbudget: zones defined", "assignments", n, "named", len(namedIDs))
	return nil
}

// NumZones returns the number of zones in the active zone definition.
func (z *ZBudget) NumZones() (int, error) {
	return z.int("IW_ZBudget_GetNZones")
}

// ZoneIDs returns the zone numbers of the active zone definition.
func (z *ZBudget) ZoneIDs() ([]int, error) {
	n, err := z.NumZones()
	if err != nil || n == 0 {
		return nil, err
	}

	n32 := int32(n)
	ids := make([]int32, n)
	err = z.call("IW_ZBudget_GetZoneList",
		unsafe.Pointer(&n32),
		fortran.Ptr(ids),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Ints(ids), nil
}

// ZoneNames returns the zone names, parallel to ZoneIDs. Zones without
// a user-given name come back with the engine's default label.
func (z *ZBudget) ZoneNames() ([]string, error) {
	n, err := z.NumZones()
	if err != nil || n == 0 {
		return nil, err
	}

	n32 := int32(n)
	buf := make([]byte, n*nameLen)
	bufLen := int32(len(buf))
	starts := make([]int32, n)
	err = z.call("IW_ZBudget_GetZoneNames",
		unsafe.Pointer(&n32),
		unsafe.Pointer(&bufLen),
		fortran.Ptr(buf),
		fortran.Ptr(starts),
	)
	if err != nil {
		return nil, err
	}
	return fortran.SplitByStarts(fortran.GoString(buf), starts), nil
}

// Zones returns the zone ids and names together.
func (z *ZBudget) Zones() (entities.ZoneList, error) {
	ids, err := z.ZoneIDs()
	if err != nil {
		return entities.ZoneList{}, err
	}
	names, err := z.ZoneNames()
	if err != nil {
		return entities.ZoneList{}, err
	}
	if len(names) != len(ids) {
		return entities.ZoneList{}, &errors.DimensionError{What: "zone names", Want: len(ids), Got: len(names)}
	}
	return entities.ZoneList{IDs: ids, Names: names}, nil
}

// NumTimeSteps returns the number of time steps of zone budget data.
func (z *ZBudget) NumTimeSteps() (int, error) {
	if z.timeSteps != nil {
		return *z.timeSteps, nil
	}
	n, err := z.int("IW_ZBudget_GetNTimeSteps")
	if err != nil {
		return 0, err
	}
	z.timeSteps = &n
	return n, nil
}

// TimeSpecs returns every output timestamp in the file plus the output
// interval.
func (z *ZBudget) TimeSpecs() (entities.TimeSpecs, error) {
	n, err := z.NumTimeSteps()
	if err != nil {
		return entities.TimeSpecs{}, err
	}

	datesBuf := make([]byte, n*gowfm.TimeStampLen)
	lenDates := int32(len(datesBuf))
	intervalBuf := make([]byte, gowfm.IntervalLen)
	lenInterval := int32(len(intervalBuf))
	nData := int32(n)
	starts := make([]int32, n)

	err = z.call("IW_ZBudget_GetTimeSpecs",
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

// NumTitleLines returns the number of title lines in the file.
func (z *ZBudget) NumTitleLines() (int, error) {
	return z.int("IW_ZBudget_GetNTitleLines")
}

// TitleLines returns the title lines for one zone's budget. areaFactor
// converts the zone area shown in the titles from the simulation area
// unit.
func (z *ZBudget) TitleLines(zoneID int, areaFactor float64, areaUnit, volumeUnit string) ([]string, error) {
	if err := z.validZone(zoneID); err != nil {
		return nil, err
	}
	nTitles, err := z.NumTitleLines()
	if err != nil {
		return nil, err
	}

	nTitles32 := int32(nTitles)
	id := int32(zoneID)
	areaBuf := fortran.CString(areaUnit)
	volumeBuf := fortran.CString(volumeUnit)
	unitLen := int32(max(len(areaBuf), len(volumeBuf)))
	buf := make([]byte, nTitles*titleLineLen)
	bufLen := int32(len(buf))
	starts := make([]int32, nTitles)

	err = z.call("IW_ZBudget_GetTitleLines",
		unsafe.Pointer(&nTitles32),
		unsafe.Pointer(&id),
		unsafe.Pointer(&areaFactor),
		unsafe.Pointer(&areaBuf[0]),
		unsafe.Pointer(&volumeBuf[0]),
		unsafe.Pointer(&unitLen),
		fortran.Ptr(buf),
		unsafe.Pointer(&bufLen),
		fortran.Ptr(starts),
	)
	if err != nil {
		return nil, err
	}
	return fortran.SplitByStarts(fortran.GoString(buf), starts), nil
}

// validZone checks the id against the active zone definition.
func (z *ZBudget) validZone(id int) error {
	ids, err := z.ZoneIDs()
	if err != nil {
		return err
	}
	for _, v := range ids {
		if v == id {
			return nil
		}
	}
	return &errors.NotFoundError{ID: id, Kind: "zone"}
}

// resolveWindow fills open window bounds from the file's span and
// checks both bounds are file time steps in the right order.
func (z *ZBudget) resolveWindow(window gowfm.TimeWindow) (begin, end string, specs entities.TimeSpecs, err error) {
	specs, err = z.TimeSpecs()
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
			return "", "", entities.TimeSpecs{}, &errors.NotFoundError{ID: stamp, Kind: "zone budget time step"}
		}
	}

	beginTime, _ := gowfm.ParseTimeStamp(begin)
	endTime, _ := gowfm.ParseTimeStamp(end)
	if beginTime.After(endTime) {
		return "", "", entities.TimeSpecs{}, &errors.TimeWindowError{Begin: begin, End: end}
	}
	return begin, end, specs, nil
}

// outputInterval defaults an empty interval to the simulation interval
// and requires a caller-supplied one to be at least as coarse.
func (z *ZBudget) outputInterval(interval, simulation string) (string, error) {
	if interval == "" {
		return simulation, nil
	}
	canon, err := gowfm.CanonicalInterval(interval)
	if err != nil {
		return "", err
	}
	ge, err := gowfm.IntervalGE(canon, simulation)
	if err != nil {
		return "", err
	}
	if !ge {
		return "", &errors.UnsupportedError{Operation: "output interval " + canon, Target: "a " + simulation + " zone budget"}
	}
	return canon, nil
}
