package model

import (
	"time"
	"unsafe"

	"github.com/SGMOModeling/gowfm"
	"github.com/SGMOModeling/gowfm/domain/entities"
	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// hydrographTypeListLen fits the packed name list of every hydrograph
// type the engine can print.
const hydrographTypeListLen = 3000

// HydrographType pairs a hydrograph kind printed by the model with the
// location type its observation points belong to.
type HydrographType struct {
	Name         string
	LocationType int
}

// NumHydrographTypes returns the number of hydrograph kinds the model
// prints.
func (m *Model) NumHydrographTypes() (int, error) {
	return m.int("IW_Model_GetNHydrographTypes")
}

// HydrographTypes returns the hydrograph kinds the model prints.
func (m *Model) HydrographTypes() ([]HydrographType, error) {
	n, err := m.NumHydrographTypes()
	if err != nil || n == 0 {
		return nil, err
	}

	n32 := int32(n)
	starts := make([]int32, n)
	buf := make([]byte, hydrographTypeListLen)
	bufLen := int32(len(buf))
	locationTypes := make([]int32, n)
	err = m.call("IW_Model_GetHydrographTypeList",
		unsafe.Pointer(&n32),
		fortran.Ptr(starts),
		unsafe.Pointer(&bufLen),
		unsafe.Pointer(&buf[0]),
		fortran.Ptr(locationTypes),
	)
	if err != nil {
		return nil, err
	}

	names := fortran.SplitByStarts(fortran.GoString(buf), starts)
	types := make([]HydrographType, n)
	for i := range types {
		types[i] = HydrographType{Name: names[i], LocationType: int(locationTypes[i])}
	}
	return types, nil
}

// NumHydrographs returns the number of hydrograph output locations of
// one location type.
func (m *Model) NumHydrographs(locationTypeID int) (int, error) {
	id := int32(locationTypeID)
	return m.int("IW_Model_GetNHydrographs", unsafe.Pointer(&id))
}

// NumGroundwaterHydrographs returns the number of groundwater head
// hydrograph locations.
func (m *Model) NumGroundwaterHydrographs() (int, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return 0, err
	}
	return m.NumHydrographs(ids.GWHeadObs)
}

// NumSubsidenceHydrographs returns the number of subsidence hydrograph
// locations.
func (m *Model) NumSubsidenceHydrographs() (int, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return 0, err
	}
	return m.NumHydrographs(ids.SubsidenceObs)
}

// NumStreamHydrographs returns the number of stream flow hydrograph
// locations.
func (m *Model) NumStreamHydrographs() (int, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return 0, err
	}
	return m.NumHydrographs(ids.StreamHydObs)
}

// NumTileDrainHydrographs returns the number of tile drain hydrograph
// locations.
func (m *Model) NumTileDrainHydrographs() (int, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return 0, err
	}
	return m.NumHydrographs(ids.TileDrain)
}

// HydrographIDs returns the identification numbers of the hydrograph
// output locations of one location type.
func (m *Model) HydrographIDs(locationTypeID int) ([]int, error) {
	n, err := m.NumHydrographs(locationTypeID)
	if err != nil || n == 0 {
		return nil, err
	}

	id := int32(locationTypeID)
	n32 := int32(n)
	ids := make([]int32, n)
	err = m.call("IW_Model_GetHydrographIDs",
		unsafe.Pointer(&id),
		unsafe.Pointer(&n32),
		fortran.Ptr(ids),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Ints(ids), nil
}

// GroundwaterHydrographIDs returns the groundwater head hydrograph
// identification numbers.
func (m *Model) GroundwaterHydrographIDs() ([]int, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.HydrographIDs(ids.GWHeadObs)
}

// SubsidenceHydrographIDs returns the subsidence hydrograph
// identification numbers.
func (m *Model) SubsidenceHydrographIDs() ([]int, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.HydrographIDs(ids.SubsidenceObs)
}

// StreamHydrographIDs returns the stream flow hydrograph identification
// numbers.
func (m *Model) StreamHydrographIDs() ([]int, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.HydrographIDs(ids.StreamHydObs)
}

// TileDrainHydrographIDs returns the tile drain hydrograph
// identification numbers.
func (m *Model) TileDrainHydrographIDs() ([]int, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.HydrographIDs(ids.TileDrain)
}

// HydrographCoordinates returns the x and y coordinates of the
// hydrograph output locations of one location type.
func (m *Model) HydrographCoordinates(locationTypeID int) (x, y []float64, err error) {
	n, err := m.NumHydrographs(locationTypeID)
	if err != nil || n == 0 {
		return nil, nil, err
	}

	id := int32(locationTypeID)
	n32 := int32(n)
	x = make([]float64, n)
	y = make([]float64, n)
	err = m.call("IW_Model_GetHydrographCoordinates",
		unsafe.Pointer(&id),
		unsafe.Pointer(&n32),
		fortran.Ptr(x),
		fortran.Ptr(y),
	)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// GroundwaterHydrographCoordinates returns the coordinates of the
// groundwater head hydrograph locations.
func (m *Model) GroundwaterHydrographCoordinates() (x, y []float64, err error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, nil, err
	}
	return m.HydrographCoordinates(ids.GWHeadObs)
}

// SubsidenceObservationCoordinates returns the coordinates of the
// subsidence hydrograph locations.
func (m *Model) SubsidenceObservationCoordinates() (x, y []float64, err error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, nil, err
	}
	return m.HydrographCoordinates(ids.SubsidenceObs)
}

// StreamObservationCoordinates returns the coordinates of the stream
// flow hydrograph locations.
func (m *Model) StreamObservationCoordinates() (x, y []float64, err error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, nil, err
	}
	return m.HydrographCoordinates(ids.StreamHydObs)
}

// TileDrainObservationCoordinates returns the coordinates of the tile
// drain hydrograph locations.
func (m *Model) TileDrainObservationCoordinates() (x, y []float64, err error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, nil, err
	}
	return m.HydrographCoordinates(ids.TileDrain)
}

// hydrograph fetches one simulated hydrograph. The length factor scales
// values printed in units of length, the volume factor those printed in
// units of volume; the engine reports which one applied through the
// data unit type.
func (m *Model) hydrograph(hydrographType, hydrographID, layer int, window gowfm.TimeWindow, lengthFactor, volumeFactor float64) (entities.TimeSeries, error) {
	nLayers, err := m.NumLayers()
	if err != nil {
		return entities.TimeSeries{}, err
	}
	if layer < 1 || layer > nLayers {
		return entities.TimeSeries{}, &errors.NotFoundError{ID: layer, Kind: "model layer"}
	}

	begin, end, specs, err := m.resolveWindow(window)
	if err != nil {
		return entities.TimeSeries{}, err
	}
	n, err := m.s.NIntervals(begin, end, specs.Interval, true)
	if err != nil {
		return entities.TimeSeries{}, err
	}

	hydType := int32(hydrographType)
	hydID := int32(hydrographID)
	layer32 := int32(layer)
	beginBuf := fortran.CString(begin)
	endBuf := fortran.CString(end)
	lenDate := int32(len(beginBuf))
	intervalBuf := fortran.CString(specs.Interval)
	lenInterval := int32(len(intervalBuf))
	nIn := int32(n)
	serials := make([]float64, n)
	values := make([]float64, n)
	var dataUnitType, nOut int32

	err = m.call("IW_Model_GetHydrograph",
		unsafe.Pointer(&hydType),
		unsafe.Pointer(&hydID),
		unsafe.Pointer(&layer32),
		unsafe.Pointer(&lenDate),
		unsafe.Pointer(&beginBuf[0]),
		unsafe.Pointer(&endBuf[0]),
		unsafe.Pointer(&lenInterval),
		unsafe.Pointer(&intervalBuf[0]),
		unsafe.Pointer(&lengthFactor),
		unsafe.Pointer(&volumeFactor),
		unsafe.Pointer(&nIn),
		fortran.Ptr(serials),
		fortran.Ptr(values),
		unsafe.Pointer(&dataUnitType),
		unsafe.Pointer(&nOut),
	)
	if err != nil {
		return entities.TimeSeries{}, err
	}

	// The engine fills fewer entries when the hydrograph starts after
	// the requested window.
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

// GroundwaterHydrograph returns the simulated hydrograph at one
// groundwater head observation location.
func (m *Model) GroundwaterHydrograph(hydrographID int, window gowfm.TimeWindow, lengthFactor, volumeFactor float64) (entities.TimeSeries, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return entities.TimeSeries{}, err
	}
	return m.hydrograph(ids.GWHeadObs, hydrographID, 1, window, lengthFactor, volumeFactor)
}

// GroundwaterHydrographAtNodeAndLayer returns the simulated groundwater
// head hydrograph at one finite element node and layer.
func (m *Model) GroundwaterHydrographAtNodeAndLayer(nodeID, layer int, window gowfm.TimeWindow, lengthFactor, volumeFactor float64) (entities.TimeSeries, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return entities.TimeSeries{}, err
	}
	return m.hydrograph(ids.Node, nodeID, layer, window, lengthFactor, volumeFactor)
}

// SubsidenceHydrograph returns the simulated hydrograph at one
// subsidence observation location.
func (m *Model) SubsidenceHydrograph(hydrographID int, window gowfm.TimeWindow, lengthFactor, volumeFactor float64) (entities.TimeSeries, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return entities.TimeSeries{}, err
	}
	return m.hydrograph(ids.SubsidenceObs, hydrographID, 1, window, lengthFactor, volumeFactor)
}

// StreamHydrograph returns the simulated hydrograph at one stream flow
// observation location.
func (m *Model) StreamHydrograph(hydrographID int, window gowfm.TimeWindow, lengthFactor, volumeFactor float64) (entities.TimeSeries, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return entities.TimeSeries{}, err
	}
	return m.hydrograph(ids.StreamHydObs, hydrographID, 1, window, lengthFactor, volumeFactor)
}

// GWHeadsForLayer returns the simulated head at every node of one
// layer for each time step in the window. Rows follow the returned
// times; columns follow node order.
func (m *Model) GWHeadsForLayer(layer int, window gowfm.TimeWindow, factor float64) ([]time.Time, [][]float64, error) {
	begin, end, specs, err := m.resolveWindow(window)
	if err != nil {
		return nil, nil, err
	}
	nIntervals, err := m.s.NIntervals(begin, end, specs.Interval, true)
	if err != nil {
		return nil, nil, err
	}
	nNodes, err := m.NumNodes()
	if err != nil {
		return nil, nil, err
	}

	layer32 := int32(layer)
	beginBuf := fortran.CString(begin)
	endBuf := fortran.CString(end)
	lenDate := int32(len(beginBuf))
	nNodes32 := int32(nNodes)
	nIntervals32 := int32(nIntervals)
	serials := make([]float64, nIntervals)
	flat := make([]float64, nIntervals*nNodes)

	err = m.call("IW_Model_GetGWHeads_ForALayer",
		unsafe.Pointer(&layer32),
		unsafe.Pointer(&beginBuf[0]),
		unsafe.Pointer(&endBuf[0]),
		unsafe.Pointer(&lenDate),
		unsafe.Pointer(&factor),
		unsafe.Pointer(&nNodes32),
		unsafe.Pointer(&nIntervals32),
		fortran.Ptr(serials),
		fortran.Ptr(flat),
	)
	if err != nil {
		return nil, nil, err
	}

	times := make([]time.Time, nIntervals)
	for i, serial := range serials {
		times[i] = gowfm.FromSerial(serial)
	}
	return times, fortran.Matrix(flat, nIntervals, nNodes), nil
}

// GWHeadsAll returns the current-timestep head at every node and layer,
// shaped [layer][node]. Pass endOfTimestep false for the heads at the
// start of the step. Meant for simulation models between time steps.
func (m *Model) GWHeadsAll(endOfTimestep bool, factor float64) ([][]float64, error) {
	return m.nodeLayerMatrixFlagged("IW_Model_GetGWHeads_All", !endOfTimestep, factor)
}

// SubsidenceAll returns the current-timestep subsidence at every node
// and layer, shaped [layer][node].
func (m *Model) SubsidenceAll(factor float64) ([][]float64, error) {
	nNodes, nLayers, err := m.gridShape()
	if err != nil {
		return nil, err
	}

	nNodes32 := int32(nNodes)
	nLayers32 := int32(nLayers)
	flat := make([]float64, nLayers*nNodes)
	err = m.call("IW_Model_GetSubsidence_All",
		unsafe.Pointer(&nNodes32),
		unsafe.Pointer(&nLayers32),
		unsafe.Pointer(&factor),
		fortran.Ptr(flat),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Matrix(flat, nLayers, nNodes), nil
}

func (m *Model) nodeLayerMatrixFlagged(proc string, previous bool, factor float64) ([][]float64, error) {
	nNodes, nLayers, err := m.gridShape()
	if err != nil {
		return nil, err
	}

	nNodes32 := int32(nNodes)
	nLayers32 := int32(nLayers)
	previous32 := flag(previous)
	flat := make([]float64, nLayers*nNodes)
	err = m.call(proc,
		unsafe.Pointer(&nNodes32),
		unsafe.Pointer(&nLayers32),
		unsafe.Pointer(&previous32),
		unsafe.Pointer(&factor),
		fortran.Ptr(flat),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Matrix(flat, nLayers, nNodes), nil
}
