package model

import (
	"unsafe"

	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// nameLen is the per-entry width of the engine's packed name buffers.
const nameLen = 30

// NumLocations returns the number of model features of one location
// type.
func (m *Model) NumLocations(locationTypeID int) (int, error) {
	id := int32(locationTypeID)
	return m.int("IW_Model_GetNLocations", unsafe.Pointer(&id))
}

// LocationIDs returns the identification numbers of every model
// feature of one location type.
func (m *Model) LocationIDs(locationTypeID int) ([]int, error) {
	n, err := m.NumLocations(locationTypeID)
	if err != nil || n == 0 {
		return nil, err
	}

	id := int32(locationTypeID)
	n32 := int32(n)
	ids := make([]int32, n)
	err = m.call("IW_Model_GetLocationIDs",
		unsafe.Pointer(&id),
		unsafe.Pointer(&n32),
		fortran.Ptr(ids),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Ints(ids), nil
}

// NumSmallWatersheds returns the number of small watersheds in the
// model.
func (m *Model) NumSmallWatersheds() (int, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return 0, err
	}
	return m.NumLocations(ids.SmallWatershed)
}

// SmallWatershedIDs returns the user-specified small watershed
// identification numbers.
func (m *Model) SmallWatershedIDs() ([]int, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.LocationIDs(ids.SmallWatershed)
}

// Names returns the user-specified names of every model feature of one
// location type, or nil when the model has no features of that type.
// Zones carry no model-side names; asking for them returns an
// UnsupportedError.
func (m *Model) Names(locationTypeID int) ([]string, error) {
	n, err := m.nameCount(locationTypeID)
	if err != nil || n == 0 {
		return nil, err
	}

	id := int32(locationTypeID)
	n32 := int32(n)
	starts := make([]int32, n)
	buf := make([]byte, nameLen*n)
	bufLen := int32(len(buf))
	err = m.call("IW_Model_GetNames",
		unsafe.Pointer(&id),
		unsafe.Pointer(&n32),
		fortran.Ptr(starts),
		unsafe.Pointer(&bufLen),
		unsafe.Pointer(&buf[0]),
	)
	if err != nil {
		return nil, err
	}
	return fortran.SplitByStarts(fortran.GoString(buf), starts), nil
}

// nameCount resolves how many names the engine will pack for one
// location type.
func (m *Model) nameCount(locationTypeID int) (int, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return 0, err
	}

	switch locationTypeID {
	case ids.Node:
		return m.NumNodes()
	case ids.Element:
		return m.NumElements()
	case ids.Subregion:
		return m.NumSubregions()
	case ids.Lake:
		return m.NumLakes()
	case ids.StreamNode:
		return m.NumStreamNodes()
	case ids.StreamReach:
		return m.NumStreamReaches()
	case ids.TileDrain:
		return m.NumTileDrains()
	case ids.SmallWatershed:
		return m.NumSmallWatersheds()
	case ids.GWHeadObs, ids.StreamHydObs, ids.SubsidenceObs:
		return m.NumHydrographs(locationTypeID)
	case ids.Zone:
		return 0, &errors.UnsupportedError{Operation: "fetching names", Target: "zones"}
	default:
		return 0, &errors.NotFoundError{ID: locationTypeID, Kind: "location type"}
	}
}

// SubregionNames returns the name of every subregion.
func (m *Model) SubregionNames() ([]string, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.Names(ids.Subregion)
}

// StreamReachNames returns the name of every stream reach.
func (m *Model) StreamReachNames() ([]string, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.Names(ids.StreamReach)
}

// GroundwaterObservationNames returns the name of every groundwater
// head observation location.
func (m *Model) GroundwaterObservationNames() ([]string, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.Names(ids.GWHeadObs)
}

// StreamObservationNames returns the name of every stream flow
// observation location.
func (m *Model) StreamObservationNames() ([]string, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.Names(ids.StreamHydObs)
}

// SubsidenceObservationNames returns the name of every subsidence
// observation location.
func (m *Model) SubsidenceObservationNames() ([]string, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.Names(ids.SubsidenceObs)
}
