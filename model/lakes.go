package model

import (
	"unsafe"

	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// NumDiversions returns the number of surface water diversions in the
// model.
func (m *Model) NumDiversions() (int, error) {
	return m.cached(&m.dims.diversions, "IW_Model_GetNDiversions")
}

// DiversionIDs returns the user-specified surface water diversion
// identification numbers.
func (m *Model) DiversionIDs() ([]int, error) {
	n, err := m.NumDiversions()
	if err != nil {
		return nil, err
	}
	return m.idList("IW_Model_GetDiversionIDs", n)
}

// NumLakes returns the number of lakes in the model.
func (m *Model) NumLakes() (int, error) {
	return m.cached(&m.dims.lakes, "IW_Model_GetNLakes")
}

// LakeIDs returns the user-specified lake identification numbers, or
// nil when the model simulates no lakes.
func (m *Model) LakeIDs() ([]int, error) {
	n, err := m.NumLakes()
	if err != nil || n == 0 {
		return nil, err
	}
	return m.idList("IW_Model_GetLakeIDs", n)
}

// NumElementsInLake returns the number of elements making up one lake.
func (m *Model) NumElementsInLake(lakeID int) (int, error) {
	n, err := m.NumLakes()
	if err != nil || n == 0 {
		return 0, err
	}
	id := int32(lakeID)
	return m.int("IW_Model_GetNElementsInLake", unsafe.Pointer(&id))
}

// ElementsInLake returns the elements making up one lake, or nil when
// the model simulates no lakes.
func (m *Model) ElementsInLake(lakeID int) ([]int, error) {
	n, err := m.NumElementsInLake(lakeID)
	if err != nil || n == 0 {
		return nil, err
	}

	id := int32(lakeID)
	n32 := int32(n)
	elements := make([]int32, n)
	err = m.call("IW_Model_GetElementsInLake",
		unsafe.Pointer(&id),
		unsafe.Pointer(&n32),
		fortran.Ptr(elements),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Ints(elements), nil
}

// NumTileDrains returns the number of tile drain nodes in the model.
func (m *Model) NumTileDrains() (int, error) {
	return m.cached(&m.dims.tileDrains, "IW_Model_GetNTileDrainNodes")
}

// TileDrainIDs returns the user-specified tile drain identification
// numbers, or nil when the model simulates no tile drains.
func (m *Model) TileDrainIDs() ([]int, error) {
	n, err := m.NumTileDrains()
	if err != nil || n == 0 {
		return nil, err
	}
	return m.idList("IW_Model_GetTileDrainIDs", n)
}

// TileDrainNodes returns the groundwater node of every tile drain, or
// nil when the model simulates no tile drains.
func (m *Model) TileDrainNodes() ([]int, error) {
	n, err := m.NumTileDrains()
	if err != nil || n == 0 {
		return nil, err
	}
	return m.idList("IW_Model_GetTileDrainNodes", n)
}
