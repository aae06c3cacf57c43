package model

import (
	"unsafe"

	"github.com/SGMOModeling/gowfm/domain/entities"
	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

const (
	// maxElementNodes is the engine's per-element node slot count.
	// Triangles leave the fourth slot zero.
	maxElementNodes = 4

	// subregionNameLen is the buffer width for one subregion name.
	subregionNameLen = 50
)

// NumNodes returns the number of finite-element nodes in the model.
func (m *Model) NumNodes() (int, error) {
	return m.cached(&m.dims.nodes, "IW_Model_GetNNodes")
}

// NodeIDs returns the user-specified node identification numbers.
func (m *Model) NodeIDs() ([]int, error) {
	n, err := m.NumNodes()
	if err != nil {
		return nil, err
	}
	return m.idList("IW_Model_GetNodeIDs", n)
}

// NodeCoordinates returns the x and y coordinates of every node,
// parallel to NodeIDs.
func (m *Model) NodeCoordinates() (x, y []float64, err error) {
	n, err := m.NumNodes()
	if err != nil {
		return nil, nil, err
	}

	x = make([]float64, n)
	y = make([]float64, n)
	n32 := int32(n)
	err = m.call("IW_Model_GetNodeXY",
		unsafe.Pointer(&n32),
		fortran.Ptr(x),
		fortran.Ptr(y),
	)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// NumElements returns the number of finite elements in the model.
func (m *Model) NumElements() (int, error) {
	return m.cached(&m.dims.elements, "IW_Model_GetNElements")
}

// ElementIDs returns the user-specified element identification numbers.
func (m *Model) ElementIDs() ([]int, error) {
	n, err := m.NumElements()
	if err != nil {
		return nil, err
	}
	return m.idList("IW_Model_GetElementIDs", n)
}

// ElementConfig returns the node ids at the corners of one element,
// counter-clockwise. Triangles come back with three ids.
func (m *Model) ElementConfig(elementID int) (entities.ElementConfig, error) {
	ids, err := m.ElementIDs()
	if err != nil {
		return entities.ElementConfig{}, err
	}
	if !contains(ids, elementID) {
		return entities.ElementConfig{}, &errors.NotFoundError{ID: elementID, Kind: "element"}
	}
	return m.elementConfig(elementID)
}

// elementConfig fetches one element's corners without revalidating the
// id, for callers iterating the model's own element list.
func (m *Model) elementConfig(elementID int) (entities.ElementConfig, error) {
	id := int32(elementID)
	maxNodes := int32(maxElementNodes)
	nodes := make([]int32, maxElementNodes)

	err := m.call("IW_Model_GetElementConfigData",
		unsafe.Pointer(&id),
		unsafe.Pointer(&maxNodes),
		unsafe.Pointer(&nodes[0]),
	)
	if err != nil {
		return entities.ElementConfig{}, err
	}

	// Trim the zero padding off triangular elements.
	filled := nodes
	for len(filled) > 0 && filled[len(filled)-1] == 0 {
		filled = filled[:len(filled)-1]
	}
	return entities.ElementConfig{ElementID: elementID, NodeIDs: fortran.Ints(filled)}, nil
}

// NumSubregions returns the number of subregions in the model.
func (m *Model) NumSubregions() (int, error) {
	return m.cached(&m.dims.subregions, "IW_Model_GetNSubregions")
}

// SubregionIDs returns the user-specified subregion identification
// numbers.
func (m *Model) SubregionIDs() ([]int, error) {
	n, err := m.NumSubregions()
	if err != nil {
		return nil, err
	}
	return m.idList("IW_Model_GetSubregionIDs", n)
}

// SubregionName returns the name given to one subregion in the
// preprocessor input.
func (m *Model) SubregionName(subregionID int) (string, error) {
	ids, err := m.SubregionIDs()
	if err != nil {
		return "", err
	}
	if !contains(ids, subregionID) {
		return "", &errors.NotFoundError{ID: subregionID, Kind: "subregion"}
	}

	id := int32(subregionID)
	length := int32(subregionNameLen)
	buf := make([]byte, subregionNameLen)
	err = m.call("IW_Model_GetSubregionName",
		unsafe.Pointer(&id),
		unsafe.Pointer(&length),
		unsafe.Pointer(&buf[0]),
	)
	if err != nil {
		return "", err
	}
	return fortran.TrimString(buf), nil
}

// SubregionsByElement returns each element's subregion id, parallel to
// ElementIDs.
func (m *Model) SubregionsByElement() ([]int, error) {
	n, err := m.NumElements()
	if err != nil {
		return nil, err
	}
	return m.idList("IW_Model_GetElemSubregions", n)
}
