package model

import (
	"unsafe"

	"github.com/SGMOModeling/gowfm/domain/entities"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// NumLayers returns the number of aquifer layers in the model.
func (m *Model) NumLayers() (int, error) {
	return m.cached(&m.dims.layers, "IW_Model_GetNLayers")
}

// GroundSurfaceElevation returns the ground surface elevation at every
// node.
func (m *Model) GroundSurfaceElevation() ([]float64, error) {
	n, err := m.NumNodes()
	if err != nil {
		return nil, err
	}

	elevs := make([]float64, n)
	n32 := int32(n)
	err = m.call("IW_Model_GetGSElev",
		unsafe.Pointer(&n32),
		fortran.Ptr(elevs),
	)
	if err != nil {
		return nil, err
	}
	return elevs, nil
}

// AquiferTopElevation returns the top elevation of every aquifer layer
// at every node, as a [layer][node] matrix.
func (m *Model) AquiferTopElevation() ([][]float64, error) {
	return m.aquiferMatrix("IW_Model_GetAquiferTopElev")
}

// AquiferBottomElevation returns the bottom elevation of every aquifer
// layer at every node, as a [layer][node] matrix.
func (m *Model) AquiferBottomElevation() ([][]float64, error) {
	return m.aquiferMatrix("IW_Model_GetAquiferBottomElev")
}

// AquiferHorizontalK returns the aquifer horizontal hydraulic
// conductivity as a [layer][node] matrix.
func (m *Model) AquiferHorizontalK() ([][]float64, error) {
	return m.aquiferMatrix("IW_Model_GetAquiferHorizontalK")
}

// AquiferVerticalK returns the aquifer vertical hydraulic conductivity
// as a [layer][node] matrix.
func (m *Model) AquiferVerticalK() ([][]float64, error) {
	return m.aquiferMatrix("IW_Model_GetAquiferVerticalK")
}

// AquitardVerticalK returns the aquitard vertical hydraulic
// conductivity as a [layer][node] matrix.
func (m *Model) AquitardVerticalK() ([][]float64, error) {
	return m.aquiferMatrix("IW_Model_GetAquitardVerticalK")
}

// AquiferSpecificYield returns the aquifer specific yield as a
// [layer][node] matrix.
func (m *Model) AquiferSpecificYield() ([][]float64, error) {
	return m.aquiferMatrix("IW_Model_GetAquiferSy")
}

// AquiferSpecificStorage returns the aquifer specific storage as a
// [layer][node] matrix.
func (m *Model) AquiferSpecificStorage() ([][]float64, error) {
	return m.aquiferMatrix("IW_Model_GetAquiferSs")
}

// aquiferMatrix calls a per-layer-per-node parameter procedure laid out
// as (nNodes, nLayers, values[nLayers*nNodes], status).
func (m *Model) aquiferMatrix(proc string) ([][]float64, error) {
	nNodes, nLayers, err := m.gridShape()
	if err != nil {
		return nil, err
	}

	flat := make([]float64, nLayers*nNodes)
	n32, l32 := int32(nNodes), int32(nLayers)
	err = m.call(proc,
		unsafe.Pointer(&n32),
		unsafe.Pointer(&l32),
		fortran.Ptr(flat),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Matrix(flat, nLayers, nNodes), nil
}

func (m *Model) gridShape() (nNodes, nLayers int, err error) {
	nNodes, err = m.NumNodes()
	if err != nil {
		return 0, 0, err
	}
	nLayers, err = m.NumLayers()
	if err != nil {
		return 0, 0, err
	}
	return nNodes, nLayers, nil
}

// AquiferParameters returns all five aquifer parameter matrices in one
// engine call.
func (m *Model) AquiferParameters() (entities.AquiferParameters, error) {
	nNodes, nLayers, err := m.gridShape()
	if err != nil {
		return entities.AquiferParameters{}, err
	}

	size := nLayers * nNodes
	hk := make([]float64, size)
	vk := make([]float64, size)
	atk := make([]float64, size)
	sy := make([]float64, size)
	ss := make([]float64, size)

	n32, l32 := int32(nNodes), int32(nLayers)
	err = m.call("IW_Model_GetAquiferParameters",
		unsafe.Pointer(&n32),
		unsafe.Pointer(&l32),
		fortran.Ptr(hk),
		fortran.Ptr(vk),
		fortran.Ptr(atk),
		fortran.Ptr(sy),
		fortran.Ptr(ss),
	)
	if err != nil {
		return entities.AquiferParameters{}, err
	}

	return entities.AquiferParameters{
		HorizontalK:     fortran.Matrix(hk, nLayers, nNodes),
		VerticalK:       fortran.Matrix(vk, nLayers, nNodes),
		AquitardK:       fortran.Matrix(atk, nLayers, nNodes),
		SpecificYield:   fortran.Matrix(sy, nLayers, nNodes),
		SpecificStorage: fortran.Matrix(ss, nLayers, nNodes),
	}, nil
}

// StratigraphyAtLocation returns the stratigraphy column at an x,y
// coordinate. factor converts the coordinates to model length units,
// for example 3.2808 for meters against a model in feet.
func (m *Model) StratigraphyAtLocation(x, y, factor float64) (entities.Stratigraphy, error) {
	nLayers, err := m.NumLayers()
	if err != nil {
		return entities.Stratigraphy{}, err
	}

	sx := x * factor
	sy := y * factor
	var gse float64
	tops := make([]float64, nLayers)
	bottoms := make([]float64, nLayers)

	l32 := int32(nLayers)
	err = m.call("IW_Model_GetStratigraphy_AtXYCoordinate",
		unsafe.Pointer(&l32),
		unsafe.Pointer(&sx),
		unsafe.Pointer(&sy),
		unsafe.Pointer(&gse),
		fortran.Ptr(tops),
		fortran.Ptr(bottoms),
	)
	if err != nil {
		return entities.Stratigraphy{}, err
	}

	return entities.Stratigraphy{
		GroundSurface: gse,
		TopElevations: tops,
		BotElevations: bottoms,
	}, nil
}
