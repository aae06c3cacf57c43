package entities

// Node is a finite-element mesh node with its plan coordinates.
type Node struct {
	ID   int
	X, Y float64
}

// ElementConfig lists the nodes at an element's corners in
// counter-clockwise order. Triangular elements have three node ids;
// quadrilaterals have four.
type ElementConfig struct {
	ElementID int
	NodeIDs   []int
}

// ElementVertex is one corner of one element, the stacked form used
// when element geometry is tabulated. Position counts corners from 1.
type ElementVertex struct {
	ElementID   int
	SubregionID int
	Position    int
	NodeID      int
}

// BoundarySegment is one element edge on the outer boundary of a mesh
// or of one subregion. Start and End keep the edge's original
// orientation around its element.
type BoundarySegment struct {
	SubregionID int
	StartNode   int
	EndNode     int
}

// RatingTable pairs stream stages with the flows the engine rates them
// at. Stages and Flows are parallel.
type RatingTable struct {
	Stages []float64
	Flows  []float64
}

// Stratigraphy describes the vertical column at one location: the
// ground surface elevation and each aquifer layer's top and bottom.
// Slices are ordered from the top layer down.
type Stratigraphy struct {
	GroundSurface float64
	TopElevations []float64
	BotElevations []float64
}

// NumLayers returns the number of aquifer layers in the column.
func (s Stratigraphy) NumLayers() int {
	return len(s.TopElevations)
}

// AquiferParameters bundles the layer-by-node parameter matrices. Every
// matrix is [layer][node].
type AquiferParameters struct {
	HorizontalK     [][]float64
	VerticalK       [][]float64
	AquitardK       [][]float64
	SpecificYield   [][]float64
	SpecificStorage [][]float64
}

// HydrographLocation describes one observation hydrograph site,
// including the stratigraphy column at its coordinates.
type HydrographLocation struct {
	ID            int
	Name          string
	X, Y          float64
	GroundSurface float64
	BotElevations []float64
}
