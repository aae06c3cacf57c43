package model

import (
	"time"

	"github.com/SGMOModeling/gowfm"
	"github.com/SGMOModeling/gowfm/domain/entities"
)

// NodeInfo returns every mesh node with its coordinates.
func (m *Model) NodeInfo() ([]entities.Node, error) {
	ids, err := m.NodeIDs()
	if err != nil {
		return nil, err
	}
	x, y, err := m.NodeCoordinates()
	if err != nil {
		return nil, err
	}

	nodes := make([]entities.Node, len(ids))
	for i, id := range ids {
		nodes[i] = entities.Node{ID: id, X: x[i], Y: y[i]}
	}
	return nodes, nil
}

// ElementInfo returns every element corner as a stacked list of
// vertices, each carrying its element and subregion.
func (m *Model) ElementInfo() ([]entities.ElementVertex, error) {
	ids, err := m.ElementIDs()
	if err != nil {
		return nil, err
	}
	subregions, err := m.SubregionsByElement()
	if err != nil {
		return nil, err
	}

	vertices := make([]entities.ElementVertex, 0, len(ids)*maxElementNodes)
	for i, id := range ids {
		config, err := m.elementConfig(id)
		if err != nil {
			return nil, err
		}
		for pos, node := range config.NodeIDs {
			vertices = append(vertices, entities.ElementVertex{
				ElementID:   id,
				SubregionID: subregions[i],
				Position:    pos + 1,
				NodeID:      node,
			})
		}
	}
	return vertices, nil
}

// BoundarySegments returns the element edges on the outer boundary of
// the mesh. An edge shared by two elements is interior; an edge owned
// by one element alone lies on the boundary. With bySubregion set,
// edges are counted within each subregion, so the result traces every
// subregion's outline including the internal divides.
func (m *Model) BoundarySegments(bySubregion bool) ([]entities.BoundarySegment, error) {
	vertices, err := m.ElementInfo()
	if err != nil {
		return nil, err
	}

	segments := elementEdges(vertices)

	type edgeKey struct {
		subregion int
		low, high int
	}
	counts := make(map[edgeKey]int, len(segments))
	keyOf := func(seg entities.BoundarySegment) edgeKey {
		key := edgeKey{low: seg.StartNode, high: seg.EndNode}
		if key.low > key.high {
			key.low, key.high = key.high, key.low
		}
		if bySubregion {
			key.subregion = seg.SubregionID
		}
		return key
	}
	for _, seg := range segments {
		counts[keyOf(seg)]++
	}

	boundary := segments[:0]
	for _, seg := range segments {
		if counts[keyOf(seg)] == 1 {
			boundary = append(boundary, seg)
		}
	}
	return boundary, nil
}

// elementEdges walks each element's vertex cycle and emits its edges.
func elementEdges(vertices []entities.ElementVertex) []entities.BoundarySegment {
	segments := make([]entities.BoundarySegment, 0, len(vertices))
	for start := 0; start < len(vertices); {
		end := start + 1
		for end < len(vertices) && vertices[end].ElementID == vertices[start].ElementID {
			end++
		}
		cycle := vertices[start:end]
		for i, v := range cycle {
			next := cycle[(i+1)%len(cycle)]
			segments = append(segments, entities.BoundarySegment{
				SubregionID: v.SubregionID,
				StartNode:   v.NodeID,
				EndNode:     next.NodeID,
			})
		}
		start = end
	}
	return segments
}

// BoundaryNodes returns the nodes on the outer boundary of the mesh,
// each once, in the order the boundary segments first touch them.
func (m *Model) BoundaryNodes() ([]int, error) {
	segments, err := m.BoundarySegments(false)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(segments))
	nodes := make([]int, 0, len(segments))
	for _, seg := range segments {
		for _, node := range [2]int{seg.StartNode, seg.EndNode} {
			if _, ok := seen[node]; !ok {
				seen[node] = struct{}{}
				nodes = append(nodes, node)
			}
		}
	}
	return nodes, nil
}

// GroundwaterHydrographInfo returns every groundwater hydrograph site
// with its name, coordinates and the stratigraphy column at its
// location.
func (m *Model) GroundwaterHydrographInfo() ([]entities.HydrographLocation, error) {
	ids, err := m.GroundwaterHydrographIDs()
	if err != nil {
		return nil, err
	}
	x, y, err := m.GroundwaterHydrographCoordinates()
	if err != nil {
		return nil, err
	}
	names, err := m.GroundwaterObservationNames()
	if err != nil {
		return nil, err
	}

	locations := make([]entities.HydrographLocation, len(ids))
	for i, id := range ids {
		column, err := m.StratigraphyAtLocation(x[i], y[i], 1.0)
		if err != nil {
			return nil, err
		}
		locations[i] = entities.HydrographLocation{
			ID:            id,
			Name:          names[i],
			X:             x[i],
			Y:             y[i],
			GroundSurface: column.GroundSurface,
			BotElevations: column.BotElevations,
		}
	}
	return locations, nil
}

// DepthToWaterPoint is the depth from ground surface to the water
// table at one node and time.
type DepthToWaterPoint struct {
	Time   time.Time
	NodeID int
	Depth  float64
	X, Y   float64
}

// DepthToWater returns the depth to water in one layer at every node
// for each time step in the window, as ground surface elevation minus
// simulated head. Points are ordered by time, then node.
func (m *Model) DepthToWater(layer int, window gowfm.TimeWindow) ([]DepthToWaterPoint, error) {
	surface, err := m.GroundSurfaceElevation()
	if err != nil {
		return nil, err
	}
	nodes, err := m.NodeInfo()
	if err != nil {
		return nil, err
	}
	times, heads, err := m.GWHeadsForLayer(layer, window, 1.0)
	if err != nil {
		return nil, err
	}

	points := make([]DepthToWaterPoint, 0, len(times)*len(nodes))
	for t, stamp := range times {
		for n, node := range nodes {
			points = append(points, DepthToWaterPoint{
				Time:   stamp,
				NodeID: node.ID,
				Depth:  surface[n] - heads[t][n],
				X:      node.X,
				Y:      node.Y,
			})
		}
	}
	return points, nil
}
