package model

import (
	"unsafe"

	"github.com/SGMOModeling/gowfm/domain/entities"
	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// NumStreamNodes returns the number of stream nodes in the model.
func (m *Model) NumStreamNodes() (int, error) {
	return m.cached(&m.dims.streamNodes, "IW_Model_GetNStrmNodes")
}

// StreamNodeIDs returns the user-specified stream node identification
// numbers.
func (m *Model) StreamNodeIDs() ([]int, error) {
	n, err := m.NumStreamNodes()
	if err != nil {
		return nil, err
	}
	return m.idList("IW_Model_GetStrmNodeIDs", n)
}

// validStreamNode checks id against the model's stream node list.
func (m *Model) validStreamNode(id int) error {
	ids, err := m.StreamNodeIDs()
	if err != nil {
		return err
	}
	if !contains(ids, id) {
		return &errors.NotFoundError{ID: id, Kind: "stream node"}
	}
	return nil
}

// NumStreamNodesUpstream returns the number of stream nodes directly
// upstream of one stream node.
func (m *Model) NumStreamNodesUpstream(streamNodeID int) (int, error) {
	if err := m.validStreamNode(streamNodeID); err != nil {
		return 0, err
	}
	id := int32(streamNodeID)
	return m.int("IW_Model_GetStrmNUpstrmNodes", unsafe.Pointer(&id))
}

// StreamNodesUpstream returns the stream nodes directly upstream of one
// stream node.
func (m *Model) StreamNodesUpstream(streamNodeID int) ([]int, error) {
	n, err := m.NumStreamNodesUpstream(streamNodeID)
	if err != nil {
		return nil, err
	}

	id := int32(streamNodeID)
	n32 := int32(n)
	nodes := make([]int32, n)
	err = m.call("IW_Model_GetStrmUpstrmNodes",
		unsafe.Pointer(&id),
		unsafe.Pointer(&n32),
		fortran.Ptr(nodes),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Ints(nodes), nil
}

// StreamBottomElevations returns the bottom elevation of every stream
// node.
func (m *Model) StreamBottomElevations() ([]float64, error) {
	n, err := m.NumStreamNodes()
	if err != nil {
		return nil, err
	}

	elevs := make([]float64, n)
	n32 := int32(n)
	err = m.call("IW_Model_GetStrmBottomElevs",
		unsafe.Pointer(&n32),
		fortran.Ptr(elevs),
	)
	if err != nil {
		return nil, err
	}
	return elevs, nil
}

// NumRatingTablePoints returns the number of points in one stream
// node's stage-flow rating table.
func (m *Model) NumRatingTablePoints(streamNodeID int) (int, error) {
	if err := m.validStreamNode(streamNodeID); err != nil {
		return 0, err
	}
	id := int32(streamNodeID)
	return m.int("IW_Model_GetNStrmRatingTablePoints", unsafe.Pointer(&id))
}

// StreamRatingTable returns one stream node's stage-flow rating table.
func (m *Model) StreamRatingTable(streamNodeID int) (entities.RatingTable, error) {
	n, err := m.NumRatingTablePoints(streamNodeID)
	if err != nil {
		return entities.RatingTable{}, err
	}

	id := int32(streamNodeID)
	n32 := int32(n)
	stages := make([]float64, n)
	flows := make([]float64, n)
	err = m.call("IW_Model_GetStrmRatingTable",
		unsafe.Pointer(&id),
		unsafe.Pointer(&n32),
		fortran.Ptr(stages),
		fortran.Ptr(flows),
	)
	if err != nil {
		return entities.RatingTable{}, err
	}
	return entities.RatingTable{Stages: stages, Flows: flows}, nil
}

// NumStreamInflows returns the number of stream boundary inflows
// specified as time series input.
func (m *Model) NumStreamInflows() (int, error) {
	return m.int("IW_Model_GetStrmNInflows")
}

// StreamInflowNodes returns the stream nodes receiving boundary
// inflows.
func (m *Model) StreamInflowNodes() ([]int, error) {
	n, err := m.NumStreamInflows()
	if err != nil {
		return nil, err
	}
	return m.idList("IW_Model_GetStrmInflowNodes", n)
}

// StreamInflowIDs returns the identification numbers of the stream
// boundary inflows.
func (m *Model) StreamInflowIDs() ([]int, error) {
	n, err := m.NumStreamInflows()
	if err != nil {
		return nil, err
	}
	return m.idList("IW_Model_GetStrmInflowIDs", n)
}

// StreamInflowsAtLocations returns the current-timestep boundary inflow
// at the selected inflow locations. A nil selection reads every inflow.
func (m *Model) StreamInflowsAtLocations(inflowIDs []int, factor float64) ([]float64, error) {
	all, err := m.StreamInflowIDs()
	if err != nil {
		return nil, err
	}
	selected, err := allOrValidated(inflowIDs, all, "stream inflow")
	if err != nil {
		return nil, err
	}

	n := int32(len(selected))
	locations := fortran.Int32s(selected)
	inflows := make([]float64, len(selected))
	err = m.call("IW_Model_GetStrmInflows_AtSomeInflows",
		unsafe.Pointer(&n),
		fortran.Ptr(locations),
		unsafe.Pointer(&factor),
		fortran.Ptr(inflows),
	)
	if err != nil {
		return nil, err
	}
	return inflows, nil
}

// StreamFlowAtLocation returns the current-timestep flow at one stream
// node.
func (m *Model) StreamFlowAtLocation(streamNodeID int, factor float64) (float64, error) {
	if err := m.validStreamNode(streamNodeID); err != nil {
		return 0, err
	}

	id := int32(streamNodeID)
	var flow float64
	err := m.call("IW_Model_GetStrmFlow",
		unsafe.Pointer(&id),
		unsafe.Pointer(&factor),
		unsafe.Pointer(&flow),
	)
	if err != nil {
		return 0, err
	}
	return flow, nil
}

// StreamFlows returns the current-timestep flow at every stream node.
func (m *Model) StreamFlows(factor float64) ([]float64, error) {
	return m.streamNodeValues("IW_Model_GetStrmFlows", factor)
}

// StreamStages returns the current-timestep stage at every stream node.
func (m *Model) StreamStages(factor float64) ([]float64, error) {
	return m.streamNodeValues("IW_Model_GetStrmStages", factor)
}

// StreamTributaryInflows returns the current-timestep small-watershed
// and tributary inflow at every stream node.
func (m *Model) StreamTributaryInflows(factor float64) ([]float64, error) {
	return m.streamNodeValues("IW_Model_GetStrmTributaryInflows", factor)
}

// StreamRainfallRunoff returns the current-timestep rainfall runoff
// into every stream node.
func (m *Model) StreamRainfallRunoff(factor float64) ([]float64, error) {
	return m.streamNodeValues("IW_Model_GetStrmRainfallRunoff", factor)
}

// StreamReturnFlows returns the current-timestep return flow into every
// stream node.
func (m *Model) StreamReturnFlows(factor float64) ([]float64, error) {
	return m.streamNodeValues("IW_Model_GetStrmReturnFlows", factor)
}

// StreamTileDrainFlows returns the current-timestep tile drain flow
// into every stream node.
func (m *Model) StreamTileDrainFlows(factor float64) ([]float64, error) {
	return m.streamNodeValues("IW_Model_GetStrmTileDrains", factor)
}

// StreamRiparianET returns the current-timestep riparian
// evapotranspiration out of every stream node.
func (m *Model) StreamRiparianET(factor float64) ([]float64, error) {
	return m.streamNodeValues("IW_Model_GetStrmRiparianETs", factor)
}

// StreamGainFromGroundwater returns the current-timestep gain from
// groundwater at every stream node. Losing nodes come back negative.
func (m *Model) StreamGainFromGroundwater(factor float64) ([]float64, error) {
	return m.streamNodeValues("IW_Model_GetStrmGainFromGW", factor)
}

// StreamGainFromLakes returns the current-timestep gain from lakes at
// every stream node.
func (m *Model) StreamGainFromLakes(factor float64) ([]float64, error) {
	return m.streamNodeValues("IW_Model_GetStrmGainFromLakes", factor)
}

// NetBypassInflows returns the current-timestep net bypass inflow at
// every stream node.
func (m *Model) NetBypassInflows(factor float64) ([]float64, error) {
	return m.streamNodeValues("IW_Model_GetStrmNetBypassInflows", factor)
}

// streamNodeValues fetches a per-stream-node value array for the
// current timestep.
func (m *Model) streamNodeValues(proc string, factor float64) ([]float64, error) {
	n, err := m.NumStreamNodes()
	if err != nil {
		return nil, err
	}
	return m.scaledValues(proc, n, factor)
}

// ActualStreamDiversions returns the current-timestep delivered amount
// at the selected diversions, which can fall short of the required
// amount when the stream runs dry. Diversions are selected by their
// 1-based position in the diversion list; nil selects all of them.
func (m *Model) ActualStreamDiversions(diversions []int, factor float64) ([]float64, error) {
	selected, err := m.diversionSelection(diversions)
	if err != nil {
		return nil, err
	}

	n := int32(len(selected))
	list := fortran.Int32s(selected)
	amounts := make([]float64, len(selected))
	err = m.call("IW_Model_GetStrmActualDiversions_AtSomeDiversions",
		unsafe.Pointer(&n),
		fortran.Ptr(list),
		unsafe.Pointer(&factor),
		fortran.Ptr(amounts),
	)
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// StreamDiversionLocations returns the stream node each selected
// diversion exports from. Diversions are selected by their 1-based
// position in the diversion list; nil selects all of them.
func (m *Model) StreamDiversionLocations(diversions []int) ([]int, error) {
	selected, err := m.diversionSelection(diversions)
	if err != nil {
		return nil, err
	}

	n := int32(len(selected))
	list := fortran.Int32s(selected)
	nodes := make([]int32, len(selected))
	err = m.call("IW_Model_GetStrmDiversionsExportNodes",
		unsafe.Pointer(&n),
		fortran.Ptr(list),
		fortran.Ptr(nodes),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Ints(nodes), nil
}

// diversionSelection resolves a diversion position selection: nil means
// every diversion, 1..N.
func (m *Model) diversionSelection(diversions []int) ([]int, error) {
	n, err := m.NumDiversions()
	if err != nil {
		return nil, err
	}
	if diversions == nil {
		all := make([]int, n)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}
	for _, d := range diversions {
		if d < 1 || d > n {
			return nil, &errors.NotFoundError{ID: d, Kind: "diversion"}
		}
	}
	return diversions, nil
}

// IsStreamUpstreamNode reports whether one stream node lies upstream of
// another within the stream network.
func (m *Model) IsStreamUpstreamNode(node, comparedTo int) (bool, error) {
	a := int32(node)
	b := int32(comparedTo)
	var result int32
	err := m.call("IW_Model_IsStrmUpstreamNode",
		unsafe.Pointer(&a),
		unsafe.Pointer(&b),
		unsafe.Pointer(&result),
	)
	if err != nil {
		return false, err
	}
	return result == 1, nil
}
