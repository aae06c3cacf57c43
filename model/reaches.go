package model

import (
	"unsafe"

	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// NumStreamReaches returns the number of stream reaches in the model.
func (m *Model) NumStreamReaches() (int, error) {
	return m.cached(&m.dims.streamReaches, "IW_Model_GetNReaches")
}

// StreamReachIDs returns the user-specified stream reach identification
// numbers.
func (m *Model) StreamReachIDs() ([]int, error) {
	n, err := m.NumStreamReaches()
	if err != nil {
		return nil, err
	}
	return m.idList("IW_Model_GetReachIDs", n)
}

// NumNodesInReach returns the number of stream nodes in one reach.
// Reaches are addressed by their 1-based position in the reach list,
// which is not necessarily the reach ID.
func (m *Model) NumNodesInReach(reach int) (int, error) {
	r := int32(reach)
	return m.int("IW_Model_GetReachNNodes", unsafe.Pointer(&r))
}

// ReachGroundwaterNodes returns the groundwater node underlying each
// stream node in one reach.
func (m *Model) ReachGroundwaterNodes(reach int) ([]int, error) {
	return m.reachNodes("IW_Model_GetReachGWNodes", reach)
}

// ReachStreamNodes returns the stream nodes making up one reach.
func (m *Model) ReachStreamNodes(reach int) ([]int, error) {
	return m.reachNodes("IW_Model_GetReachStrmNodes", reach)
}

func (m *Model) reachNodes(proc string, reach int) ([]int, error) {
	n, err := m.NumNodesInReach(reach)
	if err != nil {
		return nil, err
	}

	r := int32(reach)
	n32 := int32(n)
	nodes := make([]int32, n)
	err = m.call(proc,
		unsafe.Pointer(&r),
		unsafe.Pointer(&n32),
		fortran.Ptr(nodes),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Ints(nodes), nil
}

// ReachesForStreamNodes returns the reach holding each of the given
// stream nodes.
func (m *Model) ReachesForStreamNodes(streamNodes []int) ([]int, error) {
	n := int32(len(streamNodes))
	nodes := fortran.Int32s(streamNodes)
	reaches := make([]int32, len(streamNodes))
	err := m.call("IW_Model_GetReaches_ForStrmNodes",
		unsafe.Pointer(&n),
		fortran.Ptr(nodes),
		fortran.Ptr(reaches),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Ints(reaches), nil
}

// ReachUpstreamNodes returns the most upstream stream node of every
// reach.
func (m *Model) ReachUpstreamNodes() ([]int, error) {
	return m.perReachInts("IW_Model_GetReachUpstrmNodes")
}

// ReachDownstreamNodes returns the most downstream stream node of every
// reach.
func (m *Model) ReachDownstreamNodes() ([]int, error) {
	return m.perReachInts("IW_Model_GetReachDownstrmNodes")
}

// ReachOutflowDestinations returns the destination each reach flows
// into. The meaning of each value depends on the matching destination
// type.
func (m *Model) ReachOutflowDestinations() ([]int, error) {
	return m.perReachInts("IW_Model_GetReachOutflowDest")
}

// ReachOutflowDestinationTypes returns the destination type of every
// reach outflow. Compare against FlowDestinationTypeIDs of the
// session.
func (m *Model) ReachOutflowDestinationTypes() ([]int, error) {
	return m.perReachInts("IW_Model_GetReachOutflowDestTypes")
}

func (m *Model) perReachInts(proc string) ([]int, error) {
	n, err := m.NumStreamReaches()
	if err != nil {
		return nil, err
	}
	return m.idList(proc, n)
}

// NumReachesUpstream returns the number of reaches immediately upstream
// of one reach. A reach below a confluence reports one per tributary;
// a headwater reach reports zero.
func (m *Model) NumReachesUpstream(reach int) (int, error) {
	r := int32(reach)
	return m.int("IW_Model_GetReachNUpstrmReaches", unsafe.Pointer(&r))
}

// ReachesUpstream returns the reaches immediately upstream of one
// reach.
func (m *Model) ReachesUpstream(reach int) ([]int, error) {
	n, err := m.NumReachesUpstream(reach)
	if err != nil {
		return nil, err
	}

	r := int32(reach)
	n32 := int32(n)
	reaches := make([]int32, n)
	err = m.call("IW_Model_GetReachUpstrmReaches",
		unsafe.Pointer(&r),
		unsafe.Pointer(&n32),
		fortran.Ptr(reaches),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Ints(reaches), nil
}
