package model_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/suite"

	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/enginetest"
)

type StreamSuite struct {
	ModelSuite
}

func TestStreamSuite(t *testing.T) {
	suite.Run(t, new(StreamSuite))
}

// registerStreamNodes installs a three-node stream network.
func (s *StreamSuite) registerStreamNodes() {
	s.registerCount("IW_Model_GetNStrmNodes", 3)
	s.lib.Register("IW_Model_GetStrmNodeIDs", enginetest.Succeed(enginetest.PutInts(1, 11, 12, 13)))
}

func (s *StreamSuite) TestStreamNodesUpstream() {
	s.registerStreamNodes()
	s.lib.Register("IW_Model_GetStrmNUpstrmNodes", enginetest.Succeed(enginetest.PutInt(1, 2)))

	var gotNode int32
	s.lib.Register("IW_Model_GetStrmUpstrmNodes", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotNode = enginetest.ArgInt(args, 0)
		enginetest.PutInts(2, 11, 12)(args)
	}))

	nodes, err := s.model.StreamNodesUpstream(13)
	s.Require().NoError(err)
	s.Equal(int32(13), gotNode)
	s.Equal([]int{11, 12}, nodes)
}

func (s *StreamSuite) TestStreamNodeIDValidated() {
	s.registerStreamNodes()

	_, err := s.model.StreamFlowAtLocation(99, 1.0)
	var nf *errors.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal("stream node", nf.Kind)
}

func (s *StreamSuite) TestNetBypassInflows() {
	s.registerStreamNodes()

	var gotN int32
	var gotFactor float64
	s.lib.Register("IW_Model_GetStrmNetBypassInflows", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotN = enginetest.ArgInt(args, 0)
		gotFactor = enginetest.ArgFloat(args, 1)
		enginetest.PutFloats(2, 5.5, 0, -2.5)(args)
	}))

	inflows, err := s.model.NetBypassInflows(2.0)
	s.Require().NoError(err)
	s.Equal(int32(3), gotN)
	s.Equal(2.0, gotFactor)
	s.Equal([]float64{5.5, 0, -2.5}, inflows)
}

func (s *StreamSuite) TestStreamInflowsAtLocations() {
	s.registerCount("IW_Model_GetStrmNInflows", 2)
	s.lib.Register("IW_Model_GetStrmInflowIDs", enginetest.Succeed(enginetest.PutInts(1, 5, 7)))

	var gotLocations []int32
	s.lib.Register("IW_Model_GetStrmInflows_AtSomeInflows", enginetest.Succeed(func(args []unsafe.Pointer) {
		n := int(enginetest.ArgInt(args, 0))
		gotLocations = enginetest.ArgInts(args, 1, n)
		enginetest.PutFloats(3, 100, 200)(args)
	}))

	inflows, err := s.model.StreamInflowsAtLocations(nil, 1.0)
	s.Require().NoError(err)
	s.Equal([]int32{5, 7}, gotLocations)
	s.Equal([]float64{100, 200}, inflows)
}

func (s *StreamSuite) TestStreamInflowsRejectsUnknownID() {
	s.registerCount("IW_Model_GetStrmNInflows", 2)
	s.lib.Register("IW_Model_GetStrmInflowIDs", enginetest.Succeed(enginetest.PutInts(1, 5, 7)))

	_, err := s.model.StreamInflowsAtLocations([]int{6}, 1.0)
	var nf *errors.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal("stream inflow", nf.Kind)
}

func (s *StreamSuite) TestActualStreamDiversionsExpandsNilSelection() {
	s.registerCount("IW_Model_GetNDiversions", 3)

	var gotList []int32
	s.lib.Register("IW_Model_GetStrmActualDiversions_AtSomeDiversions", enginetest.Succeed(func(args []unsafe.Pointer) {
		n := int(enginetest.ArgInt(args, 0))
		gotList = enginetest.ArgInts(args, 1, n)
		enginetest.PutFloats(3, 10, 20, 30)(args)
	}))

	amounts, err := s.model.ActualStreamDiversions(nil, 1.0)
	s.Require().NoError(err)
	s.Equal([]int32{1, 2, 3}, gotList)
	s.Equal([]float64{10, 20, 30}, amounts)
}

func (s *StreamSuite) TestActualStreamDiversionsRejectsBadPosition() {
	s.registerCount("IW_Model_GetNDiversions", 3)

	_, err := s.model.ActualStreamDiversions([]int{4}, 1.0)
	var nf *errors.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal("diversion", nf.Kind)
}

func (s *StreamSuite) TestStreamRatingTable() {
	s.registerStreamNodes()
	s.lib.Register("IW_Model_GetNStrmRatingTablePoints", enginetest.Succeed(enginetest.PutInt(1, 2)))
	s.lib.Register("IW_Model_GetStrmRatingTable", enginetest.Succeed(
		enginetest.PutFloats(2, 0.0, 1.0),
		enginetest.PutFloats(3, 0.0, 50.0),
	))

	table, err := s.model.StreamRatingTable(11)
	s.Require().NoError(err)
	s.Equal([]float64{0.0, 1.0}, table.Stages)
	s.Equal([]float64{0.0, 50.0}, table.Flows)
}
