package model_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/suite"

	"github.com/SGMOModeling/gowfm/internal/enginetest"
)

type LakeSuite struct {
	ModelSuite
}

func TestLakeSuite(t *testing.T) {
	suite.Run(t, new(LakeSuite))
}

func (s *LakeSuite) TestLakeIDsWithoutLakes() {
	s.registerCount("IW_Model_GetNLakes", 0)

	ids, err := s.model.LakeIDs()
	s.Require().NoError(err)
	s.Nil(ids)
	s.Equal(0, s.countCalls("IW_Model_GetLakeIDs"))
}

func (s *LakeSuite) TestElementsInLake() {
	s.registerCount("IW_Model_GetNLakes", 1)
	s.lib.Register("IW_Model_GetNElementsInLake", enginetest.Succeed(enginetest.PutInt(1, 3)))

	var gotID int32
	s.lib.Register("IW_Model_GetElementsInLake", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotID = enginetest.ArgInt(args, 0)
		enginetest.PutInts(2, 21, 22, 23)(args)
	}))

	elements, err := s.model.ElementsInLake(1)
	s.Require().NoError(err)
	s.Equal(int32(1), gotID)
	s.Equal([]int{21, 22, 23}, elements)
}

func (s *LakeSuite) TestDiversionIDs() {
	s.registerCount("IW_Model_GetNDiversions", 2)
	s.lib.Register("IW_Model_GetDiversionIDs", enginetest.Succeed(enginetest.PutInts(1, 10, 20)))

	ids, err := s.model.DiversionIDs()
	s.Require().NoError(err)
	s.Equal([]int{10, 20}, ids)
}

func (s *LakeSuite) TestTileDrainNodes() {
	s.registerCount("IW_Model_GetNTileDrainNodes", 2)
	s.lib.Register("IW_Model_GetTileDrainIDs", enginetest.Succeed(enginetest.PutInts(1, 1, 2)))
	s.lib.Register("IW_Model_GetTileDrainNodes", enginetest.Succeed(enginetest.PutInts(1, 55, 66)))

	ids, err := s.model.TileDrainIDs()
	s.Require().NoError(err)
	s.Equal([]int{1, 2}, ids)

	nodes, err := s.model.TileDrainNodes()
	s.Require().NoError(err)
	s.Equal([]int{55, 66}, nodes)
}

func (s *LakeSuite) TestTileDrainNodesWithoutDrains() {
	s.registerCount("IW_Model_GetNTileDrainNodes", 0)

	nodes, err := s.model.TileDrainNodes()
	s.Require().NoError(err)
	s.Nil(nodes)
}
