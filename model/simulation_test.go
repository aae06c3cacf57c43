package model_test

import (
	"context"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/suite"

	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/enginetest"
	"github.com/SGMOModeling/gowfm/model"
)

type SimulationSuite struct {
	ModelSuite
}

func TestSimulationSuite(t *testing.T) {
	suite.Run(t, new(SimulationSuite))
}

// registerSteps installs the per-timestep procedures of a simulation
// loop and an end-of-simulation flag that trips after n steps.
func (s *SimulationSuite) registerSteps(n int) {
	polls := 0
	s.lib.Register("IW_Model_IsEndOfSimulation", enginetest.Succeed(func(args []unsafe.Pointer) {
		polls++
		if polls > n {
			enginetest.PutInt(0, 1)(args)
		}
	}))
	s.lib.Register("IW_Model_AdvanceTime", enginetest.Succeed())
	s.lib.Register("IW_Model_ReadTSData", enginetest.Succeed())
	s.lib.Register("IW_Model_SimulateForOneTimeStep", enginetest.Succeed())
	s.lib.Register("IW_Model_PrintResults", enginetest.Succeed())
	s.lib.Register("IW_Model_AdvanceState", enginetest.Succeed())
}

func (s *SimulationSuite) TestRunStepsToEnd() {
	s.registerSteps(3)

	s.Require().NoError(s.model.Run(context.Background()))

	s.Equal(3, s.countCalls("IW_Model_AdvanceTime"))
	s.Equal(3, s.countCalls("IW_Model_ReadTSData"))
	s.Equal(3, s.countCalls("IW_Model_SimulateForOneTimeStep"))
	s.Equal(3, s.countCalls("IW_Model_PrintResults"))
	s.Equal(3, s.countCalls("IW_Model_AdvanceState"))
}

func (s *SimulationSuite) TestRunAlreadyAtEnd() {
	s.registerSteps(0)

	s.Require().NoError(s.model.Run(context.Background()))
	s.Equal(0, s.countCalls("IW_Model_AdvanceTime"))
}

func (s *SimulationSuite) TestRunStopsWhenCancelled() {
	s.registerSteps(10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.model.Run(ctx)
	s.Require().ErrorIs(err, context.Canceled)
	s.Equal(0, s.countCalls("IW_Model_SimulateForOneTimeStep"))
}

func (s *SimulationSuite) TestRunPropagatesStepFailure() {
	s.registerSteps(3)
	s.lib.Register("IW_Model_SimulateForOneTimeStep", enginetest.FailWith(-91))

	err := s.model.Run(context.Background())

	callErr, ok := errors.AsCallError(err)
	s.Require().True(ok)
	s.Equal("IW_Model_SimulateForOneTimeStep", callErr.Procedure)
	s.Equal(0, s.countCalls("IW_Model_PrintResults"))
}

func (s *SimulationSuite) TestSimulateForAnInterval() {
	s.registerTimeSpecs()

	var gotInterval string
	s.lib.Register("IW_Model_SimulateForAnInterval", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotInterval = enginetest.ArgString(args, 1, int(enginetest.ArgInt(args, 0)))
	}))

	s.Require().NoError(s.model.SimulateForAnInterval("1mon"))
	s.Equal("1MON", gotInterval)
}

func (s *SimulationSuite) TestSimulateForAnIntervalRejectsFinerInterval() {
	s.registerTimeSpecs()

	err := s.model.SimulateForAnInterval("1MIN")
	var ie *errors.IntervalError
	s.ErrorAs(err, &ie)
}

func (s *SimulationSuite) TestTurnSupplyAdjustment() {
	var gotDiversions, gotPumping int32
	s.lib.Register("IW_Model_TurnSupplyAdjustOnOff", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotDiversions = enginetest.ArgInt(args, 0)
		gotPumping = enginetest.ArgInt(args, 1)
	}))

	s.Require().NoError(s.model.TurnSupplyAdjustment(true, false))
	s.Equal(int32(1), gotDiversions)
	s.Equal(int32(0), gotPumping)
}

func (s *SimulationSuite) TestReadTimeSeriesDataOverwriteDiversions() {
	s.registerCount("IW_Model_GetNDiversions", 3)
	s.lib.Register("IW_Model_GetDiversionIDs", enginetest.Succeed(enginetest.PutInts(1, 10, 20, 30)))

	var gotN int32
	var gotIDs []int32
	var gotValues []float64
	s.lib.Register("IW_Model_ReadTSData_Overwrite", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotN = enginetest.ArgInt(args, 3)
		gotIDs = enginetest.ArgInts(args, 4, int(gotN))
		gotValues = enginetest.ArgFloats(args, 5, int(gotN))
	}))

	err := s.model.ReadTimeSeriesDataOverwrite(model.TimeSeriesOverwrites{
		DiversionIDs: []int{10, 30},
		Diversions:   []float64{1.5, 2.5},
	})
	s.Require().NoError(err)

	s.Equal(int32(2), gotN)
	s.Equal([]int32{10, 30}, gotIDs)
	s.Equal([]float64{1.5, 2.5}, gotValues)
}

func (s *SimulationSuite) TestReadTimeSeriesDataOverwriteRejectsUnknownDiversion() {
	s.registerCount("IW_Model_GetNDiversions", 3)
	s.lib.Register("IW_Model_GetDiversionIDs", enginetest.Succeed(enginetest.PutInts(1, 10, 20, 30)))

	err := s.model.ReadTimeSeriesDataOverwrite(model.TimeSeriesOverwrites{
		DiversionIDs: []int{99},
		Diversions:   []float64{1.5},
	})
	var nf *errors.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal("diversion", nf.Kind)
}

func (s *SimulationSuite) TestReadTimeSeriesDataOverwriteRejectsRaggedLandUse() {
	s.registerCount("IW_Model_GetNAgCrops", 2)
	s.registerCount("IW_Model_GetNSubregions", 2)

	err := s.model.ReadTimeSeriesDataOverwrite(model.TimeSeriesOverwrites{
		LandUseAreas: [][]float64{{1, 2}, {3, 4}},
	})
	var de *errors.DimensionError
	s.Require().ErrorAs(err, &de)
	s.Equal("land use rows", de.What)
}
