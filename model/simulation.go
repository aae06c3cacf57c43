package model

import (
	"context"
	"unsafe"

	"github.com/SGMOModeling/gowfm"
	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// NumAgCrops returns the number of agricultural crops simulated by the
// root zone component.
func (m *Model) NumAgCrops() (int, error) {
	return m.int("IW_Model_GetNAgCrops")
}

// SimulateForOneTimeStep computes one simulation time step. The model
// must be open for simulation, with time advanced and time series data
// read for the step.
func (m *Model) SimulateForOneTimeStep() error {
	return m.call("IW_Model_SimulateForOneTimeStep")
}

// SimulateForAnInterval computes simulation time steps covering one
// interval, which must be the simulation time step or coarser.
func (m *Model) SimulateForAnInterval(interval string) error {
	canon, err := gowfm.CanonicalInterval(interval)
	if err != nil {
		return err
	}
	specs, err := m.TimeSpecs()
	if err != nil {
		return err
	}
	ok, err := gowfm.IntervalGE(canon, specs.Interval)
	if err != nil {
		return err
	}
	if !ok {
		return &errors.IntervalError{Value: interval}
	}

	buf := fortran.CString(canon)
	length := int32(len(buf))
	return m.call("IW_Model_SimulateForAnInterval",
		unsafe.Pointer(&length),
		unsafe.Pointer(&buf[0]),
	)
}

// SimulateAll computes the entire simulation period in one call.
func (m *Model) SimulateAll() error {
	return m.call("IW_Model_SimulateAll")
}

// AdvanceTime moves the simulation clock forward one time step.
func (m *Model) AdvanceTime() error {
	return m.call("IW_Model_AdvanceTime")
}

// ReadTimeSeriesData reads every time series input for the current
// time step.
func (m *Model) ReadTimeSeriesData() error {
	return m.call("IW_Model_ReadTSData")
}

// TimeSeriesOverwrites carries replacement values for the current time
// step's time series input. Nil fields leave the file values in place;
// a diversion or inflow overwrite needs both its IDs and its values.
type TimeSeriesOverwrites struct {
	// LandUseAreas holds one row per land use, one column per
	// subregion. Rows run non-ponded crops first, then ponded crops,
	// then urban, native and riparian.
	LandUseAreas [][]float64

	DiversionIDs []int
	Diversions   []float64

	StreamInflowIDs []int
	StreamInflows   []float64
}

// ReadTimeSeriesDataOverwrite reads the time series input for the
// current time step, replacing the listed values with the ones given.
func (m *Model) ReadTimeSeriesDataOverwrite(ow TimeSeriesOverwrites) error {
	var (
		nLandUses, nSubregions int32
		landUse                []float64
	)
	if ow.LandUseAreas != nil {
		nCrops, err := m.NumAgCrops()
		if err != nil {
			return err
		}
		n, err := m.NumSubregions()
		if err != nil {
			return err
		}
		nLandUses = int32(nCrops + 3)
		nSubregions = int32(n)

		if len(ow.LandUseAreas) != int(nLandUses) {
			return &errors.DimensionError{What: "land use rows", Want: int(nLandUses), Got: len(ow.LandUseAreas)}
		}
		landUse = make([]float64, 0, int(nLandUses)*n)
		for _, row := range ow.LandUseAreas {
			if len(row) != n {
				return &errors.DimensionError{What: "land use columns", Want: n, Got: len(row)}
			}
			landUse = append(landUse, row...)
		}
	}

	var (
		nDiversions  int32
		diversionIDs []int32
		diversions   []float64
	)
	if ow.DiversionIDs != nil && ow.Diversions != nil {
		if len(ow.Diversions) != len(ow.DiversionIDs) {
			return &errors.DimensionError{What: "diversion overwrites", Want: len(ow.DiversionIDs), Got: len(ow.Diversions)}
		}
		modelIDs, err := m.DiversionIDs()
		if err != nil {
			return err
		}
		if _, err := allOrValidated(ow.DiversionIDs, modelIDs, "diversion"); err != nil {
			return err
		}
		nDiversions = int32(len(ow.DiversionIDs))
		diversionIDs = fortran.Int32s(ow.DiversionIDs)
		diversions = ow.Diversions
	}

	var (
		nInflows  int32
		inflowIDs []int32
		inflows   []float64
	)
	if ow.StreamInflowIDs != nil && ow.StreamInflows != nil {
		if len(ow.StreamInflows) != len(ow.StreamInflowIDs) {
			return &errors.DimensionError{What: "stream inflow overwrites", Want: len(ow.StreamInflowIDs), Got: len(ow.StreamInflows)}
		}
		modelIDs, err := m.StreamInflowIDs()
		if err != nil {
			return err
		}
		if _, err := allOrValidated(ow.StreamInflowIDs, modelIDs, "stream inflow"); err != nil {
			return err
		}
		nInflows = int32(len(ow.StreamInflowIDs))
		inflowIDs = fortran.Int32s(ow.StreamInflowIDs)
		inflows = ow.StreamInflows
	}

	return m.call("IW_Model_ReadTSData_Overwrite",
		unsafe.Pointer(&nLandUses),
		unsafe.Pointer(&nSubregions),
		fortran.Ptr(landUse),
		unsafe.Pointer(&nDiversions),
		fortran.Ptr(diversionIDs),
		fortran.Ptr(diversions),
		unsafe.Pointer(&nInflows),
		fortran.Ptr(inflowIDs),
		fortran.Ptr(inflows),
	)
}

// PrintResults writes the simulation results accumulated so far to the
// model's output files.
func (m *Model) PrintResults() error {
	return m.call("IW_Model_PrintResults")
}

// AdvanceState makes the current time step's solution the previous
// one, readying the hydrologic state for the next step.
func (m *Model) AdvanceState() error {
	return m.call("IW_Model_AdvanceState")
}

// IsEndOfSimulation reports whether the simulation clock has reached
// the end of the simulation period.
func (m *Model) IsEndOfSimulation() (bool, error) {
	var result int32
	if err := m.call("IW_Model_IsEndOfSimulation", unsafe.Pointer(&result)); err != nil {
		return false, err
	}
	return result == 1, nil
}

// TurnSupplyAdjustment switches the automatic adjustment of diversions
// and pumping to meet water demands on or off for the rest of the run.
func (m *Model) TurnSupplyAdjustment(diversions, pumping bool) error {
	divFlag := flag(diversions)
	pumpFlag := flag(pumping)
	return m.call("IW_Model_TurnSupplyAdjustOnOff",
		unsafe.Pointer(&divFlag),
		unsafe.Pointer(&pumpFlag),
	)
}

// RestorePumpingToReadValues puts back the pumping rates read from the
// input files, undoing any supply adjustment. Useful when a time step
// must be re-simulated.
func (m *Model) RestorePumpingToReadValues() error {
	return m.call("IW_Model_RestorePumpingToReadValues")
}

// SetSupplyAdjustmentMaxIterations caps the iterations of automatic
// supply adjustment.
func (m *Model) SetSupplyAdjustmentMaxIterations(iterations int) error {
	n := int32(iterations)
	return m.call("IW_Model_SetSupplyAdjustmentMaxIters", unsafe.Pointer(&n))
}

// SetSupplyAdjustmentTolerance sets the supply adjustment convergence
// tolerance as a fraction of water demand, for example 0.01 for one
// percent.
func (m *Model) SetSupplyAdjustmentTolerance(tolerance float64) error {
	return m.call("IW_Model_SetSupplyAdjustmentTolerance", unsafe.Pointer(&tolerance))
}

// Run steps the simulation from the current clock to the end of the
// simulation period: each step advances time, reads its time series
// data, solves, prints results and advances the hydrologic state. The
// context is checked between steps so a run can be cancelled cleanly.
func (m *Model) Run(ctx context.Context) error {
	m.log.Info("model: simulation run starting")

	steps := 0
	for {
		done, err := m.IsEndOfSimulation()
		if err != nil {
			return err
		}
		if done {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := m.AdvanceTime(); err != nil {
			return err
		}
		if err := m.ReadTimeSeriesData(); err != nil {
			return err
		}
		if err := m.SimulateForOneTimeStep(); err != nil {
			return err
		}
		if err := m.PrintResults(); err != nil {
			return err
		}
		if err := m.AdvanceState(); err != nil {
			return err
		}
		steps++
	}

	m.log.Info("model: simulation run finished", "steps", steps)
	return nil
}
