package zbudget_test

import (
	"io"
	"log/slog"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/suite"

	"github.com/SGMOModeling/gowfm"
	"github.com/SGMOModeling/gowfm/domain/entities"
	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/engine"
	"github.com/SGMOModeling/gowfm/internal/enginetest"
	"github.com/SGMOModeling/gowfm/log"
	"github.com/SGMOModeling/gowfm/zbudget"
)

type ZBudgetSuite struct {
	suite.Suite

	lib     *enginetest.Library
	session *engine.Session
	zb      *zbudget.ZBudget
}

func TestZBudgetSuite(t *testing.T) {
	suite.Run(t, new(ZBudgetSuite))
}

func (s *ZBudgetSuite) SetupTest() {
	s.lib = enginetest.New()
	s.lib.Register("IW_ZBudget_OpenFile", enginetest.Succeed())
	s.lib.Register("IW_ZBudget_CloseFile", enginetest.Succeed())

	session, err := engine.Open("IWFM2015_C_x64.dll",
		engine.WithRuntime(&enginetest.Runtime{Lib: s.lib}),
		engine.WithLogger(slog.New(log.NewHandler(log.WithOutput(io.Discard)))),
	)
	s.Require().NoError(err)
	s.session = session

	zb, err := zbudget.Open(session, "Results/GW_ZBud.hdf")
	s.Require().NoError(err)
	s.zb = zb
}

func (s *ZBudgetSuite) TearDownTest() {
	s.session.Close()
}

func (s *ZBudgetSuite) countCalls(name string) int {
	n := 0
	for _, call := range s.lib.Calls {
		if call == name {
			n++
		}
	}
	return n
}

// registerZones installs two named zones with non-sequential ids.
func (s *ZBudgetSuite) registerZones() {
	s.lib.Register("IW_ZBudget_GetNZones", enginetest.Succeed(enginetest.PutInt(0, 2)))
	s.lib.Register("IW_ZBudget_GetZoneList", enginetest.Succeed(enginetest.PutInts(1, 2, 5)))
	s.lib.Register("IW_ZBudget_GetZoneNames", enginetest.Succeed(
		enginetest.PutString(2, "WestEast"),
		enginetest.PutInts(3, 1, 5),
	))
}

// registerTimeSpecs installs a three-step daily time axis.
func (s *ZBudgetSuite) registerTimeSpecs() {
	stamps := "10/01/1990_24:0010/02/1990_24:0010/03/1990_24:00"
	s.lib.Register("IW_ZBudget_GetNTimeSteps", enginetest.Succeed(enginetest.PutInt(0, 3)))
	s.lib.Register("IW_ZBudget_GetTimeSpecs", enginetest.Succeed(
		enginetest.PutString(0, stamps),
		enginetest.PutString(2, "1DAY"),
		enginetest.PutInts(5, 1, 17, 33),
	))
	s.lib.Register("IW_GetNIntervals", enginetest.Succeed(enginetest.PutInt(5, 2)))
}

// registerHeaders installs a Time column plus two flow columns for
// every zone.
func (s *ZBudgetSuite) registerHeaders() {
	s.lib.Register("IW_ZBudget_GetColumnHeaders_General", enginetest.Succeed(
		enginetest.PutString(5, "TimeStorageInflow"),
		enginetest.PutInt(6, 3),
		enginetest.PutInts(7, 1, 5, 12),
	))
	s.lib.Register("IW_ZBudget_GetColumnHeaders_ForAZone", enginetest.Succeed(
		enginetest.PutString(8, "TimeStorageInflow"),
		enginetest.PutInt(9, 3),
		enginetest.PutInts(10, 1, 5, 12),
		enginetest.PutInts(11, 1, 2, 3),
	))
}

func (s *ZBudgetSuite) TestOpenPassesPath() {
	var gotPath string
	s.lib.Register("IW_ZBudget_OpenFile", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotPath = enginetest.ArgString(args, 0, int(enginetest.ArgInt(args, 1)))
	}))

	zb, err := zbudget.Open(s.session, "Results/RZ_ZBud.hdf")
	s.Require().NoError(err)
	defer zb.Close()

	s.Equal("Results/RZ_ZBud.hdf", gotPath)
}

func (s *ZBudgetSuite) TestCloseIsIdempotent() {
	s.Require().NoError(s.zb.Close())
	s.Require().NoError(s.zb.Close())
	s.Equal(1, s.countCalls("IW_ZBudget_CloseFile"))

	_, err := s.zb.NumZones()
	s.True(errors.IsClosed(err))
}

func (s *ZBudgetSuite) TestGenerateZoneListPassesNamedZoneIDs() {
	s.lib.Register("IW_GetZoneExtentIDs", enginetest.Succeed(
		enginetest.PutInt(0, 0),
		enginetest.PutInt(1, 1),
	))

	var gotExtent, gotNamed int32
	var gotZoneIDs []int32
	var gotNames string
	s.lib.Register("IW_ZBudget_GenerateZoneList", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotExtent = enginetest.ArgInt(args, 0)
		gotNamed = enginetest.ArgInt(args, 5)
		gotZoneIDs = enginetest.ArgInts(args, 6, int(gotNamed))
		gotNames = enginetest.ArgString(args, 8, int(enginetest.ArgInt(args, 7)))
	}))

	err := s.zb.GenerateZoneList(entities.ZoneDefinition{
		Assignments: []entities.ZoneAssignment{
			{Element: 1, Layer: 1, Zone: 5},
			{Element: 2, Layer: 1, Zone: 5},
		},
		Names: map[int]string{5: "West"},
	})
	s.Require().NoError(err)

	s.Equal(int32(0), gotExtent)
	s.Equal(int32(1), gotNamed)
	s.Equal([]int32{5}, gotZoneIDs)
	s.Equal("West", gotNames)
}

func (s *ZBudgetSuite) TestGenerateZoneListRequiresAssignments() {
	err := s.zb.GenerateZoneList(entities.ZoneDefinition{})
	var de *errors.DimensionError
	s.ErrorAs(err, &de)
}

func (s *ZBudgetSuite) TestZones() {
	s.registerZones()

	zones, err := s.zb.Zones()
	s.Require().NoError(err)
	s.Equal([]int{2, 5}, zones.IDs)
	s.Equal([]string{"West", "East"}, zones.Names)
	s.Equal("East", zones.NameOf(5))
}

func (s *ZBudgetSuite) TestZoneIDValidated() {
	s.registerZones()

	_, err := s.zb.TitleLines(3, 1.0, zbudget.DefaultAreaUnit, zbudget.DefaultVolumeUnit)
	var nf *errors.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal("zone", nf.Kind)
}

func (s *ZBudgetSuite) TestColumnHeadersForZone() {
	s.registerZones()
	s.registerHeaders()

	headers, ids, err := s.zb.ColumnHeadersForZone(2, nil,
		zbudget.DefaultAreaUnit, zbudget.DefaultVolumeUnit)
	s.Require().NoError(err)
	s.Equal([]string{"Time", "Storage", "Inflow"}, headers)
	s.Equal([]int{1, 2, 3}, ids)
}

func (s *ZBudgetSuite) TestColumnHeadersForZoneRejectsUnknownColumn() {
	s.registerZones()
	s.registerHeaders()

	_, _, err := s.zb.ColumnHeadersForZone(2, []int{9},
		zbudget.DefaultAreaUnit, zbudget.DefaultVolumeUnit)
	var nf *errors.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal("zone budget column", nf.Kind)
}

func (s *ZBudgetSuite) TestValuesForSomeZonesForAnInterval() {
	s.registerZones()
	s.registerTimeSpecs()
	s.registerHeaders()

	var gotDate, gotInterval string
	s.lib.Register("IW_ZBudget_GetValues_ForSomeZones_ForAnInterval", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotDate = enginetest.ArgString(args, 4, int(enginetest.ArgInt(args, 5)))
		gotInterval = enginetest.ArgString(args, 6, int(enginetest.ArgInt(args, 7)))
		enginetest.PutFloats(10, 33147, 10, 20, 33147, 30, 40)(args)
	}))

	tables, err := s.zb.ValuesForSomeZonesForAnInterval(nil, nil, "", "", 1.0, 1.0)
	s.Require().NoError(err)

	s.Equal("10/01/1990_24:00", gotDate)
	s.Equal("1DAY", gotInterval)
	s.Len(tables, 2)

	west := tables["West"]
	s.Equal([]string{"Storage", "Inflow"}, west.Columns)
	s.Equal([][]float64{{10, 20}}, west.Data)
	s.Equal(gowfm.FromSerial(33147), west.Times[0])

	east := tables["East"]
	s.Equal([][]float64{{30, 40}}, east.Data)
}

func (s *ZBudgetSuite) TestValuesForSomeZonesPadsSelections() {
	s.registerZones()
	s.registerTimeSpecs()
	s.registerHeaders()

	var gotWidth int32
	var gotCols []int32
	s.lib.Register("IW_ZBudget_GetValues_ForSomeZones_ForAnInterval", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotWidth = enginetest.ArgInt(args, 2)
		gotCols = enginetest.ArgInts(args, 3, 2*int(gotWidth))
		enginetest.PutFloats(10, 33147, 10, 0, 33147, 30, 40)(args)
	}))

	_, err := s.zb.ValuesForSomeZonesForAnInterval([]int{2, 5}, [][]int{{2}, {3, 2}}, "", "", 1.0, 1.0)
	s.Require().NoError(err)

	// Each selection leads with the Time column and the short one is
	// zero-padded to the widest.
	s.Equal(int32(3), gotWidth)
	s.Equal([]int32{1, 2, 0, 1, 2, 3}, gotCols)
}

func (s *ZBudgetSuite) TestValuesForSomeZonesRejectsMismatchedSelections() {
	s.registerZones()

	_, err := s.zb.ValuesForSomeZonesForAnInterval([]int{2, 5}, [][]int{{2}}, "", "", 1.0, 1.0)
	var de *errors.DimensionError
	s.ErrorAs(err, &de)
}

func (s *ZBudgetSuite) TestValuesForAZone() {
	s.registerZones()
	s.registerTimeSpecs()
	s.registerHeaders()

	var gotZone int32
	var gotCols []int32
	s.lib.Register("IW_ZBudget_GetValues_ForAZone", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotZone = enginetest.ArgInt(args, 0)
		n := int(enginetest.ArgInt(args, 1))
		gotCols = enginetest.ArgInts(args, 2, n)
		enginetest.PutMatrix(11, [][]float64{
			{33147, 10, 100},
			{33148, 20, 200},
			{33149, 30, 300},
		})(args)
		enginetest.PutInt(12, 3)(args)
	}))

	table, err := s.zb.ValuesForAZone(5, nil, gowfm.TimeWindow{}, "", 1.0, 1.0)
	s.Require().NoError(err)

	s.Equal(int32(5), gotZone)
	s.Equal([]int32{1, 2, 3}, gotCols)
	s.Equal([]string{"Storage", "Inflow"}, table.Columns)
	s.Require().NoError(table.Validate())
	s.Equal(3, table.NumRows())
	s.Equal([]float64{20, 200}, table.Row(1))
	s.Equal(gowfm.FromSerial(33149), table.Times[2])
}

func (s *ZBudgetSuite) TestValuesForAZoneTruncatesToEngineCount() {
	s.registerZones()
	s.registerTimeSpecs()
	s.registerHeaders()

	s.lib.Register("IW_ZBudget_GetValues_ForAZone", enginetest.Succeed(func(args []unsafe.Pointer) {
		enginetest.PutMatrix(11, [][]float64{
			{33147, 10, 100},
			{33148, 20, 200},
			{0, 0, 0},
		})(args)
		enginetest.PutInt(12, 2)(args)
	}))

	table, err := s.zb.ValuesForAZone(2, nil, gowfm.TimeWindow{}, "", 1.0, 1.0)
	s.Require().NoError(err)
	s.Equal(2, table.NumRows())
}

func (s *ZBudgetSuite) TestValuesForAZoneRejectsFinerInterval() {
	s.registerZones()
	s.registerTimeSpecs()
	s.registerHeaders()

	_, err := s.zb.ValuesForAZone(2, nil, gowfm.TimeWindow{}, "1MIN", 1.0, 1.0)
	var ue *errors.UnsupportedError
	s.ErrorAs(err, &ue)
}
