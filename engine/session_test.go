package engine_test

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/suite"

	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/engine"
	"github.com/SGMOModeling/gowfm/internal/enginetest"
	"github.com/SGMOModeling/gowfm/log"
)

type SessionSuite struct {
	suite.Suite

	lib     *enginetest.Library
	session *engine.Session
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.lib = enginetest.New()

	session, err := engine.Open("IWFM2015_C_x64.dll",
		engine.WithRuntime(&enginetest.Runtime{Lib: s.lib}),
		engine.WithLogger(slog.New(log.NewHandler(log.WithOutput(io.Discard)))),
	)
	s.Require().NoError(err)
	s.session = session
}

func (s *SessionSuite) countCalls(name string) int {
	n := 0
	for _, call := range s.lib.Calls {
		if call == name {
			n++
		}
	}
	return n
}

func (s *SessionSuite) TestOpenPropagatesLoadError() {
	loadErr := &errors.LoadError{Path: "missing.dll", Err: fmt.Errorf("not found")}

	_, err := engine.Open("missing.dll",
		engine.WithRuntime(&enginetest.Runtime{Err: loadErr}),
	)
	s.Require().ErrorIs(err, loadErr)
}

func (s *SessionSuite) TestOpenWithLogFile() {
	lib := enginetest.New()
	var gotPath string
	lib.Register("IW_SetLogFile", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotPath = enginetest.ArgString(args, 1, int(enginetest.ArgInt(args, 0)))
	}))

	session, err := engine.Open("IWFM2015_C_x64.dll",
		engine.WithRuntime(&enginetest.Runtime{Lib: lib}),
		engine.WithLogger(slog.New(log.NewHandler(log.WithOutput(io.Discard)))),
		engine.WithLogFile("run.log"),
	)
	s.Require().NoError(err)
	defer session.Close()

	s.Equal("run.log", gotPath)
}

func (s *SessionSuite) TestCallStatusBecomesCallError() {
	s.lib.Register("IW_Model_SimulateAll", enginetest.FailWith(-5))
	s.lib.Register("IW_GetLastMessage", enginetest.Succeed(
		enginetest.PutString(1, "convergence failure in the matrix solver"),
	))

	err := s.session.Call("IW_Model_SimulateAll")
	s.Require().Error(err)

	callErr, ok := errors.AsCallError(err)
	s.Require().True(ok)
	s.Equal("IW_Model_SimulateAll", callErr.Procedure)
	s.Equal(-5, callErr.Status)
	s.Equal("convergence failure in the matrix solver", callErr.Message)
}

func (s *SessionSuite) TestCallMissingProcedure() {
	err := s.session.Call("IW_NotARealProcedure")

	var missing *errors.MissingProcedureError
	s.Require().ErrorAs(err, &missing)
	s.Equal("IW_NotARealProcedure", missing.Procedure)
}

func (s *SessionSuite) TestCloseExactlyOnce() {
	s.Require().NoError(s.session.Close())
	s.True(s.lib.Closed())

	s.True(errors.IsClosed(s.session.Close()))
	s.True(errors.IsClosed(s.session.Call("IW_GetVersion")))

	_, err := s.session.LastMessage()
	s.True(errors.IsClosed(err))
}

func (s *SessionSuite) TestLastMessage() {
	s.lib.Register("IW_GetLastMessage", enginetest.Succeed(
		enginetest.PutString(1, "stream node 441 is not part of the model"),
	))

	message, err := s.session.LastMessage()
	s.Require().NoError(err)
	s.Equal("stream node 441 is not part of the model", message)
}

func (s *SessionSuite) TestVersion() {
	s.lib.Register("IW_GetVersion", enginetest.Succeed(
		enginetest.PutString(1, "IWFM Core: 2015.0.1273\nIW_Model: 1.0\nno separator here"),
	))

	versions, err := s.session.Version()
	s.Require().NoError(err)

	s.Equal("2015.0.1273", versions["IWFM Core"])
	s.Equal("1.0", versions["IW_Model"])
	s.Len(versions, 2)
}

func (s *SessionSuite) TestNIntervals() {
	var gotBegin, gotEnd, gotInterval string
	s.lib.Register("IW_GetNIntervals", enginetest.Succeed(
		func(args []unsafe.Pointer) {
			length := int(enginetest.ArgInt(args, 2))
			gotBegin = enginetest.ArgString(args, 0, length)
			gotEnd = enginetest.ArgString(args, 1, length)
			gotInterval = enginetest.ArgString(args, 3, int(enginetest.ArgInt(args, 4)))
		},
		enginetest.PutInt(5, 91),
	))

	n, err := s.session.NIntervals("10/01/1990_24:00", "12/31/1990_24:00", "1day", false)
	s.Require().NoError(err)
	s.Equal(91, n)
	s.Equal("10/01/1990_24:00", gotBegin)
	s.Equal("12/31/1990_24:00", gotEnd)
	s.Equal("1DAY", gotInterval)

	n, err = s.session.NIntervals("10/01/1990_24:00", "12/31/1990_24:00", "1DAY", true)
	s.Require().NoError(err)
	s.Equal(92, n)
}

func (s *SessionSuite) TestNIntervalsRejectsReversedWindow() {
	_, err := s.session.NIntervals("12/31/1990_24:00", "10/01/1990_24:00", "1DAY", true)

	var window *errors.TimeWindowError
	s.Require().ErrorAs(err, &window)
	s.Empty(s.lib.Calls)
}

func (s *SessionSuite) TestNIntervalsRejectsBadInterval() {
	_, err := s.session.NIntervals("10/01/1990_24:00", "12/31/1990_24:00", "2DAY", true)

	var interval *errors.IntervalError
	s.Require().ErrorAs(err, &interval)
	s.Equal("2DAY", interval.Value)
}

func (s *SessionSuite) TestIncrementTime() {
	s.lib.Register("IW_IncrementTime", enginetest.Succeed(
		enginetest.PutString(1, "11/01/1990_24:00"),
	))

	next, err := s.session.IncrementTime("10/01/1990_24:00", "1MON", 1)
	s.Require().NoError(err)
	s.Equal("11/01/1990_24:00", next)
}

func (s *SessionSuite) TestIsTimeGreaterThan() {
	var gotFirst, gotComparison string
	s.lib.Register("IW_IsTimeGreaterThan", enginetest.Succeed(
		func(args []unsafe.Pointer) {
			length := int(enginetest.ArgInt(args, 0))
			gotFirst = enginetest.ArgString(args, 1, length)
			gotComparison = enginetest.ArgString(args, 2, length)
		},
		enginetest.PutInt(3, 1),
	))

	greater, err := s.session.IsTimeGreaterThan("03/28/2001_24:00", "06/30/1989_24:00")
	s.Require().NoError(err)
	s.True(greater)
	s.Equal("03/28/2001_24:00", gotFirst)
	s.Equal("06/30/1989_24:00", gotComparison)

	s.lib.Register("IW_IsTimeGreaterThan", enginetest.Succeed(enginetest.PutInt(3, -1)))

	greater, err = s.session.IsTimeGreaterThan("06/30/1989_24:00", "03/28/2001_24:00")
	s.Require().NoError(err)
	s.False(greater)
}

func (s *SessionSuite) TestSetLogFileDefaultName() {
	var gotPath string
	s.lib.Register("IW_SetLogFile", enginetest.Succeed(func(args []unsafe.Pointer) {
		gotPath = enginetest.ArgString(args, 1, int(enginetest.ArgInt(args, 0)))
	}))

	s.Require().NoError(s.session.SetLogFile(""))
	s.Equal(engine.DefaultLogFileName, gotPath)
}

func (s *SessionSuite) TestCloseLogFile() {
	s.lib.Register("IW_CloseLogFile", enginetest.Succeed())

	s.Require().NoError(s.session.CloseLogFile())
	s.Equal(1, s.countCalls("IW_CloseLogFile"))
}

func (s *SessionSuite) TestLocationTypeIDsCached() {
	s.lib.Register("IW_GetLocationTypeIDs", enginetest.Succeed(func(args []unsafe.Pointer) {
		for i := 0; i < 13; i++ {
			enginetest.PutInt(i, int32(i+1))(args)
		}
	}))

	ids, err := s.session.LocationTypeIDs()
	s.Require().NoError(err)
	s.Equal(1, ids.Node)
	s.Equal(5, ids.Lake)
	s.Equal(8, ids.TileDrain)
	s.Equal(13, ids.StreamNodeBudget)

	_, err = s.session.LocationTypeIDs()
	s.Require().NoError(err)
	s.Equal(1, s.countCalls("IW_GetLocationTypeIDs"))
}

func (s *SessionSuite) TestSupplyTypeIDs() {
	s.lib.Register("IW_GetSupplyTypeID_Diversion", enginetest.Succeed(enginetest.PutInt(0, 10)))
	s.lib.Register("IW_GetSupplyTypeID_Well", enginetest.Succeed(enginetest.PutInt(0, 20)))
	s.lib.Register("IW_GetSupplyTypeID_ElemPump", enginetest.Succeed(enginetest.PutInt(0, 30)))

	ids, err := s.session.SupplyTypeIDs()
	s.Require().NoError(err)
	s.Equal(engine.SupplyTypeIDs{Diversion: 10, Well: 20, ElementPump: 30}, ids)

	_, err = s.session.SupplyTypeIDs()
	s.Require().NoError(err)
	s.Equal(1, s.countCalls("IW_GetSupplyTypeID_Well"))
}

func (s *SessionSuite) TestBudgetTypeIDs() {
	s.lib.Register("IW_GetBudgetTypeIDs", enginetest.Succeed(func(args []unsafe.Pointer) {
		for i := 0; i < 13; i++ {
			enginetest.PutInt(i, int32(100+i))(args)
		}
	}))

	ids, err := s.session.BudgetTypeIDs()
	s.Require().NoError(err)
	s.Equal(100, ids.GW)
	s.Equal(107, ids.UnsaturatedZone)
	s.Equal(112, ids.Lake)
}

func (s *SessionSuite) TestZoneExtentIDs() {
	s.lib.Register("IW_GetZoneExtentIDs", enginetest.Succeed(
		enginetest.PutInt(0, 0),
		enginetest.PutInt(1, 1),
	))

	ids, err := s.session.ZoneExtentIDs()
	s.Require().NoError(err)
	s.Equal(engine.ZoneExtentIDs{Horizontal: 0, Vertical: 1}, ids)
}
