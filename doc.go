// Package gowfm binds the IWFM (Integrated Water Flow Model) engine
// library to Go. The engine ships as a Windows DLL exporting a Fortran
// procedure table; this module loads it at runtime, marshals arguments
// across the boundary, and shapes the flat results into tables and
// series.
//
// The root package holds the values shared by every facade: the IWFM
// calendar (timestamps, time intervals, serial dates) and the time
// window type. Engine access starts in the engine package:
//
//	session, err := engine.Open(`C:\IWFM\IWFM2015_C_x64.dll`)
//	if err != nil { ... }
//	defer session.Close()
//
//	m, err := model.New(session, "Preprocessor\\PreProcessor_MAIN.IN", "Simulation\\Simulation_MAIN.IN")
//	if err != nil { ... }
//	defer m.Close()
//
//	heads, err := m.GWHeadsAll(false, 1.0)
//
// All calls are synchronous and blocking; sessions and facades are not
// safe for concurrent use.
package gowfm
