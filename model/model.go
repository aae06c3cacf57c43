// Package model exposes a loaded IWFM model application: its mesh,
// stratigraphy, stream network, lakes, water supplies, hydrograph
// output and simulation controls.
//
// A Model wraps the engine's single model object. Open one with New
// against an engine session, read or simulate through it, and Close it
// exactly once to release the engine-side state. Models opened for
// inquiry (the default) answer data queries; models opened with
// ForSimulation drive time stepping as well.
package model

import (
	"log/slog"
	"unsafe"

	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/engine"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// Model is an open handle to the engine's model object.
type Model struct {
	s      *engine.Session
	log    *slog.Logger
	closed bool

	simulationFile string

	dims dimCache
}

// dimCache holds model dimensions that cannot change over the life of
// a model object. Each is fetched from the engine at most once.
type dimCache struct {
	nodes         *int
	elements      *int
	subregions    *int
	layers        *int
	timeSteps     *int
	streamNodes   *int
	streamReaches *int
	diversions    *int
	lakes         *int
	tileDrains    *int
}

// New instantiates the engine's model object from a preprocessor and a
// simulation main input file. The model must be closed exactly once
// when no longer needed.
func New(s *engine.Session, preprocessorFile, simulationFile string, opts ...Option) (*Model, error) {
	cfg := defaultModelConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	prepBuf := fortran.CString(preprocessorFile)
	lenPrep := int32(len(prepBuf))
	simBuf := fortran.CString(simulationFile)
	lenSim := int32(len(simBuf))
	routed := flag(cfg.routedStreams)
	inquiry := flag(cfg.forInquiry)

	err := s.Call("IW_Model_New",
		unsafe.Pointer(&lenPrep),
		unsafe.Pointer(&prepBuf[0]),
		unsafe.Pointer(&lenSim),
		unsafe.Pointer(&simBuf[0]),
		unsafe.Pointer(&routed),
		unsafe.Pointer(&inquiry),
	)
	if err != nil {
		return nil, err
	}

	m := &Model{s: s, log: s.Logger(), simulationFile: simulationFile}
	m.log.Info("model: instantiated",
		"preprocessor", preprocessorFile,
		"simulation", simulationFile,
		"inquiry", cfg.forInquiry,
	)
	return m, nil
}

// Close terminates the model object, closing its files and releasing
// engine memory. The session stays open.
func (m *Model) Close() error {
	if m.closed {
		return &errors.ClosedError{Resource: "model"}
	}
	m.closed = true
	if err := m.s.Call("IW_Model_Kill"); err != nil {
		return err
	}
	m.log.Info("model: closed")
	return nil
}

// call forwards to the session after checking the model is still open.
func (m *Model) call(name string, args ...unsafe.Pointer) error {
	if m.closed {
		return &errors.ClosedError{Resource: "model"}
	}
	return m.s.Call(name, args...)
}

// int calls a counting procedure: input arguments, one int32 output,
// then status.
func (m *Model) int(name string, args ...unsafe.Pointer) (int, error) {
	if m.closed {
		return 0, &errors.ClosedError{Resource: "model"}
	}
	return m.s.Int(name, args...)
}

// cached returns the dimension in slot, fetching it through proc on
// first use.
func (m *Model) cached(slot **int, proc string) (int, error) {
	if *slot != nil {
		return **slot, nil
	}
	n, err := m.int(proc)
	if err != nil {
		return 0, err
	}
	*slot = &n
	return n, nil
}

// flag converts a bool to the engine's int32 flag convention.
func flag(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// idList calls a procedure laid out as (count, ids[], status) and
// returns the filled id array.
func (m *Model) idList(proc string, n int) ([]int, error) {
	ids := make([]int32, n)
	n32 := int32(n)
	if err := m.call(proc, unsafe.Pointer(&n32), fortran.Ptr(ids)); err != nil {
		return nil, err
	}
	return fortran.Ints(ids), nil
}

// scaledValues calls a procedure laid out as (count, factor, values[],
// status), the shape of the engine's current-timestep flow getters.
func (m *Model) scaledValues(proc string, n int, factor float64) ([]float64, error) {
	values := make([]float64, n)
	n32 := int32(n)
	err := m.call(proc,
		unsafe.Pointer(&n32),
		unsafe.Pointer(&factor),
		fortran.Ptr(values),
	)
	if err != nil {
		return nil, err
	}
	return values, nil
}

// IsInstantiated reports whether the engine holds a live model object.
func (m *Model) IsInstantiated() (bool, error) {
	var result int32
	if err := m.call("IW_Model_IsModelInstantiated", unsafe.Pointer(&result)); err != nil {
		return false, err
	}
	return result == 1, nil
}

// SetPreprocessorPath points the engine at the directory holding the
// preprocessor main input file.
func (m *Model) SetPreprocessorPath(path string) error {
	return m.setPath("IW_Model_SetPreProcessorPath", path)
}

// SetSimulationPath points the engine at the directory holding the
// simulation main input file.
func (m *Model) SetSimulationPath(path string) error {
	return m.setPath("IW_Model_SetSimulationPath", path)
}

func (m *Model) setPath(proc, path string) error {
	buf := fortran.CString(path)
	length := int32(len(buf))
	return m.call(proc, unsafe.Pointer(&length), unsafe.Pointer(&buf[0]))
}

// DeleteInquiryDataFile removes the IW_ModelData_ForInquiry.bin cache
// the engine writes next to the simulation file. With the cache gone,
// the next inquiry-mode New rebuilds the full model object.
func (m *Model) DeleteInquiryDataFile() error {
	buf := fortran.CString(m.simulationFile)
	length := int32(len(buf))
	return m.call("IW_Model_DeleteInquiryDataFile", unsafe.Pointer(&length), unsafe.Pointer(&buf[0]))
}

// allOrValidated resolves a location selection: nil selects every id in
// ids, anything else must be a subset of ids.
func allOrValidated(selection []int, ids []int, kind string) ([]int, error) {
	if selection == nil {
		return ids, nil
	}
	for _, id := range selection {
		if !contains(ids, id) {
			return nil, &errors.NotFoundError{ID: id, Kind: kind}
		}
	}
	return selection, nil
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
