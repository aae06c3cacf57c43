package gowfm

const (
	// Version of the binding.
	Version = "0.1.0"

	// EngineLibraryName is the file name the engine is distributed
	// under. Callers still supply the full path at open time.
	EngineLibraryName = "IWFM2015_C_x64.dll"
)
