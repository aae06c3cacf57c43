// Package entities provides the plain data types the facades return.
// These are general-purpose values shaped from the engine's flat
// buffers; no engine or marshalling types leak into them.
package entities
