// Package winnative adapts the Windows dynamic loader to
// ports.NativeRuntime. The engine is distributed as a Windows DLL, so
// this is the one package that touches golang.org/x/sys/windows; on
// every other platform it compiles to a stub whose Open reports the
// platform as unsupported.
package winnative
