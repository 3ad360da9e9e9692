// Package profile provides optional runtime profiling for the edl
// command.
//
// The package integrates [github.com/pkg/profile] behind the "pprof"
// build tag. When the tag is absent (the default), every operation is a
// no-op with zero runtime overhead.
//
// With the tag enabled, the CLI exposes the supported modes through its
// --pprof-mode flag; use [Modes] to retrieve them programmatically.
// Profile files are written to the configured directory with names
// matching the mode (cpu.pprof, mem.pprof, and so on) and can be
// inspected with:
//
//	go tool pprof ./edl /path/to/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
