// Package profile provides optional runtime profiling for mergeconfig.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// no-op.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap memory profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace profiling
//
// # Usage
//
//	mergeconfig --pprof-mode=cpu --pprof-dir=/tmp/profiles big.conf
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// The default output directory is the "pprof" subdirectory of the user
// cache directory, e.g. $XDG_CACHE_HOME/mergeconfig/pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
