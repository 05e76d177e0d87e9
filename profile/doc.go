// Package profile provides optional runtime profiling for the lamb command.
//
// Profiling is built on [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof -o lamb .
//
// Without the tag, [Modes] is empty and [Config.Start] returns a no-op
// stopper, so callers never need their own build constraints.
//
// # Modes
//
//   - allocs, heap, mem: memory profiles
//   - block, mutex: synchronization profiles
//   - clock, cpu: wall-clock and CPU profiles
//   - goroutine, thread: goroutine and thread creation profiles
//   - trace: execution trace
//
// Profiles are written to [Config] Path, which the command defaults to
// $XDG_CACHE_HOME/lamb/pprof. Analyze them with go tool pprof:
//
//	go tool pprof -http=: ~/.cache/lamb/pprof/cpu.pprof
//
// With the tag, importing this package also registers the
// [net/http/pprof] handlers on the default mux.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
