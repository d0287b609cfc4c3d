// Package trace records what rxvar does while it builds and renders
// expressions.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	rxvar render --trace=- --trace-level=detail exprs.toml
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for dumping after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// A level selects the scopes that are emitted:
//
//   - LevelPhase: command and phase boundaries (load, build, render)
//   - LevelDetail: adds one span per manifest entry
//   - LevelDebug: adds node-level events (cache hits, lifted values)
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "render", 0)
//	defer span.End("")
package trace
