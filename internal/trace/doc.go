// Package trace records compiler phase spans for diagnosing slow or stuck
// compilations.
//
// Tracing is off unless the CLI gets --trace:
//
//	umlts compile --trace=- --trace-level=phase models/
//
// Tracers: Nop (disabled), StreamTracer (write as events happen),
// RingTracer (keep the last N events for a dump on failure) and
// MultiTracer (fan-out).
//
// Scopes go from coarse to fine: driver → pass → unit (one source file)
// → node. The level picks how deep events are emitted.
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
