// Package multilog is a thread-safe, leveled logging engine with multiple
// sinks, size-based file rotation, and optional asynchronous dispatch.
//
// A Logger routes records to an ordered set of sinks (console, rotating
// file), each with its own level threshold on top of the global minimum.
// In synchronous mode records are dispatched inline under a single mutex;
// in asynchronous mode producers enqueue onto a bounded channel drained by
// a single processor goroutine, which keeps per-sink output in strict
// sequence order regardless of producer interleaving.
//
// Logging calls never fail from the caller's perspective. Sink and rotation
// failures are surfaced through a per-instance error observer supplied at
// construction, never through the logging API.
package multilog
