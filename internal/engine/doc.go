// Package engine implements the lockstep sequential step-execution engine.
//
// The engine is the heart of lockstep - it drives an ordered chain of named
// steps against shared data and assembles a per-step execution trace.
//
// ARCHITECTURE:
//
// Single-Pass Sequential Loop:
// The runner executes all steps in one goroutine, in declaration order. This
// ensures:
// - Predictable step evaluation order
// - A reproducible trace for identical inputs
// - Simple reasoning about data flow
//
// Execution Flow:
// 1. Steps assembled into a Spec (or passed directly to Run)
// 2. Run() splits the sequence into head and tail
// 3. The head receives the initial Data through the fault barrier
// 4. Each tail step receives the previous State's Data
// 5. One Result per declared step is appended to the trace
//
// Data flows strictly forward: initial Data -> Step1 -> State1 data ->
// Step2 -> State2 data -> ... -> ordered trace of Results. Each State is an
// immutable value handed to the next step, never retained and mutated.
//
// CRITICAL PATTERNS:
//
// Skip Cascade:
// Once any step fails, every remaining step is recorded as skipped rather
// than executed. The trace always has exactly one Result per declared step,
// so reporting tools can rely on a fixed-length, complete report.
//
// Fault Barrier:
// A step callable that returns an error or panics never aborts the run. The
// barrier converts the fault into a failure State naming the fault's type,
// and the trace records it like any declared failure. The only error that
// escapes Run is the empty-sequence precondition violation.
package engine
