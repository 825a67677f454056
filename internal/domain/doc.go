// Package domain implements the grading and composite-index aggregation
// engine: the pure computational core that turns raw per-record measurements
// into categorical grades and weighted composite scores per grouping bucket.
//
// # Conventions
//
// Grade scales partition the whole real line: interval lower bounds are
// exclusive and upper bounds inclusive, the first interval extends to -Inf
// and the last to +Inf, so every finite value maps to exactly one label.
//
// Missing numeric input is NaN (or an absent field). The engine never
// coerces it silently; classification takes an explicit [MissingPolicy] and
// grouped aggregation documents per-operator inclusion rules on [Aggregate].
//
// All operations are pure functions over an immutable in-memory batch: no
// I/O, no shared state, no goroutines. Errors from the taxonomy
// ([InsufficientDataError], [InvalidWeightError], [MissingGradeError]) are
// raised to the caller immediately; recovery decisions belong to callers.
package domain
