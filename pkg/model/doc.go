// Package model implements configuration-driven hydration of typed instance
// graphs from loosely-typed data trees (maps, slices and scalars).
//
// A Type carries a Configuration that maps property names to a Rule:
//
//   - Passthrough / Scalar: the raw value is copied as-is
//   - One(T): a new instance of T is constructed from the raw value
//   - Many(T): the value becomes a *List; each element is constructed as T
//     (or passed through when T is nil)
//
// Registering a Type with a Registry validates that the type-to-type
// configuration graph is acyclic and attaches the hydration operations.
// Instances (*Model) can then be filled repeatedly: values that implement
// Hydratable/Resettable and *List values keep their identity across fills,
// every other property receives a freshly constructed value.
//
// Each fill runs the same pipeline: before-fill hooks, reset of configured
// properties missing from the input, population, default fill of configured
// properties that are still unset, after-fill hooks, dependent object
// refresh, after-fill callbacks and finally the last-update timestamp.
//
// Execution is synchronous. Nested instances are filled as direct sub-calls
// and an error from any hook, callback, dependent updater or constructor
// aborts the remaining steps of the fill that raised it.
package model
