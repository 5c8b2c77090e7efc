// Package estimator computes the system memory needed to run a large
// language model locally. It is structured into small files by concern:
//
//   - types.go: Input and Result records.
//   - kvbits.go: the KV cache precision variant and its resolution rules.
//   - estimator.go: Estimate and the pure sizing helpers.
//
// Estimate never fails. Missing or invalid input is replaced by a default
// and a human-readable warning is appended to Result.Warnings, in the order
// the conditions were detected. The package holds no state and is safe for
// concurrent use.
package estimator
