// SPDX-License-Identifier: MIT

// Package matrix provides a small, strict dense-matrix toolkit.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with error-returning accessors and
//     an optional finite-only numeric policy.
//   - Canonical kernels (Add, Sub, Mul, Transpose, Scale, Hadamard, MatVec,
//     Outer, FrobeniusNorm) built on gonum/floats row operations.
//   - Column statistics (ColumnMeans, CenterColumns, Covariance).
//   - Validators shared by every kernel and by dependent packages.
//   - ToGonum/FromGonum adapters for factorizations delegated to gonum.
//
// Every failure is reported through a sentinel error (errors.go) wrapped with
// the operation name, so callers match with errors.Is.
package matrix
