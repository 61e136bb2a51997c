// SPDX-License-Identifier: MIT

// Package pseudo - package-level facades over a default Engine.
// Each facade forwards to the Engine method of the same name.
package pseudo

import "github.com/katalvlaran/pseudoprop/matrix"

// Gram estimates Γ² = Cov(batch) + mean·meanᵀ with the default engine.
func Gram(batch matrix.Matrix) (*matrix.Dense, error) { return defaultEngine.Gram(batch) }

// SqrtSym returns the SVD square root of a symmetric PSD matrix with the default engine.
func SqrtSym(gram matrix.Matrix) (*matrix.Dense, error) { return defaultEngine.SqrtSym(gram) }

// Pinv returns the Moore–Penrose pseudoinverse with the automatic cut-off.
func Pinv(a matrix.Matrix) (*matrix.Dense, error) { return defaultEngine.Pinv(a) }

// Gamma returns SqrtSym(Gram(batch)) with the default engine.
func Gamma(batch matrix.Matrix) (*matrix.Dense, error) { return defaultEngine.Gamma(batch) }

// Backward computes B = Γ·pinv(W·Γ) with the default engine.
func Backward(forward, batch matrix.Matrix) (*matrix.Dense, error) {
	return defaultEngine.Backward(forward, batch)
}

// BackwardWithGamma computes B = Γ·pinv(W·Γ) and returns Γ alongside.
func BackwardWithGamma(forward, batch matrix.Matrix) (*matrix.Dense, *matrix.Dense, error) {
	return defaultEngine.BackwardWithGamma(forward, batch)
}

// MismatchEnergy returns ½·‖Γ − B·W·Γ‖_F.
func MismatchEnergy(gamma, backward, forward matrix.Matrix) (float64, error) {
	return defaultEngine.MismatchEnergy(gamma, backward, forward)
}

// Loss returns the mean squared reconstruction error of samples (columns) under B·W.
func Loss(backward, forward, samples matrix.Matrix) (float64, error) {
	return defaultEngine.Loss(backward, forward, samples)
}
