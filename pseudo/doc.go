// SPDX-License-Identifier: MIT

// Package pseudo computes data-specific feedback weights for pseudo-backprop.
//
// Given a forward weight matrix W (out×in) and a batch of layer inputs
// (one sample per row), the package derives:
//
//   - Γ², the raw second moment Cov + mean·meanᵀ (Gram),
//   - Γ, its symmetric square root through an SVD (SqrtSym, Gamma),
//   - B = Γ·pinv(W·Γ), the data-weighted pseudoinverse (Backward),
//
// and scores candidate feedback matrices with MismatchEnergy (½‖Γ − B·W·Γ‖_F)
// and Loss (mean squared reconstruction error under B·W).
//
// All computations are synchronous, pure and deterministic. An Engine carries
// the numeric policy; the package-level functions use a default Engine.
// Failures are reported as ErrInsufficientData, ErrNumericalInstability or
// ErrShapeMismatch, wrapped with the operation name.
package pseudo
