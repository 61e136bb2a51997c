// SPDX-License-Identifier: MIT

// Package network implements the fully-connected sigmoid networks compared by
// pseudoprop. Each synapse holds forward weights W (out×in), a bias, and
// feedback weights B (in×out) that carry error signals to the layer below.
//
// The Mode decides where B comes from:
//
//   - Backprop: B = Wᵀ (exact gradient).
//   - FeedbackAlignment: B fixed and random.
//   - PseudoBackprop: B = pinv(W).
//   - GenPseudoBackprop: B = Γ·pinv(W·Γ), with Γ estimated from the layer's
//     input activities (see package pseudo).
//
// The package never logs; every failure is returned as a wrapped sentinel.
package network
