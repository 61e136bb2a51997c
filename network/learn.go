// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/katalvlaran/pseudoprop/matrix"
)

// Gradients holds per-synapse parameter gradients, averaged over a batch.
type Gradients struct {
	Forward []*matrix.Dense // out×in, same shapes as Synapse.Forward
	Bias    [][]float64
	Loss    float64 // summed squared error over the batch
}

// Gradients computes the MSE gradients of a batch with the network's feedback path.
//
// Implementation:
//   - Stage 1: forward pass keeping every activation a_0..a_L.
//   - Stage 2: δ_L = 2(a_L − y)⊙a_L⊙(1 − a_L).
//   - Stage 3: for l = L−1..0: ∇W_l = δ_{l+1}ᵀ·a_l / N, ∇b_l = Σ δ_{l+1} / N,
//     δ_l = (δ_{l+1}·B_lᵀ)⊙a_l⊙(1 − a_l).
//
// Behavior highlights:
//   - Errors travel through B, not Wᵀ: for Backprop the two coincide, for the
//     other modes B is the feedback matrix of the mode.
//
// Inputs:
//   - x: N×Sizes()[0] inputs; target: N×Sizes()[L] targets (one-hot for classification).
//
// Errors:
//   - ErrInputShape, matrix.ErrNilMatrix, wrapped kernel errors.
func (n *Network) Gradients(x, target matrix.Matrix) (*Gradients, error) {
	if err := matrix.ValidateNotNil(target); err != nil {
		return nil, networkErrorf(opGradients, err)
	}
	L := len(n.layers)
	acts, err := n.forwardAll(x, L)
	if err != nil {
		return nil, networkErrorf(opGradients, err)
	}
	out := acts[L]
	if target.Rows() != out.Rows() || target.Cols() != out.Cols() {
		return nil, networkErrorf(opGradients, fmt.Errorf("target: %w", ErrInputShape))
	}

	diff, err := matrix.Sub(out, target)
	if err != nil {
		return nil, networkErrorf(opGradients, err)
	}
	g := &Gradients{
		Forward: make([]*matrix.Dense, L),
		Bias:    make([][]float64, L),
	}
	diff.Do(func(_, _ int, v float64) bool { g.Loss += v * v; return true })

	delta, err := matrix.Scale(diff, 2)
	if err != nil {
		return nil, networkErrorf(opGradients, err)
	}
	if delta, err = sigmoidPrime(delta, out); err != nil {
		return nil, networkErrorf(opGradients, err)
	}

	invN := 1 / float64(out.Rows())
	for l := L - 1; l >= 0; l-- {
		dt, err := matrix.Transpose(delta)
		if err != nil {
			return nil, networkErrorf(opGradients, err)
		}
		gw, err := matrix.Mul(dt, acts[l])
		if err != nil {
			return nil, networkErrorf(opGradients, err)
		}
		if g.Forward[l], err = matrix.Scale(gw, invN); err != nil {
			return nil, networkErrorf(opGradients, err)
		}
		gb, err := matrix.ColSums(delta)
		if err != nil {
			return nil, networkErrorf(opGradients, err)
		}
		for i := range gb {
			gb[i] *= invN
		}
		g.Bias[l] = gb

		if l == 0 {
			break
		}
		bt, err := matrix.Transpose(n.layers[l].Backward)
		if err != nil {
			return nil, networkErrorf(opGradients, err)
		}
		back, err := matrix.Mul(delta, bt)
		if err != nil {
			return nil, networkErrorf(opGradients, err)
		}
		if delta, err = sigmoidPrime(back, acts[l]); err != nil {
			return nil, networkErrorf(opGradients, err)
		}
	}

	return g, nil
}

// sigmoidPrime returns e⊙a⊙(1−a) for sigmoid activations a.
func sigmoidPrime(e, a *matrix.Dense) (*matrix.Dense, error) {
	out := e.Clone().(*matrix.Dense)
	err := out.Apply(func(i, j int, v float64) float64 {
		h, _ := a.At(i, j)
		return v * h * (1 - h)
	})

	return out, err
}

// Apply performs one SGD step W -= lr·∇W, b -= lr·∇b on every synapse.
// Under Backprop the feedback weights follow as B = Wᵀ.
// Every layer is checked and stepped before any is installed, so a gradient
// that does not fit leaves the network unchanged.
func (n *Network) Apply(g *Gradients, lr float64) error {
	if g == nil || len(g.Forward) != len(n.layers) || len(g.Bias) != len(n.layers) {
		return networkErrorf(opApply, ErrStateMismatch)
	}
	next := make([]*matrix.Dense, len(n.layers))
	for l, syn := range n.layers {
		if len(g.Bias[l]) != len(syn.Bias) {
			return networkErrorf(opApply, fmt.Errorf("layer %d bias: %w", l, ErrStateMismatch))
		}
		step, err := matrix.Scale(g.Forward[l], -lr)
		if err != nil {
			return networkErrorf(opApply, fmt.Errorf("layer %d: %w", l, err))
		}
		if next[l], err = matrix.Add(syn.Forward, step); err != nil {
			return networkErrorf(opApply, fmt.Errorf("layer %d: %w", l, err))
		}
	}
	for l, syn := range n.layers {
		syn.Forward = next[l]
		for i := range syn.Bias {
			syn.Bias[i] -= lr * g.Bias[l][i]
		}
	}
	if n.mode == Backprop {
		if err := n.refreshBackward(nil); err != nil {
			return networkErrorf(opApply, err)
		}
	}

	return nil
}

// UpdateBackward recomputes the feedback weights of the pseudo modes:
// PseudoBackprop sets B_l = pinv(W_l); GenPseudoBackprop sets
// B_l = Γ_l·pinv(W_l·Γ_l) with Γ_l estimated from the activities of x entering
// layer l. Other modes are left unchanged.
func (n *Network) UpdateBackward(x matrix.Matrix) error {
	if !n.mode.UsesPseudoinverse() {
		return nil
	}
	if err := n.refreshBackward(x); err != nil {
		return networkErrorf(opUpdateBackward, err)
	}

	return nil
}

// refreshBackward recomputes B for every layer from the current W.
// x is only consulted by GenPseudoBackprop; nil falls back to pinv(W).
// All layers are computed before any is installed.
func (n *Network) refreshBackward(x matrix.Matrix) error {
	var acts []*matrix.Dense
	if n.mode == GenPseudoBackprop && x != nil {
		var err error
		if acts, err = n.Activities(x); err != nil {
			return err
		}
	}

	next := make([]*matrix.Dense, len(n.layers))
	for l, syn := range n.layers {
		var (
			b   *matrix.Dense
			err error
		)
		switch {
		case n.mode == Backprop:
			b, err = matrix.Transpose(syn.Forward)
		case acts != nil:
			b, err = n.engine.Backward(syn.Forward, acts[l])
		default:
			b, err = n.engine.Pinv(syn.Forward)
		}
		if err != nil {
			return fmt.Errorf("layer %d: %w", l, err)
		}
		next[l] = b
	}
	for l, syn := range n.layers {
		syn.Backward = next[l]
	}

	return nil
}
