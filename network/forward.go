// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pseudoprop/matrix"
)

// Forward runs x (N×in, one sample per row) through every layer and returns
// the N×out output activations.
func (n *Network) Forward(x matrix.Matrix) (*matrix.Dense, error) {
	acts, err := n.forwardAll(x, len(n.layers))
	if err != nil {
		return nil, networkErrorf(opForward, err)
	}

	return acts[len(acts)-1], nil
}

// ForwardToHidden returns the activations entering synapse layer, i.e. the
// output of the first layer synapses. ForwardToHidden(x, 0) is a copy of x and
// ForwardToHidden(x, NumLayers()) equals Forward(x).
func (n *Network) ForwardToHidden(x matrix.Matrix, layer int) (*matrix.Dense, error) {
	if layer < 0 || layer > len(n.layers) {
		return nil, networkErrorf(opForwardHidden, fmt.Errorf("layer %d: %w", layer, ErrLayerIndex))
	}
	acts, err := n.forwardAll(x, layer)
	if err != nil {
		return nil, networkErrorf(opForwardHidden, err)
	}

	return acts[layer], nil
}

// Activities returns the input activations of every synapse (NumLayers entries,
// each N×Sizes()[l]). They are the batches the data-weighted pseudoinverse
// is estimated from.
func (n *Network) Activities(x matrix.Matrix) ([]*matrix.Dense, error) {
	acts, err := n.forwardAll(x, len(n.layers))
	if err != nil {
		return nil, networkErrorf(opForwardHidden, err)
	}

	return acts[:len(n.layers)], nil
}

// forwardAll returns a_0 = x, a_1, ..., a_upto.
func (n *Network) forwardAll(x matrix.Matrix, upto int) ([]*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, err
	}
	if x.Cols() != n.sizes[0] {
		return nil, fmt.Errorf("got %d inputs, want %d: %w", x.Cols(), n.sizes[0], ErrInputShape)
	}
	a0, err := matrix.AsDense(x)
	if err != nil {
		return nil, err
	}
	acts := make([]*matrix.Dense, 0, upto+1)
	acts = append(acts, a0.Clone().(*matrix.Dense))
	for l := 0; l < upto; l++ {
		next, err := n.layers[l].activate(acts[l])
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", l, err)
		}
		acts = append(acts, next)
	}

	return acts, nil
}

// activate computes sigmoid(x·Wᵀ + bias) for a batch x (N×in).
func (s *Synapse) activate(x *matrix.Dense) (*matrix.Dense, error) {
	wt, err := matrix.Transpose(s.Forward)
	if err != nil {
		return nil, err
	}
	z, err := matrix.Mul(x, wt)
	if err != nil {
		return nil, err
	}
	if err = z.Apply(func(_, j int, v float64) float64 { return sigmoid(v + s.Bias[j]) }); err != nil {
		return nil, err
	}

	return z, nil
}

// sigmoid is the logistic function 1/(1+e^-v).
func sigmoid(v float64) float64 { return 1 / (1 + math.Exp(-v)) }
