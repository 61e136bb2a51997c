// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/pseudoprop/matrix"
	"github.com/katalvlaran/pseudoprop/pseudo"
	"github.com/katalvlaran/pseudoprop/rng"
)

// Synapse connects layer l (in units) to layer l+1 (out units).
//   - Forward: out×in weights W.
//   - Backward: in×out feedback weights B used to route errors downwards.
//   - Bias: out entries.
type Synapse struct {
	Forward  *matrix.Dense
	Backward *matrix.Dense
	Bias     []float64
}

// In returns the input width of the synapse.
func (s *Synapse) In() int { return s.Forward.Cols() }

// Out returns the output width of the synapse.
func (s *Synapse) Out() int { return s.Forward.Rows() }

// Network is a fully-connected sigmoid network whose error signals travel
// through per-layer feedback matrices chosen by Mode.
// A Network is not safe for concurrent mutation.
type Network struct {
	mode   Mode
	sizes  []int
	layers []*Synapse
	engine *pseudo.Engine
}

// New builds a network with len(sizes)-1 synapses.
//
// Implementation:
//   - Forward weights and biases are drawn uniformly from ±1/√in.
//   - FeedbackAlignment draws a fixed B from the same range on its own stream.
//   - Backprop starts with B = Wᵀ; both pseudo modes start with B = pinv(W).
//
// Errors:
//   - ErrInvalidSizes, ErrUnknownMode, wrapped pseudo errors from pinv.
func New(mode Mode, sizes []int, opts ...Option) (*Network, error) {
	if len(sizes) < 2 {
		return nil, networkErrorf(opNew, ErrInvalidSizes)
	}
	for _, s := range sizes {
		if s <= 0 {
			return nil, networkErrorf(opNew, ErrInvalidSizes)
		}
	}
	if mode < Backprop || mode > GenPseudoBackprop {
		return nil, networkErrorf(opNew, fmt.Errorf("%d: %w", int(mode), ErrUnknownMode))
	}
	o := gatherOptions(opts...)

	n := &Network{
		mode:   mode,
		sizes:  append([]int(nil), sizes...),
		layers: make([]*Synapse, len(sizes)-1),
		engine: o.engine,
	}
	fwd := rng.Derive(o.seed, rng.StreamForward)
	fb := rng.Derive(o.seed, rng.StreamFeedback)
	for l := range n.layers {
		in, out := sizes[l], sizes[l+1]
		bound := 1 / math.Sqrt(float64(in))
		w, err := uniformDense(fwd, out, in, bound)
		if err != nil {
			return nil, networkErrorf(opNew, err)
		}
		bias := make([]float64, out)
		for i := range bias {
			bias[i] = (fwd.Float64()*2 - 1) * bound
		}
		syn := &Synapse{Forward: w, Bias: bias}
		if mode == FeedbackAlignment {
			if syn.Backward, err = uniformDense(fb, in, out, bound); err != nil {
				return nil, networkErrorf(opNew, err)
			}
		}
		n.layers[l] = syn
	}
	if mode == Backprop || mode.UsesPseudoinverse() {
		if err := n.refreshBackward(nil); err != nil {
			return nil, networkErrorf(opNew, err)
		}
	}

	return n, nil
}

// uniformDense draws an r×c matrix from U(-bound, bound).
func uniformDense(r *rand.Rand, rows, cols int, bound float64) (*matrix.Dense, error) {
	vals := make([]float64, rows*cols)
	for i := range vals {
		vals[i] = (r.Float64()*2 - 1) * bound
	}

	return matrix.NewDenseFrom(rows, cols, vals)
}

// Mode returns the update rule.
func (n *Network) Mode() Mode { return n.mode }

// Sizes returns a copy of the layer widths.
func (n *Network) Sizes() []int { return append([]int(nil), n.sizes...) }

// NumLayers returns the number of synapses (len(Sizes())-1).
func (n *Network) NumLayers() int { return len(n.layers) }

// Layer returns synapse l. The returned value is shared with the network.
func (n *Network) Layer(l int) (*Synapse, error) {
	if l < 0 || l >= len(n.layers) {
		return nil, fmt.Errorf("layer %d: %w", l, ErrLayerIndex)
	}

	return n.layers[l], nil
}

// Engine returns the pseudo-backprop engine used by UpdateBackward.
func (n *Network) Engine() *pseudo.Engine { return n.engine }
