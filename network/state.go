// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/katalvlaran/pseudoprop/matrix"
)

// LayerState is the serializable form of one Synapse.
type LayerState struct {
	Forward  [][]float64 `json:"forward"`
	Backward [][]float64 `json:"backward"`
	Bias     []float64   `json:"bias"`
}

// State is a full, self-describing snapshot of a network's parameters.
type State struct {
	Mode   Mode         `json:"mode"`
	Sizes  []int        `json:"sizes"`
	Layers []LayerState `json:"layers"`
}

// State returns a deep copy of the network's parameters.
func (n *Network) State() State {
	st := State{
		Mode:   n.mode,
		Sizes:  n.Sizes(),
		Layers: make([]LayerState, len(n.layers)),
	}
	for l, syn := range n.layers {
		st.Layers[l] = LayerState{
			Forward:  syn.Forward.ToRows(),
			Backward: syn.Backward.ToRows(),
			Bias:     append([]float64(nil), syn.Bias...),
		}
	}

	return st
}

// Load replaces every parameter with the snapshot's values.
// The snapshot must carry the same mode and layer sizes; on any error the
// network is left unchanged.
func (n *Network) Load(st State) error {
	if st.Mode != n.mode {
		return networkErrorf(opLoad, fmt.Errorf("mode %s, want %s: %w", st.Mode, n.mode, ErrStateMismatch))
	}
	if len(st.Sizes) != len(n.sizes) || len(st.Layers) != len(n.layers) {
		return networkErrorf(opLoad, ErrStateMismatch)
	}
	for i, s := range st.Sizes {
		if s != n.sizes[i] {
			return networkErrorf(opLoad, ErrStateMismatch)
		}
	}

	next := make([]*Synapse, len(n.layers))
	for l, ls := range st.Layers {
		in, out := n.sizes[l], n.sizes[l+1]
		w, err := matrix.FromRows(ls.Forward)
		if err != nil {
			return networkErrorf(opLoad, fmt.Errorf("layer %d forward: %w", l, err))
		}
		b, err := matrix.FromRows(ls.Backward)
		if err != nil {
			return networkErrorf(opLoad, fmt.Errorf("layer %d backward: %w", l, err))
		}
		if w.Rows() != out || w.Cols() != in || b.Rows() != in || b.Cols() != out || len(ls.Bias) != out {
			return networkErrorf(opLoad, fmt.Errorf("layer %d: %w", l, ErrStateMismatch))
		}
		next[l] = &Synapse{Forward: w, Backward: b, Bias: append([]float64(nil), ls.Bias...)}
	}
	n.layers = next

	return nil
}
