// SPDX-License-Identifier: MIT

package evaluate

import (
	"fmt"

	"github.com/katalvlaran/pseudoprop/matrix"
	"github.com/katalvlaran/pseudoprop/network"
	"github.com/katalvlaran/pseudoprop/pseudo"
)

// AuditResult holds the per-layer diagnostics of one network state.
type AuditResult struct {
	Mismatch      []float64 // ½‖Γ_l − B_l·W_l·Γ_l‖_F
	ForwardNorms  []float64 // ‖W_l‖_F
	BackwardNorms []float64 // ‖B_l‖_F
}

// Audit measures, for every layer l, the mismatch energy of the current
// feedback weights against Γ_l estimated from the activities of x entering
// layer l, together with the Frobenius norms of W_l and B_l.
//
// A nil engine uses the network's own engine.
//
// Errors:
//   - ErrNilInput, wrapped network and pseudo errors (pseudo.ErrInsufficientData
//     for fewer than two rows in x).
func Audit(engine *pseudo.Engine, net *network.Network, x matrix.Matrix) (AuditResult, error) {
	if net == nil || x == nil {
		return AuditResult{}, evaluateErrorf(opAudit, ErrNilInput)
	}
	if engine == nil {
		engine = net.Engine()
	}
	acts, err := net.Activities(x)
	if err != nil {
		return AuditResult{}, evaluateErrorf(opAudit, err)
	}

	L := net.NumLayers()
	res := AuditResult{
		Mismatch:      make([]float64, L),
		ForwardNorms:  make([]float64, L),
		BackwardNorms: make([]float64, L),
	}
	for l := 0; l < L; l++ {
		syn, err := net.Layer(l)
		if err != nil {
			return AuditResult{}, evaluateErrorf(opAudit, err)
		}
		gamma, err := engine.Gamma(acts[l])
		if err != nil {
			return AuditResult{}, evaluateErrorf(opAudit, fmt.Errorf("layer %d: %w", l, err))
		}
		if res.Mismatch[l], err = engine.MismatchEnergy(gamma, syn.Backward, syn.Forward); err != nil {
			return AuditResult{}, evaluateErrorf(opAudit, fmt.Errorf("layer %d: %w", l, err))
		}
		if res.ForwardNorms[l], err = matrix.FrobeniusNorm(syn.Forward); err != nil {
			return AuditResult{}, evaluateErrorf(opAudit, err)
		}
		if res.BackwardNorms[l], err = matrix.FrobeniusNorm(syn.Backward); err != nil {
			return AuditResult{}, evaluateErrorf(opAudit, err)
		}
	}

	return res, nil
}
