// SPDX-License-Identifier: MIT

// Package metrics collects per-checkpoint evaluation results and persists
// them as CSV tables, a confusion-matrix JSON document and a run manifest.
//
// The package never computes metrics itself; it receives plain scalars and
// matrices and decides serialization.
package metrics

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrRecordShape indicates a record whose per-layer slices do not match
	// the layer count of the series.
	ErrRecordShape = errors.New("metrics: record shape mismatch")

	// ErrMalformed indicates a series document that cannot be decoded.
	ErrMalformed = errors.New("metrics: malformed series document")
)

// Record is the outcome of one checkpoint evaluation.
type Record struct {
	Index         int         `json:"index"`          // sweep index of the checkpoint
	Epochs        float64     `json:"epochs"`         // training progress in epochs
	Images        int         `json:"images"`         // training images seen since the start of the run
	ErrorRatio    float64     `json:"error_ratio"`    // 1 − trace(C)/sum(C)
	Loss          float64     `json:"loss"`           // summed squared error against one-hot targets
	Mismatch      []float64   `json:"mismatch"`       // per-layer mismatch energy
	ForwardNorms  []float64   `json:"forward_norms"`  // per-layer ‖W‖_F
	BackwardNorms []float64   `json:"backward_norms"` // per-layer ‖B‖_F
	Confusion     [][]float64 `json:"confusion"`      // classes×classes, row = true, column = predicted
}

// clone deep-copies r so the series never aliases caller memory.
func (r Record) clone() Record {
	out := r
	out.Mismatch = append([]float64(nil), r.Mismatch...)
	out.ForwardNorms = append([]float64(nil), r.ForwardNorms...)
	out.BackwardNorms = append([]float64(nil), r.BackwardNorms...)
	out.Confusion = make([][]float64, len(r.Confusion))
	for i, row := range r.Confusion {
		out.Confusion[i] = append([]float64(nil), row...)
	}

	return out
}

var perLayerFields = [...]string{"mismatch", "forward norms", "backward norms"}

// Series is an append-only, ordered list of records over a fixed layer count.
type Series struct {
	layers  int
	records []Record
}

// NewSeries returns an empty series for a network with layers synapses.
func NewSeries(layers int) *Series {
	return &Series{layers: layers}
}

// Layers returns the per-record layer count.
func (s *Series) Layers() int { return s.layers }

// Len returns the number of records.
func (s *Series) Len() int { return len(s.records) }

// Append adds a copy of r. A record with mismatched per-layer slices is
// rejected and the series is left unchanged.
func (s *Series) Append(r Record) error {
	for i, v := range [...][]float64{r.Mismatch, r.ForwardNorms, r.BackwardNorms} {
		if len(v) != s.layers {
			return fmt.Errorf("%s: got %d layers, want %d: %w", perLayerFields[i], len(v), s.layers, ErrRecordShape)
		}
	}
	s.records = append(s.records, r.clone())

	return nil
}

// Records returns a copy of every record in order.
func (s *Series) Records() []Record {
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.clone()
	}

	return out
}

// Last returns the most recent record.
func (s *Series) Last() (Record, bool) {
	if len(s.records) == 0 {
		return Record{}, false
	}

	return s.records[len(s.records)-1].clone(), true
}

// Before returns a new series holding the records with Index < k.
func (s *Series) Before(k int) *Series {
	out := NewSeries(s.layers)
	for _, r := range s.records {
		if r.Index < k {
			out.records = append(out.records, r.clone())
		}
	}

	return out
}

// seriesDoc is the JSON form of a Series.
type seriesDoc struct {
	Layers  int      `json:"layers"`
	Records []Record `json:"records"`
}

// MarshalJSON implements json.Marshaler.
func (s *Series) MarshalJSON() ([]byte, error) {
	return json.Marshal(seriesDoc{Layers: s.layers, Records: s.records})
}

// UnmarshalJSON implements json.Unmarshaler. Every record goes through
// Append, so a document with inconsistent layer counts is rejected.
func (s *Series) UnmarshalJSON(raw []byte) error {
	var doc seriesDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	out := NewSeries(doc.Layers)
	for _, r := range doc.Records {
		if err := out.Append(r); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrMalformed, r.Index, err)
		}
	}
	*s = *out

	return nil
}
