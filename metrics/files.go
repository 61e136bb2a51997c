// SPDX-License-Identifier: MIT

package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// WriteConfusion writes every record's confusion matrix as one JSON object
// keyed by the record index, four-space indent. Keys appear in numeric order
// ("2" before "10"); a repeated index keeps its last record.
func WriteConfusion(w io.Writer, s *Series) error {
	byIndex := make(map[int][][]float64, len(s.records))
	for _, r := range s.records {
		byIndex[r.Index] = r.Confusion
	}
	keys := slices.Sorted(maps.Keys(byIndex))

	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			compact.WriteByte(',')
		}
		val, err := json.Marshal(byIndex[k])
		if err != nil {
			return err
		}
		compact.WriteString(strconv.Quote(strconv.Itoa(k)))
		compact.WriteByte(':')
		compact.Write(val)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "    "); err != nil {
		return err
	}
	_, err := out.WriteTo(w)

	return err
}

// Manifest describes one evaluation or training run.
type Manifest struct {
	RunID       string    `json:"run_id"`
	ModelType   string    `json:"model_type"`
	Dataset     string    `json:"dataset"`
	Layers      []int     `json:"layers"`
	Created     time.Time `json:"created"`
	Checkpoints int       `json:"checkpoints"`
	Skipped     []int     `json:"skipped"`
}

// NewManifest stamps a fresh run identifier and creation time.
func NewManifest(modelType, dataset string, layers []int) Manifest {
	return Manifest{
		RunID:     uuid.NewString(),
		ModelType: modelType,
		Dataset:   dataset,
		Layers:    append([]int(nil), layers...),
		Created:   time.Now().UTC(),
		Skipped:   []int{},
	}
}

// ResultsFile names the results table of a dataset.
func ResultsFile(dataset string) string { return "results_" + dataset + ".csv" }

// ConfusionFile names the confusion-matrix document of a dataset.
func ConfusionFile(dataset string) string { return "confusion_matrix_" + dataset + ".json" }

// ForwardNormsFile names the forward-norm table of a dataset.
func ForwardNormsFile(dataset string) string { return "forward_norms_" + dataset + ".csv" }

// BackwardNormsFile names the backward-norm table of a dataset.
func BackwardNormsFile(dataset string) string { return "backwards_norms_" + dataset + ".csv" }

// SeriesFile names the full series document of a dataset, the file a
// resumed evaluation starts from.
func SeriesFile(dataset string) string { return "series_" + dataset + ".json" }

// ManifestFile names the run manifest of a dataset.
func ManifestFile(dataset string) string { return "run_" + dataset + ".json" }

// FileSink persists a series and its manifest into a model folder.
type FileSink struct {
	dir     string
	dataset string
}

// NewFileSink binds a model folder and a dataset name.
func NewFileSink(dir, dataset string) *FileSink {
	return &FileSink{dir: dir, dataset: dataset}
}

// Dir returns the model folder of the sink.
func (f *FileSink) Dir() string { return f.dir }

// Flush rewrites every output file from s and m. Each file is replaced
// atomically; a failure leaves the previous version of that file intact.
func (f *FileSink) Flush(s *Series, m Manifest) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	m.Checkpoints = s.Len()
	writers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{ResultsFile(f.dataset), func(w io.Writer) error { return WriteResults(w, s) }},
		{ConfusionFile(f.dataset), func(w io.Writer) error { return WriteConfusion(w, s) }},
		{ForwardNormsFile(f.dataset), func(w io.Writer) error { return WriteNorms(w, s, false) }},
		{BackwardNormsFile(f.dataset), func(w io.Writer) error { return WriteNorms(w, s, true) }},
		{SeriesFile(f.dataset), func(w io.Writer) error { return json.NewEncoder(w).Encode(s) }},
		{ManifestFile(f.dataset), func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "    ")
			return enc.Encode(m)
		}},
	}
	for _, wr := range writers {
		var buf bytes.Buffer
		if err := wr.write(&buf); err != nil {
			return fmt.Errorf("flush %s: %w", wr.name, err)
		}
		if err := writeAtomic(filepath.Join(f.dir, wr.name), buf.Bytes()); err != nil {
			return fmt.Errorf("flush %s: %w", wr.name, err)
		}
	}

	return nil
}

// LoadSeries reads the series document of the sink.
// Errors: fs errors (os.ErrNotExist when nothing was flushed yet),
// ErrMalformed, ErrRecordShape when the document holds another layer count.
func (f *FileSink) LoadSeries(layers int) (*Series, error) {
	raw, err := os.ReadFile(filepath.Join(f.dir, SeriesFile(f.dataset)))
	if err != nil {
		return nil, fmt.Errorf("load series: %w", err)
	}
	s := new(Series)
	if err = json.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("load series: %w", err)
	}
	if s.layers != layers {
		return nil, fmt.Errorf("load series: %d layers, want %d: %w", s.layers, layers, ErrRecordShape)
	}

	return s, nil
}

// Resume returns the series an evaluation starting at sweep index from
// appends to: empty for from == 0, otherwise the flushed records before from.
func (f *FileSink) Resume(layers, from int) (*Series, error) {
	if from <= 0 {
		return NewSeries(layers), nil
	}
	s, err := f.LoadSeries(layers)
	if err != nil {
		return nil, err
	}

	return s.Before(from), nil
}

// writeAtomic writes data to path via a temporary sibling and a rename.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
