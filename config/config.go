// SPDX-License-Identifier: MIT

// Package config loads and validates the parameter file of a training or
// evaluation run. Files are YAML; JSON parameter files load unchanged.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pseudoprop/checkpoint"
	"github.com/katalvlaran/pseudoprop/dataset"
	"github.com/katalvlaran/pseudoprop/network"
	"github.com/katalvlaran/pseudoprop/pseudo"
)

// ErrInvalidParams indicates a parameter file that does not decode or holds
// an out-of-range value.
var ErrInvalidParams = errors.New("config: invalid parameters")

// Defaults applied by Load to keys that are absent or zero.
// gen_pseudo estimates Γ from its batches and defaults to pseudo.MinSamples.
const (
	DefaultBatchSize = 1
	DefaultDataset   = dataset.NameYinYang
	DefaultTestRatio = 4 // test size = dataset_size / DefaultTestRatio when test_size is absent
)

// Params mirrors the keys of a parameter file.
type Params struct {
	Layers         []int   `yaml:"layers"`
	ModelType      string  `yaml:"model_type"`
	ModelFolder    string  `yaml:"model_folder"`
	Epochs         int     `yaml:"epochs"`
	Dataset        string  `yaml:"dataset"`
	DatasetSize    int     `yaml:"dataset_size"`
	TestSize       int     `yaml:"test_size"`
	RandomSeed     int64   `yaml:"random_seed"`
	PerImages      int     `yaml:"per_images"`
	BatchSize      int     `yaml:"batch_size"`
	LearningRate   float64 `yaml:"learning_rate"`
	// RCond is the relative pinv cut-off. Zero selects max(rows, cols)·2⁻⁵²;
	// 1e-15 gives a fixed cut-off independent of shape.
	RCond          float64 `yaml:"rcond"`
	RecomputeEvery int     `yaml:"recompute_every"`
}

// Load reads, defaults and validates the parameter file at path.
func Load(path string) (Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("load params: %w", err)
	}

	return Decode(bytes.NewReader(raw))
}

// Decode parses a parameter document from r. Unknown keys are rejected so that
// a misspelt key never silently falls back to a default.
func Decode(r io.Reader) (Params, error) {
	var p Params
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return Params{}, err
	}

	return p, nil
}

// applyDefaults fills zero-valued optional keys.
func (p *Params) applyDefaults() {
	if p.BatchSize == 0 {
		p.BatchSize = DefaultBatchSize
		if p.ModelType == network.GenPseudoBackprop.String() {
			p.BatchSize = pseudo.MinSamples
		}
	}
	if p.Dataset == "" {
		p.Dataset = DefaultDataset
	}
	if p.TestSize == 0 {
		p.TestSize = max(p.DatasetSize/DefaultTestRatio, 1)
	}
}

// Validate checks every key against its range.
func (p Params) Validate() error {
	if _, err := network.ParseMode(p.ModelType); err != nil {
		return fmt.Errorf("%w: model_type: %w", ErrInvalidParams, err)
	}
	if len(p.Layers) < 2 {
		return fmt.Errorf("%w: layers: need at least 2 sizes", ErrInvalidParams)
	}
	for _, s := range p.Layers {
		if s <= 0 {
			return fmt.Errorf("%w: layers: size %d", ErrInvalidParams, s)
		}
	}
	switch {
	case p.ModelFolder == "":
		return fmt.Errorf("%w: model_folder is empty", ErrInvalidParams)
	case p.Dataset != dataset.NameYinYang && p.Dataset != dataset.NameGaussian:
		return fmt.Errorf("%w: dataset %q: %w", ErrInvalidParams, p.Dataset, dataset.ErrUnknownDataset)
	case p.BatchSize <= 0:
		return fmt.Errorf("%w: batch_size %d", ErrInvalidParams, p.BatchSize)
	case p.ModelType == network.GenPseudoBackprop.String() && p.BatchSize < pseudo.MinSamples:
		return fmt.Errorf("%w: batch_size %d: %s needs at least %d samples per batch",
			ErrInvalidParams, p.BatchSize, p.ModelType, pseudo.MinSamples)
	case p.TestSize <= 0:
		return fmt.Errorf("%w: test_size %d", ErrInvalidParams, p.TestSize)
	case p.RecomputeEvery < 0:
		return fmt.Errorf("%w: recompute_every %d", ErrInvalidParams, p.RecomputeEvery)
	case p.LearningRate <= 0 || math.IsInf(p.LearningRate, 0) || math.IsNaN(p.LearningRate):
		return fmt.Errorf("%w: learning_rate %v", ErrInvalidParams, p.LearningRate)
	case p.RCond < 0 || math.IsInf(p.RCond, 0) || math.IsNaN(p.RCond):
		return fmt.Errorf("%w: rcond %v", ErrInvalidParams, p.RCond)
	}
	if _, err := p.Sweep(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	return nil
}

// Mode returns the parsed model_type.
func (p Params) Mode() (network.Mode, error) { return network.ParseMode(p.ModelType) }

// Sweep returns the checkpoint sequence of the run.
func (p Params) Sweep() (checkpoint.Sweep, error) {
	return checkpoint.NewSweep(p.Epochs, p.DatasetSize, p.PerImages)
}

// Engine returns a pseudo-backprop engine with the configured cut-off.
// Params must be valid.
func (p Params) Engine() *pseudo.Engine {
	return pseudo.NewEngine(pseudo.WithRCond(p.RCond))
}

// Network builds the untrained network described by the parameters.
func (p Params) Network() (*network.Network, error) {
	mode, err := p.Mode()
	if err != nil {
		return nil, err
	}

	return network.New(mode, p.Layers, network.WithSeed(p.RandomSeed), network.WithEngine(p.Engine()))
}
