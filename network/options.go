// SPDX-License-Identifier: MIT

package network

import "github.com/katalvlaran/pseudoprop/pseudo"

// DefaultSeed is the weight-initialization seed used when none is given.
const DefaultSeed int64 = 0

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	seed   int64
	engine *pseudo.Engine
}

// WithSeed fixes the seed of forward and feedback initialization.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithEngine sets the pseudo-backprop engine used by UpdateBackward.
// A nil engine panics.
func WithEngine(e *pseudo.Engine) Option {
	if e == nil {
		panic("network: WithEngine: engine must be non-nil")
	}

	return func(o *Options) { o.engine = e }
}

func gatherOptions(user ...Option) Options {
	o := Options{seed: DefaultSeed}
	for _, set := range user {
		set(&o)
	}
	if o.engine == nil {
		o.engine = pseudo.NewEngine()
	}

	return o
}
