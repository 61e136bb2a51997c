package train_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pseudoprop/checkpoint"
	"github.com/katalvlaran/pseudoprop/config"
	"github.com/katalvlaran/pseudoprop/dataset"
	"github.com/katalvlaran/pseudoprop/network"
	"github.com/katalvlaran/pseudoprop/train"
)

// newTrainer builds a trainer over a size-sample dataset.
func newTrainer(t *testing.T, name string, mode network.Mode, size, batch, epochs, per int) *train.Trainer {
	t.Helper()
	ds, err := dataset.New(name, size, dataset.Train, 4)
	require.NoError(t, err)
	l, err := dataset.NewLoader(ds, batch)
	require.NoError(t, err)
	sweep, err := checkpoint.NewSweep(epochs, size, per)
	require.NoError(t, err)

	return &train.Trainer{
		Store:        checkpoint.NewStore(t.TempDir(), mode),
		Sweep:        sweep,
		Train:        l,
		LearningRate: 0.5,
		Seed:         4,
	}
}

func TestRun_SavesEverySweepPoint(t *testing.T) {
	t.Parallel()
	tr := newTrainer(t, dataset.NameYinYang, network.PseudoBackprop, 30, 5, 2, 10)
	var logs bytes.Buffer
	tr.Logger = train.NewLogger(&logs)
	net, err := network.New(network.PseudoBackprop, []int{4, 6, 3}, network.WithSeed(1))
	require.NoError(t, err)

	sum, err := tr.Run(context.Background(), net)
	require.NoError(t, err)
	assert.Equal(t, 12, sum.Batches)
	assert.Equal(t, 12, sum.Recomputed)
	assert.Len(t, sum.EpochLoss, 2)

	var want []checkpoint.Point
	for p := range tr.Sweep.All() {
		want = append(want, p)
	}
	assert.Equal(t, want, sum.Saved)
	for _, p := range sum.Saved {
		_, err := os.Stat(tr.Store.Path(p))
		assert.NoError(t, err, "point %d", p.Index)
	}

	last, err := tr.Store.Load(sum.Saved[len(sum.Saved)-1])
	require.NoError(t, err)
	assert.Equal(t, net.State(), last)
	assert.Contains(t, logs.String(), "Train model -- INFO: epoch 1 done")
	assert.Regexp(t, regexp.MustCompile(`(?m)^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} Train model -- INFO: `), logs.String())
}

func TestRun_RecomputePeriod(t *testing.T) {
	t.Parallel()
	tr := newTrainer(t, dataset.NameYinYang, network.GenPseudoBackprop, 30, 5, 2, 10)
	tr.RecomputeEvery = 4
	net, err := network.New(network.GenPseudoBackprop, []int{4, 6, 3}, network.WithSeed(1))
	require.NoError(t, err)

	sum, err := tr.Run(context.Background(), net)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Recomputed)

	bp := newTrainer(t, dataset.NameYinYang, network.Backprop, 30, 5, 1, 10)
	bpNet, err := network.New(network.Backprop, []int{4, 6, 3}, network.WithSeed(1))
	require.NoError(t, err)
	sum, err = bp.Run(context.Background(), bpNet)
	require.NoError(t, err)
	assert.Zero(t, sum.Recomputed)
}

// TestRun_GenPseudoDefaultParams trains gen_pseudo from a parameter file
// that leaves batch_size at its default.
func TestRun_GenPseudoDefaultParams(t *testing.T) {
	t.Parallel()
	doc := fmt.Sprintf(`{
    "layers": [4, 6, 3],
    "model_type": "gen_pseudo",
    "model_folder": %q,
    "epochs": 1,
    "dataset_size": 30,
    "random_seed": 5,
    "per_images": 10,
    "learning_rate": 0.5
}`, t.TempDir())
	p, err := config.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	mode, err := p.Mode()
	require.NoError(t, err)
	sweep, err := p.Sweep()
	require.NoError(t, err)
	ds, err := dataset.New(p.Dataset, p.DatasetSize, dataset.Train, p.RandomSeed)
	require.NoError(t, err)
	l, err := dataset.NewLoader(ds, p.BatchSize)
	require.NoError(t, err)
	net, err := p.Network()
	require.NoError(t, err)

	tr := &train.Trainer{
		Store:          checkpoint.NewStore(p.ModelFolder, mode),
		Sweep:          sweep,
		Train:          l,
		LearningRate:   p.LearningRate,
		RecomputeEvery: p.RecomputeEvery,
		Seed:           p.RandomSeed,
	}
	sum, err := tr.Run(context.Background(), net)
	require.NoError(t, err)
	assert.Equal(t, 15, sum.Batches)
	assert.Equal(t, 15, sum.Recomputed)
	assert.Len(t, sum.Saved, sweep.Len())
}

// TestRun_GenPseudoSingleSampleBatch defers the refresh past a trailing
// one-sample batch instead of failing.
func TestRun_GenPseudoSingleSampleBatch(t *testing.T) {
	t.Parallel()
	tr := newTrainer(t, dataset.NameYinYang, network.GenPseudoBackprop, 30, 29, 2, 10)
	net, err := network.New(network.GenPseudoBackprop, []int{4, 6, 3}, network.WithSeed(2))
	require.NoError(t, err)

	sum, err := tr.Run(context.Background(), net)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Batches)
	// 29 | 1+29 | 1 left over at the end.
	assert.Equal(t, 2, sum.Recomputed)
	assert.Len(t, sum.Saved, tr.Sweep.Len())
}

// TestRun_Deterministic trains twice from the same seeds.
func TestRun_Deterministic(t *testing.T) {
	t.Parallel()
	states := make([]network.State, 2)
	for i := range states {
		tr := newTrainer(t, dataset.NameYinYang, network.FeedbackAlignment, 20, 4, 1, 20)
		net, err := network.New(network.FeedbackAlignment, []int{4, 5, 3}, network.WithSeed(8))
		require.NoError(t, err)
		_, err = tr.Run(context.Background(), net)
		require.NoError(t, err)
		states[i] = net.State()
	}
	assert.Equal(t, states[0], states[1])
}

func TestRun_LossDecreases(t *testing.T) {
	t.Parallel()
	tr := newTrainer(t, dataset.NameGaussian, network.Backprop, 40, 5, 10, 40)
	tr.LearningRate = 1
	net, err := network.New(network.Backprop, []int{dataset.DefaultGaussianDim, 10, 2}, network.WithSeed(3))
	require.NoError(t, err)

	sum, err := tr.Run(context.Background(), net)
	require.NoError(t, err)
	require.Len(t, sum.EpochLoss, 10)
	assert.Less(t, sum.EpochLoss[9], sum.EpochLoss[0])
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()
	tr := newTrainer(t, dataset.NameYinYang, network.Backprop, 30, 5, 1, 10)
	net, err := network.New(network.Backprop, []int{4, 3})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := tr.Run(ctx, net)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []checkpoint.Point{{}}, sum.Saved)
	assert.Zero(t, sum.Batches)
}

func TestRun_Validation(t *testing.T) {
	t.Parallel()
	net, err := network.New(network.Backprop, []int{4, 3})
	require.NoError(t, err)

	tr := newTrainer(t, dataset.NameYinYang, network.Backprop, 30, 5, 1, 10)
	tr.LearningRate = 0
	_, err = tr.Run(context.Background(), net)
	require.ErrorIs(t, err, train.ErrInvalidSchedule)

	tr = newTrainer(t, dataset.NameYinYang, network.Backprop, 30, 5, 1, 10)
	tr.Sweep, err = checkpoint.NewSweep(1, 60, 10)
	require.NoError(t, err)
	_, err = tr.Run(context.Background(), net)
	require.ErrorIs(t, err, train.ErrInvalidSchedule)

	_, err = tr.Run(context.Background(), nil)
	require.ErrorIs(t, err, train.ErrNilInput)
}
