package evaluate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pseudoprop/dataset"
	"github.com/katalvlaran/pseudoprop/evaluate"
	"github.com/katalvlaran/pseudoprop/matrix"
	"github.com/katalvlaran/pseudoprop/network"
	"github.com/katalvlaran/pseudoprop/pseudo"
)

// yinYangLoader returns a size-sample YinYang test loader.
func yinYangLoader(t *testing.T, size, batch int) *dataset.Loader {
	t.Helper()
	ds, err := dataset.New(dataset.NameYinYang, size, dataset.Test, 3)
	require.NoError(t, err)
	l, err := dataset.NewLoader(ds, batch)
	require.NoError(t, err)

	return l
}

// allInputs stacks every input of the loader's dataset.
func allInputs(t *testing.T, l *dataset.Loader) *matrix.Dense {
	t.Helper()
	whole, err := dataset.NewLoader(l.Dataset(), l.Dataset().Len())
	require.NoError(t, err)
	b, err := whole.Epoch(nil)
	require.NoError(t, err)

	return b[0].X
}

func TestEvaluate_CountsEverySample(t *testing.T) {
	t.Parallel()
	l := yinYangLoader(t, 30, 7)
	net, err := network.New(network.Backprop, []int{4, 5, 3}, network.WithSeed(11))
	require.NoError(t, err)

	res, err := evaluate.Evaluate(net, l)
	require.NoError(t, err)
	require.Len(t, res.Confusion, 3)

	var total float64
	for label, row := range res.Confusion {
		require.Len(t, row, 3)
		var rowSum float64
		for _, v := range row {
			rowSum += v
		}
		assert.Equal(t, 10.0, rowSum, "class %d is balanced", label)
		total += rowSum
	}
	assert.Equal(t, 30.0, total)

	// Loss equals the summed squared error of one full-batch forward pass.
	batches, err := l.Epoch(nil)
	require.NoError(t, err)
	var want float64
	for _, b := range batches {
		out, err := net.Forward(b.X)
		require.NoError(t, err)
		d, err := matrix.Sub(out, b.Y)
		require.NoError(t, err)
		d.Do(func(_, _ int, v float64) bool { want += v * v; return true })
	}
	assert.InDelta(t, want, res.Loss, 1e-9)
	assert.Greater(t, res.Loss, 0.0)
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()
	l := yinYangLoader(t, 6, 3)
	net, err := network.New(network.Backprop, []int{4, 5, 2})
	require.NoError(t, err)

	_, err = evaluate.Evaluate(net, l)
	require.ErrorIs(t, err, evaluate.ErrOutputShape)
	_, err = evaluate.Evaluate(nil, l)
	require.ErrorIs(t, err, evaluate.ErrNilInput)
	_, err = evaluate.Evaluate(net, nil)
	require.ErrorIs(t, err, evaluate.ErrNilInput)
}

func TestErrorRatio(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		conf    [][]float64
		want    float64
		wantErr bool
	}{
		{name: "perfect", conf: [][]float64{{4, 0}, {0, 6}}, want: 0},
		{name: "mixed", conf: [][]float64{{3, 1}, {0, 4}}, want: 0.125},
		{name: "all wrong", conf: [][]float64{{0, 2}, {5, 0}}, want: 1},
		{name: "empty", conf: nil, wantErr: true},
		{name: "zeros", conf: [][]float64{{0, 0}, {0, 0}}, wantErr: true},
		{name: "ragged", conf: [][]float64{{1, 2}, {3}}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := evaluate.ErrorRatio(tc.conf)
			if tc.wantErr {
				require.ErrorIs(t, err, evaluate.ErrConfusion)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-15)
		})
	}
}

// TestAudit_GenPseudoExpandingLayer checks that, right after a data-weighted
// refresh, an expanding layer has (numerically) zero mismatch on the same data.
func TestAudit_GenPseudoExpandingLayer(t *testing.T) {
	t.Parallel()
	ds, err := dataset.New(dataset.NameGaussian, 40, dataset.Test, 3)
	require.NoError(t, err)
	l, err := dataset.NewLoader(ds, 40)
	require.NoError(t, err)
	x := allInputs(t, l)
	net, err := network.New(network.GenPseudoBackprop, []int{dataset.DefaultGaussianDim, 12, 2}, network.WithSeed(5))
	require.NoError(t, err)
	require.NoError(t, net.UpdateBackward(x))

	res, err := evaluate.Audit(nil, net, x)
	require.NoError(t, err)
	require.Len(t, res.Mismatch, 2)
	assert.InDelta(t, 0, res.Mismatch[0], 1e-8)
	assert.GreaterOrEqual(t, res.Mismatch[1], 0.0)
	for i := range res.ForwardNorms {
		assert.Greater(t, res.ForwardNorms[i], 0.0)
		assert.Greater(t, res.BackwardNorms[i], 0.0)
	}
}

func TestAudit_BackpropNormsAgree(t *testing.T) {
	t.Parallel()
	l := yinYangLoader(t, 12, 12)
	net, err := network.New(network.Backprop, []int{4, 3, 3}, network.WithSeed(2))
	require.NoError(t, err)

	res, err := evaluate.Audit(pseudo.NewEngine(), net, allInputs(t, l))
	require.NoError(t, err)
	for i := range res.ForwardNorms {
		assert.InDelta(t, res.ForwardNorms[i], res.BackwardNorms[i], 1e-12)
	}
}

func TestAudit_Errors(t *testing.T) {
	t.Parallel()
	net, err := network.New(network.PseudoBackprop, []int{4, 3})
	require.NoError(t, err)

	zeros, err := matrix.NewZeros(2, 4)
	require.NoError(t, err)
	_, err = evaluate.Audit(nil, nil, zeros)
	require.ErrorIs(t, err, evaluate.ErrNilInput)

	one, err := matrix.NewDenseFrom(1, 4, []float64{0.1, 0.2, 0.9, 0.8})
	require.NoError(t, err)
	_, err = evaluate.Audit(nil, net, one)
	require.ErrorIs(t, err, pseudo.ErrInsufficientData)
}
