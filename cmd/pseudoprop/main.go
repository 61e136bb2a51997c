// SPDX-License-Identifier: MIT

// Command pseudoprop trains networks under one of the feedback rules and
// evaluates the saved checkpoints.
//
// Usage:
//
//	pseudoprop train --params params.json
//	pseudoprop test  --params params.json [--dataset test|train] [--from 0]
//
// test writes results_<dataset>.csv, confusion_matrix_<dataset>.json,
// forward_norms_<dataset>.csv, backwards_norms_<dataset>.csv,
// series_<dataset>.json and run_<dataset>.json into the model folder.
// With --from k the records of points 0..k-1 are taken from
// series_<dataset>.json and kept in the rewritten files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/katalvlaran/pseudoprop/checkpoint"
	"github.com/katalvlaran/pseudoprop/config"
	"github.com/katalvlaran/pseudoprop/dataset"
	"github.com/katalvlaran/pseudoprop/evaluate"
	"github.com/katalvlaran/pseudoprop/metrics"
	"github.com/katalvlaran/pseudoprop/train"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(ctx, os.Args[2:])
	case "test":
		err = runTest(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("pseudoprop %s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pseudoprop train|test --params <file> [--dataset test|train] [--from <index>]")
}

// loadParams parses the shared --params flag.
func loadParams(fs *flag.FlagSet, args []string) (config.Params, error) {
	path := fs.String("params", "params.json", "parameter file (JSON or YAML)")
	if err := fs.Parse(args); err != nil {
		return config.Params{}, err
	}

	return config.Load(*path)
}

func runTrain(ctx context.Context, args []string) error {
	p, err := loadParams(flag.NewFlagSet("train", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	mode, err := p.Mode()
	if err != nil {
		return err
	}
	sweep, err := p.Sweep()
	if err != nil {
		return err
	}
	ds, err := dataset.New(p.Dataset, p.DatasetSize, dataset.Train, p.RandomSeed)
	if err != nil {
		return err
	}
	loader, err := dataset.NewLoader(ds, p.BatchSize)
	if err != nil {
		return err
	}
	net, err := p.Network()
	if err != nil {
		return err
	}

	tr := &train.Trainer{
		Store:          checkpoint.NewStore(p.ModelFolder, mode),
		Sweep:          sweep,
		Train:          loader,
		LearningRate:   p.LearningRate,
		RecomputeEvery: p.RecomputeEvery,
		Seed:           p.RandomSeed,
		Logger:         train.NewLogger(os.Stderr),
	}
	sum, err := tr.Run(ctx, net)
	if err != nil {
		return err
	}
	tr.Logger.Printf("INFO: saved %d checkpoints to %s", len(sum.Saved), p.ModelFolder)

	return nil
}

func runTest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	split := fs.String("dataset", "test", "split to evaluate: test or train")
	from := fs.Int("from", 0, "first checkpoint index to evaluate")
	p, err := loadParams(fs, args)
	if err != nil {
		return err
	}

	var ds dataset.Dataset
	switch *split {
	case "test":
		ds, err = dataset.New(p.Dataset, p.TestSize, dataset.Test, p.RandomSeed)
	case "train":
		ds, err = dataset.New(p.Dataset, p.DatasetSize, dataset.Train, p.RandomSeed)
	default:
		return fmt.Errorf("--dataset %q: want test or train", *split)
	}
	if err != nil {
		return err
	}
	loader, err := dataset.NewLoader(ds, p.BatchSize)
	if err != nil {
		return err
	}
	mode, err := p.Mode()
	if err != nil {
		return err
	}
	sweep, err := p.Sweep()
	if err != nil {
		return err
	}
	net, err := p.Network()
	if err != nil {
		return err
	}

	runner := &evaluate.Runner{
		Store:  checkpoint.NewStore(p.ModelFolder, mode),
		Sweep:  sweep,
		Test:   loader,
		Engine: p.Engine(),
		Logger: evaluate.NewLogger(os.Stderr),
	}
	sink := metrics.NewFileSink(p.ModelFolder, *split)
	series, err := sink.Resume(net.NumLayers(), *from)
	if err != nil {
		return err
	}
	sum, runErr := runner.RunInto(ctx, net, series, *from)
	if runErr != nil && !errors.Is(runErr, ctx.Err()) {
		return runErr
	}

	// A cancelled run still flushes what it evaluated.
	m := metrics.NewManifest(p.ModelType, *split, p.Layers)
	m.Skipped = append(m.Skipped, sum.Skipped...)
	if err = sink.Flush(series, m); err != nil {
		return err
	}
	runner.Logger.Printf("INFO: %d checkpoints evaluated, %d skipped, run %s", sum.Evaluated, len(sum.Skipped), m.RunID)

	return runErr
}
