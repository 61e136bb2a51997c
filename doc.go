// Package pseudoprop trains fully-connected networks whose error signals
// travel through a feedback matrix B instead of the transposed forward
// weights, and measures how well each choice of B approximates the
// data-weighted pseudoinverse of the forward weights.
//
// What is in here?
//
//	A small, deterministic toolkit that brings together:
//		• Dense matrices with validated kernels and gonum adapters
//		• The pseudo-backprop core: Γ from data, SVD square roots and
//		  pseudoinverses, B = Γ·pinv(W·Γ), mismatch energy and loss
//		• Networks under four feedback rules: backprop, feedback alignment,
//		  pseudo-backprop and data-weighted ("gen") pseudo-backprop
//		• Synthetic YinYang and Gaussian datasets with a batch loader
//		• Checkpoint sweeps, evaluation, and CSV/JSON result files
//
// Under the hood, everything is organized into subpackages:
//
//	matrix/     - Dense matrix type, kernels, statistics, validators
//	pseudo/     - Gram, SqrtSym, Pinv, Backward, MismatchEnergy, Loss
//	network/    - sigmoid networks, feedback rules, gradients, snapshots
//	dataset/    - YinYang and Gaussian datasets, mini-batch loader
//	checkpoint/ - checkpoint naming, atomic store, restartable sweep
//	metrics/    - per-checkpoint records, CSV and JSON writers
//	evaluate/   - loss, confusion, error ratio, audit, sweep runner
//	train/      - SGD training loop with periodic checkpoints
//	config/     - parameter files
//	rng/        - seeded, derived random streams
//
// The data-weighted pseudoinverse in one line:
//
//	Γ² = Cov(X) + μμᵀ,  Γ = √Γ²,  B = Γ·pinv(W·Γ)
//
// Determinism: every random draw comes from rng streams derived from one seed;
// the same parameter file reproduces the same weights and results.
//
// See cmd/pseudoprop for the command-line entry point and examples/ for a
// side-by-side comparison of the four feedback rules.
package pseudoprop
