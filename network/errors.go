// SPDX-License-Identifier: MIT

// Package network: sentinel error set.
package network

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMode indicates a synaptic update rule name that is not recognized.
	ErrUnknownMode = errors.New("network: unknown mode")

	// ErrInvalidSizes indicates fewer than two layer sizes or a non-positive size.
	ErrInvalidSizes = errors.New("network: layer sizes must be >= 2 entries, each > 0")

	// ErrLayerIndex indicates a layer index outside [0, NumLayers()].
	ErrLayerIndex = errors.New("network: layer index out of range")

	// ErrInputShape indicates an input or target batch whose width does not fit the network.
	ErrInputShape = errors.New("network: input shape mismatch")

	// ErrStateMismatch indicates a snapshot whose mode or shapes differ from the network.
	ErrStateMismatch = errors.New("network: state does not match network")
)

const (
	opNew            = "New"
	opForward        = "Forward"
	opForwardHidden  = "ForwardToHidden"
	opGradients      = "Gradients"
	opApply          = "Apply"
	opUpdateBackward = "UpdateBackward"
	opLoad           = "Load"
)

// networkErrorf wraps err with an operation tag, preserving it via %w.
func networkErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
