// SPDX-License-Identifier: MIT

package network

import "fmt"

// Mode selects how a network's feedback (backward) weights are obtained.
type Mode int

const (
	// Backprop uses B = Wᵀ, refreshed after every update.
	Backprop Mode = iota
	// FeedbackAlignment uses a fixed random B drawn at construction.
	FeedbackAlignment
	// PseudoBackprop uses B = pinv(W), refreshed by UpdateBackward.
	PseudoBackprop
	// GenPseudoBackprop uses the data-weighted B = Γ·pinv(W·Γ), refreshed by
	// UpdateBackward from the layer's input activities.
	GenPseudoBackprop
)

var modeNames = [...]string{
	Backprop:          "backprop",
	FeedbackAlignment: "fa",
	PseudoBackprop:    "pseudo_backprop",
	GenPseudoBackprop: "gen_pseudo",
}

// String returns the parameter-file name of m.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}

	return modeNames[m]
}

// ParseMode maps a parameter-file name to a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return Mode(m), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// UsesPseudoinverse reports whether UpdateBackward recomputes B for m.
func (m Mode) UsesPseudoinverse() bool {
	return m == PseudoBackprop || m == GenPseudoBackprop
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("%d: %w", int(m), ErrUnknownMode)
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}
