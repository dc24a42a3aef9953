package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/render/chart/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout computes the layout for rounds. Both visualization types
// share the same positions; the tree view only reads its links.
func ComputeLayout(rounds []bracket.Round, opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}
	return layout.Compute(rounds, opts.LayoutOptions()...)
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalLayout encodes a layout for caching or the json output format.
func MarshalLayout(l layout.Layout) ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	return data, nil
}

// UnmarshalLayout decodes a layout written by [MarshalLayout].
func UnmarshalLayout(data []byte) (layout.Layout, error) {
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return layout.Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Positions == nil {
		return layout.Layout{}, fmt.Errorf("unmarshal layout: missing positions")
	}
	return l, nil
}
