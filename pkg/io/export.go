package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/bracket/pkg/bracket"
)

// WriteJSON encodes t as an indented tournament object.
// The output can be re-imported with [ReadJSON].
func WriteJSON(t bracket.Tournament, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes t to a JSON file at path.
func ExportJSON(t bracket.Tournament, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
