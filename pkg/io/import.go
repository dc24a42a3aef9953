package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
)

// ReadJSON decodes a tournament from r.
//
// The input may be a tournament object or a bare array of rounds. In the
// latter case the returned tournament has only its Rounds set. ReadJSON
// returns an error with code INVALID_INPUT for malformed JSON, an empty
// document or an out-of-range winner. It does not close r.
func ReadJSON(r io.Reader) (bracket.Tournament, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return bracket.Tournament{}, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return bracket.Tournament{}, errors.New(errors.ErrCodeInvalidInput, "empty document")
	}

	var t bracket.Tournament
	if data[0] == '[' {
		if err := json.Unmarshal(data, &t.Rounds); err != nil {
			return bracket.Tournament{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode rounds")
		}
	} else if err := json.Unmarshal(data, &t); err != nil {
		return bracket.Tournament{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode tournament")
	}

	if err := bracket.ValidateWinners(t.Rounds); err != nil {
		return bracket.Tournament{}, err
	}
	return t, nil
}

// ImportJSON reads the tournament stored at path.
// When the document carries no name, the file's base name is used.
func ImportJSON(path string) (bracket.Tournament, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return bracket.Tournament{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return bracket.Tournament{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadJSON(f)
	if err != nil {
		return bracket.Tournament{}, fmt.Errorf("%s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return t, nil
}
