package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/bracket/pkg/bracket"
	bracketio "github.com/matzehuels/bracket/pkg/io"
	"github.com/matzehuels/bracket/pkg/pipeline"
	"github.com/matzehuels/bracket/pkg/store"
)

// =============================================================================
// Input
// =============================================================================

// loadTournament reads a tournament from "-" (stdin), an existing JSON file,
// or the configured store by id or fuzzy name.
func (c *CLI) loadTournament(ctx context.Context, arg string) (bracket.Tournament, error) {
	if arg == "-" {
		return bracketio.ReadJSON(os.Stdin)
	}
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return bracketio.ImportJSON(arg)
	}

	s, err := c.openStore(ctx)
	if err != nil {
		return bracket.Tournament{}, err
	}
	defer s.Close(ctx)
	return store.Resolve(ctx, s, arg)
}

// =============================================================================
// Output
// =============================================================================

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, or stdout for "" and "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path. An empty output uses the input
// with its extension stripped; an output ending in a format extension has
// that extension stripped.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		if input == "-" || base == "" {
			return appName
		}
		return filepath.Join(filepath.Dir(input), base)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each artifact and returns the written paths.
// A single format with an explicit output is written exactly there;
// otherwise files are named <base>.<format>.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if len(p.formats) == 1 && p.output != "" {
		data := p.artifacts[p.formats[0]]
		if err := writeOutput(p.output, data); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.output, err)
		}
		return []string{p.output}, nil
	}
	if p.output == "-" {
		return nil, fmt.Errorf("cannot write %d formats to stdout", len(p.formats))
	}

	base := basePath(p.output, p.input)
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := base + "." + format
		if err := writeOutput(path, p.artifacts[format]); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
