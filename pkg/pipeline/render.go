package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
	"github.com/matzehuels/bracket/pkg/render/chart"
	"github.com/matzehuels/bracket/pkg/render/chart/layout"
	"github.com/matzehuels/bracket/pkg/render/chart/sink"
	"github.com/matzehuels/bracket/pkg/render/chart/styles"
	"github.com/matzehuels/bracket/pkg/render/nodelink"
)

// RenderLayout generates output artifacts in the requested formats from an
// already computed layout. The rounds supply team names, scores, and winners.
func RenderLayout(ctx context.Context, rounds []bracket.Round, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if opts.IsTree() {
		return renderTree(ctx, rounds, l, opts)
	}
	return renderBracket(ctx, rounds, l, opts)
}

// renderBracket draws the column view.
func renderBracket(ctx context.Context, rounds []bracket.Round, l layout.Layout, opts Options) (map[string][]byte, error) {
	scene, err := chart.Draw(rounds, l)
	if err != nil {
		return nil, err
	}
	svgOpts := buildSVGOptions(opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(scene, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, scene, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, scene, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(scene, sink.WithJSONStyle(opts.Style), sink.WithJSONTitle(opts.Title))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported bracket format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderTree draws the Graphviz node-link view.
func renderTree(ctx context.Context, rounds []bracket.Round, l layout.Layout, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(rounds, l, nodelink.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = MarshalLayout(l)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if s, ok := styles.Lookup(opts.Style); ok {
		svgOpts = append(svgOpts, sink.WithStyle(s))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}
