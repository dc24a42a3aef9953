package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracket/pkg/pipeline"
)

// pipelineFlags binds pipeline options to command flags. Only flags the
// user set override the configuration.
type pipelineFlags struct {
	opts      pipeline.Options
	minGap    float64
	topOffset float64
	formats   string
}

func (f *pipelineFlags) addLayoutFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.opts.VizType, "type", "t", pipeline.DefaultVizType, "visualization type: bracket (default), tree")
	fl.Float64Var(&f.opts.Width, "width", pipeline.DefaultWidth, "canvas width")
	fl.Float64Var(&f.opts.MatchGap, "match-gap", pipeline.DefaultMatchGap, "vertical spacing between first-round matches")
	fl.Float64Var(&f.minGap, "min-gap", pipeline.DefaultMinGapFraction, "minimum match separation as a fraction of the gap (0 disables)")
	fl.Float64Var(&f.topOffset, "top-offset", pipeline.DefaultTopOffset, "space reserved above the first match for round headers")
	fl.Float64Var(&f.opts.Padding, "padding", 0, "extra space added below the last match")
}

func (f *pipelineFlags) addRenderFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	fl.StringVar(&f.opts.Style, "style", pipeline.DefaultStyle, "visual style: classic (default), simple")
	fl.StringVar(&f.opts.Title, "title", "", "chart title (default: tournament name)")
	fl.StringVar(&f.opts.Background, "background", "", "background color")
	fl.Float64Var(&f.opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fl.BoolVar(&f.opts.Detailed, "detailed", false, "show match ids and scores (tree)")
	fl.BoolVar(&f.opts.Refresh, "refresh", false, "ignore cached results")
}

// resolve overlays the flags the user set onto base.
func (f *pipelineFlags) resolve(cmd *cobra.Command, base pipeline.Options) pipeline.Options {
	fl := cmd.Flags()
	changed := func(name string) bool {
		return fl.Lookup(name) != nil && fl.Changed(name)
	}

	if changed("type") {
		base.VizType = f.opts.VizType
	}
	if changed("width") {
		base.Width = f.opts.Width
	}
	if changed("match-gap") {
		base.MatchGap = f.opts.MatchGap
	}
	if changed("min-gap") {
		base.MinGapFraction = pipeline.Float(f.minGap)
	}
	if changed("top-offset") {
		base.TopOffset = pipeline.Float(f.topOffset)
	}
	if changed("padding") {
		base.Padding = f.opts.Padding
	}
	if changed("format") {
		base.Formats = parseFormats(f.formats)
	}
	if changed("style") {
		base.Style = f.opts.Style
	}
	if changed("title") {
		base.Title = f.opts.Title
	}
	if changed("background") {
		base.Background = f.opts.Background
	}
	if changed("scale") {
		base.Scale = f.opts.Scale
	}
	if changed("detailed") {
		base.Detailed = f.opts.Detailed
	}
	if changed("refresh") {
		base.Refresh = f.opts.Refresh
	}
	return base
}
