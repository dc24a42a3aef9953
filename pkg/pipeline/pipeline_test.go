package pipeline

import (
	"testing"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"classic", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"bracket", false},
		{"tree", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if o.VizType != VizTypeBracket {
		t.Errorf("VizType = %q, want bracket", o.VizType)
	}
	if o.Width != DefaultWidth || o.MatchGap != DefaultMatchGap {
		t.Errorf("layout defaults = %v/%v", o.Width, o.MatchGap)
	}
	if o.TopOffset == nil || *o.TopOffset != DefaultTopOffset {
		t.Errorf("TopOffset = %v, want %v", o.TopOffset, DefaultTopOffset)
	}
	if o.MinGapFraction == nil || *o.MinGapFraction != DefaultMinGapFraction {
		t.Errorf("MinGapFraction = %v, want %v", o.MinGapFraction, DefaultMinGapFraction)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Style != DefaultStyle || o.Scale != DefaultScale || o.Logger == nil {
		t.Errorf("render defaults not applied: %+v", o)
	}
}

func TestExplicitZeroMinGapSurvivesDefaults(t *testing.T) {
	o := Options{MinGapFraction: Float(0)}
	o.SetLayoutDefaults()
	if *o.MinGapFraction != 0 {
		t.Errorf("MinGapFraction = %v, want 0", *o.MinGapFraction)
	}
	if o.LayoutKeyOpts().MinGapFraction != 0 {
		t.Error("LayoutKeyOpts should carry the explicit 0")
	}
}

func TestExplicitZeroTopOffsetSurvivesDefaults(t *testing.T) {
	o := Options{TopOffset: Float(0)}
	o.SetLayoutDefaults()
	if *o.TopOffset != 0 {
		t.Errorf("TopOffset = %v, want 0", *o.TopOffset)
	}
	if o.LayoutKeyOpts().TopOffset != 0 {
		t.Error("LayoutKeyOpts should carry the explicit 0")
	}

	rounds, err := bracket.Generate(2, nil)
	if err != nil {
		t.Fatal(err)
	}
	l, err := ComputeLayout(rounds, o)
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}
	if l.TopOffset != 0 {
		t.Errorf("layout TopOffset = %v, want 0", l.TopOffset)
	}
	if got, want := l.Positions[rounds[0].Matches[0].ID].Y, o.MatchGap/2; got != want {
		t.Errorf("first leaf y = %v, want %v", got, want)
	}
}

func TestValidateForRenderDotNeedsTree(t *testing.T) {
	o := Options{Formats: []string{FormatDOT}}
	if err := o.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("dot on bracket view: error = %v, want INVALID_FORMAT", err)
	}

	o = Options{VizType: VizTypeTree, Formats: []string{FormatDOT}}
	if err := o.ValidateForRender(); err != nil {
		t.Errorf("dot on tree view: %v", err)
	}
}

func TestArtifactKeyOptsScaleOnlyForPNG(t *testing.T) {
	o := Options{Scale: 3}
	if o.ArtifactKeyOpts(FormatSVG).Scale != 0 {
		t.Error("svg key should ignore scale")
	}
	if o.ArtifactKeyOpts(FormatPNG).Scale != 3 {
		t.Error("png key should include scale")
	}
}
