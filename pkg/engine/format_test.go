package engine

import (
	"testing"

	"github.com/matzehuels/dotkit/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{"SVG", FormatSVG, false},
		{" png ", FormatPNG, false},
		{"SVG_STANDALONE", FormatSVGStandalone, false},
		{"plain-ext", FormatPlainExt, false},
		{"gif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want INVALID_FORMAT", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestFormatProperties(t *testing.T) {
	tests := []struct {
		format     Format
		viz, ext   string
		image, svg bool
		strip      bool
	}{
		{FormatSVG, "svg", "svg", false, true, true},
		{FormatSVGStandalone, "svg", "svg", false, true, false},
		{FormatPNG, "svg", "png", true, true, true},
		{FormatPDF, "svg", "pdf", true, true, true},
		{FormatDOT, "dot", "dot", false, false, false},
		{FormatPlainExt, "plain-ext", "txt", false, false, false},
		{FormatJSON0, "json0", "json", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.VizName(); got != tt.viz {
				t.Errorf("VizName() = %q, want %q", got, tt.viz)
			}
			if got := tt.format.Extension(); got != tt.ext {
				t.Errorf("Extension() = %q, want %q", got, tt.ext)
			}
			if tt.format.IsImage() != tt.image || tt.format.IsSVG() != tt.svg || tt.format.stripsPrefix() != tt.strip {
				t.Errorf("flags = image %v svg %v strip %v", tt.format.IsImage(), tt.format.IsSVG(), tt.format.stripsPrefix())
			}
		})
	}
}

func TestFormats(t *testing.T) {
	all := Formats()
	if len(all) != len(formatTable) {
		t.Fatalf("Formats() has %d entries, table has %d", len(all), len(formatTable))
	}
	for _, f := range all {
		if !f.Valid() {
			t.Errorf("%s not valid", f)
		}
		if f.MIMEType() == "" {
			t.Errorf("%s has no MIME type", f)
		}
	}
	all[0] = "mutated"
	if Formats()[0] != FormatSVG {
		t.Error("Formats() exposes internal slice")
	}
	if Format("gif").MIMEType() != "application/octet-stream" {
		t.Error("unknown format should fall back to octet-stream")
	}
}

func TestParseLayout(t *testing.T) {
	for _, l := range Layouts() {
		got, err := ParseLayout(string(l))
		if err != nil || got != l {
			t.Errorf("ParseLayout(%q) = %q, %v", l, got, err)
		}
	}
	if got, _ := ParseLayout("NEATO"); got != LayoutNeato {
		t.Errorf("ParseLayout(NEATO) = %q", got)
	}
	if _, err := ParseLayout("graphite"); !errors.Is(err, errors.ErrCodeInvalidEngine) {
		t.Errorf("ParseLayout(graphite) error = %v, want INVALID_ENGINE", err)
	}
}
