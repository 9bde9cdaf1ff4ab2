package export

import (
	"strings"
	"testing"

	"github.com/san-kum/ecosim/internal/eco"
	"github.com/san-kum/ecosim/internal/engine"
)

func TestWriteSVG(t *testing.T) {
	history := []eco.Sample{
		{T: 0, N: eco.State{1.0, 0.5}},
		{T: 1, N: eco.State{1.2, 0.6}},
		{T: 2, N: eco.State{1.1, 0.4}},
	}
	events := []engine.Event{{T: 1.0, Label: "cat3", Damage: 0.35}}

	var sb strings.Builder
	if err := WriteSVG(&sb, history, events, 640, 360); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, `<?xml version="1.0"`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(out, "<svg ") || !strings.Contains(out, "</svg>") {
		t.Error("missing svg element")
	}
	if got := strings.Count(out, "<polyline"); got != 2 {
		t.Errorf("got %d polylines, want one per species (2)", got)
	}
	if !strings.Contains(out, "cat3") {
		t.Error("hurricane label missing")
	}
	if got := strings.Count(out, "stroke-dasharray"); got != 1 {
		t.Errorf("got %d event markers, want 1", got)
	}
}

func TestWriteSVGEmptyHistory(t *testing.T) {
	var sb strings.Builder
	if err := WriteSVG(&sb, nil, nil, 640, 360); err == nil {
		t.Fatal("expected error for empty history")
	}
}

func TestWriteSVGInvalidDimensions(t *testing.T) {
	history := []eco.Sample{{T: 0, N: eco.State{1}}}
	var sb strings.Builder
	if err := WriteSVG(&sb, history, nil, 0, 360); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestWriteSVGSinglePoint(t *testing.T) {
	history := []eco.Sample{{T: 0, N: eco.State{1.0}}}
	var sb strings.Builder
	if err := WriteSVG(&sb, history, nil, 320, 200); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if !strings.Contains(sb.String(), "<polyline") {
		t.Error("missing polyline for single sample")
	}
}
