package export

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/driftnet/internal/field"
)

func TestSVGSurfaceDocument(t *testing.T) {
	s := NewSVGSurface(field.DarkPalette.Background)
	s.Resize(320, 200)
	s.FillCircle(r2.Vec{X: 10, Y: 20}, 2, field.DarkPalette.Dot)
	s.StrokeLine(r2.Vec{X: 10, Y: 20}, r2.Vec{X: 40, Y: 20}, 0.8, field.DarkPalette.Link.WithAlpha(0.12))

	doc := s.String()
	checks := []string{
		`width="320" height="200"`,
		`fill="#0b1120"`,
		`<circle cx="10.00" cy="20.00" r="2.00" fill="rgba(96,165,250,0.4)"/>`,
		`stroke="rgba(59,130,246,0.12)" stroke-width="0.80"`,
		"</svg>",
	}
	for _, c := range checks {
		if !strings.Contains(doc, c) {
			t.Errorf("expected document to contain %q\n%s", c, doc)
		}
	}
	if s.Elements() != 2 {
		t.Errorf("expected 2 elements, got %d", s.Elements())
	}
}

func TestSVGSurfaceClear(t *testing.T) {
	s := NewSVGSurface(field.LightPalette.Background)
	s.Resize(100, 100)
	s.FillCircle(r2.Vec{X: 1, Y: 1}, 1, field.LightPalette.Dot)
	s.Clear()

	if s.Elements() != 0 {
		t.Errorf("expected empty frame, got %d elements", s.Elements())
	}
	if strings.Contains(s.String(), "<circle") {
		t.Error("cleared surface still holds circles")
	}
}

func TestSVGSurfaceFieldFrame(t *testing.T) {
	f := field.New(field.DefaultParams(), rand.New(rand.NewSource(1)))
	s := NewSVGSurface(field.LightPalette.Background)
	s.Resize(800, 600)
	f.Resize(800, 600)

	stats := f.Draw(s, false)
	if s.Elements() != stats.Particles+stats.Links {
		t.Errorf("expected %d elements, got %d", stats.Particles+stats.Links, s.Elements())
	}
	doc := s.String()
	if got := strings.Count(doc, "<circle"); got != stats.Particles {
		t.Errorf("expected %d circles, got %d", stats.Particles, got)
	}
	if strings.Contains(doc, ",-") {
		t.Error("document contains a negative alpha")
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if buf.String() != doc {
		t.Error("WriteTo output differs from String")
	}
}
