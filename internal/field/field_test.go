package field

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

type line struct {
	a, b  r2.Vec
	width float64
	c     Color
}

type circle struct {
	center r2.Vec
	radius float64
	c      Color
}

type recordingSurface struct {
	clears  int
	circles []circle
	lines   []line
}

func (s *recordingSurface) Resize(w, h float64) {}

func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
	s.lines = s.lines[:0]
}

func (s *recordingSurface) FillCircle(c r2.Vec, r float64, col Color) {
	s.circles = append(s.circles, circle{c, r, col})
}

func (s *recordingSurface) StrokeLine(a, b r2.Vec, w float64, col Color) {
	s.lines = append(s.lines, line{a, b, w, col})
}

func newTestField(seed int64) *Field {
	return New(DefaultParams(), rand.New(rand.NewSource(seed)))
}

func TestParticleCount(t *testing.T) {
	tests := []struct {
		w, h     float64
		expected int
	}{
		{800, 600, 26},
		{400, 300, 6},
		{1920, 1080, 115},
		{100, 100, 0},
		{0, 600, 0},
		{-10, 600, 0},
		{180, 100, 1},
	}

	for _, tt := range tests {
		got := ParticleCount(tt.w, tt.h, DefaultDensity)
		if got != tt.expected {
			t.Errorf("ParticleCount(%v, %v): expected %d, got %d", tt.w, tt.h, tt.expected, got)
		}
	}
}

func TestResizeCount(t *testing.T) {
	f := newTestField(1)
	sizes := [][2]float64{{800, 600}, {1280, 720}, {333, 777}, {1, 1}}
	for _, sz := range sizes {
		f.Resize(sz[0], sz[1])
		expected := int(math.Floor(sz[0] * sz[1] / 18000))
		if f.Len() != expected {
			t.Errorf("size %v: expected %d particles, got %d", sz, expected, f.Len())
		}
	}
}

func TestResizeReplaces(t *testing.T) {
	f := newTestField(2)
	f.Resize(800, 600)
	before := f.Particles()
	if len(before) != 26 {
		t.Fatalf("expected 26 particles, got %d", len(before))
	}

	f.Resize(400, 300)
	if f.Len() != 6 {
		t.Errorf("expected 6 particles after shrink, got %d", f.Len())
	}
	for _, p := range f.Particles() {
		if p.Pos.X < 0 || p.Pos.X > 400 || p.Pos.Y < 0 || p.Pos.Y > 300 {
			t.Errorf("particle %v outside new bounds", p.Pos)
		}
	}
}

func TestSpawnRanges(t *testing.T) {
	f := newTestField(3)
	f.Resize(1920, 1080)
	for _, p := range f.Particles() {
		if math.Abs(p.Vel.X) > DefaultMaxDrift || math.Abs(p.Vel.Y) > DefaultMaxDrift {
			t.Errorf("velocity %v exceeds drift bound", p.Vel)
		}
		if p.Radius < DefaultMinRadius || p.Radius > DefaultMaxRadius {
			t.Errorf("radius %f out of range", p.Radius)
		}
	}
}

func TestStepDriftWithoutPointer(t *testing.T) {
	f := newTestField(4)
	f.Resize(800, 600)
	f.particles[0] = Particle{Pos: r2.Vec{X: 100, Y: 100}, Vel: r2.Vec{X: 0.1, Y: -0.05}, Radius: 2}

	f.Step(Offscreen)

	p := f.particles[0]
	if math.Abs(p.Pos.X-100.1) > 1e-9 || math.Abs(p.Pos.Y-99.95) > 1e-9 {
		t.Errorf("expected (100.1, 99.95), got %v", p.Pos)
	}
	if p.Vel.X != 0.1 || p.Vel.Y != -0.05 {
		t.Errorf("velocity should be unchanged, got %v", p.Vel)
	}
}

func TestStepBounceFlipsVelocityOnly(t *testing.T) {
	f := newTestField(5)
	f.Resize(800, 600)
	f.particles = []Particle{
		{Pos: r2.Vec{X: 799.95, Y: 300}, Vel: r2.Vec{X: 0.1, Y: 0}, Radius: 1},
		{Pos: r2.Vec{X: 300, Y: 0.05}, Vel: r2.Vec{X: 0, Y: -0.1}, Radius: 1},
	}

	f.Step(Offscreen)

	right := f.particles[0]
	if right.Pos.X <= 800 {
		t.Errorf("expected overshoot past 800, got %f", right.Pos.X)
	}
	if right.Vel.X != -0.1 {
		t.Errorf("expected vx flipped to -0.1, got %f", right.Vel.X)
	}

	top := f.particles[1]
	if top.Pos.Y >= 0 {
		t.Errorf("expected overshoot past 0, got %f", top.Pos.Y)
	}
	if top.Vel.Y != 0.1 {
		t.Errorf("expected vy flipped to 0.1, got %f", top.Vel.Y)
	}
}

func TestBoundaryContainment(t *testing.T) {
	f := newTestField(6)
	w, h := 640.0, 480.0
	f.Resize(w, h)
	slack := DefaultMaxDrift * math.Sqrt2

	for step := 0; step < 20000; step++ {
		f.Step(Offscreen)
		for i, p := range f.Particles() {
			if p.Pos.X < -slack || p.Pos.X > w+slack || p.Pos.Y < -slack || p.Pos.Y > h+slack {
				t.Fatalf("step %d: particle %d escaped to %v", step, i, p.Pos)
			}
		}
	}
}

func TestPushMonotonic(t *testing.T) {
	pointer := r2.Vec{X: 500, Y: 500}
	prev := math.Inf(1)
	for d := 0.0; d < DefaultRepulsionRadius; d += 0.5 {
		pos := r2.Vec{X: 500 + d, Y: 500}
		mag := r2.Norm(Push(pos, pointer, DefaultRepulsionRadius, DefaultRepulsionStrength))
		if mag >= prev {
			t.Fatalf("push not strictly decreasing at d=%f: %f >= %f", d, mag, prev)
		}
		prev = mag
	}

	atZero := r2.Norm(Push(pointer, pointer, DefaultRepulsionRadius, DefaultRepulsionStrength))
	if atZero != DefaultRepulsionStrength {
		t.Errorf("expected max push %f at zero distance, got %f", DefaultRepulsionStrength, atZero)
	}

	atRadius := Push(r2.Vec{X: 700, Y: 500}, pointer, DefaultRepulsionRadius, DefaultRepulsionStrength)
	if atRadius != (r2.Vec{}) {
		t.Errorf("expected no push at the radius, got %v", atRadius)
	}
}

func TestPushDirection(t *testing.T) {
	pointer := r2.Vec{X: 100, Y: 100}
	pos := r2.Vec{X: 150, Y: 100}
	moved := r2.Sub(pos, Push(pos, pointer, DefaultRepulsionRadius, DefaultRepulsionStrength))
	if moved.X <= pos.X {
		t.Errorf("expected particle pushed to +x, got %v", moved)
	}

	under := r2.Sub(pointer, Push(pointer, pointer, DefaultRepulsionRadius, DefaultRepulsionStrength))
	if under.X != pointer.X-DefaultRepulsionStrength || under.Y != pointer.Y {
		t.Errorf("expected particle under pointer pushed along -x, got %v", under)
	}
}

func TestStepRepulsionIsTransient(t *testing.T) {
	f := newTestField(7)
	f.Resize(800, 600)
	f.particles = []Particle{{Pos: r2.Vec{X: 400, Y: 300}, Vel: r2.Vec{}, Radius: 1}}

	f.Step(r2.Vec{X: 300, Y: 300})

	p := f.particles[0]
	expected := 400 + DefaultRepulsionStrength*0.5
	if math.Abs(p.Pos.X-expected) > 1e-9 {
		t.Errorf("expected x=%f, got %f", expected, p.Pos.X)
	}
	if p.Vel != (r2.Vec{}) {
		t.Errorf("repulsion must not alter velocity, got %v", p.Vel)
	}

	f.Step(Offscreen)
	if f.particles[0].Pos != p.Pos {
		t.Errorf("expected particle at rest after pointer left, got %v", f.particles[0].Pos)
	}
}

func TestDrawLinkThreshold(t *testing.T) {
	tests := []struct {
		name  string
		d     float64
		links int
	}{
		{"close", 50, 1},
		{"just under", 119.999, 1},
		{"exactly threshold", 120, 0},
		{"far", 300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(8)
			f.Resize(800, 600)
			f.particles = []Particle{
				{Pos: r2.Vec{X: 100, Y: 100}, Radius: 1},
				{Pos: r2.Vec{X: 100 + tt.d, Y: 100}, Radius: 1},
			}
			s := &recordingSurface{}
			stats := f.Draw(s, false)
			if stats.Links != tt.links || len(s.lines) != tt.links {
				t.Errorf("expected %d links, got stats=%d drawn=%d", tt.links, stats.Links, len(s.lines))
			}
		})
	}
}

func TestDrawPairsOnce(t *testing.T) {
	f := newTestField(9)
	f.Resize(800, 600)
	f.particles = []Particle{
		{Pos: r2.Vec{X: 10, Y: 10}, Radius: 1},
		{Pos: r2.Vec{X: 20, Y: 10}, Radius: 1},
		{Pos: r2.Vec{X: 30, Y: 10}, Radius: 1},
	}
	s := &recordingSurface{}
	stats := f.Draw(s, true)

	if stats.Particles != 3 || len(s.circles) != 3 {
		t.Errorf("expected 3 dots, got %d", len(s.circles))
	}
	if stats.Links != 3 {
		t.Errorf("expected 3 links for 3 close particles, got %d", stats.Links)
	}
	for _, l := range s.lines {
		if l.a == l.b {
			t.Error("particle linked to itself")
		}
		if l.width != DefaultLinkWidth {
			t.Errorf("expected width %f, got %f", DefaultLinkWidth, l.width)
		}
	}
}

func TestLinkAlphaClamp(t *testing.T) {
	f := newTestField(10)
	tests := []struct {
		d        float64
		expected float64
	}{
		{0, 0.15},
		{50, 0.1},
		{100, 0.05},
		{150, 0},
		{200, 0},
		{1000, 0},
	}
	for _, tt := range tests {
		got := f.LinkAlpha(tt.d)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("d=%f: expected alpha %f, got %f", tt.d, tt.expected, got)
		}
		if got < 0 {
			t.Errorf("d=%f: negative alpha %f", tt.d, got)
		}
	}
}

func TestDrawSkipsTransparentLinks(t *testing.T) {
	p := DefaultParams()
	p.LinkDistance = 300
	f := New(p, rand.New(rand.NewSource(11)))
	f.Resize(800, 600)
	f.particles = []Particle{
		{Pos: r2.Vec{X: 100, Y: 100}, Radius: 1},
		{Pos: r2.Vec{X: 260, Y: 100}, Radius: 1},
	}
	s := &recordingSurface{}
	stats := f.Draw(s, false)
	if stats.Links != 0 || len(s.lines) != 0 {
		t.Errorf("expected transparent link skipped, got %d", len(s.lines))
	}
}

func TestDrawModeColors(t *testing.T) {
	f := newTestField(12)
	f.Resize(800, 600)
	f.particles = []Particle{
		{Pos: r2.Vec{X: 100, Y: 100}, Radius: 2},
		{Pos: r2.Vec{X: 150, Y: 100}, Radius: 2},
	}
	before := append([]Particle(nil), f.particles...)

	light := &recordingSurface{}
	f.Draw(light, false)
	dark := &recordingSurface{}
	f.Draw(dark, true)

	if light.circles[0].c != RGBA(37, 99, 235, 0.3) {
		t.Errorf("unexpected light dot color %v", light.circles[0].c)
	}
	if dark.circles[0].c != RGBA(96, 165, 250, 0.4) {
		t.Errorf("unexpected dark dot color %v", dark.circles[0].c)
	}
	if light.lines[0].c.R == dark.lines[0].c.R && light.lines[0].c.G == dark.lines[0].c.G {
		t.Error("expected link color to differ between modes")
	}
	if light.lines[0].c.A != dark.lines[0].c.A {
		t.Error("link alpha depends on distance only")
	}
	for i := range before {
		if f.particles[i] != before[i] {
			t.Errorf("drawing changed particle %d", i)
		}
	}
}

func TestDrawClearsFirst(t *testing.T) {
	f := newTestField(13)
	f.Resize(800, 600)
	s := &recordingSurface{}
	f.Draw(s, false)
	f.Draw(s, false)
	if s.clears != 2 {
		t.Errorf("expected one clear per frame, got %d", s.clears)
	}
	if len(s.circles) != f.Len() {
		t.Errorf("expected %d dots after redraw, got %d", f.Len(), len(s.circles))
	}
}

func TestPointer(t *testing.T) {
	p := NewPointer()
	if p.Pos() != Offscreen || p.Inside() {
		t.Errorf("expected offscreen pointer, got %v", p.Pos())
	}
	p.Move(10, 20)
	if p.Pos() != (r2.Vec{X: 10, Y: 20}) || !p.Inside() {
		t.Errorf("expected (10,20), got %v", p.Pos())
	}
	p.Leave()
	if p.Pos() != Offscreen {
		t.Errorf("expected offscreen after leave, got %v", p.Pos())
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero density", func(p *Params) { p.Density = 0 }},
		{"negative radius", func(p *Params) { p.RepulsionRadius = -1 }},
		{"negative strength", func(p *Params) { p.RepulsionStrength = -1 }},
		{"inverted radii", func(p *Params) { p.MaxRadius = 0.5 }},
		{"alpha over one", func(p *Params) { p.LinkAlphaBase = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("Dark"); err != nil || m != Dark {
		t.Errorf("expected dark, got %v %v", m, err)
	}
	if m, err := ParseMode("light"); err != nil || m != Light {
		t.Errorf("expected light, got %v %v", m, err)
	}
	if _, err := ParseMode("sepia"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
	if Dark.Toggle() != Light || Light.Toggle() != Dark {
		t.Error("toggle should flip mode")
	}
}

func TestColorString(t *testing.T) {
	if s := RGBA(37, 99, 235, 0.3).String(); s != "rgba(37,99,235,0.3)" {
		t.Errorf("unexpected css %s", s)
	}
	if s := RGBA(1, 2, 3, 0).String(); s != "rgba(1,2,3,0)" {
		t.Errorf("unexpected css %s", s)
	}
	if h := RGBA(96, 165, 250, 1).Hex(); h != "#60a5fa" {
		t.Errorf("unexpected hex %s", h)
	}
	if a := RGBA(0, 0, 0, -0.5).NRGBA().A; a != 0 {
		t.Errorf("negative alpha should clamp to 0, got %d", a)
	}
}
