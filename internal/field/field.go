package field

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Particle is a simulated point. Radius is fixed at creation.
type Particle struct {
	Pos    r2.Vec
	Vel    r2.Vec
	Radius float64
}

// Stats summarizes one drawn frame.
type Stats struct {
	Particles int
	Links     int
}

// Field is the particle set of one drawing surface.
type Field struct {
	params        Params
	rng           *rand.Rand
	width, height float64
	particles     []Particle
}

// New creates an empty field. Call Resize to populate it. A nil rng is
// replaced by a time-independent source seeded with 1.
func New(params Params, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Field{params: params, rng: rng}
}

// ParticleCount returns floor(width*height/density), or 0 for an empty area.
func ParticleCount(width, height, density float64) int {
	if width <= 0 || height <= 0 || density <= 0 {
		return 0
	}
	return int(math.Floor(width * height / density))
}

func (f *Field) Params() Params { return f.params }

func (f *Field) Size() (width, height float64) { return f.width, f.height }

func (f *Field) Len() int { return len(f.particles) }

// Particles returns the live particle slice. Callers must not retain it
// across a Resize.
func (f *Field) Particles() []Particle { return f.particles }

// Resize sets the bounds and regenerates the whole particle set. Existing
// particles are discarded.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
	n := ParticleCount(width, height, f.params.Density)
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = f.spawn()
	}
	f.particles = particles
}

func (f *Field) spawn() Particle {
	drift := f.params.MaxDrift
	return Particle{
		Pos: r2.Vec{
			X: f.rng.Float64() * f.width,
			Y: f.rng.Float64() * f.height,
		},
		Vel: r2.Vec{
			X: (f.rng.Float64()*2 - 1) * drift,
			Y: (f.rng.Float64()*2 - 1) * drift,
		},
		Radius: f.params.MinRadius + f.rng.Float64()*(f.params.MaxRadius-f.params.MinRadius),
	}
}

// Step advances every particle by one frame in index order: drift, bounce
// off the bounds, then a transient push away from the pointer.
//
// Bouncing only flips the velocity component; the position is left where it
// landed, so a particle can overshoot an edge by up to one step.
func (f *Field) Step(pointer r2.Vec) {
	for i := range f.particles {
		p := &f.particles[i]
		p.Pos = r2.Add(p.Pos, p.Vel)

		if p.Pos.X < 0 || p.Pos.X > f.width {
			p.Vel.X = -p.Vel.X
		}
		if p.Pos.Y < 0 || p.Pos.Y > f.height {
			p.Vel.Y = -p.Vel.Y
		}

		push := Push(p.Pos, pointer, f.params.RepulsionRadius, f.params.RepulsionStrength)
		p.Pos = r2.Sub(p.Pos, push)
	}
}

// Push returns the vector that moves pos away from pointer when subtracted
// from it. The magnitude falls off linearly from strength at zero distance
// to zero at radius. A particle exactly under the pointer is pushed along -x.
func Push(pos, pointer r2.Vec, radius, strength float64) r2.Vec {
	toPointer := r2.Sub(pointer, pos)
	d := r2.Norm(toPointer)
	if d >= radius {
		return r2.Vec{}
	}
	force := strength * (radius - d) / radius
	dir := r2.Vec{X: 1}
	if d > 0 {
		dir = r2.Scale(1/d, toPointer)
	}
	return r2.Scale(force, dir)
}

// LinkAlpha returns the stroke alpha of a link of length d, clamped at zero.
func (f *Field) LinkAlpha(d float64) float64 {
	return linkAlpha(d, f.params)
}

func linkAlpha(d float64, p Params) float64 {
	a := p.LinkAlphaBase - d/p.LinkAlphaFalloff
	if a < 0 {
		return 0
	}
	return a
}

// Draw clears s and paints the current particles and links. Links are drawn
// for each unordered pair closer than LinkDistance whose alpha is positive.
func (f *Field) Draw(s Surface, dark bool) Stats {
	pal := PaletteFor(dark)
	s.Clear()

	for _, p := range f.particles {
		s.FillCircle(p.Pos, p.Radius, pal.Dot)
	}

	links := 0
	for i := 0; i < len(f.particles); i++ {
		a := f.particles[i].Pos
		for j := i + 1; j < len(f.particles); j++ {
			b := f.particles[j].Pos
			d := r2.Norm(r2.Sub(a, b))
			if d >= f.params.LinkDistance {
				continue
			}
			alpha := linkAlpha(d, f.params)
			if alpha <= 0 {
				continue
			}
			s.StrokeLine(a, b, f.params.LinkWidth, pal.Link.WithAlpha(alpha))
			links++
		}
	}

	return Stats{Particles: len(f.particles), Links: links}
}
