package session

import (
	"math"

	"github.com/chazu/kiln/pkg/lathe"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
)

// tuneThreshold is the smallest pointer movement that changes a setting.
const tuneThreshold = 0.01

// SculptorConfig configures a Sculptor.
type SculptorConfig struct {
	Profile lathe.Profile
	Params  lathe.Params

	StrengthLevel float64 // initial level, see lathe.StrengthForLevel
	StrengthRate  float64 // level change per pixel of horizontal right-drag
	ReachRate     float64 // reach change per pixel of vertical right-drag

	IndicatorMin  float64 // indicator size in UI pixels at the minimum reach
	IndicatorMax  float64 // indicator size at the maximum reach
	IndicatorEase float64 // fraction of the gap closed per 60 Hz frame
}

// DefaultSculptorConfig returns the settings of the pottery wheel.
func DefaultSculptorConfig() SculptorConfig {
	p := lathe.DefaultProfile()
	return SculptorConfig{
		Profile:       p,
		Params:        lathe.DefaultParams(p),
		StrengthLevel: 5,
		StrengthRate:  0.02,
		ReachRate:     0.01,
		IndicatorMin:  30,
		IndicatorMax:  200,
		IndicatorEase: 0.15,
	}
}

// Sculptor shapes a lathe mesh. Holding the primary button pushes or pulls
// the clay at the pointer; holding the secondary button tunes strength with
// horizontal motion and reach with vertical motion.
type Sculptor struct {
	cfg       SculptorConfig
	mesh      *lathe.Mesh
	params    lathe.Params
	level     float64
	indicator float64
}

// NewSculptor generates a fresh blank. It panics on an invalid profile.
func NewSculptor(cfg SculptorConfig) *Sculptor {
	s := &Sculptor{
		cfg:    cfg,
		mesh:   lathe.Generate(cfg.Profile),
		params: cfg.Params,
		level:  lathe.ClampLevel(cfg.StrengthLevel),
	}
	s.params.Reach = lathe.ClampReach(s.params.Reach)
	s.indicator = s.indicatorTarget()
	return s
}

// Mesh returns the mesh being shaped.
func (s *Sculptor) Mesh() *lathe.Mesh { return s.mesh }

// Level returns the strength level in [1, 10].
func (s *Sculptor) Level() float64 { return s.level }

// Reach returns the influence radius in rings.
func (s *Sculptor) Reach() float64 { return s.params.Reach }

// SetLevel sets the strength level, clamped to [1, 10].
func (s *Sculptor) SetLevel(level float64) { s.level = lathe.ClampLevel(level) }

// SetReach sets the influence radius, clamped to [1, 4].
func (s *Sculptor) SetReach(reach float64) { s.params.Reach = lathe.ClampReach(reach) }

// IndicatorSize returns the brush indicator edge length in UI pixels.
func (s *Sculptor) IndicatorSize() float64 { return s.indicator }

// Reset discards all shaping.
func (s *Sculptor) Reset() {
	s.mesh = lathe.Reset(s.cfg.Profile)
}

// Tick processes one frame of input and reports whether the mesh moved.
// The buttons are independent: with both held the settings are tuned
// first and the stroke uses the tuned values.
func (s *Sculptor) Tick(dt float64, in Input) bool {
	defer s.easeIndicator(dt)

	if in.Right {
		s.tune(in)
	}
	if !in.Left {
		return false
	}
	origin, ok := s.contact(in.Ray)
	if !ok {
		return false
	}
	lathe.Deform(s.mesh, lathe.Stroke{
		Origin:   origin,
		DX:       in.Delta.X,
		DY:       in.Delta.Y,
		Strength: lathe.StrengthForLevel(s.level),
	}, s.params)
	return true
}

func (s *Sculptor) tune(in Input) {
	if math.Abs(in.Delta.X) > tuneThreshold {
		s.SetLevel(s.level + in.Delta.X*s.cfg.StrengthRate)
	}
	if math.Abs(in.Delta.Y) > tuneThreshold {
		s.SetReach(s.params.Reach + in.Delta.Y*s.cfg.ReachRate)
	}
}

// contact finds where the pointer touches the clay. A ray that misses is
// intersected with the horizontal plane through the mesh origin and pulled
// onto the silhouette.
func (s *Sculptor) contact(r Ray) (v3.Vec, bool) {
	if hit, ok := s.mesh.Raycast(r.Origin, r.Dir); ok {
		return hit.Point, true
	}
	if r.Dir.Y == 0 {
		return v3.Vec{}, false
	}
	t := -r.Origin.Y / r.Dir.Y
	if t < 0 {
		return v3.Vec{}, false
	}
	return s.cfg.Profile.ProjectMiss(r.Origin.Add(r.Dir.MulScalar(t)))
}

func (s *Sculptor) indicatorTarget() float64 {
	t := (s.params.Reach - lathe.MinReach) / (lathe.MaxReach - lathe.MinReach)
	return s.cfg.IndicatorMin + (s.cfg.IndicatorMax-s.cfg.IndicatorMin)*lo.Clamp(t, 0, 1)
}

func (s *Sculptor) easeIndicator(dt float64) {
	k := 1 - math.Pow(1-s.cfg.IndicatorEase, dt*60)
	s.indicator += (s.indicatorTarget() - s.indicator) * lo.Clamp(k, 0, 1)
}
