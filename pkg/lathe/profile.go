package lathe

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Default profile dimensions, in mesh units.
const (
	DefaultSegments    = 40
	DefaultRings       = 20
	DefaultRingHeight  = 0.1
	DefaultOuterRadius = 1.0
	DefaultInnerRadius = 0.9
)

// Sculpting defaults.
const (
	DefaultReach      = 2.0
	DefaultMinRadius  = 0.5
	DefaultMaxRadius  = 2.0
	DefaultBaseHeight = 0.2

	MinReach = 1.0
	MaxReach = 4.0

	MinStrengthLevel = 1.0
	MaxStrengthLevel = 10.0

	// strengthPerLevel converts a 1..10 strength level into a per-unit
	// pointer displacement factor.
	strengthPerLevel = 0.005
)

// ErrInvalidProfile is wrapped by every Profile.Validate failure.
var ErrInvalidProfile = errors.New("invalid lathe profile")

// Profile describes the blank a Mesh is turned from. It is treated as
// immutable once a mesh has been generated from it.
type Profile struct {
	Rings       int     `json:"rings"`    // height subdivisions
	Segments    int     `json:"segments"` // circumferential subdivisions
	RingHeight  float64 `json:"ringHeight"`
	OuterRadius float64 `json:"outerRadius"`
	InnerRadius float64 `json:"innerRadius"`
}

// DefaultProfile returns the blank used by the throwing wheel.
func DefaultProfile() Profile {
	return Profile{
		Rings:       DefaultRings,
		Segments:    DefaultSegments,
		RingHeight:  DefaultRingHeight,
		OuterRadius: DefaultOuterRadius,
		InnerRadius: DefaultInnerRadius,
	}
}

// Validate reports whether the profile can be turned into a mesh.
func (p Profile) Validate() error {
	switch {
	case p.Rings < 1:
		return fmt.Errorf("%w: rings = %d, need at least 1", ErrInvalidProfile, p.Rings)
	case p.Segments < 3:
		return fmt.Errorf("%w: segments = %d, need at least 3", ErrInvalidProfile, p.Segments)
	case !(p.RingHeight > 0):
		return fmt.Errorf("%w: ring height %g must be positive", ErrInvalidProfile, p.RingHeight)
	case !(p.InnerRadius > 0):
		return fmt.Errorf("%w: inner radius %g must be positive", ErrInvalidProfile, p.InnerRadius)
	case !(p.InnerRadius < p.OuterRadius):
		return fmt.Errorf("%w: inner radius %g must be less than outer radius %g",
			ErrInvalidProfile, p.InnerRadius, p.OuterRadius)
	}
	return nil
}

// Height returns the height of the top cap.
func (p Profile) Height() float64 {
	return float64(p.Rings) * p.RingHeight
}

// Params bounds a deformation pass.
type Params struct {
	Reach      float64 `json:"reach"` // influence radius, in rings
	MinRadius  float64 `json:"minRadius"`
	MaxRadius  float64 `json:"maxRadius"`
	BaseHeight float64 `json:"baseHeight"` // vertices that started below this never move vertically
	TopHeight  float64 `json:"topHeight"`
}

// DefaultParams returns the wheel's sculpting limits for a profile.
func DefaultParams(p Profile) Params {
	return Params{
		Reach:      DefaultReach,
		MinRadius:  DefaultMinRadius,
		MaxRadius:  DefaultMaxRadius,
		BaseHeight: DefaultBaseHeight,
		TopHeight:  p.Height(),
	}
}

// StrengthForLevel maps a strength level (clamped to 1..10) to the factor
// applied to pointer deltas.
func StrengthForLevel(level float64) float64 {
	return strengthPerLevel * ClampLevel(level)
}

// ClampLevel limits a strength level to [MinStrengthLevel, MaxStrengthLevel].
func ClampLevel(level float64) float64 {
	return lo.Clamp(level, MinStrengthLevel, MaxStrengthLevel)
}

// ClampReach limits an influence radius to [MinReach, MaxReach].
func ClampReach(reach float64) float64 {
	return lo.Clamp(reach, MinReach, MaxReach)
}
