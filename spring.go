package tau

import (
	"math"

	"github.com/tanema/gween/ease"
)

// MaxSettlingTime bounds every duration derived from a spring. Degenerate
// springs (zero stiffness, zero mass, zero damping) settle at this bound.
const MaxSettlingTime = 1e10

// settleFraction is the band around the rest position a spring must stay in
// to count as settled.
const settleFraction = 0.01

// SettlingTime returns how long a damped spring takes to stay within 1% of
// its rest position. Non-finite intermediate values clamp to MaxSettlingTime.
func SettlingTime(stiffness, damping, mass float64) float64 {
	omega := math.Sqrt(stiffness / mass)
	zeta := damping / (2 * math.Sqrt(stiffness*mass))
	if !finite(omega) || !finite(zeta) || omega <= 0 {
		return MaxSettlingTime
	}

	logBand := math.Log(settleFraction)
	var t float64
	switch {
	case zeta < 1:
		t = -logBand / (zeta * omega)
	case zeta == 1:
		t = -logBand / omega
	default:
		t = math.Abs(logBand) / (zeta*omega - omega*math.Sqrt(zeta*zeta-1))
	}

	if math.IsNaN(t) || t < 0 || t > MaxSettlingTime {
		return MaxSettlingTime
	}
	return t
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Spring describes a physical spring in the stiffness/damping/mass form used
// by the property panel.
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// DefaultSpring matches the panel's default spring transition.
var DefaultSpring = Spring{Stiffness: 500, Damping: 60, Mass: 1}

// AngularFrequency returns ω₀ = sqrt(k/m).
func (s Spring) AngularFrequency() float64 {
	return math.Sqrt(s.Stiffness / s.Mass)
}

// DampingRatio returns ζ = c / (2·sqrt(k·m)).
func (s Spring) DampingRatio() float64 {
	return s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))
}

// SettlingTime is SettlingTime(s.Stiffness, s.Damping, s.Mass).
func (s Spring) SettlingTime() float64 {
	return SettlingTime(s.Stiffness, s.Damping, s.Mass)
}

// TransitionType selects between time-based easing and spring physics.
type TransitionType uint8

const (
	TransitionSpring TransitionType = iota // physical spring (default)
	TransitionTween                        // fixed duration with an easing curve
)

// Transition is the per-unit transition configured for an animation.
type Transition struct {
	Type     TransitionType
	Duration float64 // seconds, tween only
	Ease     ease.TweenFunc
	Spring   Spring
	Delay    float64 // seconds added before every unit's own delay
}

// DefaultTransition is a spring with DefaultSpring parameters.
var DefaultTransition = Transition{Type: TransitionSpring, Spring: DefaultSpring}

// Seconds returns the duration the stagger math uses: the tween duration, or
// the spring's settling time.
func (t Transition) Seconds() float64 {
	if t.Type == TransitionSpring {
		return t.Spring.SettlingTime()
	}
	if !finite(t.Duration) || t.Duration < 0 {
		return 0
	}
	return t.Duration
}

// easing returns the configured curve, defaulting to ease.Linear.
func (t Transition) easing() ease.TweenFunc {
	if t.Ease == nil {
		return ease.Linear
	}
	return t.Ease
}
