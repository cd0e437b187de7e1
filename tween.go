package tau

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
)

// springRest is the distance and speed below which a spring snaps to its
// target.
const springRest = 1e-3

// UnitTween drives the factor of one animated unit toward 0 or 1. A tween
// transition runs a gween tween; a spring transition runs a harmonica spring.
// Call Update(dt) each frame.
type UnitTween struct {
	tr Transition

	value  float64
	target float64
	delay  float64

	tween *gween.Tween

	spring   harmonica.Spring
	springDT float32
	velocity float64

	// Done is true when the factor rests at its target.
	Done bool
}

// NewUnitTween returns a tween resting at value.
func NewUnitTween(tr Transition, value float64) *UnitTween {
	v := Clamp01(value)
	return &UnitTween{tr: tr, value: v, target: v, Done: true}
}

// Value returns the current factor.
func (u *UnitTween) Value() float64 { return u.value }

// Target returns the factor the tween is moving toward.
func (u *UnitTween) Target() float64 { return u.target }

// Retarget starts a transition from the current factor to target after delay
// seconds. Any transition in flight is abandoned.
func (u *UnitTween) Retarget(target, delay float64) {
	u.target = Clamp01(target)
	u.delay = max(delay, 0) + max(u.tr.Delay, 0)
	u.tween = nil
	u.velocity = 0
	u.Done = u.value == u.target
	if u.Done {
		u.delay = 0
		return
	}
	if u.tr.Type == TransitionTween {
		u.tween = gween.New(float32(u.value), float32(u.target), float32(u.tr.Seconds()), u.tr.easing())
	}
}

// Snap jumps to v and stops any transition.
func (u *UnitTween) Snap(v float64) {
	u.value = Clamp01(v)
	u.target = u.value
	u.delay = 0
	u.tween = nil
	u.velocity = 0
	u.Done = true
}

// Update advances the transition by dt seconds and reports whether the
// factor changed.
func (u *UnitTween) Update(dt float32) bool {
	if u.Done || dt <= 0 {
		return false
	}
	if u.delay > 0 {
		u.delay -= float64(dt)
		if u.delay > 0 {
			return false
		}
		dt = float32(-u.delay)
		u.delay = 0
		if dt <= 0 {
			return false
		}
	}

	prev := u.value
	if u.tr.Type == TransitionTween {
		u.stepTween(dt)
	} else {
		u.stepSpring(dt)
	}
	return u.value != prev
}

func (u *UnitTween) stepTween(dt float32) {
	if u.tween == nil || u.tr.Seconds() <= 0 {
		u.value = u.target
		u.Done = true
		return
	}
	v, finished := u.tween.Update(dt)
	if finished {
		u.value = u.target
		u.Done = true
		return
	}
	// Overshooting curves such as OutBack leave [0, 1] mid-flight.
	u.value = float64(v)
}

func (u *UnitTween) stepSpring(dt float32) {
	omega := u.tr.Spring.AngularFrequency()
	zeta := u.tr.Spring.DampingRatio()
	if !finite(omega) || !finite(zeta) || omega <= 0 {
		u.value = u.target
		u.Done = true
		return
	}
	if dt != u.springDT {
		u.spring = harmonica.NewSpring(float64(dt), omega, zeta)
		u.springDT = dt
	}
	u.value, u.velocity = u.spring.Update(u.value, u.velocity, u.target)
	if math.Abs(u.value-u.target) < springRest && math.Abs(u.velocity) < springRest {
		u.value = u.target
		u.velocity = 0
		u.Done = true
	}
}

// TweenGroup owns one UnitTween per animated unit. Units are addressed by
// document order: words for GranularityWord, lines for GranularityLine.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	units []*UnitTween
	Done  bool
}

// NewTweenGroup returns n units resting at value.
func NewTweenGroup(tr Transition, n int, value float64) *TweenGroup {
	g := &TweenGroup{units: make([]*UnitTween, n), Done: true}
	for i := range g.units {
		g.units[i] = NewUnitTween(tr, value)
	}
	return g
}

// Len returns the number of units.
func (g *TweenGroup) Len() int { return len(g.units) }

// Unit returns unit i.
func (g *TweenGroup) Unit(i int) *UnitTween { return g.units[i] }

// Retarget sends every unit toward target, unit i waiting delays[i] seconds.
// Missing delays count as zero.
func (g *TweenGroup) Retarget(target float64, delays []float64) {
	for i, u := range g.units {
		var d float64
		if i < len(delays) {
			d = delays[i]
		}
		u.Retarget(target, d)
	}
	g.Done = g.allDone()
}

// Snap jumps every unit to v.
func (g *TweenGroup) Snap(v float64) {
	for _, u := range g.units {
		u.Snap(v)
	}
	g.Done = true
}

// Update advances all units by dt seconds and reports whether any factor
// changed.
func (g *TweenGroup) Update(dt float32) bool {
	if g.Done {
		return false
	}
	changed := false
	for _, u := range g.units {
		if u.Update(dt) {
			changed = true
		}
	}
	g.Done = g.allDone()
	return changed
}

// Values appends the current factor of every unit to dst[:0].
func (g *TweenGroup) Values(dst []float64) []float64 {
	dst = dst[:0]
	for _, u := range g.units {
		dst = append(dst, u.value)
	}
	return dst
}

func (g *TweenGroup) allDone() bool {
	for _, u := range g.units {
		if !u.Done {
			return false
		}
	}
	return true
}
