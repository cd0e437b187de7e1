package tau

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"
)

// ProgressObserver receives a continuous progress value in [0, 1].
type ProgressObserver interface {
	OnChange(value float64)
}

// ObserverFunc adapts a function to ProgressObserver.
type ObserverFunc func(value float64)

// OnChange calls fn.
func (fn ObserverFunc) OnChange(value float64) { fn(value) }

// ProgressSource is a continuous driver. Subscribe returns a function that
// releases the subscription; calling it more than once is a no-op.
type ProgressSource interface {
	Value() float64
	Subscribe(o ProgressObserver) (unsubscribe func())
}

// observers is the subscriber list shared by the sources in this file.
type observers struct {
	next uint64
	subs []subscription
}

type subscription struct {
	id uint64
	o  ProgressObserver
}

func (s *observers) add(o ProgressObserver) func() {
	s.next++
	id := s.next
	s.subs = append(s.subs, subscription{id: id, o: o})
	return func() { s.remove(id) }
}

func (s *observers) remove(id uint64) {
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *observers) len() int { return len(s.subs) }

func (s *observers) notify(v float64) {
	// Observers may unsubscribe during notification.
	subs := append([]subscription(nil), s.subs...)
	for _, sub := range subs {
		sub.o.OnChange(v)
	}
}

// --- ProgressValue ---

// ProgressValue is a settable progress value.
type ProgressValue struct {
	value float64
	obs   observers
}

// NewProgressValue returns a source holding v, clamped.
func NewProgressValue(v float64) *ProgressValue {
	return &ProgressValue{value: Clamp01(v)}
}

// Value returns the current value.
func (p *ProgressValue) Value() float64 { return p.value }

// Set changes the value and notifies subscribers if it changed.
func (p *ProgressValue) Set(v float64) {
	v = Clamp01(v)
	if v == p.value {
		return
	}
	p.value = v
	p.obs.notify(v)
}

// Publish sets the value and notifies subscribers even when it is unchanged,
// so an explicit value always reaches widgets still showing their preview.
func (p *ProgressValue) Publish(v float64) {
	p.value = Clamp01(v)
	p.obs.notify(p.value)
}

// Subscribe implements ProgressSource.
func (p *ProgressValue) Subscribe(o ProgressObserver) func() {
	return p.obs.add(o)
}

// Subscribers returns the number of live subscriptions.
func (p *ProgressValue) Subscribers() int { return p.obs.len() }

// --- ScrollProgress ---

// SectionLocator finds a named section of the page. Top is measured from the
// top of the document.
type SectionLocator interface {
	Section(id string) (top, height float64, ok bool)
}

// SectionMap is a SectionLocator backed by a map of document rectangles.
type SectionMap map[string]Rect

// Section implements SectionLocator.
func (m SectionMap) Section(id string) (top, height float64, ok bool) {
	r, ok := m[id]
	return r.Y, r.Height, ok
}

// ScrollProgress turns a page scroll position into progress. Without a
// target it reports page progress; with a target it reports how far the
// page progress has moved through the section's share of the page.
type ScrollProgress struct {
	scrollY        float64
	pageHeight     float64
	viewportHeight float64

	target  string
	locator SectionLocator
	log     *zap.Logger

	value float64
	obs   observers
}

// NewScrollProgress returns a page-progress source. A nil logger is replaced
// with a no-op logger.
func NewScrollProgress(pageHeight, viewportHeight float64, locator SectionLocator, logger *zap.Logger) *ScrollProgress {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ScrollProgress{
		pageHeight:     pageHeight,
		viewportHeight: viewportHeight,
		locator:        locator,
		log:            logger,
	}
	s.value = s.compute()
	return s
}

// Value returns the current progress.
func (s *ScrollProgress) Value() float64 { return s.value }

// Subscribe implements ProgressSource.
func (s *ScrollProgress) Subscribe(o ProgressObserver) func() {
	return s.obs.add(o)
}

// SetScroll updates the scroll offset.
func (s *ScrollProgress) SetScroll(y float64) {
	s.scrollY = y
	s.Refresh()
}

// SetPage updates the document and viewport heights.
func (s *ScrollProgress) SetPage(pageHeight, viewportHeight float64) {
	s.pageHeight = pageHeight
	s.viewportHeight = viewportHeight
	s.Refresh()
}

// SetTarget selects a section by id; a leading '#' is ignored. The empty
// string selects the whole page.
func (s *ScrollProgress) SetTarget(id string) {
	s.target = strings.TrimPrefix(id, "#")
	if s.target != "" && s.locator != nil {
		if _, _, ok := s.locator.Section(s.target); !ok {
			s.log.Warn("scroll target not found, progress stays at 0", zap.String("target", s.target))
		}
	}
	s.Refresh()
}

// Refresh re-reads the section geometry and notifies subscribers when the
// value changed. Call it after the section moves or resizes.
func (s *ScrollProgress) Refresh() {
	v := s.compute()
	if v == s.value {
		return
	}
	s.value = v
	s.obs.notify(v)
}

// PageProgress returns scrollY / (pageHeight - viewportHeight), clamped.
func (s *ScrollProgress) PageProgress() float64 {
	scrollable := s.pageHeight - s.viewportHeight
	if scrollable <= 0 || !finite(scrollable) {
		return 0
	}
	return Clamp01(s.scrollY / scrollable)
}

func (s *ScrollProgress) compute() float64 {
	page := s.PageProgress()
	if s.target == "" {
		return page
	}
	if s.locator == nil || s.pageHeight <= 0 {
		return 0
	}
	top, height, ok := s.locator.Section(s.target)
	if !ok {
		return 0
	}
	from := top / s.pageHeight
	to := (top + height) / s.pageHeight
	if to <= from {
		if page >= from {
			return 1
		}
		return 0
	}
	return Clamp01((page - from) / (to - from))
}

// --- SpringProgress ---

// SpringProgress smooths another source with a spring. Call Update(dt) once
// per frame; subscribers are notified while the value is moving.
type SpringProgress struct {
	src   ProgressSource
	unsub func()

	omega, zeta float64
	instant     bool

	spring   harmonica.Spring
	springDT float64

	value    float64
	velocity float64
	target   float64
	obs      observers
}

// NewSpringProgress subscribes to src. A spring transition uses its own
// frequency and damping; a tween transition becomes a critically damped
// spring that settles in the tween's duration.
func NewSpringProgress(src ProgressSource, tr Transition) *SpringProgress {
	s := &SpringProgress{src: src}
	switch tr.Type {
	case TransitionTween:
		d := tr.Seconds()
		if d <= 0 {
			s.instant = true
		} else {
			s.omega = -math.Log(settleFraction) / d
			s.zeta = 1
		}
	default:
		s.omega = tr.Spring.AngularFrequency()
		s.zeta = tr.Spring.DampingRatio()
		if !finite(s.omega) || !finite(s.zeta) || s.omega <= 0 {
			s.instant = true
		}
	}
	s.value = src.Value()
	s.target = s.value
	s.unsub = src.Subscribe(ObserverFunc(s.onSource))
	return s
}

func (s *SpringProgress) onSource(v float64) {
	s.target = v
	if s.instant {
		s.set(v)
	}
}

// Value returns the smoothed value.
func (s *SpringProgress) Value() float64 { return s.value }

// Target returns the latest value of the underlying source.
func (s *SpringProgress) Target() float64 { return s.target }

// Subscribe implements ProgressSource.
func (s *SpringProgress) Subscribe(o ProgressObserver) func() {
	return s.obs.add(o)
}

// Settled reports whether the smoothed value has reached the source value.
func (s *SpringProgress) Settled() bool {
	return s.value == s.target && s.velocity == 0
}

// Update advances the spring by dt seconds.
func (s *SpringProgress) Update(dt float64) {
	if s.Settled() || dt <= 0 {
		return
	}
	if s.instant {
		s.set(s.target)
		return
	}
	if dt != s.springDT {
		s.spring = harmonica.NewSpring(dt, s.omega, s.zeta)
		s.springDT = dt
	}
	v, vel := s.spring.Update(s.value, s.velocity, s.target)
	s.velocity = vel
	if math.Abs(v-s.target) < springRest/10 && math.Abs(vel) < springRest/10 {
		v = s.target
		s.velocity = 0
	}
	s.set(v)
}

func (s *SpringProgress) set(v float64) {
	if v == s.value {
		return
	}
	s.value = v
	s.obs.notify(v)
}

// Close releases the subscription to the underlying source.
func (s *SpringProgress) Close() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}
