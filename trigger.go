package tau

// TriggerMode selects how a discrete widget decides it is in view.
type TriggerMode uint8

const (
	// TriggerOnAppear fires the first time any part of the element is
	// visible. It never replays.
	TriggerOnAppear TriggerMode = iota
	// TriggerLayerInView fires when the visible fraction reaches Amount and
	// may replay when the element leaves the viewport again.
	TriggerLayerInView
)

// String returns the panel value of the mode.
func (m TriggerMode) String() string {
	if m == TriggerLayerInView {
		return "layerInView"
	}
	return "onAppear"
}

// ParseTriggerMode maps "layerInView" to TriggerLayerInView and anything else
// to TriggerOnAppear.
func ParseTriggerMode(s string) TriggerMode {
	if s == "layerInView" {
		return TriggerLayerInView
	}
	return TriggerOnAppear
}

// Visibility amounts offered by the panel.
const (
	AmountSome = 0.0 // any overlap
	AmountHalf = 0.5
	AmountAll  = 1.0
)

// ParseAmount maps the panel values "some", "half" and "all".
func ParseAmount(s string) float64 {
	switch s {
	case "half":
		return AmountHalf
	case "all":
		return AmountAll
	default:
		return AmountSome
	}
}

// TriggerState is the binary state of a Trigger.
type TriggerState uint8

const (
	OutOfView TriggerState = iota
	InView
)

// String returns "outOfView" or "inView".
func (s TriggerState) String() string {
	if s == InView {
		return "inView"
	}
	return "outOfView"
}

// Trigger is the view-intersection state machine of the appear widgets.
type Trigger struct {
	mode   TriggerMode
	amount float64
	replay bool

	state  TriggerState
	locked bool
}

// NewTrigger returns a trigger in the OutOfView state. Amount and replay only
// apply to TriggerLayerInView; TriggerOnAppear always uses AmountSome and is
// one-shot.
func NewTrigger(mode TriggerMode, amount float64, replay bool) *Trigger {
	t := &Trigger{mode: mode, amount: Clamp01(amount), replay: replay}
	if mode == TriggerOnAppear {
		t.amount = AmountSome
		t.replay = false
	}
	return t
}

// State returns the current state.
func (t *Trigger) State() TriggerState { return t.state }

// Mode returns the trigger mode.
func (t *Trigger) Mode() TriggerMode { return t.mode }

// Amount returns the visibility fraction the trigger waits for.
func (t *Trigger) Amount() float64 { return t.amount }

// Replay reports whether the trigger can return to OutOfView.
func (t *Trigger) Replay() bool { return t.replay }

// satisfied reports whether ratio meets the visibility predicate. AmountSome
// needs a strictly positive overlap.
func (t *Trigger) satisfied(ratio float64) bool {
	if t.amount == AmountSome {
		return ratio > 0
	}
	return ratio >= t.amount
}

// Observe feeds a visible fraction in [0, 1] and reports whether the state
// changed.
func (t *Trigger) Observe(ratio float64) bool {
	if t.locked {
		return false
	}
	ok := t.satisfied(Clamp01(ratio))
	switch {
	case t.state == OutOfView && ok:
		t.state = InView
		if !t.replay {
			t.locked = true
		}
		return true
	case t.state == InView && !ok:
		t.state = OutOfView
		return true
	}
	return false
}

// ObserveRects feeds the fraction of element that lies inside viewport.
func (t *Trigger) ObserveRects(element, viewport Rect) bool {
	return t.Observe(VisibleRatio(element, viewport))
}

// Reset returns the trigger to OutOfView and unlocks it.
func (t *Trigger) Reset() {
	t.state = OutOfView
	t.locked = false
}

// VisibleRatio returns the fraction of element's area inside viewport. A
// zero-area element counts as fully visible when its origin is inside.
func VisibleRatio(element, viewport Rect) float64 {
	area := element.Area()
	if area <= 0 {
		if viewport.Contains(element.X, element.Y) {
			return 1
		}
		return 0
	}
	return Clamp01(element.Intersection(viewport).Area() / area)
}
