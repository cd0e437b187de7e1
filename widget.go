package tau

import (
	"go.uber.org/zap"
)

// WidgetKind identifies one of the four text effects.
type WidgetKind uint8

const (
	KindAnimatorAppear WidgetKind = iota
	KindAnimatorScroll
	KindHighlighterAppear
	KindHighlighterScroll
)

// String returns the kind's config name.
func (k WidgetKind) String() string {
	switch k {
	case KindAnimatorScroll:
		return "animatorScroll"
	case KindHighlighterAppear:
		return "highlighterAppear"
	case KindHighlighterScroll:
		return "highlighterScroll"
	default:
		return "animatorAppear"
	}
}

// ParseWidgetKind maps a config name to a kind.
func ParseWidgetKind(s string) (WidgetKind, bool) {
	for _, k := range [...]WidgetKind{KindAnimatorAppear, KindAnimatorScroll, KindHighlighterAppear, KindHighlighterScroll} {
		if k.String() == s {
			return k, true
		}
	}
	return KindAnimatorAppear, false
}

// Preview names the state a widget shows before its driver first moves.
type Preview uint8

const (
	PreviewStart Preview = iota // "state1"
	PreviewEnd                  // "state2"
)

// ParsePreview maps "state2" to PreviewEnd and anything else to PreviewStart.
func ParsePreview(s string) Preview {
	if s == "state2" {
		return PreviewEnd
	}
	return PreviewStart
}

func (p Preview) factor() float64 {
	if p == PreviewEnd {
		return 1
	}
	return 0
}

// FrameSink receives every frame a widget produces.
type FrameSink interface {
	PublishFrame(f *Frame)
}

// FrameSinkFunc adapts a function to FrameSink.
type FrameSinkFunc func(f *Frame)

// PublishFrame calls fn.
func (fn FrameSinkFunc) PublishFrame(f *Frame) { fn(f) }

// Widget is the surface shared by the four effects.
type Widget interface {
	SetText(s string)
	SetStyle(s TextStyle)
	SetWidth(px float64)
	SetMeasurer(m TextMeasurer)
	SetTransition(tr Transition, linePct, wordPct float64)
	Update(dt float32) bool
	Layout() *LayoutResult
	Frame() *Frame
	Label() string
	Close()
}

// Observer is implemented by the appear widgets, which react to the visible
// fraction of their element.
type Observer interface {
	Observe(ratio float64) bool
	ObserveRects(element, viewport Rect) bool
}

var (
	_ Widget   = (*AnimatorAppear)(nil)
	_ Widget   = (*AnimatorScroll)(nil)
	_ Widget   = (*HighlighterAppear)(nil)
	_ Widget   = (*HighlighterScroll)(nil)
	_ Observer = (*AnimatorAppear)(nil)
	_ Observer = (*HighlighterAppear)(nil)
)

// NewWidget builds the widget of the given kind.
func NewWidget(kind WidgetKind, opts Options) Widget {
	switch kind {
	case KindAnimatorScroll:
		return NewAnimatorScroll(opts)
	case KindHighlighterAppear:
		return NewHighlighterAppear(opts)
	case KindHighlighterScroll:
		return NewHighlighterScroll(opts)
	default:
		return NewAnimatorAppear(opts)
	}
}

// Layers are the two stacked copies of each highlighter line.
type Layers struct {
	Start VisualState `json:"start"`
	End   VisualState `json:"end"`
}

// Frame is everything a renderer needs to draw a widget at one instant.
// Text is the unsegmented input for assistive technology; it is never
// animated.
type Frame struct {
	Widget     string    `json:"widget"`
	Text       string    `json:"text"`
	Generation uint64    `json:"generation"`
	Variations string    `json:"fontVariationSettings,omitempty"`
	Lines      []Line    `json:"lines"`
	Offsets    []float64 `json:"offsets"`

	Delays      [][]float64     `json:"delays,omitempty"`
	LineDelays  []float64       `json:"lineDelays,omitempty"`
	Factors     [][]float64     `json:"factors,omitempty"`
	LineFactors []float64       `json:"lineFactors,omitempty"`
	States      [][]VisualState `json:"states,omitempty"`
	Clips       []ClipPair      `json:"clips,omitempty"`
	Layers      *Layers         `json:"layers,omitempty"`
	Trigger     string          `json:"trigger,omitempty"`
}

// Options configures a widget. Start from DefaultOptions; the zero value has
// zero scale and no measurer.
type Options struct {
	Name     string
	Text     string
	Style    TextStyle
	Width    float64
	Measurer TextMeasurer
	Align    TextAlign

	Transition  Transition
	LineStagger float64 // percent, 0..100
	WordStagger float64 // percent, 0..100

	Start VisualState // "state1"
	End   VisualState // "state2"

	Preview        Preview
	PreviewPercent float64 // highlighter scroll only, 0..100

	// Appear widgets.
	Trigger TriggerMode
	Amount  float64
	Replay  bool

	// Scroll widgets. The source is smoothed with Transition unless
	// NoSmoothing is set; a nil source stays at 0.
	Source      ProgressSource
	NoSmoothing bool

	Logger *zap.Logger
	Sink   FrameSink
}

// DefaultText is the sample paragraph the panel starts with.
const DefaultText = "Delftware, the iconic blue and white pottery, originated in the 16th century in the Dutch town of Delft."

// DefaultOptions returns the panel defaults for kind.
func DefaultOptions(kind WidgetKind) Options {
	o := Options{
		Name:        kind.String(),
		Text:        DefaultText,
		Style:       DefaultTextStyle,
		Width:       300,
		Transition:  DefaultTransition,
		LineStagger: 50,
		WordStagger: 50,
		Start:       DefaultStartState,
		End:         DefaultEndState,
		Trigger:     TriggerOnAppear,
		Amount:      AmountSome,
	}
	switch kind {
	case KindAnimatorScroll:
		o.End.Stroke = highlightBlue
	case KindHighlighterAppear, KindHighlighterScroll:
		o.Start = DefaultHighlightStart
		o.End = DefaultHighlightEnd
	}
	return o
}

// widget is the state shared by the four effects: the cached layout, the
// timing derived from the transition, and logging.
type widget struct {
	name   string
	opts   Options
	log    *zap.Logger
	layout *TextLayout
	timing Timing
	gen    uint64
}

func newWidget(kind WidgetKind, opts Options) widget {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	name := opts.Name
	if name == "" {
		name = kind.String()
	}
	w := widget{
		name:   name,
		opts:   opts,
		log:    log,
		layout: NewTextLayout(opts.Text, opts.Style.Metrics(), opts.Width, opts.Measurer),
	}
	w.retime()
	return w
}

func (w *widget) retime() {
	warnStagger(w.log, w.name, "line", w.opts.LineStagger)
	warnStagger(w.log, w.name, "word", w.opts.WordStagger)
	warnSpring(w.log, w.name, w.opts.Transition)
	w.timing = NewTiming(w.opts.Transition, w.opts.LineStagger, w.opts.WordStagger)
}

// Label returns the verbatim input text.
func (w *widget) Label() string { return w.layout.Text() }

// Layout returns the current layout, recomputing it if needed. A recompute
// is logged once; layout always settles before any timing is derived from
// it.
func (w *widget) Layout() *LayoutResult {
	r := w.layout.Result()
	if r.Generation != w.gen {
		w.gen = r.Generation
		debugLog(w.log, w.name, w.layout.stats)
		debugCheckWordCount(w.log, w.name, r.WordCount())
	}
	return r
}

// Timing returns the stagger timing in use.
func (w *widget) Timing() Timing { return w.timing }

func (w *widget) setText(s string) {
	w.opts.Text = s
	w.layout.SetText(s)
}

func (w *widget) setStyle(s TextStyle) {
	w.opts.Style = s
	w.layout.SetStyle(s.Metrics())
}

func (w *widget) setWidth(px float64) {
	w.opts.Width = px
	w.layout.SetWidth(px)
}

func (w *widget) setMeasurer(m TextMeasurer) {
	w.opts.Measurer = m
	w.layout.SetMeasurer(m)
}

func (w *widget) baseFrame(r *LayoutResult) *Frame {
	f := &Frame{
		Widget:     w.name,
		Text:       w.layout.Text(),
		Generation: r.Generation,
		Variations: w.layout.Style().VariationSettings(),
		Lines:      r.Lines,
		Offsets:    make([]float64, r.LineCount()),
	}
	for i := range f.Offsets {
		f.Offsets[i] = r.LineOffset(i, w.opts.Align)
	}
	return f
}

func (w *widget) publish(f *Frame) {
	if w.opts.Sink != nil {
		w.opts.Sink.PublishFrame(f)
	}
}

// statesFor resolves a [line][word] grid of factors to visual states.
func (w *widget) statesFor(factors [][]float64) [][]VisualState {
	out := make([][]VisualState, len(factors))
	for i, row := range factors {
		states := make([]VisualState, len(row))
		for j, f := range row {
			states[j] = LerpState(w.opts.Start, w.opts.End, f)
		}
		out[i] = states
	}
	return out
}

// unflatten splits document-order values into the layout's [line][word]
// shape.
func unflatten(r *LayoutResult, flat []float64) [][]float64 {
	out := make([][]float64, r.LineCount())
	for i, l := range r.Lines {
		start := r.PrecedingWords(i)
		row := make([]float64, len(l.Words))
		copy(row, flat[start:start+len(l.Words)])
		out[i] = row
	}
	return out
}

// clampAll clamps overshooting tween and spring values in place.
func clampAll(vs []float64) []float64 {
	for i, v := range vs {
		vs[i] = Clamp01(v)
	}
	return vs
}

// flatten is the inverse of unflatten.
func flatten(rows [][]float64) []float64 {
	var out []float64
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}

// --- appear widgets ---

// appear is the discrete half shared by AnimatorAppear and
// HighlighterAppear: a trigger and one tween per unit.
type appear struct {
	widget
	gran    Granularity
	trigger *Trigger
	group   *TweenGroup
	values  []float64
	fired   bool   // the trigger has changed state at least once
	synced  uint64 // layout generation the group was built for
}

func newAppear(kind WidgetKind, gran Granularity, opts Options) appear {
	a := appear{
		widget:  newWidget(kind, opts),
		gran:    gran,
		trigger: NewTrigger(opts.Trigger, opts.Amount, opts.Replay),
	}
	a.sync()
	return a
}

func (a *appear) units(r *LayoutResult) int {
	if a.gran == GranularityLine {
		return r.LineCount()
	}
	return r.WordCount()
}

func (a *appear) target() float64 {
	switch {
	case a.trigger.State() == InView:
		return 1
	case a.fired:
		return 0
	default:
		return a.opts.Preview.factor()
	}
}

// sync rebuilds the tween group after a relayout. Units snap to the current
// target; a transition in flight is not replayed.
func (a *appear) sync() *LayoutResult {
	r := a.Layout()
	if r.Generation != a.synced || a.group == nil {
		a.group = NewTweenGroup(a.opts.Transition, a.units(r), a.target())
		a.synced = r.Generation
	}
	return r
}

func (a *appear) delays(r *LayoutResult) []float64 {
	if a.gran == GranularityLine {
		return a.timing.LineDelays(r)
	}
	return flatten(a.timing.Delays(r))
}

// Observe feeds the visible fraction of the element and reports whether the
// trigger changed state. A change retargets every unit with its stagger
// delay.
func (a *appear) Observe(ratio float64) bool {
	r := a.sync()
	if !a.trigger.Observe(ratio) {
		return false
	}
	a.fired = true
	a.group.Retarget(a.target(), a.delays(r))
	a.log.Debug("trigger", zap.String("widget", a.name), zap.Stringer("state", a.trigger.State()))
	return true
}

// ObserveRects feeds the element and viewport rectangles.
func (a *appear) ObserveRects(element, viewport Rect) bool {
	return a.Observe(VisibleRatio(element, viewport))
}

// TriggerState returns the current trigger state.
func (a *appear) TriggerState() TriggerState { return a.trigger.State() }

// Update advances every unit by dt seconds and reports whether any factor
// changed.
func (a *appear) Update(dt float32) bool {
	a.sync()
	return a.group.Update(dt)
}

// Done reports whether every unit rests at its target.
func (a *appear) Done() bool {
	a.sync()
	return a.group.Done
}

// SetTransition replaces the per-unit transition and the stagger timing.
func (a *appear) SetTransition(tr Transition, linePct, wordPct float64) {
	a.opts.Transition = tr
	a.opts.LineStagger = linePct
	a.opts.WordStagger = wordPct
	a.retime()
	a.group = nil
	a.sync()
}

// AnimatorAppear reveals text word by word once it scrolls into view.
type AnimatorAppear struct {
	appear
}

// NewAnimatorAppear returns a widget in its preview state.
func NewAnimatorAppear(opts Options) *AnimatorAppear {
	return &AnimatorAppear{appear: newAppear(KindAnimatorAppear, GranularityWord, opts)}
}

// SetText replaces the text.
func (a *AnimatorAppear) SetText(s string) { a.setText(s) }

// SetStyle replaces the text style.
func (a *AnimatorAppear) SetStyle(s TextStyle) { a.setStyle(s) }

// SetWidth replaces the container width.
func (a *AnimatorAppear) SetWidth(px float64) { a.setWidth(px) }

// SetMeasurer replaces the measurer.
func (a *AnimatorAppear) SetMeasurer(m TextMeasurer) { a.setMeasurer(m) }

// Delays returns the appear delay of every word, [line][word].
func (a *AnimatorAppear) Delays() [][]float64 {
	return a.timing.Delays(a.sync())
}

// Factors returns the current factor of every word, [line][word].
func (a *AnimatorAppear) Factors() [][]float64 {
	r := a.sync()
	a.values = clampAll(a.group.Values(a.values))
	return unflatten(r, a.values)
}

// States returns the resolved visual state of every word.
func (a *AnimatorAppear) States() [][]VisualState {
	return a.statesFor(a.Factors())
}

// Update advances the word transitions by dt seconds and publishes a frame
// when anything moved.
func (a *AnimatorAppear) Update(dt float32) bool {
	if !a.appear.Update(dt) {
		return false
	}
	a.publish(a.Frame())
	return true
}

// Frame returns the current frame.
func (a *AnimatorAppear) Frame() *Frame {
	r := a.sync()
	f := a.baseFrame(r)
	f.Delays = a.timing.Delays(r)
	f.Factors = a.Factors()
	f.States = a.statesFor(f.Factors)
	f.Trigger = a.trigger.State().String()
	return f
}

// Close releases nothing; it exists so every widget can be closed alike.
func (a *AnimatorAppear) Close() {}

// HighlighterAppear wipes a highlight across each line once the text
// scrolls into view.
type HighlighterAppear struct {
	appear
}

// NewHighlighterAppear returns a widget in its preview state.
func NewHighlighterAppear(opts Options) *HighlighterAppear {
	return &HighlighterAppear{appear: newAppear(KindHighlighterAppear, GranularityLine, opts)}
}

// SetText replaces the text.
func (h *HighlighterAppear) SetText(s string) { h.setText(s) }

// SetStyle replaces the text style.
func (h *HighlighterAppear) SetStyle(s TextStyle) { h.setStyle(s) }

// SetWidth replaces the container width.
func (h *HighlighterAppear) SetWidth(px float64) { h.setWidth(px) }

// SetMeasurer replaces the measurer.
func (h *HighlighterAppear) SetMeasurer(m TextMeasurer) { h.setMeasurer(m) }

// Delays returns the appear delay of every line.
func (h *HighlighterAppear) Delays() []float64 {
	return h.timing.LineDelays(h.sync())
}

// Factors returns the current factor of every line.
func (h *HighlighterAppear) Factors() []float64 {
	h.sync()
	h.values = clampAll(h.group.Values(h.values))
	return append([]float64(nil), h.values...)
}

// Clips returns the clip of both layers for every line.
func (h *HighlighterAppear) Clips() []ClipPair {
	factors := h.Factors()
	out := make([]ClipPair, len(factors))
	for i, f := range factors {
		out[i] = ResolveHighlight(f)
	}
	return out
}

// Update advances the line transitions by dt seconds and publishes a frame
// when anything moved.
func (h *HighlighterAppear) Update(dt float32) bool {
	if !h.appear.Update(dt) {
		return false
	}
	h.publish(h.Frame())
	return true
}

// Frame returns the current frame.
func (h *HighlighterAppear) Frame() *Frame {
	r := h.sync()
	f := h.baseFrame(r)
	f.LineDelays = h.timing.LineDelays(r)
	f.LineFactors = h.Factors()
	f.Clips = h.Clips()
	f.Layers = &Layers{Start: h.opts.Start, End: h.opts.End}
	f.Trigger = h.trigger.State().String()
	return f
}

// Close releases nothing; it exists so every widget can be closed alike.
func (h *HighlighterAppear) Close() {}

// --- scroll widgets ---

// scroll is the continuous half shared by AnimatorScroll and
// HighlighterScroll.
type scroll struct {
	widget
	source   ProgressSource
	smoothed *SpringProgress
	unsub    func()
	schedule *ScrollSchedule
	synced   uint64

	value float64
	live  bool // the driver has changed at least once

	onChange func()
}

func newScroll(kind WidgetKind, opts Options) scroll {
	s := scroll{widget: newWidget(kind, opts)}
	src := opts.Source
	if src == nil {
		src = NewProgressValue(0)
	}
	if !opts.NoSmoothing {
		s.smoothed = NewSpringProgress(src, opts.Transition)
		src = s.smoothed
	}
	s.source = src
	return s
}

// sync rebuilds the schedule after a relayout. The subscription to the
// driver is released before a new one is made.
func (s *scroll) sync() *LayoutResult {
	r := s.Layout()
	if r.Generation != s.synced || s.schedule == nil {
		s.schedule = NewScrollSchedule(s.timing, r)
		s.synced = r.Generation
		if s.unsub != nil {
			s.unsub()
		}
		s.unsub = s.source.Subscribe(ObserverFunc(s.onValue))
		if s.live {
			s.value = s.source.Value()
		}
	}
	return r
}

func (s *scroll) onValue(v float64) {
	s.value = v
	s.live = true
	if s.onChange != nil {
		s.onChange()
	}
}

// Value returns the driver value the factors were last computed for.
func (s *scroll) Value() float64 { return s.value }

// Schedule returns the continuous schedule for the current layout.
func (s *scroll) Schedule() *ScrollSchedule {
	s.sync()
	return s.schedule
}

// Update advances the smoothing spring by dt seconds and reports whether the
// smoothed value moved. Subscribers, including the widget itself, are
// notified while it moves.
func (s *scroll) Update(dt float32) bool {
	s.sync()
	if s.smoothed == nil {
		return false
	}
	prev := s.smoothed.Value()
	s.smoothed.Update(float64(dt))
	return s.smoothed.Value() != prev
}

// SetTransition replaces the transition and stagger timing. The smoothing
// spring keeps the transition it was built with.
func (s *scroll) SetTransition(tr Transition, linePct, wordPct float64) {
	s.opts.Transition = tr
	s.opts.LineStagger = linePct
	s.opts.WordStagger = wordPct
	s.retime()
	s.schedule = nil
	s.sync()
}

// Close releases the driver subscription.
func (s *scroll) Close() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	if s.smoothed != nil {
		s.smoothed.Close()
	}
}

// AnimatorScroll moves each word between two states as the page scrolls.
type AnimatorScroll struct {
	scroll
	factors [][]float64
}

// NewAnimatorScroll subscribes to opts.Source.
func NewAnimatorScroll(opts Options) *AnimatorScroll {
	a := &AnimatorScroll{scroll: newScroll(KindAnimatorScroll, opts)}
	a.onChange = func() { a.publish(a.Frame()) }
	a.sync()
	return a
}

// SetText replaces the text.
func (a *AnimatorScroll) SetText(s string) { a.setText(s) }

// SetStyle replaces the text style.
func (a *AnimatorScroll) SetStyle(s TextStyle) { a.setStyle(s) }

// SetWidth replaces the container width.
func (a *AnimatorScroll) SetWidth(px float64) { a.setWidth(px) }

// SetMeasurer replaces the measurer.
func (a *AnimatorScroll) SetMeasurer(m TextMeasurer) { a.setMeasurer(m) }

// Factors returns the factor of every word, [line][word]. Until the driver
// first changes every word shows the preview state.
func (a *AnimatorScroll) Factors() [][]float64 {
	r := a.sync()
	if !a.live {
		out := make([][]float64, r.LineCount())
		for i, l := range r.Lines {
			row := make([]float64, len(l.Words))
			for j := range row {
				row[j] = a.opts.Preview.factor()
			}
			out[i] = row
		}
		return out
	}
	a.factors = a.schedule.Factors(a.value, a.factors)
	out := make([][]float64, len(a.factors))
	for i, row := range a.factors {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// States returns the resolved visual state of every word.
func (a *AnimatorScroll) States() [][]VisualState {
	return a.statesFor(a.Factors())
}

// Frame returns the current frame.
func (a *AnimatorScroll) Frame() *Frame {
	r := a.sync()
	f := a.baseFrame(r)
	f.Factors = a.Factors()
	f.States = a.statesFor(f.Factors)
	return f
}

// HighlighterScroll wipes a highlight across each line as the page scrolls.
type HighlighterScroll struct {
	scroll
}

// NewHighlighterScroll subscribes to opts.Source.
func NewHighlighterScroll(opts Options) *HighlighterScroll {
	h := &HighlighterScroll{scroll: newScroll(KindHighlighterScroll, opts)}
	h.onChange = func() { h.publish(h.Frame()) }
	h.sync()
	return h
}

// SetText replaces the text.
func (h *HighlighterScroll) SetText(s string) { h.setText(s) }

// SetStyle replaces the text style.
func (h *HighlighterScroll) SetStyle(s TextStyle) { h.setStyle(s) }

// SetWidth replaces the container width.
func (h *HighlighterScroll) SetWidth(px float64) { h.setWidth(px) }

// SetMeasurer replaces the measurer.
func (h *HighlighterScroll) SetMeasurer(m TextMeasurer) { h.setMeasurer(m) }

// Factors returns the factor of every line. Until the driver first changes
// every line sits at the preview percentage.
func (h *HighlighterScroll) Factors() []float64 {
	r := h.sync()
	if !h.live {
		out := make([]float64, r.LineCount())
		for i := range out {
			out[i] = Clamp01(h.opts.PreviewPercent / 100)
		}
		return out
	}
	return h.schedule.LineFactors(h.value, nil)
}

// Clips returns the clip of both layers for every line.
func (h *HighlighterScroll) Clips() []ClipPair {
	r := h.sync()
	if !h.live {
		out := make([]ClipPair, r.LineCount())
		for i := range out {
			out[i] = PreviewHighlight(h.opts.PreviewPercent)
		}
		return out
	}
	factors := h.Factors()
	out := make([]ClipPair, len(factors))
	for i, f := range factors {
		out[i] = ResolveHighlight(f)
	}
	return out
}

// Frame returns the current frame.
func (h *HighlighterScroll) Frame() *Frame {
	r := h.sync()
	f := h.baseFrame(r)
	f.LineFactors = h.Factors()
	f.Clips = h.Clips()
	f.Layers = &Layers{Start: h.opts.Start, End: h.opts.End}
	return f
}
