// Package tau lays out text into lines of words and animates each word or
// line with a staggered transition, either when the text enters the
// viewport or continuously as the page scrolls.
//
// The package is headless: it produces a [Frame] per instant and leaves the
// drawing to the caller. The examples directory draws frames with
// [Ebitengine].
//
// # Quick start
//
// Wrap text with a measurer and schedule the word delays:
//
//	font, _ := tau.LoadBitmapFont(fntData)
//	style := tau.DefaultTextStyle.Metrics()
//	layout := tau.Wrap("Delftware originated in Delft.", style, 300, font)
//	timing := tau.NewTiming(tau.DefaultTransition, 50, 50)
//	delays := timing.Delays(layout) // [line][word] seconds
//
// Or build a complete widget and drive it each frame:
//
//	opts := tau.DefaultOptions(tau.KindAnimatorAppear)
//	opts.Measurer = font
//	w := tau.NewAnimatorAppear(opts)
//	w.ObserveRects(elementRect, viewportRect)
//	w.Update(1.0 / 60)
//	frame := w.Frame()
//
// # Widgets
//
// [AnimatorAppear] and [HighlighterAppear] wait for a [Trigger] and move
// every unit toward its end state after a per-unit delay, using a
// [gween] tween or a spring. [AnimatorScroll] and [HighlighterScroll]
// subscribe to a [ProgressSource] such as [ScrollProgress] and map its value
// to per-unit factors through a [ScrollSchedule].
//
// Factors in [0, 1] resolve to a [VisualState] for animators and to a pair
// of [Inset] clips for highlighters.
//
// # Measurement
//
// Line breaking measures candidate lines through a [TextMeasurer].
// [BitmapFont] reads BMFont files, [TTFFont] uses Ebitengine's text/v2 and
// [ShapedFont] shapes with go-text/typesetting.
//
// # Logging
//
// Widgets log through [zap]. Pass Options.Logger; nil disables logging.
// Layout recomputes are logged at debug level.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [zap]: https://pkg.go.dev/go.uber.org/zap
package tau
