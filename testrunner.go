package tau

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Ratio  float64 `json:"ratio,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	FPS   int        `json:"fps,omitempty"`
	Steps []testStep `json:"steps"`
}

// Snapshot is a frame captured by a "snapshot" step.
type Snapshot struct {
	Label string `json:"label"`
	Frame *Frame `json:"frame"`
}

// TestRunner drives a widget frame by frame from a JSON script, for
// automated checks of animation output. Supported actions:
//
//	progress  set the scroll driver to value
//	resize    set the container width
//	view      feed a visible fraction to an appear widget
//	wait      let frames pass
//	snapshot  capture the current frame under label
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	dt        float32

	snapshots []Snapshot
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("tau: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("tau: parse test script: no steps")
	}
	fps := script.FPS
	if fps <= 0 {
		fps = 60
	}
	return &TestRunner{steps: script.Steps, dt: 1 / float32(fps)}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Snapshots returns the frames captured so far.
func (r *TestRunner) Snapshots() []Snapshot {
	return r.snapshots
}

// Step advances the widget by one frame and executes at most one script
// action. progress may be nil when the script has no progress steps.
func (r *TestRunner) Step(w Widget, progress *ProgressValue) {
	if r.done {
		return
	}
	w.Update(r.dt)

	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "snapshot":
		r.snapshots = append(r.snapshots, Snapshot{Label: st.Label, Frame: w.Frame()})
	case "progress":
		if progress != nil {
			progress.Set(st.Value)
		}
	case "resize":
		w.SetWidth(st.Width)
	case "view":
		if o, ok := w.(Observer); ok {
			o.Observe(st.Ratio)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

// Run steps until the script is done or maxFrames frames have passed and
// returns the captured snapshots.
func (r *TestRunner) Run(w Widget, progress *ProgressValue, maxFrames int) []Snapshot {
	for i := 0; i < maxFrames && !r.done; i++ {
		r.Step(w, progress)
	}
	return r.snapshots
}
