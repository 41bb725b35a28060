package arcgallery

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidScript is wrapped by every LoadScript error.
var ErrInvalidScript = errors.New("invalid input script")

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	DeltaY   float64 `json:"deltaY,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Index    int     `json:"index,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Screenshotter captures a labelled image of the rendered surface.
type Screenshotter interface {
	Screenshot(label string)
}

// ScriptRunner sequences injected input across frames for replays and
// automated visual checks. Call Step once per frame before Gallery.Update.
//
// Example script:
//
//	{"steps": [
//	  {"action": "resize", "width": 1000},
//	  {"action": "wheel", "deltaY": 100},
//	  {"action": "wait", "frames": 30},
//	  {"action": "drag", "fromX": 500, "toX": 400, "frames": 10},
//	  {"action": "scrollTo", "index": 2, "duration": 0.5},
//	  {"action": "screenshot", "label": "after-drag"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	// Screenshots receives "screenshot" steps. Nil ignores them.
	Screenshots Screenshotter
}

var knownActions = map[string]bool{
	"wheel": true, "drag": true, "resize": true,
	"scrollTo": true, "wait": true, "screenshot": true,
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScript, i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Done reports whether all steps have been executed and their input consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(g *Gallery) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if g.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) || g.IsDisposed() {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "wheel":
		g.InjectWheel(st.DeltaY)
	case "drag":
		g.InjectDrag(st.FromX, st.ToX, st.Frames)
	case "resize":
		g.InjectResize(st.Width)
	case "scrollTo":
		g.ScrollTo(st.Index, st.Duration, nil)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if r.Screenshots != nil {
			r.Screenshots.Screenshot(st.Label)
		}
	}
}
