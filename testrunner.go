package fold

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a playback script.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	Index    int     `json:"index,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Velocity float64 `json:"velocity,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of a playback script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var knownActions = map[string]bool{
	"rotate":   true,
	"scrollTo": true,
	"drag":     true,
	"fling":    true,
	"wait":     true,
	"settle":   true,
	"snapshot": true,
}

// Runner plays a scripted sequence of rotations, drags and snapshots across
// frames. Attach it with SetRunner; Foldable.Update advances it.
//
//	{"steps": [
//	  {"action": "drag", "fromY": 400, "toY": 100, "frames": 10},
//	  {"action": "settle"},
//	  {"action": "snapshot", "label": "page-1"}
//	]}
type Runner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	settling  bool
	done      bool
}

// LoadScript parses a JSON playback script.
func LoadScript(jsonData []byte) (*Runner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Runner{steps: s.Steps}, nil
}

// SetRunner attaches a script runner. Nil detaches the current one.
func (f *Foldable) SetRunner(r *Runner) {
	f.runner = r
}

// Done reports whether every step has been executed.
func (r *Runner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Foldable.Update before
// input processing.
func (r *Runner) step(f *Foldable) {
	if r.done {
		return
	}
	if len(f.injectQueue) > 0 {
		return
	}
	if r.settling {
		if f.IsSettling() {
			return
		}
		r.settling = false
	}
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
	case "rotate":
		f.SetRotation(st.Rotation)
	case "scrollTo":
		f.ScrollToPosition(st.Index)
	case "drag":
		f.InjectDrag(st.FromY, st.ToY, max(st.Frames, 2))
	case "fling":
		f.HandleGesture(GestureEvent{Kind: GestureFling, Time: f.nextEventTime(), Velocity: st.Velocity})
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "settle":
		r.settling = true
	case "snapshot":
		f.Snapshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.settling && len(f.injectQueue) == 0 {
		r.done = true
	}
}
