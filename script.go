package flipbook

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScript indicates a script that cannot be run.
var ErrInvalidScript = errors.New("flipbook: invalid script")

// ScriptStep is a single action in a reading script.
type ScriptStep struct {
	Action string        `yaml:"action"`
	Label  string        `yaml:"label,omitempty"`
	Page   int           `yaml:"page,omitempty"`
	Index  int           `yaml:"index,omitempty"`
	X      float64       `yaml:"x,omitempty"`
	Y      float64       `yaml:"y,omitempty"`
	FromX  float64       `yaml:"from_x,omitempty"`
	FromY  float64       `yaml:"from_y,omitempty"`
	ToX    float64       `yaml:"to_x,omitempty"`
	ToY    float64       `yaml:"to_y,omitempty"`
	Frames int           `yaml:"frames,omitempty"`
	Wait   time.Duration `yaml:"wait,omitempty"`
}

// Script is the top-level structure of a reading script file. JSON is valid
// YAML, so either format parses.
type Script struct {
	Steps []ScriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"tap": true, "click": true, "drag": true, "wait": true,
	"goto": true, "next": true, "prev": true, "first": true, "last": true,
	"zoom": true, "dismiss": true, "hover": true, "screenshot": true,
}

// ParseScript decodes and checks a reading script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScript, i, st.Action)
		}
	}
	return &s, nil
}

// ScriptRunner feeds a script into a reader, one step per frame. Pointer
// actions (click, drag) go through the Pointers router and are skipped when
// it is nil.
type ScriptRunner struct {
	steps     []ScriptStep
	reader    *Reader
	ptrs      *Pointers
	cursor    int
	waitCount int
	waitUntil time.Time
	done      bool

	// OnScreenshot, when set, receives the label of every screenshot step.
	OnScreenshot func(label string)
}

// NewScriptRunner creates a runner for s driving r.
func NewScriptRunner(s *Script, r *Reader, p *Pointers) *ScriptRunner {
	return &ScriptRunner{steps: s.Steps, reader: r, ptrs: p}
}

// Done reports whether every step has been executed.
func (sr *ScriptRunner) Done() bool {
	return sr.done
}

// Cursor returns the index of the next step to run.
func (sr *ScriptRunner) Cursor() int {
	return sr.cursor
}

// Step advances the runner by one frame. Call it before Reader.Update.
func (sr *ScriptRunner) Step() {
	if sr.done {
		return
	}
	if sr.ptrs != nil && sr.ptrs.Pending() > 0 {
		return
	}
	if sr.waitCount > 0 {
		sr.waitCount--
		return
	}
	if !sr.waitUntil.IsZero() {
		if sr.reader.Clock().Now().Before(sr.waitUntil) {
			return
		}
		sr.waitUntil = time.Time{}
	}
	if sr.cursor >= len(sr.steps) {
		sr.done = true
		return
	}

	st := sr.steps[sr.cursor]
	sr.cursor++

	r := sr.reader
	switch st.Action {
	case "tap":
		r.Tap(st.Page)
	case "click":
		if sr.ptrs != nil {
			sr.ptrs.InjectClick(st.X, st.Y)
		}
	case "drag":
		if sr.ptrs != nil {
			sr.ptrs.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
		}
	case "wait":
		if st.Frames > 0 {
			sr.waitCount = st.Frames - 1 // this frame counts as one
		}
		if st.Wait > 0 {
			sr.waitUntil = r.Clock().Now().Add(st.Wait)
		}
	case "goto":
		r.GoTo(st.Index)
	case "next":
		r.Next()
	case "prev":
		r.Prev()
	case "first":
		r.First()
	case "last":
		r.Last()
	case "zoom":
		r.ZoomPage(st.Page)
	case "dismiss":
		r.Dismiss()
	case "hover":
		r.SetHover(st.Page)
	case "screenshot":
		if sr.OnScreenshot != nil {
			sr.OnScreenshot(st.Label)
		}
	}

	if sr.cursor >= len(sr.steps) && sr.waitCount == 0 && sr.waitUntil.IsZero() &&
		(sr.ptrs == nil || sr.ptrs.Pending() == 0) {
		sr.done = true
	}
}
