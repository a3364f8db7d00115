package core

// Action is an abstract player intent, decoupled from the key or pointer that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionJump           // Space - flap, reveal, tap
	ActionConfirm        // Enter - start a round, confirm selection
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - start a new round
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
)

var actionNames = map[Action]string{
	ActionNone:    "none",
	ActionUp:      "up",
	ActionDown:    "down",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionJump:    "jump",
	ActionConfirm: "confirm",
	ActionBack:    "back",
	ActionRestart: "restart",
	ActionQuit:    "quit",
	ActionPause:   "pause",
}

// String returns the lowercase wire name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction maps a wire name back to an Action. Unknown names yield ActionNone.
func ParseAction(name string) Action {
	for a, n := range actionNames {
		if n == name {
			return a
		}
	}
	return ActionNone
}

// Point is an integer coordinate in screen cells or grid units.
type Point struct {
	X, Y int
}

// InputFrame collects the intents produced between two simulation ticks.
type InputFrame struct {
	Actions map[Action]bool

	// Tap is the last pointer press in screen cells; valid only when Tapped is set.
	Tap    Point
	Tapped bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetTap records a pointer press at (x, y).
func (f *InputFrame) SetTap(x, y int) {
	f.Tap = Point{X: x, Y: y}
	f.Tapped = true
}

// Empty reports whether no intent was recorded.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && !f.Tapped
}

// Clear resets all intents for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Tapped = false
	f.Tap = Point{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Tap = f.Tap
	clone.Tapped = f.Tapped
	return clone
}
