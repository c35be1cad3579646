package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // P, Space - pause/unpause the simulation
	ActionRestart        // R - put the ball back at its serve position
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// PointerEvent is a pointer position in normalized device coordinates:
// both axes run from -1 to 1, with Y growing downwards like screen rows.
type PointerEvent struct {
	X, Y float64
}

// PointerFromCell converts a terminal cell under the pointer into a PointerEvent
// for a viewport of the given size.
func PointerFromCell(x, y, width, height int) PointerEvent {
	return PointerEvent{
		X: normalize(x, width),
		Y: normalize(y, height),
	}
}

func normalize(v, size int) float64 {
	if size <= 0 {
		return 0
	}
	return ClampF(float64(v)/float64(size)*2-1, -1, 1)
}

// InputFrame collects everything that happened between two frames.
// Platforms fill it from their event callbacks; the game drains it at
// the start of the next frame, so simulation state has a single writer.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer holds pointer moves in arrival order.
	Pointer []PointerEvent

	// Delta is the elapsed time in seconds supplied by the frame driver.
	Delta float64
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

// PushPointer queues a pointer move.
func (f *InputFrame) PushPointer(ev PointerEvent) {
	f.Pointer = append(f.Pointer, ev)
}

// LastPointer returns the most recent pointer move, if any.
func (f InputFrame) LastPointer() (PointerEvent, bool) {
	if len(f.Pointer) == 0 {
		return PointerEvent{}, false
	}
	return f.Pointer[len(f.Pointer)-1], true
}

// Clear resets all actions and pointer moves for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
	f.Delta = 0
}
