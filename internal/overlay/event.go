package overlay

// Event is anything an overlay can be dismissed by.
type Event interface {
	isEvent()
}

type PointerAction int

const (
	PointerPress PointerAction = iota
	PointerTouchStart
	PointerRelease
	PointerMotion
)

// PointerEvent is a mouse or touch event at a screen cell.
type PointerEvent struct {
	X, Y   int
	Action PointerAction
}

// KeyEvent carries the key name as the terminal reports it, e.g. "esc".
type KeyEvent struct {
	Key string
}

func (PointerEvent) isEvent() {}
func (KeyEvent) isEvent()     {}

// Starts reports whether the event begins an interaction. Only these dismiss.
func (e PointerEvent) Starts() bool {
	return e.Action == PointerPress || e.Action == PointerTouchStart
}

// Trigger says why an overlay closed.
type Trigger string

const (
	TriggerExplicit       Trigger = "explicit"
	TriggerOutsidePointer Trigger = "outside_pointer"
	TriggerEscape         Trigger = "escape"
)

// Predicate decides whether ev dismisses o and under which trigger.
type Predicate func(o *Overlay, ev Event) (Trigger, bool)

// DismissOnOutsidePointer closes the overlay when a press or touch starts
// outside all of its regions.
func DismissOnOutsidePointer(o *Overlay, ev Event) (Trigger, bool) {
	p, ok := ev.(PointerEvent)
	if !ok || !p.Starts() {
		return "", false
	}
	return TriggerOutsidePointer, !o.Contains(p.X, p.Y)
}

// DismissOnEscape closes the overlay on the Escape key.
func DismissOnEscape(_ *Overlay, ev Event) (Trigger, bool) {
	k, ok := ev.(KeyEvent)
	return TriggerEscape, ok && k.Key == "esc"
}
