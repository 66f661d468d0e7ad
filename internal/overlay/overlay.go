package overlay

import "slices"

type Kind int

const (
	// Dropdown overlays close on outside pointer presses only.
	Dropdown Kind = iota
	// Modal overlays also close on Escape and lock background scroll.
	Modal
)

func (k Kind) String() string {
	if k == Modal {
		return "modal"
	}
	return "dropdown"
}

// Overlay is a floating surface that is either open or closed. It is driven
// from the UI loop and is not safe for concurrent use.
type Overlay struct {
	name       string
	kind       Kind
	open       bool
	regions    []Rect
	predicates []Predicate
	onClose    func(Trigger)

	lock *ScrollLock
	held bool
}

type Option func(*Overlay)

// WithScrollLock makes a modal hold lock while open.
func WithScrollLock(lock *ScrollLock) Option {
	return func(o *Overlay) {
		o.lock = lock
	}
}

// WithDismiss adds a dismissal predicate after the defaults.
func WithDismiss(p Predicate) Option {
	return func(o *Overlay) {
		o.predicates = append(o.predicates, p)
	}
}

// New returns a closed overlay. onClose runs once for every open to closed
// transition with the trigger that caused it.
func New(name string, kind Kind, onClose func(Trigger), opts ...Option) *Overlay {
	o := &Overlay{
		name:       name,
		kind:       kind,
		onClose:    onClose,
		predicates: []Predicate{DismissOnOutsidePointer},
	}
	if kind == Modal {
		o.predicates = append(o.predicates, DismissOnEscape)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Overlay) Name() string { return o.name }
func (o *Overlay) Kind() Kind   { return o.kind }
func (o *Overlay) IsOpen() bool { return o.open }

// SetRegions replaces the screen regions counted as inside the overlay,
// usually the rendered surface and the control that opened it.
func (o *Overlay) SetRegions(regions ...Rect) {
	o.regions = slices.Clone(regions)
}

// Contains reports whether (x, y) is inside any region.
func (o *Overlay) Contains(x, y int) bool {
	for _, r := range o.regions {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// Open reports whether the overlay was closed before.
func (o *Overlay) Open() bool {
	if o.open {
		return false
	}
	o.open = true
	if o.kind == Modal && o.lock != nil && !o.held {
		o.lock.Acquire()
		o.held = true
	}
	return true
}

// Close closes an open overlay and reports whether it did. Closing a closed
// overlay does nothing, so the first trigger wins.
func (o *Overlay) Close(trigger Trigger) bool {
	if !o.open {
		return false
	}
	o.open = false
	o.release()
	if o.onClose != nil {
		o.onClose(trigger)
	}
	return true
}

// Toggle opens a closed overlay and closes an open one explicitly.
func (o *Overlay) Toggle() {
	if o.open {
		o.Close(TriggerExplicit)
		return
	}
	o.Open()
}

// Handle runs ev past the dismissal predicates and closes on the first
// match. It reports whether the overlay closed.
func (o *Overlay) Handle(ev Event) bool {
	if !o.open {
		return false
	}
	for _, p := range o.predicates {
		if trigger, ok := p(o, ev); ok {
			return o.Close(trigger)
		}
	}
	return false
}

// Teardown drops the overlay with its owner. The scroll lock is released
// but onClose does not run, there is nobody left to tell.
func (o *Overlay) Teardown() {
	o.open = false
	o.release()
}

func (o *Overlay) release() {
	if o.held {
		o.lock.Release()
		o.held = false
	}
}
