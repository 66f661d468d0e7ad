package overlay

import "slices"

// Manager fans events out to independent overlays. It does no stacking: each
// overlay decides on its own whether an event dismisses it.
type Manager struct {
	overlays []*Overlay
	lock     *ScrollLock
}

func NewManager(lock *ScrollLock) *Manager {
	return &Manager{lock: lock}
}

// Lock is the scroll lock modals created by NewOverlay share.
func (m *Manager) Lock() *ScrollLock {
	return m.lock
}

// NewOverlay creates and registers an overlay wired to the manager's lock.
func (m *Manager) NewOverlay(name string, kind Kind, onClose func(Trigger), opts ...Option) *Overlay {
	o := New(name, kind, onClose, append([]Option{WithScrollLock(m.lock)}, opts...)...)
	m.Register(o)
	return o
}

func (m *Manager) Register(o *Overlay) {
	if !slices.Contains(m.overlays, o) {
		m.overlays = append(m.overlays, o)
	}
}

// Unregister tears o down and stops routing events to it.
func (m *Manager) Unregister(o *Overlay) {
	o.Teardown()
	m.overlays = slices.DeleteFunc(m.overlays, func(x *Overlay) bool { return x == o })
}

// Dispatch hands ev to every open overlay and returns those it closed.
func (m *Manager) Dispatch(ev Event) []*Overlay {
	var closed []*Overlay
	for _, o := range slices.Clone(m.overlays) {
		if o.Handle(ev) {
			closed = append(closed, o)
		}
	}
	return closed
}

// AnyOpen reports whether an overlay of kind is open.
func (m *Manager) AnyOpen(kind Kind) bool {
	for _, o := range m.overlays {
		if o.open && o.kind == kind {
			return true
		}
	}
	return false
}

// Hit reports whether (x, y) lands inside an open overlay.
func (m *Manager) Hit(x, y int) bool {
	for _, o := range m.overlays {
		if o.open && o.Contains(x, y) {
			return true
		}
	}
	return false
}

// Teardown tears down every overlay, releasing any scroll lock they hold.
func (m *Manager) Teardown() {
	for _, o := range m.overlays {
		o.Teardown()
	}
	m.overlays = nil
}
