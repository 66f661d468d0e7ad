package overlay

// ScrollLock freezes background scrolling while any holder is active.
type ScrollLock struct {
	holders  int
	onChange func(locked bool)
}

// NewScrollLock calls onChange when the lock flips between free and held.
func NewScrollLock(onChange func(locked bool)) *ScrollLock {
	return &ScrollLock{onChange: onChange}
}

func (l *ScrollLock) Acquire() {
	l.holders++
	if l.holders == 1 && l.onChange != nil {
		l.onChange(true)
	}
}

func (l *ScrollLock) Release() {
	if l.holders == 0 {
		return
	}
	l.holders--
	if l.holders == 0 && l.onChange != nil {
		l.onChange(false)
	}
}

func (l *ScrollLock) Locked() bool {
	return l.holders > 0
}
