package layout

import (
	"sync"

	"github.com/orgball2608/insta-feed/pkg/config"
)

type Class int

const (
	Mobile Class = iota
	Tablet
	Desktop
	LargeDesktop
)

func (c Class) String() string {
	switch c {
	case Tablet:
		return "tablet"
	case Desktop:
		return "desktop"
	case LargeDesktop:
		return "large-desktop"
	default:
		return "mobile"
	}
}

// Breakpoints are minimum widths in terminal columns.
type Breakpoints struct {
	Tablet       int
	Desktop      int
	LargeDesktop int
}

func DefaultBreakpoints() Breakpoints {
	return Breakpoints{Tablet: 80, Desktop: 120, LargeDesktop: 160}
}

func BreakpointsFromConfig(cfg *config.Config) Breakpoints {
	return Breakpoints{
		Tablet:       cfg.Layout.TabletColumns,
		Desktop:      cfg.Layout.DesktopColumns,
		LargeDesktop: cfg.Layout.LargeDesktopColumns,
	}
}

// Classify maps a width to its class. The main layout only asks IsDesktop;
// the finer classes are informational.
func (b Breakpoints) Classify(width int) Class {
	switch {
	case width >= b.LargeDesktop:
		return LargeDesktop
	case width >= b.Desktop:
		return Desktop
	case width >= b.Tablet:
		return Tablet
	default:
		return Mobile
	}
}

func (b Breakpoints) IsDesktop(width int) bool {
	return width >= b.Desktop
}

// Gate holds the desktop/non-desktop decision for the current width and
// tells subscribers when it flips.
type Gate struct {
	mu          sync.Mutex
	breakpoints Breakpoints
	width       int
	desktop     bool
	nextID      int
	subscribers map[int]func(desktop bool)
}

func NewGate(b Breakpoints, width int) *Gate {
	return &Gate{
		breakpoints: b,
		width:       width,
		desktop:     b.IsDesktop(width),
		subscribers: map[int]func(bool){},
	}
}

func (g *Gate) IsDesktop() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.desktop
}

func (g *Gate) Width() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width
}

func (g *Gate) Class() Class {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.breakpoints.Classify(g.width)
}

// Resize records a new width. Subscribers hear about it only when the width
// crosses the desktop breakpoint. Reports whether it did.
func (g *Gate) Resize(width int) bool {
	g.mu.Lock()
	g.width = width
	desktop := g.breakpoints.IsDesktop(width)
	if desktop == g.desktop {
		g.mu.Unlock()
		return false
	}
	g.desktop = desktop

	subs := make([]func(bool), 0, len(g.subscribers))
	for _, fn := range g.subscribers {
		subs = append(subs, fn)
	}
	g.mu.Unlock()

	for _, fn := range subs {
		fn(desktop)
	}
	return true
}

// Subscribe registers fn for threshold crossings and returns its
// unsubscribe func.
func (g *Gate) Subscribe(fn func(desktop bool)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	g.subscribers[id] = fn

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subscribers, id)
	}
}
