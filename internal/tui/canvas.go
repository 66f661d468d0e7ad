package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/orgball2608/insta-feed/internal/overlay"
)

// row builds one screen line and remembers where its buttons landed.
type row struct {
	b    strings.Builder
	x    int
	hits []hit
}

func (r *row) add(s string) *row {
	r.b.WriteString(s)
	r.x += ansi.StringWidth(s)
	return r
}

func (r *row) button(s string, t target, id string, index int) *row {
	w := ansi.StringWidth(s)
	r.hits = append(r.hits, hit{rect: overlay.Rect{X: r.x, Width: w, Height: 1}, target: t, id: id, index: index})
	return r.add(s)
}

func (r *row) padTo(x int) *row {
	if x > r.x {
		r.add(strings.Repeat(" ", x-r.x))
	}
	return r
}

func (r *row) String() string { return r.b.String() }

// block is a stack of lines with hits relative to its top left corner.
type block struct {
	lines []string
	hits  []hit
}

func (b *block) push(r *row) {
	y := len(b.lines)
	for _, h := range r.hits {
		h.rect.Y = y
		b.hits = append(b.hits, h)
	}
	b.lines = append(b.lines, r.String())
}

func (b *block) text(lines ...string) {
	b.lines = append(b.lines, lines...)
}

func (b *block) height() int { return len(b.lines) }

// place copies the block's hits to dst shifted by (dx, dy). Only rows in
// [from, to) of the block are kept.
func (b *block) place(dst *hitList, dx, dy, from, to int) {
	for _, h := range b.hits {
		if h.rect.Y < from || h.rect.Y >= to {
			continue
		}
		h.rect.X += dx
		h.rect.Y += dy
		*dst = append(*dst, h)
	}
}
