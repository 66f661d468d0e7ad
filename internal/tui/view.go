package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/orgball2608/insta-feed/internal/compose"
	"github.com/orgball2608/insta-feed/internal/layout"
	"github.com/orgball2608/insta-feed/internal/overlay"
	"github.com/orgball2608/insta-feed/internal/poststate"
	"github.com/orgball2608/insta-feed/pkg/formatter"
)

const (
	searchWidth  = 28
	searchX      = 14
	feedMaxWidth = 64
	sidebarWidth = 36
	imageRows    = 6
	headerRows   = 2

	defaultWidth  = 80
	defaultHeight = 24
)

// View recovers from render panics the same way Update does.
func (m *Model) View() (view string) {
	defer func() {
		if r := recover(); r != nil {
			m.fail(r)
			view = m.crashView()
		}
	}()

	if m.crash != nil {
		return m.crashView()
	}
	return m.render()
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m *Model) render() string {
	w, h := m.size()
	m.hits = m.hits[:0]

	header := m.renderHeader(w)

	footerRows := 1
	var bottom *block
	if !m.gate.IsDesktop() {
		bottom = m.renderBottomBar(w)
		footerRows += bottom.height()
	}
	m.bodyRows = max(1, h-headerRows-footerRows)

	feedWidth := min(w, feedMaxWidth)
	var side *block
	if m.gate.IsDesktop() {
		feedWidth = max(1, min(w-sidebarWidth-2, feedMaxWidth))
		side = m.renderSidebar(sidebarWidth)
	}
	body := m.renderFeed(feedWidth)

	m.offset = max(0, min(m.offset, body.height()-m.bodyRows))
	body.place(&m.hits, 0, headerRows-m.offset, m.offset, m.offset+m.bodyRows)

	lines := make([]string, 0, h)
	lines = append(lines, header.lines...)
	sideX := feedWidth + 2
	for i := 0; i < m.bodyRows; i++ {
		line := ""
		if j := m.offset + i; j < body.height() {
			line = body.lines[j]
		}
		line = fit(line, feedWidth)
		if side != nil {
			s := ""
			if i < side.height() {
				s = side.lines[i]
			}
			line += "  " + fit(s, sidebarWidth)
		}
		lines = append(lines, line)
	}
	if side != nil {
		side.place(&m.hits, sideX, headerRows, 0, m.bodyRows)
	}
	// Header hits go after the body so they win on overlap.
	header.place(&m.hits, 0, 0, 0, headerRows)

	if bottom != nil {
		y := len(lines)
		lines = append(lines, bottom.lines...)
		bottom.place(&m.hits, 0, y, 0, bottom.height())
	}
	lines = append(lines, m.renderStatusLine(w))

	view := strings.Join(lines, "\n")
	view = m.renderSearchDropdown(view)
	view = m.renderUserMenu(view, w)
	view = m.renderComposeModal(view, w, h)
	view = m.renderConfirmLogout(view, w, h)
	return view
}

func (m *Model) renderHeader(w int) *block {
	var b block
	r := &row{}
	r.add(" ").add(m.styles.title.Render("Instagram"))

	if m.gate.Class() >= layout.Tablet {
		r.padTo(searchX)
		r.button(fit(m.search.View(), searchWidth), targetSearchField, "", 0)
	}

	right := &row{}
	if m.gate.Class() >= layout.Tablet {
		right.button("[+]", targetNewPost, "", 0).add("  ")
		right.button("♥ "+m.styles.liked.Render(notificationBadge(notificationCount)), targetNotifications, "", 0).add("  ")
	}
	right.button("@"+m.user.Username+" ▾", targetAvatar, "", 0)

	start := max(r.x+2, w-right.x-1)
	r.padTo(start)
	for _, hh := range right.hits {
		hh.rect.X += start
		r.hits = append(r.hits, hh)
	}
	r.add(right.String())

	b.push(r)
	b.text(m.styles.muted.Render(strings.Repeat("─", w)))
	return &b
}

func notificationBadge(n int) string {
	if n > 9 {
		return "9+"
	}
	return strconv.Itoa(n)
}

func (m *Model) renderBottomBar(w int) *block {
	var b block
	r := &row{}
	r.add(" ⌂ Home   ⌕ Search   ")
	r.button("⊕ New", targetBottomNew, "", 0)
	r.add("   ♡ Activity   ◉ @" + m.user.Username)
	b.text(m.styles.muted.Render(strings.Repeat("─", w)))
	b.push(r)
	return &b
}

func (m *Model) renderStatusLine(w int) string {
	if m.status != "" {
		return fit(" "+m.styles.bold.Render(m.status), w)
	}
	var parts []string
	for _, k := range m.keys.ShortHelp() {
		help := k.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return fit(" "+m.styles.faint.Render(strings.Join(parts, " • ")), w)
}

func (m *Model) renderStories(w int, b *block) {
	r := &row{}
	r.add(" ")
	for i, s := range m.stories {
		label := fmt.Sprintf("(%d) ◉ %s", i+1, s.Author.Username)
		if r.x+ansi.StringWidth(label) > w {
			break
		}
		style := m.styles.faint
		if s.HasUnseenStories {
			style = m.styles.unseen
		}
		r.button(style.Render(label), targetStory, s.ID, i)
		r.add("  ")
	}
	b.push(r)
	b.text(m.styles.muted.Render(strings.Repeat("─", w)))
}

func (m *Model) renderFeed(w int) *block {
	var b block
	m.renderStories(w, &b)

	if m.loading {
		b.text("", "  "+m.spinner.View()+" Loading feed...")
		m.postLines = nil
		return &b
	}

	m.postLines = m.postLines[:0]
	for i, p := range m.posts {
		start := b.height()
		m.renderPost(&b, p, i, w)
		m.postLines = append(m.postLines, postSpan{start: start, height: b.height() - start})
	}

	if len(m.posts) > 0 {
		b.text(
			"",
			"  "+m.styles.bold.Render("✓ You're all caught up!"),
			"  "+m.styles.faint.Render("You've seen all new posts from the past 3 days"),
		)
	}
	return &b
}

func (m *Model) renderPost(b *block, p *poststate.Post, index, w int) {
	post := p.Source()
	gutter := "  "
	if index == m.selected {
		gutter = m.styles.selected.Render("▌") + " "
	}
	inner := w - 2

	r := (&row{}).add(gutter)
	r.button(m.styles.bold.Render(post.Author.Username), targetAuthor, post.Author.ProfilePath(), index)
	if post.Author.Verified {
		r.add(" " + m.styles.verified.Render("✓"))
	}
	if post.Location != "" {
		r.add(m.styles.faint.Render(" · " + post.Location))
	}
	b.push(r)

	for line := 0; line < imageRows; line++ {
		content := ""
		if line == imageRows/2 {
			switch {
			case p.ShowSpinner():
				content = m.spinner.View() + " loading image"
			case p.ImageFailed():
				content = "[ image unavailable ]"
			default:
				content = "▣ " + p.ImageURL()
			}
		}
		cell := lipgloss.PlaceHorizontal(inner, lipgloss.Center, ansi.Truncate(content, inner, "…"))
		r := (&row{}).add("  ")
		r.button(m.styles.muted.Render(cell), targetPostImage, p.ID(), index)
		b.push(r)
	}

	like := "♡ Like"
	if p.Liked() {
		like = m.styles.liked.Render("♥ Liked")
	}
	save := "☆ Save"
	if p.Saved() {
		save = m.styles.bold.Render("★ Saved")
	}
	r = (&row{}).add("  ")
	r.button(like, targetLike, p.ID(), index).add("   ")
	r.button("✎ Comment", targetComment, p.ID(), index).add("   ")
	r.button("➤ Share", targetShare, p.ID(), index)
	r.padTo(w - ansi.StringWidth(save))
	r.button(save, targetSave, p.ID(), index)
	b.push(r)

	b.text("  " + m.styles.bold.Render(formatter.FormatNumber(p.LikeCount())+" likes"))

	m.renderCaption(b, p, index, inner)

	if post.Comments > 0 {
		r := (&row{}).add("  ")
		r.button(m.styles.faint.Render("View all "+formatter.FormatNumber(post.Comments)+" comments"), targetViewComments, p.ID(), index)
		b.push(r)
	}

	ago := formatter.FormatTimeAgo(post.Timestamp, m.deps.Now()) + " ago"
	b.text("  " + m.styles.muted.Render(strings.ToUpper(ago)))

	// Comment posting is not wired, the input stays disabled.
	r = (&row{}).add("  ").add(m.styles.muted.Render("Add a comment..."))
	r.padTo(w - 4)
	r.add(m.styles.muted.Render("Post"))
	b.push(r)
	b.text("")
}

// captionWord is one unbreakable run of caption text. Links and the author
// carry the path they open.
type captionWord struct {
	text   string
	target target
	path   string
	space  bool
}

func captionWords(p *poststate.Post) []captionWord {
	author := p.Source().Author
	words := []captionWord{{text: author.Username, target: targetAuthor, path: author.ProfilePath()}}

	space := true
	for _, seg := range p.CaptionSegments() {
		if seg.Type != formatter.SegmentText {
			words = append(words, captionWord{text: seg.Content, target: targetCaptionLink, path: seg.Link(), space: space})
			space = false
			continue
		}
		rest := seg.Content
		for rest != "" {
			trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
			if len(trimmed) < len(rest) {
				space = true
			}
			if trimmed == "" {
				break
			}
			end := strings.IndexFunc(trimmed, unicode.IsSpace)
			if end < 0 {
				end = len(trimmed)
			}
			words = append(words, captionWord{text: trimmed[:end], space: space})
			space = false
			rest = trimmed[end:]
		}
	}
	return words
}

func (m *Model) renderCaption(b *block, p *poststate.Post, index, w int) {
	limit := w + 2
	r := (&row{}).add("  ")
	for _, word := range captionWords(p) {
		styled := word.text
		switch word.target {
		case targetAuthor:
			styled = m.styles.bold.Render(word.text)
		case targetCaptionLink:
			styled = m.styles.link.Render(word.text)
		}

		gap := 0
		if word.space {
			gap = 1
		}
		if r.x > 2 && r.x+gap+ansi.StringWidth(word.text) > limit {
			b.push(r)
			r = (&row{}).add("  ")
			gap = 0
		}
		if gap > 0 {
			r.add(" ")
		}
		if word.target == targetNone {
			r.add(styled)
		} else {
			r.button(styled, word.target, word.path, index)
		}
	}

	if p.HasMore() && !p.CaptionExpanded() {
		if r.x+5 > limit {
			b.push(r)
			r = (&row{}).add("  ")
		}
		r.add(" ").button(m.styles.faint.Render("more"), targetMore, p.ID(), index)
	}
	b.push(r)
}

func (m *Model) renderSidebar(w int) *block {
	var b block
	b.text("")

	r := &row{}
	r.add(m.styles.bold.Render(m.user.Username))
	r.padTo(w - 6)
	r.button(m.styles.link.Render("Switch"), targetSwitch, m.user.ID, 0)
	b.push(r)
	b.text(m.styles.faint.Render(m.user.FullName), "")

	b.text(m.styles.faint.Render("Suggestions For You"), "")
	for i, s := range m.suggestions {
		r := &row{}
		r.add(m.styles.bold.Render(s.User.Username))
		if s.User.Verified {
			r.add(" " + m.styles.verified.Render("✓"))
		}
		if s.Following {
			r.padTo(w - 9)
			r.add(m.styles.faint.Render("Following"))
		} else {
			r.padTo(w - 6)
			r.button(m.styles.link.Render("Follow"), targetFollow, s.User.ID, i)
		}
		b.push(r)

		b.text(m.styles.faint.Render(ansi.Truncate(s.User.FullName, w, "…")))
		if n := len(s.User.FollowedBy); n > 0 {
			who := "people"
			if n == 1 {
				who = "person"
			}
			b.text(m.styles.faint.Render(fmt.Sprintf("Followed by %d %s you follow", n, who)))
		}
	}

	b.text("", m.styles.muted.Render("© INSTAGRAM FROM META"))
	return &b
}

// box renders lines inside the overlay frame and returns the frame's lines
// with content hits shifted into frame coordinates.
func (m *Model) box(content *block, width int) ([]string, []hit) {
	lines := make([]string, len(content.lines))
	for i, l := range content.lines {
		lines[i] = fit(l, width)
	}
	framed := m.styles.overlay.Padding(0, 1).Width(width + 2).Render(strings.Join(lines, "\n"))

	hits := make([]hit, 0, len(content.hits))
	for _, h := range content.hits {
		h.rect.X += 2
		h.rect.Y++
		hits = append(hits, h)
	}
	return strings.Split(framed, "\n"), hits
}

func (m *Model) placeBox(view string, lines []string, hits []hit, x, y int) (string, overlay.Rect) {
	for _, h := range hits {
		h.rect.X += x
		h.rect.Y += y
		m.hits = append(m.hits, h)
	}
	width := 0
	for _, l := range lines {
		width = max(width, ansi.StringWidth(l))
	}
	return spliceOverlay(view, lines, x, y), overlay.Rect{X: x, Y: y, Width: width, Height: len(lines)}
}

func (m *Model) renderSearchDropdown(view string) string {
	field := m.hits.rect(targetSearchField)
	if !m.searchDrop.IsOpen() || field.Empty() {
		m.searchDrop.SetRegions(field)
		return view
	}

	var c block
	switch {
	case m.search.Value() == "":
		c.text(m.styles.faint.Render("Search for users, hashtags, or places"))
	case len(m.searchResults) == 0:
		c.text(m.styles.faint.Render("No results found"))
	default:
		for i, u := range m.searchResults {
			r := &row{}
			label := m.styles.bold.Render(u.Username)
			if u.Verified {
				label += " " + m.styles.verified.Render("✓")
			}
			r.button(label+"  "+m.styles.faint.Render(u.FullName), targetSearchResult, u.ID, i)
			c.push(r)
		}
	}

	lines, hits := m.box(&c, searchWidth+12)
	view, rect := m.placeBox(view, lines, hits, field.X, field.Y+1)
	m.searchDrop.SetRegions(rect, field)
	return view
}

func (m *Model) renderUserMenu(view string, w int) string {
	avatar := m.hits.rect(targetAvatar)
	if !m.menu.IsOpen() {
		m.menu.SetRegions(avatar)
		return view
	}

	var c block
	for i, item := range menuItems {
		r := &row{}
		label := fit(item, 14)
		if i == m.menuCursor {
			label = m.styles.selected.Render(label)
		}
		r.button(label, targetMenuItem, item, i)
		c.push(r)
		if i == menuLogout-1 {
			c.text(m.styles.muted.Render(strings.Repeat("─", 14)))
		}
	}

	lines, hits := m.box(&c, 14)
	x := max(0, min(avatar.X+avatar.Width, w)-18)
	view, rect := m.placeBox(view, lines, hits, x, avatar.Y+1)
	m.menu.SetRegions(rect, avatar)
	return view
}

func (m *Model) renderComposeModal(view string, w, h int) string {
	if !m.modal.IsOpen() {
		m.modal.SetRegions()
		return view
	}
	width := max(1, min(56, w-6))

	var c block
	r := &row{}
	r.add(m.styles.bold.Render("Create new post"))
	r.padTo(width - 1)
	r.button("✕", targetComposeClose, "", 0)
	c.push(r)
	c.text(m.styles.muted.Render(strings.Repeat("─", width)), "")

	if !m.composer.HasImage() {
		c.text(m.styles.faint.Render("Choose a photo to share"), "")
		r = &row{}
		r.button(fit(m.composePath.View(), width), targetComposePath, "", 0)
		c.push(r)
		c.text("")
		r = &row{}
		r.button(m.styles.button.Render("Select from computer"), targetComposeSubmit, "", 0)
		c.push(r)
	} else {
		d := m.composer.Draft()
		r = &row{}
		r.add("▣ " + ansi.Truncate(d.ImagePath, width-20, "…") + " " + m.styles.faint.Render(d.ImageMIME))
		r.padTo(width - 8)
		r.button(m.styles.link.Render("[Change]"), targetComposeChange, "", 0)
		c.push(r)
		c.text("")

		r = &row{}
		r.button(fit(m.composeCaption.View(), width), targetComposeCaption, "", 0)
		c.push(r)
		counter := fmt.Sprintf("%d/%d", len([]rune(m.composer.Caption())), compose.MaxCaption)
		c.text(lipgloss.PlaceHorizontal(width, lipgloss.Right, m.styles.faint.Render(counter)), "")

		r = &row{}
		if m.composer.Submitting() {
			r.add(m.spinner.View() + " Sharing...")
		} else {
			r.button("[Cancel]", targetComposeCancel, "", 0).add("  ")
			r.button(m.styles.button.Render("Share"), targetComposeSubmit, "", 0)
		}
		c.push(r)
	}

	if m.composeError != "" {
		c.text("", m.styles.liked.Render(m.composeError))
	}

	lines, hits := m.box(&c, width)
	x := max(0, (w-width-4)/2)
	y := max(0, (h-len(lines))/2)
	view, rect := m.placeBox(view, lines, hits, x, y)
	m.modal.SetRegions(rect)
	return view
}

func (m *Model) renderConfirmLogout(view string, w, h int) string {
	if m.focus != focusConfirmLogout {
		return view
	}
	var c block
	c.text("Are you sure you want to log out?", "")
	r := &row{}
	r.button(m.styles.button.Render("Log Out"), targetConfirmYes, "", 0).add("  ")
	r.button("[Cancel]", targetConfirmNo, "", 0)
	c.push(r)

	lines, hits := m.box(&c, 36)
	view, _ = m.placeBox(view, lines, hits, max(0, (w-40)/2), max(0, (h-len(lines))/2))
	return view
}

// crashView is the fallback screen. It touches nothing that can fail.
func (m *Model) crashView() string {
	w, h := m.size()
	m.hits = m.hits[:0]

	lines := []string{
		m.styles.bold.Render("Oops! Something went wrong"),
		"",
		"We're sorry for the inconvenience. Please try refreshing the page.",
		"",
	}
	if m.crash != nil && m.deps.Config.IsDevelopment() {
		lines = append(lines, m.styles.faint.Render(ansi.Truncate(m.crash.Error(), w-4, "…")), "")
	}
	button := m.styles.button.Render("Refresh Page")
	lines = append(lines, button)

	top := max(0, (h-len(lines))/2)
	out := make([]string, 0, h)
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	for _, l := range lines {
		out = append(out, lipgloss.PlaceHorizontal(w, lipgloss.Center, l))
	}

	bw := ansi.StringWidth(button)
	m.hits.add((w-bw)/2, top+len(lines)-1, bw, targetRefresh, "", 0)
	return strings.Join(out, "\n")
}
