package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/orgball2608/insta-feed/internal/overlay"
	"github.com/orgball2608/insta-feed/pkg/errors"
)

var menuItems = []string{"Profile", "Saved", "Settings", "Log Out"}

const menuLogout = 3

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Escape) {
		// Escape only reaches modal-class overlays.
		if closed := m.overlays.Dispatch(overlay.KeyEvent{Key: "esc"}); len(closed) > 0 {
			return nil
		}
	}

	switch m.focus {
	case focusConfirmLogout:
		return m.handleConfirmKeys(msg)
	case focusCompose:
		return m.handleComposeKeys(msg)
	case focusSearch:
		return m.handleSearchKeys(msg)
	}

	if m.menu.IsOpen() {
		if cmd, handled := m.handleMenuKeys(msg); handled {
			return cmd
		}
	}
	return m.handleFeedKeys(msg)
}

func (m *Model) handleFeedKeys(msg tea.KeyMsg) tea.Cmd {
	p := m.selectedPost()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.Like):
		if p != nil {
			m.logIntentError("like", p.ToggleLike(m.ctx))
		}

	case key.Matches(msg, m.keys.DoubleActivate):
		if p != nil {
			_, err := p.DoubleActivate(m.ctx)
			m.logIntentError("like", err)
		}

	case key.Matches(msg, m.keys.Save):
		if p != nil {
			m.logIntentError("save", p.ToggleSave(m.ctx))
		}

	case key.Matches(msg, m.keys.Comment):
		if p != nil {
			return m.comment(p.ID())
		}

	case key.Matches(msg, m.keys.Share):
		if p != nil {
			return m.share(p.ID())
		}

	case key.Matches(msg, m.keys.More):
		if p != nil {
			p.ExpandCaption()
		}

	case key.Matches(msg, m.keys.OpenStory):
		i, _ := strconv.Atoi(msg.String())
		m.openStory(i - 1)

	case key.Matches(msg, m.keys.NewPost):
		return m.openCompose()

	case key.Matches(msg, m.keys.Search):
		return m.focusSearchField()

	case key.Matches(msg, m.keys.UserMenu):
		m.menu.Toggle()

	case key.Matches(msg, m.keys.Follow):
		m.followNext()
	}
	return nil
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.menuCursor = (m.menuCursor + len(menuItems) - 1) % len(menuItems)
	case key.Matches(msg, m.keys.Down):
		m.menuCursor = (m.menuCursor + 1) % len(menuItems)
	case key.Matches(msg, m.keys.Confirm):
		return m.activateMenuItem(m.menuCursor), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) activateMenuItem(i int) tea.Cmd {
	m.menu.Close(overlay.TriggerExplicit)
	if i == menuLogout {
		m.log.Info("Logout clicked")
		m.focus = focusConfirmLogout
		return nil
	}

	path := map[int]string{0: m.user.ProfilePath(), 1: "/saved", 2: "/settings"}[i]
	return m.navigate(path)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		return m.logout()
	case "n", "N", "esc", "q":
		m.focus = focusFeed
	}
	return nil
}

// logout wipes the durable session and reloads from defaults.
func (m *Model) logout() tea.Cmd {
	m.focus = focusFeed
	if err := m.deps.Store.Reset(m.ctx); err != nil {
		m.log.Error("Failed to clear session", "error", err)
		return m.setStatus("Couldn't log out")
	}
	return m.reload()
}

func (m *Model) focusSearchField() tea.Cmd {
	m.focus = focusSearch
	m.searchDrop.Open()
	return m.search.Focus()
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.quit()
	case key.Matches(msg, m.keys.Escape):
		m.search.Blur()
		m.focus = focusFeed
		return nil
	case key.Matches(msg, m.keys.Next):
		m.searchDrop.Close(overlay.TriggerExplicit)
		return nil
	case key.Matches(msg, m.keys.Confirm):
		if len(m.searchResults) > 0 {
			return m.openSearchResult(0)
		}
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.debounceSearch(m.search.Value()))
}

// debounceSearch supersedes any pending search and schedules a new one.
func (m *Model) debounceSearch(query string) tea.Cmd {
	if m.searchHandle != nil {
		m.searchHandle.Cancel()
	}
	m.searchSeq++
	seq := m.searchSeq

	h, err := m.deps.Delays.After("search-debounce", m.deps.Config.Feed.SearchDebounce, nil)
	if err != nil {
		m.log.Warn("Search debounce unavailable", "error", err)
		return func() tea.Msg { return searchDebouncedMsg{seq: seq, query: query} }
	}
	m.searchHandle = h
	return waitFor(h, searchDebouncedMsg{seq: seq, query: query})
}

func (m *Model) openSearchResult(i int) tea.Cmd {
	if i < 0 || i >= len(m.searchResults) {
		return nil
	}
	u := m.searchResults[i]
	m.searchDrop.Close(overlay.TriggerExplicit)
	return m.navigate(u.ProfilePath())
}

// navigate stands in for routing: the path is logged and echoed on the
// status line.
func (m *Model) navigate(path string) tea.Cmd {
	m.log.Info("Navigate", "path", path)
	return m.setStatus("Opening " + path)
}

func (m *Model) openCompose() tea.Cmd {
	m.modal.Open()
	m.focus = focusCompose
	return m.focusComposeField()
}

func (m *Model) focusComposeField() tea.Cmd {
	if !m.composer.HasImage() {
		m.composeField = fieldPath
	}
	if m.composeField == fieldPath {
		m.composeCaption.Blur()
		return m.composePath.Focus()
	}
	m.composePath.Blur()
	return m.composeCaption.Focus()
}

func (m *Model) handleComposeKeys(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.composer.Submitting() {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		if m.composer.HasImage() {
			m.composeField = 1 - m.composeField
		}
		return m.focusComposeField()

	case key.Matches(msg, m.keys.Confirm):
		if m.composeField == fieldPath {
			return m.chooseFile()
		}
		return m.submitPost()
	}

	var cmd tea.Cmd
	if m.composeField == fieldPath {
		m.composePath, cmd = m.composePath.Update(msg)
	} else {
		m.composeCaption, cmd = m.composeCaption.Update(msg)
		m.composer.SetCaption(m.composeCaption.Value())
	}
	return cmd
}

func (m *Model) chooseFile() tea.Cmd {
	if err := m.composer.SelectImage(m.composePath.Value()); err != nil {
		if errors.IsInvalidInput(err) {
			m.composeError = "Please choose an image file"
		} else {
			m.composeError = "Couldn't read that file"
		}
		return nil
	}
	m.composeError = ""
	m.composeField = fieldCaption
	return m.focusComposeField()
}

func (m *Model) changeImage() tea.Cmd {
	m.composer.ClearImage()
	m.composePath.Reset()
	m.composeField = fieldPath
	return m.focusComposeField()
}

func (m *Model) submitPost() tea.Cmd {
	if !m.composer.CanSubmit() {
		return nil
	}
	h, err := m.composer.Submit()
	switch {
	case err == nil:
	case !errors.IsInvalidInput(err):
		m.log.Error("Failed to start submit", "error", err)
		m.composeError = "Couldn't share the post, try again"
		return nil
	case !m.composer.HasImage():
		m.composeError = "Please choose an image file"
		return nil
	default:
		m.log.Info("Draft rejected", "error", err)
		m.composeError = "Caption is too long"
		return nil
	}
	m.composeError = ""
	return tea.Batch(waitFor(h, postSubmittedMsg{generation: m.generation}), m.spinner.Tick)
}

func (m *Model) cancelCompose() {
	if m.composer.CanCancel() {
		m.modal.Close(overlay.TriggerExplicit)
	}
}

// comment records the intent and previews the latest comment in the status
// line.
func (m *Model) comment(postID string) tea.Cmd {
	m.deps.Feed.Comment(m.ctx, postID)
	comments := m.deps.Feed.Comments(postID)
	if len(comments) == 0 {
		return nil
	}
	last := comments[len(comments)-1]
	return m.setStatus(last.Author.Username + ": " + last.Text)
}

func (m *Model) share(postID string) tea.Cmd {
	f, ctx := m.deps.Feed, m.ctx
	return func() tea.Msg {
		return shareResultMsg{postID: postID, err: f.Share(ctx, postID)}
	}
}

func (m *Model) openStory(i int) {
	if i >= 0 && i < len(m.stories) {
		m.deps.Feed.OpenStory(m.ctx, m.stories[i].ID)
	}
}

// followNext follows the first suggestion not followed yet. The sidebar only
// exists on desktop.
func (m *Model) followNext() {
	if !m.gate.IsDesktop() {
		return
	}
	for i, s := range m.suggestions {
		if !s.Following {
			m.follow(i)
			return
		}
	}
}

func (m *Model) follow(i int) {
	if i < 0 || i >= len(m.suggestions) || m.suggestions[i].Following {
		return
	}
	if err := m.deps.Feed.Follow(m.ctx, m.suggestions[i].User.ID); err != nil {
		m.log.Warn("Follow not persisted", "userID", m.suggestions[i].User.ID, "error", err)
	}
	m.suggestions = m.deps.Feed.SuggestedUsers(m.ctx)
}

func (m *Model) moveSelection(delta int) {
	if m.scrollLocked || len(m.posts) == 0 {
		return
	}
	m.selected = max(0, min(len(m.posts)-1, m.selected+delta))
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	if m.selected >= len(m.postLines) || m.bodyRows <= 0 {
		return
	}
	span := m.postLines[m.selected]
	if span.start < m.offset {
		m.offset = span.start
	} else if end := span.start + span.height; end > m.offset+m.bodyRows {
		m.offset = min(span.start, end-m.bodyRows)
	}
}

func (m *Model) scroll(delta int) {
	if m.scrollLocked {
		return
	}
	m.offset = max(0, m.offset+delta)
}

// Storage failures behind an intent are logged, never shown.
func (m *Model) logIntentError(intent string, err error) {
	if err != nil {
		m.log.Warn("Intent not persisted", "intent", intent, "error", err)
	}
}
