package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/orgball2608/insta-feed/internal/overlay"
)

func pointerAction(msg tea.MouseMsg) (overlay.PointerAction, bool) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft, tea.MouseButtonMiddle, tea.MouseButtonRight:
			return overlay.PointerPress, true
		}
		return 0, false
	case tea.MouseActionRelease:
		return overlay.PointerRelease, true
	default:
		return overlay.PointerMotion, true
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		m.scroll(wheelStep)
		return nil
	}

	action, ok := pointerAction(msg)
	if !ok {
		return nil
	}

	modalOpen := m.modal.IsOpen()
	m.overlays.Dispatch(overlay.PointerEvent{X: msg.X, Y: msg.Y, Action: action})

	if action != overlay.PointerPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	// A press outside the modal lands on its backdrop.
	if modalOpen && !m.modal.IsOpen() {
		return nil
	}

	h, ok := m.hits.at(msg.X, msg.Y)
	if !ok {
		return nil
	}
	if m.focus == focusConfirmLogout && h.target != targetConfirmYes && h.target != targetConfirmNo {
		return nil
	}
	if modalOpen && !isComposeTarget(h.target) {
		return nil
	}
	return m.press(h)
}

func isComposeTarget(t target) bool {
	switch t {
	case targetComposePath, targetComposeCaption, targetComposeCancel,
		targetComposeSubmit, targetComposeChange, targetComposeClose:
		return true
	}
	return false
}

func (m *Model) press(h hit) tea.Cmd {
	now := m.deps.Now()
	double := m.lastClick.target == h.target && m.lastClick.id == h.id &&
		now.Sub(m.lastClick.at) <= doubleClickWindow
	m.lastClick = click{target: h.target, id: h.id, at: now}

	if h.target != targetSearchField && m.focus == focusSearch {
		m.search.Blur()
		m.focus = focusFeed
	}

	switch h.target {
	case targetSearchField:
		return m.focusSearchField()
	case targetSearchResult:
		return m.openSearchResult(h.index)
	case targetNewPost, targetBottomNew:
		return m.openCompose()
	case targetNotifications:
		return m.navigate("/notifications")
	case targetAuthor, targetCaptionLink:
		m.selected = h.index
		return m.navigate(h.id)
	case targetAvatar:
		m.menu.Toggle()
	case targetMenuItem:
		m.menuCursor = h.index
		return m.activateMenuItem(h.index)
	case targetStory:
		m.openStory(h.index)
	case targetFollow:
		m.follow(h.index)
	case targetSwitch:
		m.deps.Feed.SwitchAccount(m.ctx)

	case targetPostImage:
		m.selected = h.index
		if double {
			m.lastClick = click{}
			if p := m.selectedPost(); p != nil {
				_, err := p.DoubleActivate(m.ctx)
				m.logIntentError("like", err)
			}
		}
	case targetLike, targetSave, targetComment, targetViewComments, targetShare, targetMore:
		m.selected = h.index
		return m.postAction(h.target)

	case targetComposePath:
		m.composeField = fieldPath
		return m.focusComposeField()
	case targetComposeCaption:
		m.composeField = fieldCaption
		return m.focusComposeField()
	case targetComposeChange:
		return m.changeImage()
	case targetComposeCancel, targetComposeClose:
		m.cancelCompose()
	case targetComposeSubmit:
		if m.composer.HasImage() {
			return m.submitPost()
		}
		return m.chooseFile()

	case targetConfirmYes:
		return m.logout()
	case targetConfirmNo:
		m.focus = focusFeed
	}
	return nil
}

func (m *Model) postAction(t target) tea.Cmd {
	p := m.selectedPost()
	if p == nil {
		return nil
	}
	switch t {
	case targetLike:
		m.logIntentError("like", p.ToggleLike(m.ctx))
	case targetSave:
		m.logIntentError("save", p.ToggleSave(m.ctx))
	case targetComment, targetViewComments:
		return m.comment(p.ID())
	case targetShare:
		return m.share(p.ID())
	case targetMore:
		p.ExpandCaption()
	}
	return nil
}
