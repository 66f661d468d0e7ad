package tui

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/orgball2608/insta-feed/internal/compose"
	"github.com/orgball2608/insta-feed/internal/domain"
	"github.com/orgball2608/insta-feed/internal/feed"
	"github.com/orgball2608/insta-feed/internal/imaging"
	"github.com/orgball2608/insta-feed/internal/layout"
	"github.com/orgball2608/insta-feed/internal/overlay"
	"github.com/orgball2608/insta-feed/internal/poststate"
	"github.com/orgball2608/insta-feed/internal/session"
	"github.com/orgball2608/insta-feed/pkg/config"
	"github.com/orgball2608/insta-feed/pkg/delay"
	"github.com/orgball2608/insta-feed/pkg/errors"
	"github.com/orgball2608/insta-feed/pkg/logger"
)

const (
	notificationCount = 5
	doubleClickWindow = 400 * time.Millisecond
	statusFadeDelay   = 3 * time.Second
	wheelStep         = 3
)

// Deps are the collaborators the model drives.
type Deps struct {
	Feed   feed.Controller
	Store  *session.Store
	Delays *delay.Scheduler
	Images imaging.Loader
	Config *config.Config
	Logger logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type focusRegion int

const (
	focusFeed focusRegion = iota
	focusSearch
	focusCompose
	focusConfirmLogout
)

type composeField int

const (
	fieldPath composeField = iota
	fieldCaption
)

// Model is the feed screen. One mount covers the time between a (re)load and
// the next teardown; everything per mount is rebuilt by mount.
type Model struct {
	deps   Deps
	ctx    context.Context
	log    logger.Logger
	keys   KeyMap
	styles styles

	gate        *layout.Gate
	unsubscribe func()
	width       int
	height      int

	// Per mount.
	generation  int
	loading     bool
	loadHandle  *delay.Handle
	spinner     spinner.Model
	user        domain.User
	posts       []*poststate.Post
	stories     []domain.Story
	suggestions []feed.Suggestion
	selected    int
	offset      int

	overlays     *overlay.Manager
	modal        *overlay.Overlay
	menu         *overlay.Overlay
	searchDrop   *overlay.Overlay
	scrollLocked bool
	focus        focusRegion

	search        textinput.Model
	searchQuery   string
	searchResults []*domain.User
	searchSeq     int
	searchHandle  *delay.Handle

	composer       *compose.Composer
	composePath    textinput.Model
	composeCaption textinput.Model
	composeField   composeField
	composeError   string

	menuCursor int

	status    string
	statusSeq int

	// Filled by render.
	hits      hitList
	postLines []postSpan
	bodyRows  int

	lastClick click

	crash error
}

type postSpan struct {
	start, height int
}

type click struct {
	target target
	id     string
	at     time.Time
}

type (
	feedLoadedMsg    struct{ generation int }
	postSubmittedMsg struct{ generation int }
	imageResultMsg   struct {
		generation int
		postID     string
		err        error
	}
	searchDebouncedMsg struct {
		seq   int
		query string
	}
	shareResultMsg struct {
		postID string
		err    error
	}
	statusFadeMsg struct{ seq int }
)

func NewModel(deps Deps) *Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	m := &Model{
		deps:   deps,
		ctx:    context.Background(),
		log:    deps.Logger.WithComponent("TUI"),
		keys:   DefaultKeyMap,
		styles: newStyles(DefaultTheme),
		gate:   layout.NewGate(layout.BreakpointsFromConfig(deps.Config), 0),
	}
	m.unsubscribe = m.gate.Subscribe(func(desktop bool) {
		m.log.Debug("Layout changed", "desktop", desktop, "width", m.gate.Width())
	})

	m.mount()
	return m
}

// mount builds per-mount state from the store and starts the initial load.
func (m *Model) mount() {
	m.generation++
	m.crash = nil
	m.focus = focusFeed
	m.selected = 0
	m.offset = 0
	m.posts = nil
	m.loading = true
	m.status = ""
	m.lastClick = click{}

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.overlays = overlay.NewManager(overlay.NewScrollLock(func(locked bool) {
		m.scrollLocked = locked
	}))
	m.modal = m.overlays.NewOverlay("create-post", overlay.Modal, m.onModalClose)
	m.menu = m.overlays.NewOverlay("user-menu", overlay.Dropdown, func(overlay.Trigger) {
		m.menuCursor = 0
	})
	m.searchDrop = m.overlays.NewOverlay("search-results", overlay.Dropdown, func(overlay.Trigger) {
		m.search.Blur()
		if m.focus == focusSearch {
			m.focus = focusFeed
		}
	})

	m.search = textinput.New()
	m.search.Placeholder = "Search"
	m.search.Prompt = "⌕ "
	m.search.CharLimit = 64
	m.searchQuery = ""
	m.searchResults = nil

	m.composer = compose.New(m.deps.Delays, m.deps.Config.Feed.SubmitDelay, m.deps.Logger)
	m.composePath = textinput.New()
	m.composePath.Placeholder = "path/to/photo.jpg"
	m.composePath.Prompt = "File: "
	m.composeCaption = textinput.New()
	m.composeCaption.Placeholder = "Write a caption..."
	m.composeCaption.Prompt = "Caption: "
	m.composeCaption.CharLimit = compose.MaxCaption
	m.composeField = fieldPath
	m.composeError = ""

	m.user = m.deps.Feed.CurrentUser(m.ctx)
	m.stories = m.deps.Feed.Stories()
	m.suggestions = m.deps.Feed.SuggestedUsers(m.ctx)
}

// unmount invalidates everything the current mount scheduled so nothing
// lands on a torn down view.
func (m *Model) unmount() {
	if m.loadHandle != nil {
		m.loadHandle.Cancel()
		m.loadHandle = nil
	}
	if m.searchHandle != nil {
		m.searchHandle.Cancel()
		m.searchHandle = nil
	}
	m.composer.Teardown()
	m.overlays.Teardown()
}

// Close releases the model for good.
func (m *Model) Close() {
	m.unmount()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Model) reload() tea.Cmd {
	m.log.Info("Reloading")
	m.unmount()
	m.mount()
	return m.Init()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startLoad(), m.spinner.Tick)
}

func (m *Model) startLoad() tea.Cmd {
	gen := m.generation
	h, err := m.deps.Delays.After("feed-load", m.deps.Config.Feed.LoadDelay, nil)
	if err != nil {
		m.log.Warn("Initial load delay unavailable, showing feed now", "error", err)
		return func() tea.Msg { return feedLoadedMsg{generation: gen} }
	}
	m.loadHandle = h
	return waitFor(h, feedLoadedMsg{generation: gen})
}

// waitFor delivers msg once h fires. A cancelled handle delivers nothing.
func waitFor(h *delay.Handle, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		<-h.Done()
		if !h.Fired() {
			return nil
		}
		return msg
	}
}

// Update recovers from panics by switching to the crash screen.
func (m *Model) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.fail(r)
			model, cmd = m, nil
		}
	}()

	if m.crash != nil {
		return m, m.updateCrashed(msg)
	}
	return m, m.update(msg)
}

func (m *Model) fail(r any) {
	m.crash = fmt.Errorf("%v", r)
	m.log.Error("Unhandled failure, showing crash screen", "panic", r, "stack", string(debug.Stack()))

	defer func() {
		if r := recover(); r != nil {
			m.log.Error("Teardown after failure failed", "panic", r)
		}
	}()
	m.unmount()
}

func (m *Model) updateCrashed(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Reload), key.Matches(msg, m.keys.Confirm):
			return m.reload()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if h, ok := m.hits.at(msg.X, msg.Y); ok && h.target == targetRefresh {
				return m.reload()
			}
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.spinning() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case feedLoadedMsg:
		if msg.generation != m.generation {
			return nil
		}
		return m.onFeedLoaded()

	case imageResultMsg:
		if msg.generation != m.generation {
			return nil
		}
		m.onImageResult(msg)

	case searchDebouncedMsg:
		if msg.seq != m.searchSeq {
			return nil
		}
		m.searchHandle = nil
		m.searchQuery = msg.query
		m.searchResults = m.deps.Feed.Search(msg.query)

	case postSubmittedMsg:
		if msg.generation != m.generation {
			return nil
		}
		m.composer.Finish()
		m.resetComposeInputs()
		m.modal.Close(overlay.TriggerExplicit)
		return m.setStatus("Post shared")

	case shareResultMsg:
		if msg.err != nil {
			m.log.Warn("Share failed", "postID", msg.postID, "error", msg.err)
			return m.setStatus("Couldn't share post")
		}
		return m.setStatus("Post shared")

	case statusFadeMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
	}
	return nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.gate.Resize(width)
	m.search.Width = searchWidth - ansi.StringWidth(m.search.Prompt) - 1
}

func (m *Model) spinning() bool {
	if m.loading || m.composer.Submitting() {
		return true
	}
	for _, p := range m.posts {
		if p.ShowSpinner() {
			return true
		}
	}
	return false
}

// onFeedLoaded mounts the posts. Each one is seeded from the enriched feed
// at this moment and keeps its own state afterwards.
func (m *Model) onFeedLoaded() tea.Cmd {
	m.loading = false
	m.loadHandle = nil

	enriched := m.deps.Feed.Posts(m.ctx)
	m.posts = make([]*poststate.Post, 0, len(enriched))
	for _, p := range enriched {
		m.posts = append(m.posts, poststate.New(p, m.deps.Feed, poststate.WithCaptionLimit(m.deps.Config.Feed.CaptionLimit)))
	}
	m.log.Debug("Feed loaded", "posts", len(m.posts))

	cmds := make([]tea.Cmd, 0, len(m.posts)+1)
	for _, p := range m.posts {
		cmds = append(cmds, m.loadImage(p))
	}
	cmds = append(cmds, m.spinner.Tick)
	return tea.Batch(cmds...)
}

func (m *Model) loadImage(p *poststate.Post) tea.Cmd {
	gen, id, url := m.generation, p.ID(), p.ImageURL()
	loader, ctx := m.deps.Images, m.ctx
	return func() tea.Msg {
		return imageResultMsg{generation: gen, postID: id, err: loader.Load(ctx, url)}
	}
}

func (m *Model) onImageResult(msg imageResultMsg) {
	p := m.post(msg.postID)
	if p == nil {
		return
	}
	if msg.err != nil {
		m.log.Debug("Image unavailable, using placeholder", "postID", msg.postID,
			"reason", imageFailure(msg.err), "error", msg.err)
		p.MarkImageFailed()
		return
	}
	p.MarkImageLoaded()
}

func imageFailure(err error) string {
	switch {
	case errors.IsMalformed(err):
		return "not an image"
	case errors.IsUnavailable(err):
		return "server unavailable"
	case errors.IsNotFound(err):
		return "missing"
	case errors.IsInvalidInput(err):
		return "bad url"
	default:
		return "transport"
	}
}

func (m *Model) post(id string) *poststate.Post {
	for _, p := range m.posts {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

func (m *Model) selectedPost() *poststate.Post {
	if m.selected < 0 || m.selected >= len(m.posts) {
		return nil
	}
	return m.posts[m.selected]
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusSeq++
	m.status = text
	seq := m.statusSeq
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
		return statusFadeMsg{seq: seq}
	})
}

func (m *Model) onModalClose(trigger overlay.Trigger) {
	m.composePath.Blur()
	m.composeCaption.Blur()
	if m.focus == focusCompose {
		m.focus = focusFeed
	}
	m.log.Debug("Create post closed", "trigger", string(trigger))
}

func (m *Model) resetComposeInputs() {
	m.composePath.Reset()
	m.composeCaption.Reset()
	m.composeField = fieldPath
	m.composeError = ""
}
