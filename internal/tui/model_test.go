package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/orgball2608/insta-feed/internal/domain"
	"github.com/orgball2608/insta-feed/internal/feed"
	"github.com/orgball2608/insta-feed/internal/feed/feedimpl"
	"github.com/orgball2608/insta-feed/internal/imaging/imagingimpl"
	"github.com/orgball2608/insta-feed/internal/seed/seedimpl"
	"github.com/orgball2608/insta-feed/internal/session"
	"github.com/orgball2608/insta-feed/internal/share/shareimpl"
	"github.com/orgball2608/insta-feed/internal/storage"
	"github.com/orgball2608/insta-feed/internal/storage/storageimpl"
	"github.com/orgball2608/insta-feed/pkg/config"
	"github.com/orgball2608/insta-feed/pkg/delay"
	"github.com/orgball2608/insta-feed/pkg/errors"
	"github.com/orgball2608/insta-feed/pkg/logger"
)

// panickyFeed fails while the feed mounts when armed.
type panickyFeed struct {
	feed.Controller
	armed bool
}

func (f *panickyFeed) Posts(ctx context.Context) []domain.Post {
	if f.armed {
		panic("posts exploded")
	}
	return f.Controller.Posts(ctx)
}

type fixture struct {
	model *Model
	store *session.Store
	feed  *panickyFeed
	now   time.Time
}

func newFixture(t *testing.T, repo storage.Repository, tweaks ...func(*config.Config)) *fixture {
	t.Helper()

	log := logger.Discard()
	now := time.Now()
	data := seedimpl.NewAt(now)
	store := session.NewStore(repo, log, data.CurrentUser())
	store.Load(context.Background())

	delays, err := delay.New(log)
	if err != nil {
		t.Fatal(err)
	}
	delays.Start()
	t.Cleanup(func() { _ = delays.Shutdown() })

	cfg := config.Default()
	cfg.Feed.LoadDelay = time.Hour
	cfg.Feed.SubmitDelay = time.Hour
	cfg.Feed.SearchDebounce = time.Hour
	for _, tweak := range tweaks {
		tweak(cfg)
	}

	f := &fixture{
		store: store,
		feed: &panickyFeed{Controller: feedimpl.New(feedimpl.Opts{
			Seed:   data,
			Store:  store,
			Share:  shareimpl.NewLog(log),
			Logger: log,
		})},
		now: now,
	}
	f.model = NewModel(Deps{
		Feed:   f.feed,
		Store:  store,
		Delays: delays,
		Images: imagingimpl.Offline{},
		Config: cfg,
		Logger: log,
		Now:    func() time.Time { return f.now },
	})
	t.Cleanup(f.model.Close)
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.model.Update(msg)
	return cmd
}

func (f *fixture) resize(w, h int) {
	f.send(tea.WindowSizeMsg{Width: w, Height: h})
}

func (f *fixture) load() {
	f.send(feedLoadedMsg{generation: f.model.generation})
	for _, p := range f.model.posts {
		f.send(imageResultMsg{generation: f.model.generation, postID: p.ID()})
	}
}

func (f *fixture) keys(keys ...string) {
	for _, k := range keys {
		switch k {
		case "esc":
			f.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "enter":
			f.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "tab":
			f.send(tea.KeyMsg{Type: tea.KeyTab})
		default:
			f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func (f *fixture) click(x, y int) {
	f.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	f.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func (f *fixture) clickTarget(t *testing.T, tgt target) {
	t.Helper()
	f.model.View()
	r := f.model.hits.rect(tgt)
	if r.Empty() {
		t.Fatalf("target %d not rendered", tgt)
	}
	f.click(r.X, r.Y)
}

func TestLayoutFollowsWidth(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())

	tests := []struct {
		width       int
		desktop     bool
		searchField bool
		wantText    string
	}{
		{width: 60, desktop: false, searchField: false, wantText: "⊕ New"},
		{width: 100, desktop: false, searchField: true, wantText: "⊕ New"},
		{width: 130, desktop: true, searchField: true, wantText: "Suggestions For You"},
		{width: 119, desktop: false, searchField: true, wantText: "⊕ New"},
	}

	for _, tt := range tests {
		f.resize(tt.width, 40)
		view := f.model.View()

		if got := f.model.gate.IsDesktop(); got != tt.desktop {
			t.Errorf("width %d: desktop = %v, want %v", tt.width, got, tt.desktop)
		}
		if got := !f.model.hits.rect(targetSearchField).Empty(); got != tt.searchField {
			t.Errorf("width %d: search field shown = %v, want %v", tt.width, got, tt.searchField)
		}
		if !strings.Contains(view, tt.wantText) {
			t.Errorf("width %d: view is missing %q", tt.width, tt.wantText)
		}
	}
}

func TestZeroDesktopBreakpointShowsSidebar(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory(), func(cfg *config.Config) {
		cfg.Layout.DesktopColumns = 0
	})
	f.resize(130, 40)

	if view := f.model.View(); !strings.Contains(view, "Suggestions For You") {
		t.Error("sidebar hidden although every width is desktop")
	}
}

func TestLoadingThenFeed(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(100, 200)

	if !strings.Contains(f.model.View(), "Loading feed") {
		t.Fatal("no loading indicator before the feed arrives")
	}

	f.send(feedLoadedMsg{generation: f.model.generation - 1})
	if !f.model.loading {
		t.Fatal("stale load message mounted the feed")
	}

	f.load()
	if len(f.model.posts) != 5 {
		t.Fatalf("posts = %d, want 5", len(f.model.posts))
	}
	view := f.model.View()
	for _, want := range []string{"You're all caught up!", "1.2K likes", "2H AGO"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestLikeAndSaveSurviveReload(t *testing.T) {
	repo := storageimpl.NewMemory()
	f := newFixture(t, repo)
	f.resize(100, 40)
	f.load()

	f.keys("l", "s")
	p := f.model.posts[0]
	if !p.Liked() || p.LikeCount() != 1235 || !p.Saved() {
		t.Fatalf("after like+save: liked=%v count=%d saved=%v", p.Liked(), p.LikeCount(), p.Saved())
	}

	f.model.reload()
	f.load()
	p = f.model.posts[0]
	if !p.Liked() || !p.Saved() {
		t.Errorf("after reload: liked=%v saved=%v", p.Liked(), p.Saved())
	}
	// The count is seeded from the feed, not from the override.
	if p.LikeCount() != 1234 {
		t.Errorf("after reload: count = %d, want 1234", p.LikeCount())
	}
}

func TestDoubleClickOnImageOnlyLikes(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(100, 40)
	f.load()

	for round := 0; round < 2; round++ {
		f.clickTarget(t, targetPostImage)
		f.now = f.now.Add(100 * time.Millisecond)
		f.clickTarget(t, targetPostImage)
		f.now = f.now.Add(time.Second)

		p := f.model.posts[0]
		if !p.Liked() || p.LikeCount() != 1235 {
			t.Fatalf("round %d: liked=%v count=%d", round, p.Liked(), p.LikeCount())
		}
	}

	// Two slow clicks are not a double click.
	f.keys("l")
	f.clickTarget(t, targetPostImage)
	f.now = f.now.Add(time.Second)
	f.clickTarget(t, targetPostImage)
	if f.model.posts[0].Liked() {
		t.Error("slow clicks liked the post")
	}
}

func TestEscapeClosesOnlyTheModal(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(130, 40)
	f.load()

	f.keys("u", "n")
	if !f.model.menu.IsOpen() || !f.model.modal.IsOpen() {
		t.Fatal("menu and modal should both be open")
	}
	if !f.model.scrollLocked {
		t.Error("open modal did not lock scrolling")
	}

	f.keys("esc")
	if f.model.modal.IsOpen() {
		t.Error("escape left the modal open")
	}
	if !f.model.menu.IsOpen() {
		t.Error("escape closed the dropdown")
	}
	if f.model.scrollLocked {
		t.Error("scroll lock survived the modal")
	}

	f.keys("esc")
	if !f.model.menu.IsOpen() {
		t.Error("second escape closed the dropdown")
	}
}

func TestOutsideClickClosesMenu(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(130, 40)
	f.load()

	f.clickTarget(t, targetAvatar)
	if !f.model.menu.IsOpen() {
		t.Fatal("avatar click did not open the menu")
	}

	f.model.View()
	f.click(0, 30)
	if f.model.menu.IsOpen() {
		t.Error("outside click left the menu open")
	}
	f.click(0, 30)
	if f.model.menu.IsOpen() {
		t.Error("second outside click reopened the menu")
	}
}

func TestModalBackdropSwallowsClick(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(130, 40)
	f.load()

	f.model.View()
	like := f.model.hits.rect(targetLike)

	f.keys("n")
	f.model.View()
	if f.model.modal.Contains(like.X, like.Y) {
		t.Skip("like button is under the modal at this size")
	}
	f.click(like.X, like.Y)

	if f.model.modal.IsOpen() {
		t.Error("backdrop click left the modal open")
	}
	if f.model.posts[0].Liked() {
		t.Error("backdrop click reached the post below")
	}
}

func TestComposeKeepsDraftAndSubmits(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(130, 40)
	f.load()

	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notImage, []byte("plain text, not a picture"), 0o600); err != nil {
		t.Fatal(err)
	}
	image := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(image, pngBytes, 0o600); err != nil {
		t.Fatal(err)
	}

	f.keys("n", notImage, "enter")
	if f.model.composer.HasImage() || f.model.composeError == "" {
		t.Fatal("non-image file was accepted")
	}

	f.model.composePath.Reset()
	f.keys(image, "enter", "sunny day")
	if !f.model.composer.HasImage() {
		t.Fatalf("image not selected: %s", f.model.composeError)
	}

	// Closing keeps the draft.
	f.keys("esc", "n")
	if f.model.composer.Caption() != "sunny day" || !f.model.composer.HasImage() {
		t.Fatal("draft lost on close")
	}

	f.keys("enter")
	if !f.model.composer.Submitting() {
		t.Fatal("submit did not start")
	}
	f.send(postSubmittedMsg{generation: f.model.generation})
	if f.model.modal.IsOpen() {
		t.Error("modal open after submit")
	}
	if f.model.composer.HasImage() || f.model.composer.Caption() != "" {
		t.Error("draft not cleared after submit")
	}
}

func TestSearchUsesDebouncedQuery(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(130, 40)
	f.load()

	f.keys("/")
	if !strings.Contains(f.model.View(), "Search for users, hashtags, or places") {
		t.Error("empty search does not show the hint")
	}

	f.keys("j", "o")
	if f.model.search.Value() != "jo" {
		t.Fatalf("search value = %q", f.model.search.Value())
	}
	if len(f.model.searchResults) != 0 {
		t.Fatal("results arrived before the debounce")
	}

	f.send(searchDebouncedMsg{seq: f.model.searchSeq - 1, query: "j"})
	if f.model.searchQuery != "" {
		t.Error("superseded search was applied")
	}

	f.send(searchDebouncedMsg{seq: f.model.searchSeq, query: "jo"})
	view := f.model.View()
	if len(f.model.searchResults) != 2 || !strings.Contains(view, "janedoe") {
		t.Errorf("results = %d, view has janedoe = %v", len(f.model.searchResults), strings.Contains(view, "janedoe"))
	}

	f.keys("tab")
	if f.model.searchDrop.IsOpen() {
		t.Error("tab did not close the results")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(130, 40)
	f.load()
	ctx := context.Background()

	f.keys("l")
	if !f.store.Liked.Get(ctx)["post_1"] {
		t.Fatal("like not persisted")
	}

	f.keys("u", "j", "j", "j")
	if !strings.Contains(f.model.View(), "Log Out") {
		t.Fatal("menu does not offer log out")
	}
	f.keys("enter")
	if !strings.Contains(f.model.View(), "Are you sure you want to log out?") {
		t.Fatal("log out was not confirmed")
	}

	f.keys("n")
	if len(f.store.Liked.Get(ctx)) == 0 {
		t.Fatal("declining the confirmation cleared the session")
	}

	f.keys("u", "j", "j", "j", "enter", "y")
	if len(f.store.Liked.Get(ctx)) != 0 {
		t.Error("liked overrides survived log out")
	}
	if !f.model.loading {
		t.Error("log out did not reload the feed")
	}
}

func TestCrashScreenAndRecovery(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(100, 40)

	f.keys("n")
	if !f.model.scrollLocked {
		t.Fatal("modal did not lock scrolling")
	}

	f.feed.armed = true
	f.send(feedLoadedMsg{generation: f.model.generation})

	view := f.model.View()
	for _, want := range []string{"Oops! Something went wrong", "Please try refreshing the page.", "Refresh Page"} {
		if !strings.Contains(view, want) {
			t.Errorf("crash view is missing %q", want)
		}
	}
	if f.model.scrollLocked {
		t.Error("scroll lock leaked past the failure")
	}

	// Input other than refresh is ignored.
	f.keys("l", "n")
	if f.model.crash == nil {
		t.Fatal("crash screen dismissed without refresh")
	}

	f.feed.armed = false
	f.clickTarget(t, targetRefresh)
	if f.model.crash != nil {
		t.Fatal("refresh did not leave the crash screen")
	}
	f.load()
	if len(f.model.posts) != 5 {
		t.Errorf("posts after recovery = %d", len(f.model.posts))
	}
}

func TestFollowAndShareFromKeys(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(130, 40)
	f.load()

	f.keys("f")
	if !f.model.suggestions[0].Following {
		t.Error("f did not follow the first suggestion")
	}
	if !f.store.IsFollowing(context.Background(), f.model.suggestions[0].User.ID) {
		t.Error("follow not persisted")
	}

	cmd := f.model.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("S")})
	if cmd == nil {
		t.Fatal("share produced no command")
	}
	msg, ok := cmd().(shareResultMsg)
	if !ok || msg.err != nil || msg.postID != "post_1" {
		t.Fatalf("share result = %#v", msg)
	}
	f.send(msg)
	if f.model.status != "Post shared" {
		t.Errorf("status = %q", f.model.status)
	}
}

func TestCommentPreviewsLatest(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(100, 40)
	f.load()

	f.keys("c")
	comments := f.feed.Comments("post_1")
	last := comments[len(comments)-1]
	if want := last.Author.Username + ": " + last.Text; f.model.status != want {
		t.Errorf("status = %q, want %q", f.model.status, want)
	}

	f.send(statusFadeMsg{seq: f.model.statusSeq - 1})
	if f.model.status == "" {
		t.Error("stale fade cleared the status")
	}
	f.send(statusFadeMsg{seq: f.model.statusSeq})
	if f.model.status != "" {
		t.Error("status did not fade")
	}
}

func TestOverlaysRenderOnNarrowTerminals(t *testing.T) {
	for width := 1; width <= 40; width++ {
		for _, k := range []string{"n", "u", "/"} {
			f := newFixture(t, storageimpl.NewMemory())
			f.resize(width, 24)
			f.load()
			f.keys(k)
			f.model.View()

			if f.model.crash != nil {
				t.Fatalf("width %d key %q: crash screen: %v", width, k, f.model.crash)
			}
		}
	}
}

func TestTinySubmitDelayStillSubmits(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory(), func(cfg *config.Config) {
		cfg.Feed.SubmitDelay = time.Microsecond
	})
	f.resize(130, 40)
	f.load()

	image := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(image, pngBytes, 0o600); err != nil {
		t.Fatal(err)
	}

	f.keys("n", image, "enter", "quick one", "enter")
	if f.model.composeError != "" {
		t.Fatalf("composeError = %q", f.model.composeError)
	}
	if !f.model.composer.Submitting() {
		t.Fatal("submit did not start")
	}
}

func TestCaptionLinksNavigate(t *testing.T) {
	f := newFixture(t, storageimpl.NewMemory())
	f.resize(100, 200)
	f.load()

	f.clickTarget(t, targetCaptionLink)
	if f.model.status != "Opening /explore/tags/sunset" {
		t.Errorf("status after hashtag click = %q", f.model.status)
	}

	f.now = f.now.Add(time.Second)
	f.clickTarget(t, targetAuthor)
	author := f.model.posts[0].Source().Author
	if want := "Opening " + author.ProfilePath(); f.model.status != want {
		t.Errorf("status after author click = %q, want %q", f.model.status, want)
	}
}

func TestImageFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.WrapWithCode(errors.ErrMalformed, errors.CodeImage, "sniff"), "not an image"},
		{errors.Wrap(errors.ErrUnavailable, "status 503"), "server unavailable"},
		{errors.Wrap(errors.ErrNotFound, "status 404"), "missing"},
		{errors.Wrap(errors.ErrInvalidInput, "bad url"), "bad url"},
		{errors.New("connection reset"), "transport"},
	}

	for _, tt := range tests {
		if got := imageFailure(tt.err); got != tt.want {
			t.Errorf("imageFailure(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

// Smallest valid PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}
