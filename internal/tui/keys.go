package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the feed's key bindings.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	Like           key.Binding
	DoubleActivate key.Binding
	Save           key.Binding
	Comment        key.Binding
	Share          key.Binding
	More           key.Binding
	OpenStory      key.Binding

	NewPost  key.Binding
	Search   key.Binding
	UserMenu key.Binding
	Follow   key.Binding

	Confirm key.Binding
	Next    key.Binding
	Escape  key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap uses j/k for movement and single letters for post actions.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Like: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "like"),
	),
	DoubleActivate: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "double-tap"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Comment: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comment"),
	),
	Share: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "share"),
	),
	More: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "more"),
	),
	OpenStory: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "story"),
	),
	NewPost: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new post"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	UserMenu: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "menu"),
	),
	Follow: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "follow"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp is the binding list shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Like, k.Save, k.Share, k.More, k.NewPost, k.Search, k.UserMenu, k.Quit}
}
