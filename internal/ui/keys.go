package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedarden/liftlog/internal/navigator"
)

// keyMap holds the browser's non-printable bindings. Letters are never
// bound so every printable key reaches the search query.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "chart"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("⌫", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Delete, k.Clear, k.Quit},
	}
}

// decodeKey turns a terminal key press into navigator events. A paste or
// a burst of typed runes arrives as one message and yields one event per rune.
func (k keyMap) decodeKey(msg tea.KeyMsg) []navigator.KeyEvent {
	switch {
	case key.Matches(msg, k.Quit):
		return []navigator.KeyEvent{navigator.Key(navigator.KeyQuit)}
	case key.Matches(msg, k.Up):
		return []navigator.KeyEvent{navigator.Key(navigator.KeyUp)}
	case key.Matches(msg, k.Down):
		return []navigator.KeyEvent{navigator.Key(navigator.KeyDown)}
	case key.Matches(msg, k.Select):
		return []navigator.KeyEvent{navigator.Key(navigator.KeyEnter)}
	case key.Matches(msg, k.Delete):
		return []navigator.KeyEvent{navigator.Key(navigator.KeyBackspace)}
	case key.Matches(msg, k.Clear):
		return []navigator.KeyEvent{navigator.Key(navigator.KeyEscape)}
	}

	if msg.Alt {
		return []navigator.KeyEvent{navigator.Key(navigator.KeyUnknown)}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []navigator.KeyEvent{navigator.Printable(' ')}
	case tea.KeyRunes:
		events := make([]navigator.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, navigator.Printable(r))
		}
		return events
	}

	return []navigator.KeyEvent{navigator.Key(navigator.KeyUnknown)}
}
