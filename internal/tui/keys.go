package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vancomm/minesweeper-pad/internal/input"
)

// KeyMap binds terminal keys to pad buttons. Terminals only report key
// presses, so every bound key is fed to the game as a press followed by a
// release.
type KeyMap struct {
	Buttons [input.NumButtons]key.Binding
	Reset   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Buttons: [input.NumButtons]key.Binding{
			input.Right: key.NewBinding(
				key.WithKeys("d", "D", "right"),
				key.WithHelp("d/→", "right"),
			),
			input.Left: key.NewBinding(
				key.WithKeys("a", "A", "left"),
				key.WithHelp("a/←", "left"),
			),
			input.Up: key.NewBinding(
				key.WithKeys("w", "W", "up"),
				key.WithHelp("w/↑", "up"),
			),
			input.Down: key.NewBinding(
				key.WithKeys("s", "S", "down"),
				key.WithHelp("s/↓", "down"),
			),
			input.Reveal: key.NewBinding(
				key.WithKeys("u", "U", " "),
				key.WithHelp("u/space", "reveal"),
			),
			input.Flag: key.NewBinding(
				key.WithKeys("h", "H", "f"),
				key.WithHelp("h/f", "flag"),
			),
			input.Select: key.NewBinding(
				key.WithKeys("b", "B"),
				key.WithHelp("b", "select"),
			),
			input.Start: key.NewBinding(
				key.WithKeys("n", "N"),
				key.WithHelp("n", "start"),
			),
		},
		Reset: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "new game"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Button returns the pad button bound to msg.
func (k KeyMap) Button(msg tea.KeyMsg) (input.Button, bool) {
	for b := range input.NumButtons {
		if key.Matches(msg, k.Buttons[b]) {
			return b, true
		}
	}
	return 0, false
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Buttons[input.Up],
		k.Buttons[input.Reveal],
		k.Buttons[input.Flag],
		k.Help,
		k.Quit,
	}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Buttons[input.Up], k.Buttons[input.Down], k.Buttons[input.Left], k.Buttons[input.Right]},
		{k.Buttons[input.Reveal], k.Buttons[input.Flag]},
		{k.Buttons[input.Select], k.Buttons[input.Start], k.Reset},
		{k.Help, k.Quit},
	}
}
