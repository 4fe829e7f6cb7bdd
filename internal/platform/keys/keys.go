// Package keys maps key names to game actions. The same bindings serve the
// Bubble Tea frontend (tea.KeyMsg) and the tcell frontend, since both can
// name a key as a string.
package keys

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/bittris/internal/config"
	"github.com/vovakirdan/bittris/internal/core"
)

// Name is a key name in Bubble Tea's KeyMsg.String() form.
type Name string

// String returns the key name.
func (n Name) String() string {
	return string(n)
}

// Normalize lowercases single-character names so letter bindings ignore
// shift and caps lock. Named keys ("left", "ctrl+c") are kept as they are.
func Normalize(name string) Name {
	if utf8.RuneCountInString(name) == 1 {
		return Name(strings.ToLower(name))
	}
	return Name(name)
}

// KeyMap holds one binding per action.
type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	SoftDrop key.Binding
	Rotate   key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Quit     key.Binding
	Help     key.Binding
}

// Default returns the built-in bindings.
func Default() KeyMap {
	return FromConfig(config.DefaultBittrisConfig().Keys)
}

// FromConfig builds bindings from the keys section of the config.
func FromConfig(k config.KeysConfig) KeyMap {
	return KeyMap{
		Left:     binding(k.Left, "left"),
		Right:    binding(k.Right, "right"),
		SoftDrop: binding(k.SoftDrop, "drop"),
		Rotate:   binding(k.Rotate, "rotate"),
		Pause:    binding(k.Pause, "pause"),
		Restart:  binding(k.Restart, "restart"),
		Quit:     binding(k.Quit, "quit"),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func binding(names []string, desc string) key.Binding {
	ks := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		ks = append(ks, Normalize(n).String())
	}
	return key.NewBinding(
		key.WithKeys(ks...),
		key.WithHelp(strings.Join(ks, "/"), desc),
	)
}

// Action maps a key to its action. Unbound keys map to core.ActionNone.
func (m KeyMap) Action(k fmt.Stringer) core.Action {
	n := Normalize(k.String())
	switch {
	case key.Matches(n, m.Quit):
		return core.ActionQuit
	case key.Matches(n, m.Left):
		return core.ActionLeft
	case key.Matches(n, m.Right):
		return core.ActionRight
	case key.Matches(n, m.SoftDrop):
		return core.ActionSoftDrop
	case key.Matches(n, m.Rotate):
		return core.ActionRotate
	case key.Matches(n, m.Pause):
		return core.ActionPause
	case key.Matches(n, m.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// ShortHelp implements help.KeyMap.
func (m KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Left, m.Right, m.Rotate, m.SoftDrop, m.Quit, m.Help}
}

// FullHelp implements help.KeyMap.
func (m KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Left, m.Right, m.SoftDrop, m.Rotate},
		{m.Pause, m.Restart, m.Quit, m.Help},
	}
}

// Legend returns the short help as plain text, for frontends without styles.
func (m KeyMap) Legend() string {
	parts := make([]string, 0, len(m.ShortHelp()))
	for _, b := range m.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
