// Package raw is the polling frontend: a tcell screen serves as both the
// non-blocking input source and the renderer of driver.Loop.
package raw

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/bittris/internal/core"
	"github.com/vovakirdan/bittris/internal/games/bittris"
	"github.com/vovakirdan/bittris/internal/platform/keys"
)

// palette maps core.Color to terminal palette entries. The indices match
// the styles of the Bubble Tea frontend.
var palette = map[core.Color]tcell.Color{
	core.ColorDefault: tcell.ColorReset,
	core.ColorRed:     tcell.PaletteColor(1),
	core.ColorGreen:   tcell.PaletteColor(2),
	core.ColorYellow:  tcell.PaletteColor(3),
	core.ColorBlue:    tcell.PaletteColor(4),
	core.ColorMagenta: tcell.PaletteColor(5),
	core.ColorCyan:    tcell.PaletteColor(6),
	core.ColorWhite:   tcell.PaletteColor(7),
	core.ColorOrange:  tcell.PaletteColor(208),
	core.ColorGray:    tcell.PaletteColor(245),
}

// namedKeys maps special keys to their Bubble Tea names.
var namedKeys = map[tcell.Key]keys.Name{
	tcell.KeyLeft:   "left",
	tcell.KeyRight:  "right",
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyEnter:  "enter",
	tcell.KeyEscape: "esc",
	tcell.KeyCtrlC:  "ctrl+c",
	tcell.KeyCtrlS:  "ctrl+s",
}

// Terminal wraps a tcell screen.
type Terminal struct {
	screen tcell.Screen
	buf    *core.Screen
	help   string
}

// Open initializes the real terminal.
func Open(help string) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewTerminal(s, help), nil
}

// NewTerminal wraps an initialized screen.
func NewTerminal(s tcell.Screen, help string) *Terminal {
	s.HideCursor()
	w, h := s.Size()
	return &Terminal{
		screen: s,
		buf:    core.NewScreen(w, h),
		help:   help,
	}
}

// HasPendingInput reports whether an event is queued.
func (t *Terminal) HasPendingInput() bool {
	return t.screen.HasPendingEvent()
}

// ReadKey takes the next event. Resize events repaint the terminal and
// return an empty name, like every other non-key event.
func (t *Terminal) ReadKey() keys.Name {
	switch ev := t.screen.PollEvent().(type) {
	case *tcell.EventKey:
		return KeyName(ev)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return ""
}

// KeyName converts a tcell key event to a Bubble Tea key name.
func KeyName(ev *tcell.EventKey) keys.Name {
	if ev.Key() == tcell.KeyRune {
		return keys.Normalize(string(ev.Rune()))
	}
	if n, ok := namedKeys[ev.Key()]; ok {
		return n
	}
	return keys.Name(strings.ToLower(ev.Name()))
}

// Render draws v into an off-screen buffer and copies it to the terminal.
func (t *Terminal) Render(v bittris.View) error {
	w, h := t.screen.Size()
	t.buf.Resize(w, h)
	t.buf.Clear()
	bittris.DrawView(t.buf, v, t.help)

	for y := range h {
		for x := range w {
			c := t.buf.GetCell(x, y)
			style := tcell.StyleDefault.Foreground(colorOf(c.Color))
			t.screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// Screen returns the off-screen buffer of the last frame.
func (t *Terminal) Screen() *core.Screen {
	return t.buf
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

func colorOf(c core.Color) tcell.Color {
	if tc, ok := palette[c]; ok {
		return tc
	}
	return tcell.ColorReset
}
