package bittris

import (
	"strings"

	"github.com/vovakirdan/bittris/internal/config"
	"github.com/vovakirdan/bittris/internal/core"
)

// Frame dimensions: the grid plus one border cell on every side.
const (
	FrameWidth  = Width + 2
	FrameHeight = Height + 2
)

var (
	frameTop    = "/" + strings.Repeat("=", Width) + "\\"
	frameBottom = "\\" + strings.Repeat("=", Width) + "/"
)

// DrawView draws v framed and centered on dst, with a status line and the
// key help below the frame. Settled cells are gray, the falling piece takes
// its family color.
func DrawView(dst *core.Screen, v View, help string) {
	ox := max(0, (dst.Width()-FrameWidth)/2)
	oy := max(0, (dst.Height()-FrameHeight-2)/2)

	dst.DrawTextColored(ox, oy, frameTop, core.ColorWhite)
	for r := range Height {
		y := oy + 1 + r
		dst.SetColored(ox, y, '|', core.ColorWhite)
		dst.SetColored(ox+Width+1, y, '|', core.ColorWhite)
		for c := range Width {
			switch {
			case v.Footprint.Occupied(r, c):
				dst.SetColored(ox+1+c, y, '#', v.Kind.Color())
			case v.Board.Occupied(r, c):
				dst.SetColored(ox+1+c, y, '#', core.ColorGray)
			}
		}
	}
	dst.DrawTextColored(ox, oy+FrameHeight-1, frameBottom, core.ColorWhite)

	switch {
	case v.GameOver:
		dst.DrawTextCentered(oy+FrameHeight, "GAME OVER", core.ColorRed)
	case v.Paused:
		dst.DrawTextCentered(oy+FrameHeight, "PAUSED", core.ColorYellow)
	}
	if help != "" {
		dst.DrawTextCentered(oy+FrameHeight+1, help, core.ColorGray)
	}
}

// FrameLines renders b inside the frame as plain text, one string per line.
func FrameLines(b Board) []string {
	lines := make([]string, 0, FrameHeight)
	lines = append(lines, frameTop)
	var sb strings.Builder
	for r := range Height {
		sb.Reset()
		sb.WriteByte('|')
		for c := range Width {
			if b.Occupied(r, c) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('|')
		lines = append(lines, sb.String())
	}
	return append(lines, frameBottom)
}

// HelpLine returns a one-line key legend built from the first key of each
// binding.
func HelpLine(k config.KeysConfig) string {
	parts := []struct {
		keys []string
		desc string
	}{
		{k.Left, "left"},
		{k.Right, "right"},
		{k.SoftDrop, "drop"},
		{k.Rotate, "rotate"},
		{k.Pause, "pause"},
		{k.Quit, "quit"},
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p.keys) == 0 {
			continue
		}
		out = append(out, p.keys[0]+" "+p.desc)
	}
	return strings.Join(out, "  ")
}
