package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bittris/internal/games/bittris"
)

var piecesCmd = &cobra.Command{
	Use:   "pieces",
	Short: "Print the piece catalog",
	Long: `Prints all 19 rotation states with their shape, bounding box and the
state each rotates into, with the column and row offset applied.`,
	Run: runPieces,
}

func runPieces(cmd *cobra.Command, args []string) {
	for i := range bittris.Index(bittris.CatalogSize) {
		p, _ := bittris.Lookup(i)

		rot := "no rotation"
		if r, ok := bittris.Transition(i); ok {
			rot = fmt.Sprintf("rotates to %d (dx %+d, dy %+d)", r.Next, r.DX, r.DY)
		}
		root := ""
		if bittris.IsSpawnRoot(i) {
			root = ", spawns"
		}
		fmt.Printf("%2d  %s  %dx%d%s, %s\n", i, p.Kind, p.Width, p.Height, root, rot)

		for _, line := range pieceArt(p) {
			fmt.Printf("      %s\n", line)
		}
		fmt.Println()
	}
}

// pieceArt draws p's bounding box with '#' for occupied cells.
func pieceArt(p bittris.Piece) []string {
	lines := make([]string, p.Height)
	var sb strings.Builder
	for r := range p.Height {
		sb.Reset()
		for c := range p.Width {
			if p.Shape.Occupied(r, c) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		lines[r] = sb.String()
	}
	return lines
}
