package bittris

import (
	"testing"
)

func TestCatalogShapes(t *testing.T) {
	for i := range Index(CatalogSize) {
		p, ok := Lookup(i)
		if !ok {
			t.Fatalf("Lookup(%d) failed", i)
		}

		if got := p.Shape.Count(); got != 4 {
			t.Errorf("state %d: %d cells, want 4", i, got)
		}

		// The bounding box is tight: every edge row and column is used and
		// nothing lies outside it.
		var topUsed, bottomUsed, leftUsed, rightUsed bool
		for r := range Height {
			for c := range Width {
				if !p.Shape.Occupied(r, c) {
					continue
				}
				if r >= p.Height || c >= p.Width {
					t.Errorf("state %d: cell (%d,%d) outside %dx%d box", i, r, c, p.Width, p.Height)
				}
				topUsed = topUsed || r == 0
				bottomUsed = bottomUsed || r == p.Height-1
				leftUsed = leftUsed || c == 0
				rightUsed = rightUsed || c == p.Width-1
			}
		}
		if !topUsed || !bottomUsed || !leftUsed || !rightUsed {
			t.Errorf("state %d: bounding box %dx%d is not tight", i, p.Width, p.Height)
		}
	}
}

func TestLookupOutOfRange(t *testing.T) {
	for _, i := range []Index{-1, CatalogSize, 100} {
		if _, ok := Lookup(i); ok {
			t.Errorf("Lookup(%d) should fail", i)
		}
	}
}

func TestCatalogFamilies(t *testing.T) {
	want := map[Kind]int{
		KindT: 4,
		KindJ: 4,
		KindL: 4,
		KindO: 1,
		KindZ: 2,
		KindS: 2,
		KindI: 2,
	}

	got := make(map[Kind]int)
	for i := range Index(CatalogSize) {
		p, _ := Lookup(i)
		got[p.Kind]++
	}
	for k, n := range want {
		if got[k] != n {
			t.Errorf("%s: %d states, want %d", k, got[k], n)
		}
	}
}

func TestTransitionsCoverEveryStateButO(t *testing.T) {
	for i := range Index(CatalogSize) {
		rot, ok := Transition(i)
		if i == IndexO {
			if ok {
				t.Error("O should have no rotation")
			}
			continue
		}
		if !ok {
			t.Errorf("state %d has no rotation", i)
			continue
		}

		from, _ := Lookup(i)
		to, ok := Lookup(rot.Next)
		if !ok {
			t.Errorf("state %d rotates to unknown state %d", i, rot.Next)
			continue
		}
		if from.Kind != to.Kind {
			t.Errorf("state %d (%s) rotates into another family (%s)", i, from.Kind, to.Kind)
		}
	}
}

func TestRotationCycles(t *testing.T) {
	tests := []struct {
		root   Index
		states int
		dx, dy int // offset after a full turn
	}{
		{IndexT, 4, 0, 0},
		{IndexJ, 4, 0, 1},
		{IndexL, 4, 2, -2},
		{IndexZ, 2, 0, 0},
		{IndexS, 2, 0, 0},
		{IndexI, 2, 0, 0},
	}

	for _, tt := range tests {
		p, _ := Lookup(tt.root)
		t.Run(p.Kind.String(), func(t *testing.T) {
			cur := tt.root
			dx, dy := 0, 0
			for range tt.states {
				rot, ok := Transition(cur)
				if !ok {
					t.Fatalf("state %d has no rotation", cur)
				}
				cur = rot.Next
				dx += rot.DX
				dy += rot.DY
			}
			if cur != tt.root {
				t.Errorf("after %d rotations at state %d, want %d", tt.states, cur, tt.root)
			}
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("full turn offset = (%d,%d), want (%d,%d)", dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestRootForRoll(t *testing.T) {
	classic := []Kind{KindT, KindJ, KindL, KindZ, KindS, KindI}
	for roll, want := range classic {
		idx, ok := RootForRoll(roll, false)
		if !ok {
			t.Fatalf("roll %d rejected", roll)
		}
		p, _ := Lookup(idx)
		if p.Kind != want {
			t.Errorf("roll %d = %s, want %s", roll, p.Kind, want)
		}
	}

	if _, ok := RootForRoll(6, false); ok {
		t.Error("roll 6 should be out of range without O")
	}
	if _, ok := RootForRoll(-1, false); ok {
		t.Error("negative roll should be rejected")
	}

	idx, ok := RootForRoll(6, true)
	if !ok || idx != IndexO {
		t.Errorf("seven-kind roll 6 = %d, %v; want O", idx, ok)
	}
	if _, ok := RootForRoll(7, true); ok {
		t.Error("roll 7 should be out of range with O")
	}
}

func TestIsSpawnRoot(t *testing.T) {
	roots := map[Index]bool{0: true, 4: true, 8: true, 12: true, 13: true, 15: true, 17: true}
	for i := range Index(CatalogSize) {
		if got := IsSpawnRoot(i); got != roots[i] {
			t.Errorf("IsSpawnRoot(%d) = %v, want %v", i, got, roots[i])
		}
	}
}

func TestKindNamesAndColors(t *testing.T) {
	seen := make(map[string]bool)
	for k := KindT; k <= KindI; k++ {
		name := k.String()
		if name == "?" || seen[name] {
			t.Errorf("kind %d has bad name %q", k, name)
		}
		seen[name] = true
		if k.Color() == 0 {
			t.Errorf("%s has no color", name)
		}
	}
}
