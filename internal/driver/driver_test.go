package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/bittris/internal/games/bittris"
	"github.com/vovakirdan/bittris/internal/platform/keys"
)

const interval = 500 * time.Millisecond

type fakeInput struct {
	queue []keys.Name
}

func (f *fakeInput) HasPendingInput() bool { return len(f.queue) > 0 }

func (f *fakeInput) ReadKey() keys.Name {
	k := f.queue[0]
	f.queue = f.queue[1:]
	return k
}

func (f *fakeInput) push(names ...keys.Name) {
	f.queue = append(f.queue, names...)
}

type fakeClock struct {
	now   time.Time
	slept int
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept++
	c.now = c.now.Add(d)
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type fakeRenderer struct {
	frames []bittris.View
	err    error
}

func (r *fakeRenderer) Render(v bittris.View) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, v)
	return nil
}

// fixedRolls returns its rolls in order, repeating the last one.
type fixedRolls struct {
	rolls []int
	i     int
}

func (f *fixedRolls) Intn(int) int {
	r := f.rolls[min(f.i, len(f.rolls)-1)]
	f.i++
	return r
}

type harness struct {
	loop     *Loop
	session  *bittris.Session
	input    *fakeInput
	clock    *fakeClock
	renderer *fakeRenderer
}

func newHarness(t *testing.T, rolls ...int) *harness {
	t.Helper()
	h := &harness{
		session:  bittris.NewSession(&fixedRolls{rolls: rolls}),
		input:    &fakeInput{},
		clock:    &fakeClock{now: time.Unix(1000, 0)},
		renderer: &fakeRenderer{},
	}
	h.loop = New(h.session, h.input, h.clock, h.renderer, Config{
		Interval:  interval,
		PollDelay: interval,
		Keys:      keys.Default(),
	})
	return h
}

func (h *harness) active(t *testing.T) bittris.Active {
	t.Helper()
	a, ok := h.session.Engine().Active()
	if !ok {
		t.Fatal("no active piece")
	}
	return a
}

func TestStartRendersFirstFrame(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.loop.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if len(h.renderer.frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(h.renderer.frames))
	}
	want := bittris.MustParseBoard(
		".#.",
		"###",
	)
	if got := h.renderer.frames[0].Footprint; got != want {
		t.Errorf("first frame footprint:\n%s\nwant:\n%s", got, want)
	}
	if got := h.renderer.frames[0].Composite(); got != want {
		t.Errorf("composite should equal the footprint on an empty board")
	}
}

func TestNoGravityBeforeInterval(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.loop.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	h.clock.advance(interval - time.Millisecond)
	if err := h.loop.Iterate(); err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if a := h.active(t); a.Y != 0 {
		t.Errorf("Y = %d before the interval elapsed, want 0", a.Y)
	}
	if len(h.renderer.frames) != 1 {
		t.Errorf("frames = %d, want no repaint", len(h.renderer.frames))
	}

	h.clock.advance(time.Millisecond)
	if err := h.loop.Iterate(); err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if a := h.active(t); a.Y != 1 {
		t.Errorf("Y = %d after the interval, want 1", a.Y)
	}
	if len(h.renderer.frames) != 2 {
		t.Errorf("frames = %d, want 2", len(h.renderer.frames))
	}
}

func TestInputBeforeGravity(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.loop.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	h.clock.advance(interval)
	h.input.push("d")
	if err := h.loop.Iterate(); err != nil {
		t.Fatalf("Iterate: %v", err)
	}

	a := h.active(t)
	if a.X != 1 || a.Y != 1 {
		t.Errorf("active = (%d,%d), want (1,1)", a.X, a.Y)
	}
	// Start, keypress, tick.
	if len(h.renderer.frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(h.renderer.frames))
	}
	keyFrame := h.renderer.frames[1].Footprint
	if !keyFrame.Occupied(0, 2) || keyFrame.Occupied(0, 1) || !keyFrame.Occupied(1, 3) {
		t.Errorf("key frame should show the piece moved right before falling:\n%s", keyFrame)
	}
}

func TestKeysAreCaseInsensitive(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.loop.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	h.input.push("D", "D", "A")
	for range 3 {
		if err := h.loop.Iterate(); err != nil {
			t.Fatalf("Iterate: %v", err)
		}
	}
	if a := h.active(t); a.X != 1 {
		t.Errorf("X = %d, want 1", a.X)
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.loop.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	h.input.push("x", "")
	for range 2 {
		if err := h.loop.Iterate(); err != nil {
			t.Fatalf("Iterate: %v", err)
		}
	}
	if len(h.renderer.frames) != 1 {
		t.Errorf("frames = %d, unbound keys should not repaint", len(h.renderer.frames))
	}
	if a := h.active(t); a.X != 0 || a.Y != 0 {
		t.Errorf("active = (%d,%d), want (0,0)", a.X, a.Y)
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.loop.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	h.input.push("q")
	if err := h.loop.Iterate(); !errors.Is(err, ErrQuit) {
		t.Errorf("Iterate = %v, want ErrQuit", err)
	}
}

func TestPauseSuspendsGravity(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.loop.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	h.input.push("p")
	if err := h.loop.Iterate(); err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if !h.loop.Paused() {
		t.Fatal("loop should be paused")
	}
	if !h.renderer.frames[len(h.renderer.frames)-1].Paused {
		t.Error("paused frame should carry Paused")
	}

	h.clock.advance(3 * interval)
	h.input.push("s")
	for range 2 {
		if err := h.loop.Iterate(); err != nil {
			t.Fatalf("Iterate: %v", err)
		}
	}
	if a := h.active(t); a.Y != 0 {
		t.Errorf("Y = %d while paused, want 0", a.Y)
	}

	// Resuming restarts the interval.
	h.input.push("p")
	if err := h.loop.Iterate(); err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if a := h.active(t); a.Y != 0 {
		t.Errorf("Y = %d right after resume, want 0", a.Y)
	}
	h.clock.advance(interval)
	if err := h.loop.Iterate(); err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if a := h.active(t); a.Y != 1 {
		t.Errorf("Y = %d one interval after resume, want 1", a.Y)
	}
}

func TestRunEndsOnTopOut(t *testing.T) {
	// Horizontal I pieces stack in columns 0-3 until the spawn row is taken.
	h := newHarness(t, 5)

	err := h.loop.Run(context.Background())
	if !errors.Is(err, bittris.ErrTopOut) {
		t.Fatalf("Run = %v, want ErrTopOut", err)
	}
	if !h.session.GameOver() {
		t.Error("session should be over")
	}
	if got := h.session.Stats().Locked; got != bittris.Height {
		t.Errorf("locked = %d, want %d", got, bittris.Height)
	}
	if h.clock.slept == 0 {
		t.Error("idle iterations should sleep")
	}
	last := h.renderer.frames[len(h.renderer.frames)-1]
	if !last.GameOver {
		t.Error("last frame should show game over")
	}
}

func TestRunQuit(t *testing.T) {
	h := newHarness(t, 0)
	h.input.push("a", "q")

	if err := h.loop.Run(context.Background()); err != nil {
		t.Errorf("Run = %v, want nil on quit", err)
	}
}

func TestRunCancelled(t *testing.T) {
	h := newHarness(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.loop.Run(ctx); err != nil {
		t.Errorf("Run = %v, want nil on cancel", err)
	}
	if len(h.renderer.frames) != 1 {
		t.Errorf("frames = %d, want only the start frame", len(h.renderer.frames))
	}
}

func TestRenderErrorPropagates(t *testing.T) {
	h := newHarness(t, 0)
	boom := errors.New("terminal gone")
	h.renderer.err = boom

	err := h.loop.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("Run = %v, want wrapped render error", err)
	}
}
