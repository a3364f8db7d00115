package memory

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/miniplay/internal/config"
	"github.com/vovakirdan/miniplay/internal/core"
)

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newStarted(seed int64) *Game {
	g := NewWithConfig(config.DefaultMemoryConfig())
	g.Reset(runtimeConfig(seed))
	g.Start()
	return g
}

// advance steps enough empty ticks to cover d of simulated time and returns
// the first outcome reported on the way.
func advance(g *Game, d time.Duration) *core.Outcome {
	var out *core.Outcome
	n := int(d/g.dt) + 1
	for range n {
		if res := g.Step(core.NewInputFrame()); res.Outcome != nil && out == nil {
			out = res.Outcome
		}
	}
	return out
}

// findPair returns two indices sharing a key and one index with another key.
func findPair(cards []Card) (a, b, other int) {
	a, b, other = 0, -1, -1
	for i := 1; i < len(cards); i++ {
		if cards[i].Key == cards[a].Key {
			b = i
		} else if other < 0 {
			other = i
		}
	}
	return a, b, other
}

func TestDeal(t *testing.T) {
	g := newStarted(1)

	cards := g.Cards()
	if len(cards) != 16 {
		t.Fatalf("len(cards) = %d, want 16", len(cards))
	}
	counts := map[int]int{}
	for _, c := range cards {
		counts[c.Key]++
		if c.Revealed || c.Matched {
			t.Errorf("card %+v dealt face up", c)
		}
	}
	if len(counts) != 8 {
		t.Errorf("distinct keys = %d, want 8", len(counts))
	}
	for key, n := range counts {
		if n != 2 {
			t.Errorf("key %d appears %d times, want 2", key, n)
		}
	}

	again := newStarted(1).Cards()
	for i := range cards {
		if cards[i] != again[i] {
			t.Fatalf("same seed dealt different decks at %d", i)
		}
	}
}

func TestRevealBeforeStartIgnored(t *testing.T) {
	g := NewWithConfig(config.DefaultMemoryConfig())
	g.Reset(runtimeConfig(1))

	if got := g.Reveal(0); got != Ignored {
		t.Errorf("Reveal() before start = %s, want ignored", got)
	}
}

func TestRevealIgnoredCases(t *testing.T) {
	g := newStarted(2)

	tests := []struct {
		name  string
		index int
		want  Effect
	}{
		{"negative", -1, Ignored},
		{"past end", 16, Ignored},
		{"first", 0, Revealed},
		{"same card again", 0, Ignored},
	}
	for _, tc := range tests {
		if got := g.Reveal(tc.index); got != tc.want {
			t.Errorf("%s: Reveal(%d) = %s, want %s", tc.name, tc.index, got, tc.want)
		}
	}
	if g.Moves() != 0 {
		t.Errorf("moves = %d, want 0", g.Moves())
	}
}

func TestMatchResolution(t *testing.T) {
	g := newStarted(3)
	a, b, other := findPair(g.Cards())

	if got := g.Reveal(a); got != Revealed {
		t.Fatalf("Reveal(a) = %s, want revealed", got)
	}
	if got := g.Reveal(b); got != Matched {
		t.Fatalf("Reveal(b) = %s, want matched", got)
	}
	if g.Moves() != 1 {
		t.Errorf("moves = %d, want 1", g.Moves())
	}
	if got := g.Reveal(other); got != Ignored {
		t.Errorf("third reveal while two are pending = %s, want ignored", got)
	}

	advance(g, 400*time.Millisecond)
	if g.Cards()[a].Matched {
		t.Error("match resolved before 500ms")
	}

	advance(g, 100*time.Millisecond)
	cards := g.Cards()
	if !cards[a].Matched || !cards[b].Matched {
		t.Error("pair should be matched after 500ms")
	}
	if len(g.pending) != 0 {
		t.Errorf("pending = %v, want empty", g.pending)
	}
}

func TestMismatchResolution(t *testing.T) {
	g := newStarted(4)
	a, _, other := findPair(g.Cards())

	g.Reveal(a)
	if got := g.Reveal(other); got != Mismatched {
		t.Fatalf("Reveal(other) = %s, want mismatched", got)
	}

	advance(g, 900*time.Millisecond)
	if !g.Cards()[a].Revealed {
		t.Error("mismatch hidden before 1000ms")
	}

	advance(g, 100*time.Millisecond)
	cards := g.Cards()
	if cards[a].Revealed || cards[other].Revealed {
		t.Error("mismatched cards should be face down after 1000ms")
	}
	if g.Moves() != 1 {
		t.Errorf("moves = %d, want 1", g.Moves())
	}
}

func TestRestartDiscardsPendingResolution(t *testing.T) {
	g := newStarted(5)
	a, _, other := findPair(g.Cards())
	g.Reveal(a)
	g.Reveal(other)

	g.Reset(runtimeConfig(6))
	g.Start()
	g.Reveal(a)

	advance(g, 1100*time.Millisecond)

	if !g.Cards()[a].Revealed {
		t.Error("stale mismatch from the previous round hid a card")
	}
	if len(g.pending) != 1 {
		t.Errorf("pending = %v, want the one new reveal", g.pending)
	}
}

func TestCompletionOutcome(t *testing.T) {
	g := newStarted(7)

	byKey := map[int][]int{}
	for i, c := range g.Cards() {
		byKey[c.Key] = append(byKey[c.Key], i)
	}

	var outcome *core.Outcome
	for key := range 8 {
		pair := byKey[key]
		g.Reveal(pair[0])
		g.Reveal(pair[1])
		if out := advance(g, time.Second); out != nil {
			outcome = out
		}
	}

	if outcome == nil {
		t.Fatal("no outcome after matching every pair")
	}
	if outcome.Moves != 8 || !outcome.Won {
		t.Errorf("Outcome = %+v, want 8 moves and won", outcome)
	}
	if outcome.Metric < 7 || outcome.Metric > 8 {
		t.Errorf("Outcome.Metric = %d, want about 8 seconds", outcome.Metric)
	}
	if !g.State().GameOver {
		t.Error("State().GameOver = false after completion")
	}

	seconds := g.Seconds()
	advance(g, 3*time.Second)
	if g.Seconds() != seconds {
		t.Error("timer kept running after completion")
	}
}

func TestTimerDisabled(t *testing.T) {
	cfg := config.DefaultMemoryConfig()
	cfg.TimerEnabled = false
	g := NewWithConfig(cfg)
	g.Reset(runtimeConfig(8))
	g.Start()

	advance(g, 3*time.Second)
	if g.Seconds() != 0 {
		t.Errorf("seconds = %d with the timer disabled, want 0", g.Seconds())
	}
}

func TestKeyboardAndTapInput(t *testing.T) {
	g := NewWithConfig(config.DefaultMemoryConfig())
	g.Reset(runtimeConfig(9))

	confirm := core.NewInputFrame()
	confirm.Set(core.ActionConfirm)
	g.Step(confirm)
	if !g.started {
		t.Fatal("Confirm should deal and start the round")
	}

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	g.Step(right)
	down := core.NewInputFrame()
	down.Set(core.ActionDown)
	g.Step(down)
	if g.cursor != 5 {
		t.Errorf("cursor = %d, want 5", g.cursor)
	}

	space := core.NewInputFrame()
	space.Set(core.ActionJump)
	g.Step(space)
	if !g.Cards()[5].Revealed {
		t.Error("Space should reveal the card under the cursor")
	}

	r := g.cardRect(10)
	tap := core.NewInputFrame()
	tap.SetTap(r.X+1, r.Y+1)
	g.Step(tap)
	if !g.Cards()[10].Revealed || g.cursor != 10 {
		t.Error("tap should reveal the card under the pointer")
	}

	if _, ok := g.cardAt(core.Point{X: 0, Y: 0}); ok {
		t.Error("tap outside the board should not map to a card")
	}
}

func TestSnapshotHidesFaceDownKeys(t *testing.T) {
	g := newStarted(10)
	g.Reveal(3)

	snap := g.Snapshot()
	for i, c := range snap.Cards {
		if i == 3 && c.Key < 0 {
			t.Error("revealed card should expose its key")
		}
		if i != 3 && c.Key != -1 {
			t.Errorf("face-down card %d exposes key %d", i, c.Key)
		}
	}
}

func TestRender(t *testing.T) {
	g := NewWithConfig(config.DefaultMemoryConfig())
	g.Reset(runtimeConfig(11))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Press Enter to deal") {
		t.Error("idle board should prompt to deal")
	}

	g.Start()
	g.Reveal(0)
	g.Render(screen)
	r := g.cardRect(0)
	if got := string(screen.Get(r.X+cardW/2, r.Y+1)); got != Symbol(g.Cards()[0].Key) {
		t.Errorf("revealed card shows %q, want %q", got, Symbol(g.Cards()[0].Key))
	}
}
