package core

import "testing"

func TestParseActionRoundTrip(t *testing.T) {
	for a := ActionNone; a <= ActionPause; a++ {
		if got := ParseAction(a.String()); got != a {
			t.Errorf("ParseAction(%q) = %v, want %v", a.String(), got, a)
		}
	}
	if ParseAction("fly") != ActionNone {
		t.Error("unknown names should map to ActionNone")
	}
}

func TestInputFrameTap(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.SetTap(3, 4)
	if f.Empty() || !f.Tapped || f.Tap != (Point{X: 3, Y: 4}) {
		t.Errorf("tap not recorded: %+v", f)
	}

	c := f.Clone()
	f.Clear()
	if f.Tapped || !f.Empty() {
		t.Error("Clear should drop the tap")
	}
	if !c.Tapped {
		t.Error("clone should keep its own tap")
	}
}

func TestTickDuration(t *testing.T) {
	cfg := RuntimeConfig{TickRate: 50}
	if cfg.TickDuration().Milliseconds() != 20 {
		t.Errorf("TickDuration() = %v, want 20ms", cfg.TickDuration())
	}
	if (RuntimeConfig{}).TickDuration() != DefaultConfig().TickDuration() {
		t.Error("zero tick rate should fall back to 60")
	}
}
