package core

import "time"

// Timers schedules delayed transitions on a simulated clock.
//
// Every entry is stamped with the round generation current at scheduling time.
// Reset starts a new generation; entries from an older generation are dropped
// when they come due instead of running against the new round.
type Timers struct {
	now     time.Duration
	gen     uint64
	seq     uint64
	entries []timerEntry
}

type timerEntry struct {
	due time.Duration
	gen uint64
	seq uint64
	fn  func()
}

// Reset begins a new round generation.
func (t *Timers) Reset() {
	t.gen++
}

// Now returns the simulated time elapsed since the Timers was created.
func (t *Timers) Now() time.Duration {
	return t.now
}

// After schedules fn to run once d of simulated time has elapsed.
func (t *Timers) After(d time.Duration, fn func()) {
	t.seq++
	t.entries = append(t.entries, timerEntry{
		due: t.now + d,
		gen: t.gen,
		seq: t.seq,
		fn:  fn,
	})
}

// Advance moves the clock forward by dt and runs every due entry of the
// current generation in due order. Callbacks may schedule further entries;
// those run in the same call if they are already due.
func (t *Timers) Advance(dt time.Duration) {
	t.now += dt
	for {
		idx := t.nextDue()
		if idx < 0 {
			return
		}
		e := t.entries[idx]
		t.entries = append(t.entries[:idx], t.entries[idx+1:]...)
		if e.gen != t.gen {
			continue
		}
		e.fn()
	}
}

// Pending returns the number of live entries in the current generation.
func (t *Timers) Pending() int {
	n := 0
	for _, e := range t.entries {
		if e.gen == t.gen {
			n++
		}
	}
	return n
}

func (t *Timers) nextDue() int {
	best := -1
	for i, e := range t.entries {
		if e.due > t.now {
			continue
		}
		if best < 0 || e.due < t.entries[best].due ||
			(e.due == t.entries[best].due && e.seq < t.entries[best].seq) {
			best = i
		}
	}
	return best
}
