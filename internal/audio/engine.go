package audio

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/pwninator/jokes-sub011/internal/sequence"
)

// sentinel sits below any valid playhead time so every event can fire on
// the first forward pass.
const sentinel = -1.0

// TriggerEngine fires one-shot sound events as the playhead advances and
// owns every handle it spawns: no handle outlives Dispose.
type TriggerEngine struct {
	playback Playback

	mu       sync.Mutex
	last     float64
	handles  map[uint64]Handle
	nextID   uint64
	disposed bool
}

// NewTriggerEngine returns an engine that spawns playbacks on p.
func NewTriggerEngine(p Playback) *TriggerEngine {
	return &TriggerEngine{
		playback: p,
		last:     sentinel,
		handles:  map[uint64]Handle{},
	}
}

// Advance moves the trigger playhead to t and fires every event whose start
// lies in (last, t] exactly once. A backward move (seek or loop) resets the
// memory so previously fired events can fire again on replay. Calling
// Advance after Dispose is a no-op.
func (e *TriggerEngine) Advance(t float64, events []sequence.SoundEvent) {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	if t < e.last {
		e.last = sentinel
	}
	var due []sequence.SoundEvent
	for _, ev := range events {
		if e.last < ev.Start && ev.Start <= t {
			due = append(due, ev)
		}
	}
	e.last = t
	e.mu.Unlock()

	// Spawning is fire-and-forget: file open and decode happen off the
	// tick path so a slow clip cannot stall the clock.
	for _, ev := range due {
		go e.spawn(ev)
	}
}

func (e *TriggerEngine) spawn(ev sequence.SoundEvent) {
	h, err := e.playback.Play(ev.URI, ev.Volume)
	if err != nil {
		log.Warn().Err(err).Str("uri", ev.URI).Float64("at", ev.Start).Msg("sound trigger failed")
		return
	}

	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		h.Dispose()
		return
	}
	id := e.nextID
	e.nextID++
	e.handles[id] = h
	e.mu.Unlock()

	go func() {
		<-h.Done()
		e.mu.Lock()
		delete(e.handles, id)
		e.mu.Unlock()
		h.Dispose()
	}()
}

// Active reports the number of live handles.
func (e *TriggerEngine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handles)
}

// Dispose stops and releases every still-active handle synchronously.
// After Dispose the engine never triggers again. Safe to call repeatedly.
func (e *TriggerEngine) Dispose() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	e.disposed = true
	live := make([]Handle, 0, len(e.handles))
	for _, h := range e.handles {
		live = append(live, h)
	}
	e.handles = map[uint64]Handle{}
	e.mu.Unlock()

	for _, h := range live {
		h.Dispose()
	}
}
