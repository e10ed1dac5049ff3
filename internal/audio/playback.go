package audio

// Playback spawns independent one-shot sound playbacks. Implementations:
// SFXPlayer (real output via oto) and NopPlayback (muted/simulated runs).
type Playback interface {
	Play(uri string, volume float64) (Handle, error)
}

// Handle is one in-flight playback. Done is closed when playback finishes,
// successfully or not. Dispose stops playback and releases resources; it is
// safe to call more than once.
type Handle interface {
	Done() <-chan struct{}
	Dispose()
}

// NopPlayback discards every trigger while still honouring the Handle
// lifecycle, so trigger bookkeeping stays observable in muted runs.
type NopPlayback struct{}

func (NopPlayback) Play(string, float64) (Handle, error) {
	h := &nopHandle{done: make(chan struct{})}
	close(h.done)
	return h, nil
}

type nopHandle struct{ done chan struct{} }

func (h *nopHandle) Done() <-chan struct{} { return h.done }
func (h *nopHandle) Dispose()              {}
