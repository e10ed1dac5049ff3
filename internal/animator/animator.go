package animator

import (
	"sync"
	"time"

	"github.com/pwninator/jokes-sub011/internal/audio"
	"github.com/pwninator/jokes-sub011/internal/sequence"
	"github.com/pwninator/jokes-sub011/internal/timeline"
)

// Hooks are the observable slots the rendering layer subscribes to. Every
// hook is optional; each fires at most once per tick with the freshly
// sampled value.
type Hooks struct {
	SetHead      func(sequence.CharacterTransform)
	SetLeftHand  func(sequence.CharacterTransform)
	SetRightHand func(sequence.CharacterTransform)

	SetMouth            func(sequence.MouthState)
	SetLeftEyeOpen      func(bool)
	SetRightEyeOpen     func(bool)
	SetLeftHandVisible  func(bool)
	SetRightHandVisible func(bool)

	// OnFrame receives the aggregated sample after the slot hooks fire.
	// Preview surfaces subscribe here.
	OnFrame func(Frame)
}

// Frame is one complete sample of all eight slots.
type Frame struct {
	T float64 `json:"t"`

	Head      sequence.CharacterTransform `json:"head"`
	LeftHand  sequence.CharacterTransform `json:"leftHand"`
	RightHand sequence.CharacterTransform `json:"rightHand"`

	Mouth            sequence.MouthState `json:"mouth"`
	LeftEyeOpen      bool                `json:"leftEyeOpen"`
	RightEyeOpen     bool                `json:"rightEyeOpen"`
	LeftHandVisible  bool                `json:"leftHandVisible"`
	RightHandVisible bool                `json:"rightHandVisible"`
}

// Animator drives one posable character from a pre-authored sequence. The
// sequence is fixed for the animator's lifetime; build a new Animator to
// play a different one.
type Animator struct {
	seq   *sequence.PosableCharacterSequence
	clock Clock
	sound *audio.TriggerEngine

	head      *timeline.Timeline
	leftHand  *timeline.Timeline
	rightHand *timeline.Timeline

	total    float64 // seconds
	defaults sequence.TrackDefaults

	mu       sync.Mutex
	hooks    Hooks
	last     Frame
	playing  bool
	detach   func()
	disposed bool
}

// New compiles the sequence's transform tracks, configures the clock's
// duration and attaches the per-tick sampler. The animator owns the audio
// trigger engine it creates; Dispose releases it.
func New(seq *sequence.PosableCharacterSequence, clock Clock, playback audio.Playback, hooks Hooks) *Animator {
	total := seq.TotalDuration()
	a := &Animator{
		seq:       seq,
		clock:     clock,
		sound:     audio.NewTriggerEngine(playback),
		head:      timeline.Compile(seq.Head, total),
		leftHand:  timeline.Compile(seq.LeftHand, total),
		rightHand: timeline.Compile(seq.RightHand, total),
		total:     total,
		defaults:  sequence.Defaults(),
		hooks:     hooks,
	}
	clock.SetDuration(time.Duration(total * float64(time.Second)))
	a.detach = clock.Attach(a.tick)
	a.last = a.sample(0)
	return a
}

// TotalDuration returns the playback length.
func (a *Animator) TotalDuration() time.Duration {
	return time.Duration(a.total * float64(time.Second))
}

// Play starts the clock advancing forward from its current position.
func (a *Animator) Play() {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.playing = true
	a.mu.Unlock()
	a.clock.Forward()
}

// Pause halts the clock at its current position.
func (a *Animator) Pause() {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.playing = false
	a.mu.Unlock()
	a.clock.Stop()
}

// Playing reports the Stopped/Playing classification. Seek never changes it.
func (a *Animator) Playing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

// Seek moves the playhead to pos, clamped into the sequence. A zero-length
// sequence substitutes a one-second divisor rather than dividing by zero.
func (a *Animator) Seek(pos time.Duration) {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	total := a.total
	if total == 0 {
		total = 1
	}
	a.clock.SetProgress(pos.Seconds() / total)
}

// tick runs on every clock tick: resample all eight slots, publish them,
// and advance the sound triggers.
func (a *Animator) tick() {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	hooks := a.hooks
	a.mu.Unlock()

	t := a.clock.Progress() * a.total
	f := a.sample(t)

	a.mu.Lock()
	a.last = f
	a.mu.Unlock()

	if hooks.SetHead != nil {
		hooks.SetHead(f.Head)
	}
	if hooks.SetLeftHand != nil {
		hooks.SetLeftHand(f.LeftHand)
	}
	if hooks.SetRightHand != nil {
		hooks.SetRightHand(f.RightHand)
	}
	if hooks.SetMouth != nil {
		hooks.SetMouth(f.Mouth)
	}
	if hooks.SetLeftEyeOpen != nil {
		hooks.SetLeftEyeOpen(f.LeftEyeOpen)
	}
	if hooks.SetRightEyeOpen != nil {
		hooks.SetRightEyeOpen(f.RightEyeOpen)
	}
	if hooks.SetLeftHandVisible != nil {
		hooks.SetLeftHandVisible(f.LeftHandVisible)
	}
	if hooks.SetRightHandVisible != nil {
		hooks.SetRightHandVisible(f.RightHandVisible)
	}

	a.sound.Advance(t, a.seq.Sounds)

	if hooks.OnFrame != nil {
		hooks.OnFrame(f)
	}
}

func (a *Animator) sample(t float64) Frame {
	d := a.defaults
	return Frame{
		T:                t,
		Head:             a.head.At(t),
		LeftHand:         a.leftHand.At(t),
		RightHand:        a.rightHand.At(t),
		Mouth:            sequence.MouthAt(a.seq.Mouth, t, d.Mouth),
		LeftEyeOpen:      sequence.BoolValueAt(a.seq.LeftEye, t, d.EyeOpen),
		RightEyeOpen:     sequence.BoolValueAt(a.seq.RightEye, t, d.EyeOpen),
		LeftHandVisible:  sequence.BoolValueAt(a.seq.LeftHandVisible, t, d.HandVisible),
		RightHandVisible: sequence.BoolValueAt(a.seq.RightHandVisible, t, d.HandVisible),
	}
}

// Frame returns the most recently published sample.
func (a *Animator) Frame() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// ActiveSounds reports how many triggered sounds are still playing.
func (a *Animator) ActiveSounds() int { return a.sound.Active() }

// Dispose detaches from the clock, stops every in-flight sound and releases
// the observable slots. Safe to call more than once.
func (a *Animator) Dispose() {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.disposed = true
	a.playing = false
	a.hooks = Hooks{}
	detach := a.detach
	a.detach = nil
	a.mu.Unlock()

	if detach != nil {
		detach()
	}
	a.clock.Stop()
	a.sound.Dispose()
}
