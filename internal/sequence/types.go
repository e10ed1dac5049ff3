package sequence

// CharacterTransform positions one body part: a translation in unscaled
// units followed by a scale about the part's origin.
type CharacterTransform struct {
	TranslateX float64 `json:"translateX" yaml:"translateX"`
	TranslateY float64 `json:"translateY" yaml:"translateY"`
	ScaleX     float64 `json:"scaleX" yaml:"scaleX"`
	ScaleY     float64 `json:"scaleY" yaml:"scaleY"`
}

// Identity returns the resting transform (no offset, unit scale).
func Identity() CharacterTransform {
	return CharacterTransform{ScaleX: 1, ScaleY: 1}
}

// Affine is a 2x3 affine matrix in row-major order:
//
//	| A B TX |
//	| C D TY |
type Affine struct {
	A, B, TX float64
	C, D, TY float64
}

// Matrix composes the transform as translate-then-scale: a point is scaled
// first, then offset by the raw translation.
func (t CharacterTransform) Matrix() Affine {
	return Affine{
		A: t.ScaleX, B: 0, TX: t.TranslateX,
		C: 0, D: t.ScaleY, TY: t.TranslateY,
	}
}

// Lerp interpolates component-wise between a and b with weight w in [0,1].
func Lerp(a, b CharacterTransform, w float64) CharacterTransform {
	return CharacterTransform{
		TranslateX: a.TranslateX + (b.TranslateX-a.TranslateX)*w,
		TranslateY: a.TranslateY + (b.TranslateY-a.TranslateY)*w,
		ScaleX:     a.ScaleX + (b.ScaleX-a.ScaleX)*w,
		ScaleY:     a.ScaleY + (b.ScaleY-a.ScaleY)*w,
	}
}

// MouthState enumerates mouth shapes.
type MouthState string

const (
	MouthClosed MouthState = "closed"
	MouthOpen   MouthState = "open"
	MouthO      MouthState = "o"
)

// TimedEvent is implemented by every event variant so duration scanning is
// a single polymorphic pass.
type TimedEvent interface {
	StartTime() float64
	// EndTime returns the effective end of the event. Events with End <=
	// Start (including an absent End) are instantaneous and report their
	// start.
	EndTime() float64
}

// TransformEvent moves a body part toward Target. End <= Start means a hard
// cut at Start; otherwise the part interpolates linearly over [Start, End].
type TransformEvent struct {
	Start  float64            `json:"start" yaml:"start"`
	End    float64            `json:"end,omitempty" yaml:"end,omitempty"`
	Target CharacterTransform `json:"target" yaml:"target"`
}

func (e TransformEvent) StartTime() float64 { return e.Start }
func (e TransformEvent) EndTime() float64   { return effectiveEnd(e.Start, e.End) }

// BoolEvent holds a boolean value over [Start, End] (eye-open, hand-visible).
type BoolEvent struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end,omitempty" yaml:"end,omitempty"`
	Value bool    `json:"value" yaml:"value"`
}

func (e BoolEvent) StartTime() float64 { return e.Start }
func (e BoolEvent) EndTime() float64   { return effectiveEnd(e.Start, e.End) }

// MouthEvent holds a mouth shape over [Start, End].
type MouthEvent struct {
	Start float64    `json:"start" yaml:"start"`
	End   float64    `json:"end,omitempty" yaml:"end,omitempty"`
	Value MouthState `json:"value" yaml:"value"`
}

func (e MouthEvent) StartTime() float64 { return e.Start }
func (e MouthEvent) EndTime() float64   { return effectiveEnd(e.Start, e.End) }

// SoundEvent fires a one-shot sound when the playhead crosses Start moving
// forward. End is never meaningful for triggering.
type SoundEvent struct {
	Start  float64 `json:"start" yaml:"start"`
	URI    string  `json:"uri" yaml:"uri"`
	Volume float64 `json:"volume" yaml:"volume"`
}

func (e SoundEvent) StartTime() float64 { return e.Start }
func (e SoundEvent) EndTime() float64   { return e.Start }

func effectiveEnd(start, end float64) float64 {
	if end > start {
		return end
	}
	return start
}

// PosableCharacterSequence is the immutable description of one animation:
// three transform tracks, four discrete tracks and the one-shot sound
// track. Tracks are not guaranteed time-sorted by the authoring step.
type PosableCharacterSequence struct {
	Head      []TransformEvent `json:"head,omitempty" yaml:"head,omitempty"`
	LeftHand  []TransformEvent `json:"leftHand,omitempty" yaml:"leftHand,omitempty"`
	RightHand []TransformEvent `json:"rightHand,omitempty" yaml:"rightHand,omitempty"`

	Mouth            []MouthEvent `json:"mouth,omitempty" yaml:"mouth,omitempty"`
	LeftEye          []BoolEvent  `json:"leftEye,omitempty" yaml:"leftEye,omitempty"`
	RightEye         []BoolEvent  `json:"rightEye,omitempty" yaml:"rightEye,omitempty"`
	LeftHandVisible  []BoolEvent  `json:"leftHandVisible,omitempty" yaml:"leftHandVisible,omitempty"`
	RightHandVisible []BoolEvent  `json:"rightHandVisible,omitempty" yaml:"rightHandVisible,omitempty"`

	Sounds []SoundEvent `json:"sounds,omitempty" yaml:"sounds,omitempty"`
}

// forEachEvent visits every event in every track, in track order.
func (s *PosableCharacterSequence) forEachEvent(fn func(TimedEvent)) {
	for _, e := range s.Head {
		fn(e)
	}
	for _, e := range s.LeftHand {
		fn(e)
	}
	for _, e := range s.RightHand {
		fn(e)
	}
	for _, e := range s.Mouth {
		fn(e)
	}
	for _, e := range s.LeftEye {
		fn(e)
	}
	for _, e := range s.RightEye {
		fn(e)
	}
	for _, e := range s.LeftHandVisible {
		fn(e)
	}
	for _, e := range s.RightHandVisible {
		fn(e)
	}
	for _, e := range s.Sounds {
		fn(e)
	}
}
