package sequence

// TrackDefaults is the per-track "no active event" policy, kept in one
// place so it can be audited and tested in isolation.
type TrackDefaults struct {
	Transform   CharacterTransform
	Mouth       MouthState
	EyeOpen     bool
	HandVisible bool
}

// Defaults returns the resting character: identity pose, mouth closed,
// eyes open, both hands visible.
func Defaults() TrackDefaults {
	return TrackDefaults{
		Transform:   Identity(),
		Mouth:       MouthClosed,
		EyeOpen:     true,
		HandVisible: true,
	}
}
