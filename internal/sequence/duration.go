package sequence

// TotalDuration returns the latest event end across every track, in
// seconds. A sequence with no events reports 0; callers dividing by the
// duration must substitute a safe value themselves.
func (s *PosableCharacterSequence) TotalDuration() float64 {
	max := 0.0
	s.forEachEvent(func(e TimedEvent) {
		if end := e.EndTime(); end > max {
			max = end
		}
	})
	return max
}
