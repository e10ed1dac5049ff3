package timeline

import (
	"sort"

	"github.com/pwninator/jokes-sub011/internal/sequence"
)

// segment is one contiguous span of the compiled timeline. A hold segment
// samples to From everywhere; an interpolation segment moves linearly from
// From to To over [start, end].
type segment struct {
	start, end float64
	from, to   sequence.CharacterTransform
	interp     bool
}

// Timeline is a compiled, sample-able transform track. Segments are
// contiguous and cover [0, Total] with no gaps or overlaps.
type Timeline struct {
	segments []segment
	total    float64
	last     sequence.CharacterTransform
}

// Compile turns one transform track into a Timeline spanning total seconds.
// Events are processed in ascending start order; gaps become hold segments,
// zero-span events become hard cuts that seed the next segment's value.
func Compile(events []sequence.TransformEvent, total float64) *Timeline {
	tl := &Timeline{total: total, last: sequence.Identity()}
	if len(events) == 0 {
		tl.segments = []segment{{start: 0, end: total, from: tl.last, to: tl.last}}
		return tl
	}

	sorted := make([]sequence.TransformEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	now := 0.0
	cur := sequence.Identity()
	for _, e := range sorted {
		if e.Start > now {
			tl.segments = append(tl.segments, segment{start: now, end: e.Start, from: cur, to: cur})
			now = e.Start
		}
		end := e.EndTime()
		if end > now {
			tl.segments = append(tl.segments, segment{start: now, end: end, from: cur, to: e.Target, interp: true})
			now = end
		}
		// Zero-span events (and events whose span was already passed)
		// cut instantaneously; the next segment starts from Target.
		cur = e.Target
	}
	if now < total {
		tl.segments = append(tl.segments, segment{start: now, end: total, from: cur, to: cur})
	}
	tl.last = cur
	return tl
}

// Total returns the span the timeline covers, in seconds.
func (tl *Timeline) Total() float64 { return tl.total }

// At samples the timeline at t seconds. Times outside [0, Total] clamp to
// the boundary values.
func (tl *Timeline) At(t float64) sequence.CharacterTransform {
	n := len(tl.segments)
	if n == 0 {
		return tl.last
	}
	if t <= tl.segments[0].start {
		return tl.segments[0].from
	}
	for _, s := range tl.segments {
		if t > s.end {
			continue
		}
		if !s.interp {
			return s.from
		}
		span := s.end - s.start
		if span <= 0 {
			return s.to
		}
		return sequence.Lerp(s.from, s.to, (t-s.start)/span)
	}
	return tl.last
}
