package sequence

// Discrete tracks resolve by predicate scan in authored order: the first
// event whose interval covers t wins, even when intervals overlap. Tracks
// are scanned unsorted on every sample; there is no per-tick cache.

// BoolValueAt returns the value of the first event covering t, or def.
func BoolValueAt(events []BoolEvent, t float64, def bool) bool {
	for _, e := range events {
		if e.Start <= t && t <= e.EndTime() {
			return e.Value
		}
	}
	return def
}

// MouthAt returns the mouth state of the first event covering t, or def.
func MouthAt(events []MouthEvent, t float64, def MouthState) MouthState {
	for _, e := range events {
		if e.Start <= t && t <= e.EndTime() {
			return e.Value
		}
	}
	return def
}
