package stats

// Progress returns the percentage change from previous to current.
// A zero previous value yields 0, whatever the current value.
func Progress(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
