package reconcile

// ProgressFunc receives a checkpoint after every processed item. It is the
// suspension point of a batch job: cancellation is only ever observed
// between items, never mid-item.
type ProgressFunc func(current, total int)

// Summary reports the outcome of one batch sweep. Sweeps never fail
// atomically; individual item failures land in Failed and the loop
// continues.
type Summary struct {
	// Processed is the number of items visited.
	Processed int `json:"processed"`
	// Succeeded is the number of items written.
	Succeeded int `json:"succeeded"`
	// Failed is the number of items that hit a provider or timeout error.
	Failed int `json:"failed"`
	// Skipped is the number of items visited but deliberately left alone
	// (no provider data, no Location in snap range).
	Skipped int `json:"skipped"`
}

func (s *Summary) report(fn ProgressFunc, current, total int) {
	if fn != nil {
		fn(current, total)
	}
}
