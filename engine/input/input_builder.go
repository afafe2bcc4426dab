package input

// AggregatorBuilderOption is a functional option for configuring an Aggregator.
type AggregatorBuilderOption func(a *Aggregator)

// WithCursorMode sets the cursor tracking mode.
//
// Parameters:
//   - mode: ModeFreeCursor or ModeLockedDelta
//
// Returns:
//   - AggregatorBuilderOption: option function to apply
func WithCursorMode(mode CursorMode) AggregatorBuilderOption {
	return func(a *Aggregator) {
		a.mode = mode
	}
}

// WithEdgeSuppression sets the predicate deciding whether key edges are dropped, for example
// while the host window does not have input focus. Held state is still tracked, and pointer
// button edges are always kept.
//
// Parameters:
//   - suppress: returns true while key edges should be dropped (nil disables suppression)
//
// Returns:
//   - AggregatorBuilderOption: option function to apply
func WithEdgeSuppression(suppress func() bool) AggregatorBuilderOption {
	return func(a *Aggregator) {
		a.suppress = suppress
	}
}
