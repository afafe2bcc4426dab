package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(p *Profiler)

// WithUpdateInterval sets how much frame time accumulates between reports.
// Values <= 0 keep the default of one second.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithUpdateInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithReporter redirects stats lines away from the logger.
//
// Parameters:
//   - report: printf-style sink for each stats line
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithReporter(report func(format string, args ...any)) ProfilerBuilderOption {
	return func(p *Profiler) {
		if report != nil {
			p.report = report
		}
	}
}
