package lock

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(c *Controller)

// WithEnabled sets whether primary-button presses request a pointer lock.
//
// Parameters:
//   - enabled: false disables lock requests
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithEnabled(enabled bool) ControllerBuilderOption {
	return func(c *Controller) {
		c.enabled = enabled
	}
}
