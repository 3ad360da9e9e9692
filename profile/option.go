//go:build pprof

package profile

// Option adjusts one field of a control.
type Option func(control) control

// apply folds every option into the control, left to right.
func apply(c control, opts ...Option) control {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// newControl builds a control from its options.
func newControl(opts ...Option) control {
	var c control

	return apply(c, opts...)
}
