package profile

// Config reports the three pprof parameters: the profiler mode, the
// output directory, and whether progress chatter is suppressed.
type Config func() (mode, path string, quiet bool)

// Start launches the profiler described by the config and returns its
// stopper. An empty mode, or a binary built without the pprof tag,
// yields a stopper that does nothing; both calls are always safe.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode derives a config with the given profiler mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

// WithPath derives a config with the given output directory.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

// WithQuiet derives a config with the given quiet flag.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

type ignore struct{}

func (ignore) Stop() {}
