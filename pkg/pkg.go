package pkg

const (
	// Name is the canonical command and module identifier used across
	// the project. It appears in help text and default cache paths.
	Name = "edl"
	// Description is a short, human-readable summary of the project
	// used in help output.
	Description = "Equipment description language translator"
	// Version is the semantic version of the module.
	Version = "0.1.0"
)
