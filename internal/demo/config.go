package demo

// Config holds configuration for the demo signal generator.
type Config struct {
	// Seed makes generated vectors reproducible. Zero seeds from the clock.
	Seed uint64

	// MaxSessionSeconds bounds generated session_duration values.
	MaxSessionSeconds float64

	// MaxPageDepth bounds generated page_depth values.
	MaxPageDepth int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Seed:              0,
		MaxSessionSeconds: 1200,
		MaxPageDepth:      20,
	}
}
