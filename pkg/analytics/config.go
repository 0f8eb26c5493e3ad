package analytics

import "time"

// Config tunes health classification and the timeline window. These are
// deployment policy, not constants: load them from the environment through
// pkg/config, or construct a value directly. A zero field disables the
// matching check or window.
type Config struct {
	// MaxParseErrorRatio is the highest tolerable share of malformed lines,
	// counted against all lines read (parsed + malformed), before the log
	// is classified WARNING.
	MaxParseErrorRatio float64 `env:"LOCKKIT_HEALTH_MAX_PARSE_ERROR_RATIO" envDefault:"0.05"`

	// StaleAfter classifies the log WARNING when its newest record is older
	// than this.
	StaleAfter time.Duration `env:"LOCKKIT_HEALTH_STALE_AFTER" envDefault:"24h"`

	// TimelineWindow bounds the snapshot timeline to records at most this
	// far behind the snapshot's generation time.
	TimelineWindow time.Duration `env:"LOCKKIT_TIMELINE_WINDOW" envDefault:"168h"`
}

// DefaultConfig mirrors the environment defaults for callers that skip the
// environment entirely.
func DefaultConfig() Config {
	return Config{
		MaxParseErrorRatio: 0.05,
		StaleAfter:         24 * time.Hour,
		TimelineWindow:     7 * 24 * time.Hour,
	}
}
