package guide

// Config holds guide generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults. Temperature matches the
// original app's tuning; the token budget fits a full guide with 20 cards.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}
