package config

// TestConfig returns a configuration suitable for tests: no URL file,
// no external commands, mouse on.
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.MarkRead = ""
	cfg.MarkUnread = ""
	return cfg
}
