package config

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.keyshard",
		Sharing: SharingConfig{
			DefaultShares:    5,
			DefaultThreshold: 3,
		},
		Security: SecurityConfig{
			MemoryLock:     true,
			AirgapCheck:    true,
			RequireOffline: false,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.keyshard/keyshard.log",
		},
	}
}
