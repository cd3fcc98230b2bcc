package config

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	CacheTTL     Duration
	Provider     string
	Sheets       SheetsConfig
	HTTP         HTTPConfig
	Snapshots    SnapshotConfig
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		CacheTTL:     durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		Provider:     envOrDefault(envProvider, defaultProvider),
		Sheets:       loadSheets(),
		HTTP:         loadHTTP(),
		Snapshots:    loadSnapshots(),
		Metrics:      loadMetrics(),
	}
}
