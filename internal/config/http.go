package config

// HTTPConfig controls the inbound API surface.
type HTTPConfig struct {
	AdminToken     string
	CORSOrigins    []string
	RateLimitRPS   int
	RateLimitBurst int
}

func loadHTTP() HTTPConfig {
	return HTTPConfig{
		AdminToken:     envOrDefault(envAdminToken, ""),
		CORSOrigins:    listEnvOrDefault(envCORSOrigins, nil),
		RateLimitRPS:   intEnvOrDefault(envRateLimitRPS, defaultRateLimitRPS),
		RateLimitBurst: intEnvOrDefault(envRateLimitBurst, defaultRateBurst),
	}
}
