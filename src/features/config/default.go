package config

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		CachePath: "./lyrics",
		Provider:  "genius",
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Server: Server{
			PrintRoutes: false,
			Port:        8000,
		},
		Database: Database{
			Enabled: true,
			Path:    "./lyrics.db",
		},
		Genius: Genius{
			AccessToken:          "", // Can be obtained at https://genius.com/api-clients
			APIURL:               "https://api.genius.com",
			Timeout:              10,
			Retries:              3,
			RequestsPerSecond:    2,
			ExcludedTerms:        []string{"(Remix)", "(Live)"},
			SkipNonSongs:         true,
			RemoveSectionHeaders: true,
		},
		LRCLib: LRCLib{
			APIURL:            "https://lrclib.net",
			Timeout:           10,
			Retries:           3,
			RequestsPerSecond: 2,
		},
	}
}
