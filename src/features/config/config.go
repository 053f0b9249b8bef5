package config

// Config holds the application configuration.
type Config struct {
	CachePath string   `yaml:"cachePath" validate:"required"`
	Provider  string   `yaml:"provider" validate:"required,oneof=genius lrclib"`
	Logger    Logger   `yaml:"logger"`
	Server    Server   `yaml:"server"`
	Database  Database `yaml:"database"`
	Genius    Genius   `yaml:"genius"`
	LRCLib    LRCLib   `yaml:"lrclib"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Database holds the configuration for the lookup history database
type Database struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// Genius holds the configuration for the Genius API client.
// ExcludedTerms, SkipNonSongs and RemoveSectionHeaders are passed to the client untouched.
type Genius struct {
	AccessToken          string   `yaml:"access_token"`
	APIURL               string   `yaml:"api_url" validate:"required,url"`
	Timeout              int      `yaml:"timeout" validate:"gte=1"` // Seconds
	Retries              int      `yaml:"retries" validate:"gte=0"`
	RequestsPerSecond    float64  `yaml:"requests_per_second" validate:"gte=0"`
	ExcludedTerms        []string `yaml:"excluded_terms"`
	SkipNonSongs         bool     `yaml:"skip_non_songs"`
	RemoveSectionHeaders bool     `yaml:"remove_section_headers"`
}

// LRCLib holds the configuration for the LRCLib API client
type LRCLib struct {
	APIURL            string  `yaml:"api_url" validate:"required,url"`
	Timeout           int     `yaml:"timeout" validate:"gte=1"` // Seconds
	Retries           int     `yaml:"retries" validate:"gte=0"`
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
}
