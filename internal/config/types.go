package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int          `yaml:"port"`
	DSN            string       `yaml:"dsn"` // MySQL DSN
	RedisURL       string       `yaml:"redis_url"`
	Env            string       `yaml:"env"` // "development" | "production"
	AllowedOrigins []string     `yaml:"allowed_origins"`
	JWTSecret      string       `yaml:"jwt_secret"`
	AI             AIConfig     `yaml:"ai"`
	Export         ExportConfig `yaml:"export"`
	Storage        S3Options    `yaml:"storage"`
	FontDirs       []string     `yaml:"font_dirs"`
}

// AIConfig configures the slide text generation providers.
type AIConfig struct {
	Providers []AIProvider `yaml:"providers"`
}

// AIProvider is a single text-generation backend.
type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// ExportConfig tunes the slide export pipeline.
type ExportConfig struct {
	// UpscaleFactor multiplies logical layout units into raster pixels.
	// 540 logical width * 2 = 1080 px output.
	UpscaleFactor int `yaml:"upscale_factor"`
	// SettleDelayMS is the fallback wait after mount before capture when the
	// paint-ready signal has not fired yet.
	SettleDelayMS int `yaml:"settle_delay_ms"`
	// SlideTimeoutMS bounds one slide's mount+rasterize cycle. A timeout is
	// counted as an ordinary per-slide failure.
	SlideTimeoutMS int `yaml:"slide_timeout_ms"`
}

// S3Options configures optional upload of export artifacts to object storage.
type S3Options struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}
