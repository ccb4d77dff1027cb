package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all server configuration, loaded from the environment.
type Config struct {
	DBPath string `env:"TAGDECK_DB_PATH,default=tagdeck.db"`
	Port   string `env:"PORT,default=8080"`

	// Default for development only - should be set in production
	JWTSecret     string        `env:"TAGDECK_JWT_SECRET,default=tagdeck-dev-secret-change-in-production"`
	TokenDuration time.Duration `env:"TAGDECK_TOKEN_DURATION,default=24h"`

	AdminEmail    string `env:"TAGDECK_ADMIN_EMAIL,default=admin@tagdeck.local"`
	AdminPassword string `env:"TAGDECK_ADMIN_PASSWORD,default=changeme"`

	Metadata MetadataConfig `env:",prefix=TAGDECK_"`
}

// MetadataConfig configures the website-metadata resolver. The provider
// endpoints are overridable so tests can point them at local servers.
type MetadataConfig struct {
	LinkPreviewURL string        `env:"LINKPREVIEW_URL,default=https://api.linkpreview.net"`
	LinkPreviewKey string        `env:"LINKPREVIEW_KEY,default=demo"`
	ProxyURL       string        `env:"PROXY_URL,default=https://api.allorigins.win"`
	MicrolinkURL   string        `env:"MICROLINK_URL,default=https://api.microlink.io"`
	FaviconURL     string        `env:"FAVICON_URL,default=https://www.google.com/s2/favicons"`
	Timeout        time.Duration `env:"METADATA_TIMEOUT,default=10s"`
}

// Load reads configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
