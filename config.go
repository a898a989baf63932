package folio

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/unknownriver/folio/cms"
	"github.com/unknownriver/folio/i18n"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	URL            string `env:"SITE_URL"`        // Canonical URL (default "https://unknownriver.dev")
	Addr           string `env:"ADDR"`            // Listen address (default ":3000")
	TwitterCreator string `env:"TWITTER_CREATOR"` // twitter:creator (default "@unknownriver")
	ContactEmail   string `env:"CONTACT_EMAIL"`   // Overrides the profile email when set

	WPAPIURL        string        `env:"WP_API_URL"`       // WordPress REST base
	PostsRevalidate time.Duration `env:"POSTS_REVALIDATE"` // Post listing freshness window (default 60s)
	PostsRateLimit  int           `env:"POSTS_RATE_LIMIT"` // Requests per IP per minute on /posts (default 60)
	DatabasePath    string        `env:"DATABASE_PATH"`    // SQLite snapshot path (default "data/folio.db")

	SessionSecret string `env:"SESSION_SECRET"` // Required: session signing secret
	CookieSecure  bool   `env:"COOKIE_SECURE"`  // Set true for HTTPS

	// DisableLocaleDetection stops unprefixed pages from redirecting to the
	// visitor's preferred locale. Detection is on for the zero value.
	DisableLocaleDetection bool `env:"DISABLE_LOCALE_DETECTION"`
}

func (c *SiteConfig) setDefaults() {
	if c.URL == "" {
		c.URL = "https://unknownriver.dev"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.TwitterCreator == "" {
		c.TwitterCreator = "@unknownriver"
	}
	if c.WPAPIURL == "" {
		c.WPAPIURL = cms.DefaultBaseURL
	}
	if c.PostsRevalidate == 0 {
		c.PostsRevalidate = 60 * time.Second
	}
	if c.PostsRateLimit == 0 {
		c.PostsRateLimit = 60
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
}

// LoadConfig reads SiteConfig from the process environment and fills defaults.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("folio: parse environment: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithPostSource replaces the WordPress client used for the post listing.
func WithPostSource(src PostSource) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithContent replaces the embedded translation catalogs.
func WithContent(store *i18n.Store) Option {
	return func(a *App) {
		a.Content = store
	}
}

// WithClock overrides the time source used for sitemap lastmod values.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
