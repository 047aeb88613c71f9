package auth

import "time"

// Config holds the orchestrator settings.
type Config struct {
	// ClientURL is the public URL of the client application; activation
	// links point to <ClientURL>/auth/activate/<link>.
	ClientURL  string        `env:"AUTH_CLIENT_URL,required"`
	BcryptCost int           `env:"AUTH_BCRYPT_COST" envDefault:"16"`
	StateTTL   time.Duration `env:"AUTH_OAUTH_STATE_TTL" envDefault:"10m"`
}

// GoogleConfig holds configuration for the Google OAuth2 provider. An empty
// ClientID disables the provider.
type GoogleConfig struct {
	ClientID     string        `env:"GOOGLE_OAUTH_CLIENT_ID"`
	ClientSecret string        `env:"GOOGLE_OAUTH_CLIENT_SECRET"`
	RedirectURL  string        `env:"GOOGLE_OAUTH_REDIRECT_URL"`
	Scopes       []string      `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," envDefault:"https://www.googleapis.com/auth/userinfo.email,https://www.googleapis.com/auth/userinfo.profile"`
	Timeout      time.Duration `env:"GOOGLE_OAUTH_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether the provider is configured.
func (c GoogleConfig) Enabled() bool { return c.ClientID != "" }
