package oauth

import "net/url"

// Config holds OAuth2 client configuration for redirect-based flows.
// Embed it in your app config for env parsing with caarlos0/env.
// TokenURL and ClientSecret are only required by the
// authorization-code flow; the implicit grant needs neither.
type Config struct {
	ClientID     string   `env:"OAUTH2_CLIENT_ID,required"`
	ClientSecret string   `env:"OAUTH2_CLIENT_SECRET"`
	AuthURL      string   `env:"OAUTH2_AUTH_URL,required"`
	TokenURL     string   `env:"OAUTH2_TOKEN_URL"`
	CallbackURL  string   `env:"OAUTH2_CALLBACK_URL,required"`
	Scopes       []string `env:"OAUTH2_SCOPES" envSeparator:","`
}

func (c Config) validate(needTokenEndpoint bool) error {
	if c.ClientID == "" {
		return ErrMissingClientID
	}
	if c.AuthURL == "" {
		return ErrMissingAuthURL
	}
	if u, err := url.Parse(c.AuthURL); err != nil || !u.IsAbs() {
		return ErrMissingAuthURL
	}
	if c.CallbackURL == "" {
		return ErrMissingCallbackURL
	}
	if needTokenEndpoint {
		if c.TokenURL == "" {
			return ErrMissingTokenURL
		}
		if c.ClientSecret == "" {
			return ErrMissingClientSecret
		}
	}
	return nil
}
