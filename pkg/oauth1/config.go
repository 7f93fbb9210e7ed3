package oauth1

import "net/url"

// Config holds the credentials and endpoints of an OAuth1 provider.
// Embed it in your app config for env parsing with caarlos0/env. All
// fields are required. CallbackURL is the redirect target the flow
// watches for; it need not be reachable, custom URI schemes are
// expected and normal.
type Config struct {
	ConsumerKey     string `env:"OAUTH1_CONSUMER_KEY,required"`
	ConsumerSecret  string `env:"OAUTH1_CONSUMER_SECRET,required"`
	RequestTokenURL string `env:"OAUTH1_REQUEST_TOKEN_URL,required"`
	AuthorizeURL    string `env:"OAUTH1_AUTHORIZE_URL,required"`
	AccessTokenURL  string `env:"OAUTH1_ACCESS_TOKEN_URL,required"`
	CallbackURL     string `env:"OAUTH1_CALLBACK_URL,required"`
}

// Validate fails fast on missing fields or non-absolute endpoints so
// misconfiguration never surfaces mid-flow.
func (c Config) Validate() error {
	if c.ConsumerKey == "" {
		return ErrMissingConsumerKey
	}
	if c.ConsumerSecret == "" {
		return ErrMissingConsumerSecret
	}
	if c.RequestTokenURL == "" {
		return ErrMissingRequestTokenURL
	}
	if c.AuthorizeURL == "" {
		return ErrMissingAuthorizeURL
	}
	if c.AccessTokenURL == "" {
		return ErrMissingAccessTokenURL
	}
	if c.CallbackURL == "" {
		return ErrMissingCallbackURL
	}
	for _, endpoint := range []string{c.RequestTokenURL, c.AuthorizeURL, c.AccessTokenURL} {
		if u, err := url.Parse(endpoint); err != nil || !u.IsAbs() {
			return ErrInvalidURL
		}
	}
	return nil
}
