package services

import (
	"fmt"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/authkit-go/authkit/pkg/oauth"
	"github.com/authkit-go/authkit/pkg/oauth1"
	"github.com/authkit-go/authkit/pkg/redirect"
)

// Supported authorization protocols.
const (
	ProtocolOAuth1         = "oauth1"
	ProtocolOAuth2Code     = "oauth2-code"
	ProtocolOAuth2Implicit = "oauth2-implicit"
)

// Definition describes one remote service a user can authorize
// against. Exactly one endpoint block must be present, matching the
// declared protocol.
type Definition struct {
	Name        string           `yaml:"name"`
	Protocol    string           `yaml:"protocol"`
	CallbackURL string           `yaml:"callback_url"`
	OAuth1      *OAuth1Endpoints `yaml:"oauth1,omitempty"`
	OAuth2      *OAuth2Endpoints `yaml:"oauth2,omitempty"`
}

// OAuth1Endpoints holds the three-endpoint OAuth 1.0a configuration.
type OAuth1Endpoints struct {
	ConsumerKey     string `yaml:"consumer_key"`
	ConsumerSecret  string `yaml:"consumer_secret"`
	RequestTokenURL string `yaml:"request_token_url"`
	AuthorizeURL    string `yaml:"authorize_url"`
	AccessTokenURL  string `yaml:"access_token_url"`
}

// OAuth2Endpoints holds OAuth2 client configuration. TokenURL and
// ClientSecret are only required for the authorization-code protocol.
type OAuth2Endpoints struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	AuthURL      string   `yaml:"auth_url"`
	TokenURL     string   `yaml:"token_url"`
	Scopes       []string `yaml:"scopes"`
}

// Validate checks the structural invariants of the definition. The
// endpoint values themselves are validated by the flow constructors.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	}
	switch d.Protocol {
	case ProtocolOAuth1:
		if d.OAuth1 == nil {
			return fmt.Errorf("%w: %q declares %s but has no oauth1 block", ErrInvalidDefinition, d.Name, d.Protocol)
		}
	case ProtocolOAuth2Code, ProtocolOAuth2Implicit:
		if d.OAuth2 == nil {
			return fmt.Errorf("%w: %q declares %s but has no oauth2 block", ErrInvalidDefinition, d.Name, d.Protocol)
		}
	default:
		return fmt.Errorf("%w: %q has unknown protocol %q", ErrInvalidDefinition, d.Name, d.Protocol)
	}
	if d.CallbackURL == "" {
		return fmt.Errorf("%w: %q has no callback_url", ErrInvalidDefinition, d.Name)
	}
	return nil
}

// Flow is a redirect authenticator that reports a single outcome.
// All flows built from a Definition satisfy it.
type Flow interface {
	redirect.Authenticator
	Done() <-chan redirect.Result
}

// FlowOptions carries the per-attempt collaborators a definition alone
// cannot know.
type FlowOptions struct {
	HTTPClient *http.Client
	Resolver   redirect.UsernameResolver
}

// NewFlow builds a fresh single-use flow for the definition. Call it
// again for every authorization attempt.
func (d Definition) NewFlow(opts FlowOptions) (Flow, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	switch d.Protocol {
	case ProtocolOAuth1:
		cfg := oauth1.Config{
			ConsumerKey:     d.OAuth1.ConsumerKey,
			ConsumerSecret:  d.OAuth1.ConsumerSecret,
			RequestTokenURL: d.OAuth1.RequestTokenURL,
			AuthorizeURL:    d.OAuth1.AuthorizeURL,
			AccessTokenURL:  d.OAuth1.AccessTokenURL,
			CallbackURL:     d.CallbackURL,
		}
		var flowOpts []oauth1.Option
		if opts.HTTPClient != nil {
			flowOpts = append(flowOpts, oauth1.WithHTTPClient(opts.HTTPClient))
		}
		if opts.Resolver != nil {
			flowOpts = append(flowOpts, oauth1.WithResolver(opts.Resolver))
		}
		return oauth1.NewFlow(cfg, flowOpts...)

	case ProtocolOAuth2Code, ProtocolOAuth2Implicit:
		cfg := oauth.Config{
			ClientID:     d.OAuth2.ClientID,
			ClientSecret: d.OAuth2.ClientSecret,
			AuthURL:      d.OAuth2.AuthURL,
			TokenURL:     d.OAuth2.TokenURL,
			CallbackURL:  d.CallbackURL,
			Scopes:       d.OAuth2.Scopes,
		}
		var flowOpts []oauth.Option
		if opts.HTTPClient != nil {
			flowOpts = append(flowOpts, oauth.WithHTTPClient(opts.HTTPClient))
		}
		if opts.Resolver != nil {
			flowOpts = append(flowOpts, oauth.WithResolver(opts.Resolver))
		}
		if d.Protocol == ProtocolOAuth2Implicit {
			return oauth.NewImplicitFlow(cfg, flowOpts...)
		}
		return oauth.NewCodeFlow(cfg, flowOpts...)
	}
	return nil, fmt.Errorf("%w: %q has unknown protocol %q", ErrInvalidDefinition, d.Name, d.Protocol)
}

type catalogFile struct {
	Services []Definition `yaml:"services"`
}

// Load decodes a catalog document. Every definition is validated and
// names must be unique.
func Load(data []byte) ([]Definition, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	seen := make(map[string]struct{}, len(file.Services))
	for _, def := range file.Services {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[def.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateService, def.Name)
		}
		seen[def.Name] = struct{}{}
	}
	return file.Services, nil
}

// LoadFile reads and decodes a catalog document from disk.
func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}
