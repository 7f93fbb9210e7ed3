package redirect

import (
	"io"
	"log/slog"
	"net/url"
	"strings"
)

// Matcher decides whether a navigated URL is the expected callback.
// Authority is compared case-insensitively and the absolute path
// case-sensitively; query and fragment never participate. There is no
// host normalization: "www.example.com" does not match "example.com".
type Matcher struct {
	raw      string
	callback *url.URL
	logger   *slog.Logger
}

// NewMatcher parses callbackURL and prepares a matcher. The URL must
// be absolute, but it need not be reachable; custom URI schemes are
// expected and normal.
func NewMatcher(callbackURL string, logger *slog.Logger) (*Matcher, error) {
	if callbackURL == "" {
		return nil, ErrMissingCallbackURL
	}

	u, err := url.Parse(callbackURL)
	if err != nil || !u.IsAbs() {
		return nil, ErrInvalidCallbackURL
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Matcher{raw: callbackURL, callback: u, logger: logger}, nil
}

// CallbackURL returns the literal callback string the matcher was
// built from, exactly as supplied. Providers compare the registered
// redirect URL textually, so no normalized form is ever exposed.
func (m *Matcher) CallbackURL() string {
	return m.raw
}

// Matches reports whether candidate has the callback's authority and
// absolute path. Unparseable and relative candidates never match.
func (m *Matcher) Matches(candidate string) bool {
	u, err := url.Parse(candidate)
	if err != nil || !u.IsAbs() {
		m.logger.Debug("ignoring unparseable navigation target",
			slog.String("url", candidate))
		return false
	}

	if !strings.EqualFold(u.Host, m.callback.Host) {
		m.logger.Debug("navigation authority does not match callback",
			slog.String("got", u.Host),
			slog.String("want", m.callback.Host))
		return false
	}

	if absolutePath(u) != absolutePath(m.callback) {
		m.logger.Debug("navigation path does not match callback",
			slog.String("got", absolutePath(u)),
			slog.String("want", absolutePath(m.callback)))
		return false
	}

	return true
}

// absolutePath treats the empty path as "/", so "myapp://cb" and
// "myapp://cb/" compare equal. All other paths stay untouched.
func absolutePath(u *url.URL) string {
	if p := u.EscapedPath(); p != "" {
		return p
	}
	return "/"
}
