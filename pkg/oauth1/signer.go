package oauth1

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/authkit-go/authkit/pkg/form"
)

const (
	signatureMethod = "HMAC-SHA1"
	oauthVersion    = "1.0"
)

// Signer builds signed OAuth1 requests per RFC 5849. It merges the
// standard protocol parameters with caller extras, computes the
// HMAC-SHA1 signature over the base string, and places everything in
// the request query. Construction is side-effect free; executing the
// request is the caller's explicit step.
type Signer struct {
	consumerKey    string
	consumerSecret string
	now            func() time.Time
	nonce          func() string
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithClock overrides the timestamp source. Used in tests.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) {
		s.now = now
	}
}

// WithNonce overrides the nonce source. Used in tests.
func WithNonce(nonce func() string) SignerOption {
	return func(s *Signer) {
		s.nonce = nonce
	}
}

// NewSigner creates a Signer for the given consumer credentials.
func NewSigner(consumerKey, consumerSecret string, opts ...SignerOption) (*Signer, error) {
	if consumerKey == "" {
		return nil, ErrMissingConsumerKey
	}
	if consumerSecret == "" {
		return nil, ErrMissingConsumerSecret
	}

	s := &Signer{
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		now:            time.Now,
		nonce:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewRequest builds a signed request. extra parameters join the
// protocol parameters in the signature and the query string. token and
// tokenSecret are empty for the request-token step; tokenSecret keys
// the signature alongside the consumer secret either way.
func (s *Signer) NewRequest(ctx context.Context, method, rawURL string, extra *form.Values, token, tokenSecret string) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	params := form.New()
	for _, p := range form.Decode(u.RawQuery).Pairs() {
		params.Add(p.Key, p.Value)
	}
	for _, p := range extra.Pairs() {
		params.Add(p.Key, p.Value)
	}
	params.Set("oauth_consumer_key", s.consumerKey)
	params.Set("oauth_nonce", s.nonce())
	params.Set("oauth_signature_method", signatureMethod)
	params.Set("oauth_timestamp", strconv.FormatInt(s.now().Unix(), 10))
	params.Set("oauth_version", oauthVersion)
	if token != "" {
		params.Set("oauth_token", token)
	}

	signature := s.sign(method, baseStringURI(u), params, tokenSecret)
	params.Add("oauth_signature", signature)

	u.RawQuery = encodeQuery(params)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// sign computes the RFC 5849 §3.4 signature: the base string is
// METHOD & enc(base URI) & enc(sorted encoded parameters), keyed on
// enc(consumerSecret) & enc(tokenSecret).
func (s *Signer) sign(method, baseURI string, params *form.Values, tokenSecret string) string {
	pairs := params.Pairs()
	encoded := make([]form.Pair, len(pairs))
	for i, p := range pairs {
		encoded[i] = form.Pair{Key: percentEncode(p.Key), Value: percentEncode(p.Value)}
	}
	sort.Slice(encoded, func(i, j int) bool {
		if encoded[i].Key != encoded[j].Key {
			return encoded[i].Key < encoded[j].Key
		}
		return encoded[i].Value < encoded[j].Value
	})

	parts := make([]string, len(encoded))
	for i, p := range encoded {
		parts[i] = p.Key + "=" + p.Value
	}

	base := strings.ToUpper(method) +
		"&" + percentEncode(baseURI) +
		"&" + percentEncode(strings.Join(parts, "&"))

	key := percentEncode(s.consumerSecret) + "&" + percentEncode(tokenSecret)
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// baseStringURI lowercases scheme and host, strips default ports, and
// drops query and fragment, per RFC 5849 §3.4.1.2.
func baseStringURI(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	switch scheme {
	case "http":
		host = strings.TrimSuffix(host, ":80")
	case "https":
		host = strings.TrimSuffix(host, ":443")
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path
}

// encodeQuery renders params with RFC 3986 percent-encoding in
// insertion order. url.Values is not used: it reorders keys and
// encodes spaces as "+", neither of which providers accept uniformly.
func encodeQuery(params *form.Values) string {
	var b strings.Builder
	for i, p := range params.Pairs() {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(percentEncode(p.Key))
		b.WriteByte('=')
		b.WriteString(percentEncode(p.Value))
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

// percentEncode implements RFC 3986 §2.3: unreserved characters pass
// through, everything else becomes uppercase %XX byte-wise.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
		}
	}
	return b.String()
}
