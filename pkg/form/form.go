// Package form decodes and encodes URL-encoded query strings and
// fragments as ordered key/value pairs.
package form

import (
	"net/url"
	"strings"
)

// Pair is a single decoded key/value pair.
type Pair struct {
	Key   string
	Value string
}

// Values is an ordered collection of form key/value pairs.
// Unlike url.Values it preserves insertion order, which keeps
// signature base strings and tests deterministic.
type Values struct {
	pairs []Pair
}

// New creates an empty Values.
func New() *Values {
	return &Values{}
}

// Decode parses a URL query string or fragment into ordered pairs.
// A leading "?" or "#" is stripped. Segments are split on "&", then on
// the first "=". Both key and value are percent-decoded. A segment
// without "=" yields a key with an empty value. Malformed segments are
// skipped; decoding never fails.
func Decode(text string) *Values {
	if len(text) > 0 && (text[0] == '?' || text[0] == '#') {
		text = text[1:]
	}

	v := &Values{}
	for _, segment := range strings.Split(text, "&") {
		if segment == "" {
			continue
		}
		rawKey, rawVal, _ := strings.Cut(segment, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		val, err := url.QueryUnescape(rawVal)
		if err != nil {
			continue
		}
		v.pairs = append(v.pairs, Pair{Key: key, Value: val})
	}
	return v
}

// Encode renders the pairs as a percent-encoded query string.
// It is the exact inverse of Decode for any printable pairs,
// including values containing "&" or "=".
func (v *Values) Encode() string {
	if v == nil || len(v.pairs) == 0 {
		return ""
	}

	var b strings.Builder
	for i, p := range v.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Get returns the value of the first pair with the given key.
func (v *Values) Get(key string) (string, bool) {
	if v == nil {
		return "", false
	}
	for _, p := range v.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Set replaces the value of the first pair with the given key,
// or appends a new pair if the key is absent.
func (v *Values) Set(key, value string) {
	for i, p := range v.pairs {
		if p.Key == key {
			v.pairs[i].Value = value
			return
		}
	}
	v.pairs = append(v.pairs, Pair{Key: key, Value: value})
}

// Add appends a pair without replacing existing keys.
func (v *Values) Add(key, value string) {
	v.pairs = append(v.pairs, Pair{Key: key, Value: value})
}

// Has reports whether a pair with the given key exists.
func (v *Values) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Len returns the number of pairs.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.pairs)
}

// Pairs returns a copy of the pairs in insertion order.
func (v *Values) Pairs() []Pair {
	if v == nil {
		return nil
	}
	out := make([]Pair, len(v.pairs))
	copy(out, v.pairs)
	return out
}

// Map flattens the pairs into a plain map. The first occurrence
// of a duplicated key wins, matching Get.
func (v *Values) Map() map[string]string {
	m := make(map[string]string, v.Len())
	if v == nil {
		return m
	}
	for _, p := range v.pairs {
		if _, ok := m[p.Key]; !ok {
			m[p.Key] = p.Value
		}
	}
	return m
}
