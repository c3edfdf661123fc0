package types

import (
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Params is an ordered container for HTTP request parameters.
//
// Some exchanges sign the raw query string, so the encoded output must be
// reproducible: EncodeQuery preserves the insertion order of keys, while
// EncodeSortedQuery emits keys in lexicographic order for signature schemes
// that require sorted parameters.
type Params struct {
	order  []string
	values map[string][]string
}

// NewParams creates an empty Params.
func NewParams() *Params {
	return &Params{
		order:  make([]string, 0),
		values: make(map[string][]string),
	}
}

// Set sets a single value for the given key.
// A key seen for the first time records its position.
func (p *Params) Set(key, value string) {
	if _, exists := p.values[key]; !exists {
		p.order = append(p.order, key)
	}
	p.values[key] = []string{value}
}

// SetInt sets an integer value for the given key.
func (p *Params) SetInt(key string, value int64) {
	p.Set(key, strconv.FormatInt(value, 10))
}

// Add appends a value for the given key.
func (p *Params) Add(key, value string) {
	if _, exists := p.values[key]; !exists {
		p.order = append(p.order, key)
	}
	p.values[key] = append(p.values[key], value)
}

// Del removes the given key and its values.
func (p *Params) Del(key string) {
	if _, exists := p.values[key]; !exists {
		return
	}
	delete(p.values, key)
	for i, k := range p.order {
		if k == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (p *Params) Len() int {
	return len(p.order)
}

// EncodeQuery encodes parameters as a URL query string,
// preserving the insertion order of keys.
func (p *Params) EncodeQuery() string {
	return p.encode(p.order)
}

// EncodeSortedQuery encodes parameters as a URL query string
// with keys in lexicographic order.
func (p *Params) EncodeSortedQuery() string {
	keys := make([]string, len(p.order))
	copy(keys, p.order)
	sort.Strings(keys)
	return p.encode(keys)
}

func (p *Params) encode(keys []string) string {
	if len(keys) == 0 {
		return ""
	}

	var buf strings.Builder

	for _, key := range keys {
		vs, ok := p.values[key]
		if !ok {
			continue
		}

		keyEscaped := url.QueryEscape(key)

		for _, value := range vs {
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(keyEscaped)
			buf.WriteByte('=')
			buf.WriteString(url.QueryEscape(value))
		}
	}

	return buf.String()
}

// EncodeMap encodes parameters into a map representation.
//
//   - single value  -> string
//   - multiple values -> []string
func (p *Params) EncodeMap() map[string]any {
	m := make(map[string]any, len(p.values))

	for _, key := range p.order {
		vs := p.values[key]
		if len(vs) == 1 {
			m[key] = vs[0]
		} else if len(vs) > 1 {
			m[key] = vs
		}
	}

	return m
}

// EncodeJSON encodes parameters into a JSON byte slice.
func (p *Params) EncodeJSON() ([]byte, error) {
	return json.Marshal(p.EncodeMap())
}

// JoinPath joins the encoded query string to the given path.
func (p *Params) JoinPath(path string) string {
	query := p.EncodeQuery()
	if query == "" {
		return path
	}

	if strings.Contains(path, "?") {
		return path + "&" + query
	}

	return path + "?" + query
}

// Has reports whether the given key exists.
func (p *Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Get returns the first value associated with the given key.
func (p *Params) Get(key string) string {
	if vs := p.values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Reset clears all stored parameters.
func (p *Params) Reset() {
	p.order = p.order[:0]
	p.values = make(map[string][]string)
}
