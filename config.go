package aasa

import (
	"encoding/json"
	"fmt"
	"maps"
	"sync"
)

// Detail is one entry of applinks.details, e.g.
// {"appID": "ABCD1234.com.apple.wwdc", "paths": ["*"]}.
type Detail map[string]any

// NewDetail returns a Detail for the given app ID and paths.
func NewDetail(appID string, paths ...string) Detail {
	if paths == nil {
		paths = []string{}
	}

	return Detail{
		"appID": appID,
		"paths": paths,
	}
}

// Config holds what gets served at /apple-app-site-association.
// The zero value renders the same as New().
type Config struct {
	mu             sync.RWMutex
	apps           []string
	details        []Detail
	webCredentials map[string]any
}

// New returns a Config with empty defaults,
// then passes it to each of fns in order.
func New(fns ...func(*Config)) *Config {
	c := (&Config{}).Reset()

	for _, fn := range fns {
		c.Configure(fn)
	}

	return c
}

// Configure passes c to fn and returns c.
func (c *Config) Configure(fn func(*Config)) *Config {
	if fn != nil {
		fn(c)
	}

	return c
}

// Reset restores c's fields to their empty defaults.
func (c *Config) Reset() *Config {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apps = []string{}
	c.details = []Detail{}
	c.webCredentials = map[string]any{}

	return c
}

// SetApps replaces applinks.apps.
func (c *Config) SetApps(apps []string) *Config {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apps = append([]string{}, apps...)

	return c
}

// SetDetails replaces applinks.details. Nested maps with
// non-string keys are converted to string-keyed maps.
func (c *Config) SetDetails(details []Detail) *Config {
	normalized := make([]Detail, 0, len(details))
	for _, detail := range details {
		normalized = append(normalized, Detail(normalizeMap(detail)))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.details = normalized

	return c
}

// SetWebCredentials replaces applinks.webcredentials wholesale.
func (c *Config) SetWebCredentials(webCredentials map[string]any) *Config {
	normalized := normalizeMap(webCredentials)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.webCredentials = normalized

	return c
}

func (c *Config) Apps() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string{}, c.apps...)
}

func (c *Config) Details() []Detail {
	c.mu.RLock()
	defer c.mu.RUnlock()

	details := make([]Detail, 0, len(c.details))
	for _, detail := range c.details {
		details = append(details, maps.Clone(detail))
	}

	return details
}

func (c *Config) WebCredentials() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	webCredentials := make(map[string]any, len(c.webCredentials))
	maps.Copy(webCredentials, c.webCredentials)

	return webCredentials
}

// Render returns the document that c describes. The result
// shares no top-level slices or maps with c.
func (c *Config) Render() *AppleAppSiteAssociation {
	return &AppleAppSiteAssociation{
		AppLinks: AppLinks{
			Apps:           c.Apps(),
			Details:        c.Details(),
			WebCredentials: c.WebCredentials(),
		},
	}
}

// MarshalJSON implements json.Marshaler.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Render())
}

func normalizeMap(m map[string]any) map[string]any {
	normalized := make(map[string]any, len(m))
	for k, v := range m {
		normalized[k] = normalize(v)
	}

	return normalized
}

// normalize converts map[any]any, as decoded from generic YAML,
// into map[string]any so that it can be encoded as JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeMap(t)
	case Detail:
		return Detail(normalizeMap(t))
	case map[any]any:
		normalized := make(map[string]any, len(t))
		for k, v := range t {
			normalized[fmt.Sprint(k)] = normalize(v)
		}
		return normalized
	case []any:
		normalized := make([]any, len(t))
		for i, v := range t {
			normalized[i] = normalize(v)
		}
		return normalized
	default:
		return v
	}
}
