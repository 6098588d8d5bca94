package domain

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// VersionKey is the synthetic configuration key the validator injects so that
// visibility rules can match on the node's typeVersion.
const VersionKey = "@version"

// Config is a candidate node configuration: property name to value, in
// insertion order. It is built per request and never persisted.
type Config struct {
	entries *orderedmap.OrderedMap[string, Value]
}

// NewConfig returns an empty configuration.
func NewConfig() *Config {
	return &Config{entries: orderedmap.New[string, Value]()}
}

// ConfigFromAny converts a decoded JSON object (map[string]any) into a
// Config. Go maps carry no order, so keys are sorted; configs built from raw
// JSON bytes via UnmarshalJSON keep their original order instead.
func ConfigFromAny(raw map[string]any) *Config {
	v := FromAny(raw)
	cfg, ok := v.AsMap()
	if !ok {
		return NewConfig()
	}
	return cfg
}

// Set stores a value under key, appending the key if new. Returns the
// receiver for chained construction in tests and seeds.
func (c *Config) Set(key string, v Value) *Config {
	c.entries.Set(key, v)
	return c
}

// Get returns the value stored under key.
func (c *Config) Get(key string) (Value, bool) {
	if c == nil || c.entries == nil {
		return Value{}, false
	}
	return c.entries.Get(key)
}

// Has reports whether key is present, regardless of its value.
func (c *Config) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key if present.
func (c *Config) Delete(key string) {
	if c == nil || c.entries == nil {
		return
	}
	c.entries.Delete(key)
}

// Len returns the number of entries.
func (c *Config) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// Keys returns all keys in insertion order.
func (c *Config) Keys() []string {
	if c == nil || c.entries == nil {
		return nil
	}
	keys := make([]string, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (c *Config) Range(fn func(key string, v Value) bool) {
	if c == nil || c.entries == nil {
		return
	}
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a shallow copy sharing value payloads but not key order
// state, so the validator can inject @version without mutating the caller's
// config.
func (c *Config) Clone() *Config {
	out := NewConfig()
	c.Range(func(key string, v Value) bool {
		out.Set(key, v)
		return true
	})
	return out
}

// MarshalJSON renders the configuration as a JSON object in key order.
func (c *Config) MarshalJSON() ([]byte, error) {
	if c == nil || c.entries == nil {
		return []byte("{}"), nil
	}
	return c.entries.MarshalJSON()
}

// UnmarshalJSON parses a JSON object preserving key order.
func (c *Config) UnmarshalJSON(data []byte) error {
	c.entries = orderedmap.New[string, Value]()
	return c.entries.UnmarshalJSON(data)
}
