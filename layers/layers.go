// Package layers resolves configuration from stacked sources: defaults
// at the bottom, then files, environment and runtime overrides. Each
// source is one scope in a chain, so the nearest layer wins and
// removing an override re-exposes the value beneath it.
package layers

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	metro "github.com/dgryski/go-metro"
	"github.com/spf13/cast"

	"github.com/shreyasm-dev/scoped-stack/scoped"
)

// Config is a layered key-value view. Keys are dotted paths ("db.path").
//
// A Config is not safe for concurrent use.
type Config struct {
	scopes *scoped.Stack[string, any]
}

// New creates a config whose root layer holds the flattened defaults.
func New(defaults map[string]any) *Config {
	c := &Config{scopes: scoped.New[string, any]()}
	for k, v := range flatten("", defaults) {
		c.scopes.Insert(k, v)
	}
	return c
}

// Push adds an empty override layer on top.
func (c *Config) Push() {
	c.scopes.PushScope()
}

// Pop drops the top layer and everything bound in it. The root defaults
// layer always remains.
func (c *Config) Pop() {
	c.scopes.PopScope()
}

// Layers reports the number of live layers.
func (c *Config) Layers() int {
	return c.scopes.Depth()
}

// Set binds key in the top layer.
func (c *Config) Set(key string, value any) {
	c.scopes.Insert(key, value)
}

// Unset removes the nearest binding of key, re-exposing any value a
// lower layer holds. It reports whether a binding was removed.
func (c *Config) Unset(key string) bool {
	_, ok := c.scopes.Remove(key)
	return ok
}

// Get returns the effective value of key.
func (c *Config) Get(key string) (any, bool) {
	return c.scopes.Get(key)
}

// IsSet reports whether any layer binds key.
func (c *Config) IsSet(key string) bool {
	return c.scopes.Contains(key)
}

// Keys returns the sorted keys of the effective view.
func (c *Config) Keys() []string {
	flat := c.scopes.Flatten()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fingerprint hashes the effective view. Two configs resolving to the
// same values fingerprint identically regardless of how their layers
// are arranged.
func (c *Config) Fingerprint() uint64 {
	flat := c.scopes.Flatten()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		fmt.Fprintf(&buf, "%s=%v\n", k, flat[k])
	}
	return metro.Hash64(buf.Bytes(), 0)
}

// Typed accessors convert the effective value, yielding the zero value
// when the key is missing or the value does not convert.

func (c *Config) GetString(key string) string {
	v, _ := c.Get(key)
	return cast.ToString(v)
}

func (c *Config) GetInt(key string) int {
	v, _ := c.Get(key)
	return cast.ToInt(v)
}

func (c *Config) GetBool(key string) bool {
	v, _ := c.Get(key)
	return cast.ToBool(v)
}

func (c *Config) GetFloat64(key string) float64 {
	v, _ := c.Get(key)
	return cast.ToFloat64(v)
}

func (c *Config) GetDuration(key string) time.Duration {
	v, _ := c.Get(key)
	return cast.ToDuration(v)
}

func (c *Config) GetStringSlice(key string) []string {
	v, _ := c.Get(key)
	return cast.ToStringSlice(v)
}
