package layers

import (
	"os"
	"strings"
)

// LoadEnviron pushes a layer built from environment variables carrying
// the prefix. Variable names follow the PREFIX_SECTION_KEY pattern: with
// prefix "APP", APP_DB_PATH binds "db.path". It returns the number of
// variables captured.
func (c *Config) LoadEnviron(prefix string) int {
	c.scopes.PushScope()
	prefix = prefix + "_"
	n := 0
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, prefix) {
			continue
		}
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			continue
		}
		key := envKey(kv[len(prefix):eq])
		if key == "" {
			continue
		}
		c.scopes.Insert(key, kv[eq+1:])
		n++
	}
	return n
}

// envKey lowers an environment suffix into a dotted path.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", ".")
}
