// Package config is the single source of truth for framework settings:
// wait timeouts, polling intervals, API retry policy, endpoint base
// addresses and screenshot/report paths.
//
// Settings come from a YAML file loaded once at startup. Every key can be
// overridden per-process through an environment variable without editing the
// file, which is how CI pipelines parameterize runs. The loaded mapping is
// immutable, so concurrent readers need no locking.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to the mangled key name when looking up an
// environment override. The key "timeout.polling" is overridden by the
// variable GOWEBTEST_TIMEOUT_POLLING.
const EnvPrefix = "GOWEBTEST_"

// Provider resolves configuration keys. Lookup order for every key:
// environment override first, then the loaded file mapping, then the
// caller-supplied default.
type Provider struct {
	values map[string]string
}

// Load reads the YAML file at path and returns an immutable Provider.
// A missing file is not an error: the Provider then resolves purely from
// environment overrides and defaults.
func Load(path string) (*Provider, error) {
	p := &Provider{values: map[string]string{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	flatten("", raw, p.values)
	return p, nil
}

// flatten collapses nested YAML mappings into dotted keys, so
//
//	timeout:
//	  polling: 500
//
// becomes "timeout.polling" = "500".
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprintf("%v", val)
		}
	}
}

var (
	defaultOnce     sync.Once
	defaultProvider *Provider
	defaultErr      error
)

// Default returns the process-wide Provider, loading it on first use from
// the path in GOWEBTEST_CONFIG (falling back to "config.yaml"). The load
// happens exactly once; later calls return the cached instance.
func Default() (*Provider, error) {
	defaultOnce.Do(func() {
		path := os.Getenv(EnvPrefix + "CONFIG")
		if path == "" {
			path = "config.yaml"
		}
		defaultProvider, defaultErr = Load(path)
	})
	return defaultProvider, defaultErr
}

// EnvKey returns the environment variable name that overrides key.
func EnvKey(key string) string {
	return EnvPrefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// Get resolves key, preferring the environment override, then the loaded
// file, then def.
func (p *Provider) Get(key, def string) string {
	if v, ok := os.LookupEnv(EnvKey(key)); ok {
		return v
	}
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

// GetInt resolves key as an integer, returning def on absence or parse error.
func (p *Provider) GetInt(key string, def int) int {
	v := p.Get(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// GetBool resolves key as a boolean, returning def on absence or parse error.
func (p *Provider) GetBool(key string, def bool) bool {
	v := p.Get(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

func (p *Provider) seconds(key string, def time.Duration) time.Duration {
	n := p.GetInt(key, -1)
	if n < 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

func (p *Provider) millis(key string, def time.Duration) time.Duration {
	n := p.GetInt(key, -1)
	if n < 0 {
		return def
	}
	return time.Duration(n) * time.Millisecond
}
