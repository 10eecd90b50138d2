// Package config reads application configuration from environment variables
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"leadhopper/internal/platform/logger"
)

// Conf is a namespaced view over environment variables. New() reads
// globally; Prefix("CORE_PUSH_") scopes a module to its own keys
type Conf struct{ prefix string }

// New creates a root Conf with no prefix
func New() Conf { return Conf{} }

// Prefix derives a child Conf, e.g. cfg.Prefix("SERVICE_MAILCHIMP_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key composes the fully-qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

// lookup reads and trims the env var behind key
func (c Conf) lookup(key string) string {
	return strings.TrimSpace(os.Getenv(c.key(key)))
}

// must parses a required value, panicking when the key is absent or
// parse rejects it. hint names the expected form in the panic log
func must[T any](c Conf, key, hint string, parse func(string) (T, error)) T {
	s := c.MustString(key)
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg(hint)
	}
	return v
}

// may parses an optional value, warning and falling back to def when
// parse rejects it. A missing key falls back silently
func may[T any](c Conf, key, hint string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).
			Str("default", fmt.Sprint(def)).Msg(hint)
		return def
	}
	return v
}

func parseURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err == nil && !u.IsAbs() {
		err = errors.New("relative url")
	}
	return u, err
}

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// The Must tier panics on missing or malformed values. Use it for
// settings a binary cannot run without

// MustString panics if the key is missing or empty
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// MustInt panics if the key is missing, empty, or not an int
func (c Conf) MustInt(key string) int {
	return must(c, key, "invalid int value", strconv.Atoi)
}

// MustBool panics if the key is missing, empty, or not bool-like
func (c Conf) MustBool(key string) bool {
	return must(c, key, "invalid bool value", strconv.ParseBool)
}

// MustDuration panics unless the key parses as a Go duration
func (c Conf) MustDuration(key string) time.Duration {
	return must(c, key, "invalid duration (e.g., 250ms, 2s, 1h)", time.ParseDuration)
}

// MustURL panics unless the key parses as an absolute URL
func (c Conf) MustURL(key string) *url.URL {
	return must(c, key, "invalid absolute URL", parseURL)
}

// MustPort validates a TCP port and returns it as a listen addr (":4000")
func (c Conf) MustPort(key string) string {
	s := c.MustString(key)
	if p, err := strconv.Atoi(s); err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid TCP port; expected 1..65535")
	}
	return ":" + s
}

// Require panics unless every listed key is present and non-empty
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		c.MustString(k)
	}
}

// The May tier falls back to defaults, warning on malformed values

// MayString returns the value, or def when missing or empty
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the parsed value, or def when missing or malformed
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, "invalid int; using default", def, strconv.Atoi)
}

// MayFloat64 returns the parsed value, or def when missing or malformed
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, "invalid float64; using default", def, parseFloat)
}

// MayBool returns the parsed value, or def when missing or malformed
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, "invalid bool; using default", def, strconv.ParseBool)
}

// MayDuration returns the parsed value, or def when missing or malformed
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, "invalid duration; using default", def, time.ParseDuration)
}

// MayCSV splits a comma-separated value, dropping blank entries; def
// when nothing usable remains
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns def when empty, the value as given when it matches
// allowed case-insensitively, and panics otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return "" // unreachable
}
