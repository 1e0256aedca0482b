// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. config.go focuses on YAML structure and loading, while this
// file handles the CLI interface where config is accessed by string keys
// (e.g., "search.timeout").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". Defaults only apply
// when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"search.ripgrep", "search.timeout", "search.max_depth",
		"search.exit_match", "search.exit_no_match",
		"limits.sample_size", "limits.max_line_length", "limits.max_content", "limits.max_matches",
		"log.audit",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	v, ok := c.All()[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return v, nil
}

// Set sets the value of a configuration key. The whole config is validated
// afterwards, so a value that conflicts with another key is rejected and
// the config is left unchanged.
func (c *Config) Set(key, value string) error {
	prev := *c
	if err := c.set(key, value); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		*c = prev
		return err
	}
	return nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case "search.ripgrep":
		c.Search.Ripgrep = strings.TrimSpace(value)
	case "search.timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%w: search.timeout must be a duration such as 30s or 2m", ErrInvalidValue)
		}
		c.Search.Timeout = value
	case "search.max_depth":
		return setInt(&c.Search.MaxDepth, key, value, 1)
	case "search.exit_match":
		return setInt(&c.Search.ExitMatch, key, value, 0)
	case "search.exit_no_match":
		return setInt(&c.Search.ExitNoMatch, key, value, 0)
	case "limits.sample_size":
		return setInt(&c.Limits.SampleSize, key, value, 1)
	case "limits.max_line_length":
		return setInt(&c.Limits.MaxLineLength, key, value, 1)
	case "limits.max_matches":
		return setInt(&c.Limits.MaxMatches, key, value, 1)
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_content must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxContent = &n
	case "log.audit":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: log.audit must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Log.Audit = &b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// setInt parses value into *dst, rejecting anything below floor.
func setInt(dst **int, key, value string, floor int) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < floor {
		if floor > 0 {
			return fmt.Errorf("%w: %s must be a positive integer", ErrInvalidValue, key)
		}
		return fmt.Errorf("%w: %s must be a non-negative integer", ErrInvalidValue, key)
	}
	*dst = &n
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"search.ripgrep":         c.Ripgrep(),
		"search.timeout":         c.Timeout().String(),
		"search.max_depth":       strconv.Itoa(c.MaxDepth()),
		"search.exit_match":      strconv.Itoa(c.ExitMatch()),
		"search.exit_no_match":   strconv.Itoa(c.ExitNoMatch()),
		"limits.sample_size":     strconv.Itoa(c.SampleSize()),
		"limits.max_line_length": strconv.Itoa(c.MaxLineLength()),
		"limits.max_content":     strconv.FormatInt(c.MaxContent(), 10),
		"limits.max_matches":     strconv.Itoa(c.MaxMatches()),
		"log.audit":              strconv.FormatBool(c.Audit()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "search.ripgrep":
		return c.Search.Ripgrep != ""
	case "search.timeout":
		return c.Search.Timeout != ""
	case "search.max_depth":
		return c.Search.MaxDepth != nil
	case "search.exit_match":
		return c.Search.ExitMatch != nil
	case "search.exit_no_match":
		return c.Search.ExitNoMatch != nil
	case "limits.sample_size":
		return c.Limits.SampleSize != nil
	case "limits.max_line_length":
		return c.Limits.MaxLineLength != nil
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	case "limits.max_matches":
		return c.Limits.MaxMatches != nil
	case "log.audit":
		return c.Log.Audit != nil
	default:
		return false
	}
}
