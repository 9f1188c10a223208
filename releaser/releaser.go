// Package releaser computes and performs releases: next semantic version
// from the commit history, changelog, annotated tag, push.
package releaser

import (
	"context"
)

// Result is what a release run produced. LatestVersion is empty on the very
// first release; callers must treat absent fields as normal.
type Result struct {
	Version       string
	LatestVersion string
	Changelog     string
}

// Releaser runs a single release with the effective configuration.
type Releaser interface {
	Run(ctx context.Context, cfg map[string]interface{}) (*Result, error)
}

// optBool reads a bool option from a configuration section, or from the top
// level when section is empty.
func optBool(cfg map[string]interface{}, section, key string, def bool) bool {
	scope := cfg
	if section != "" {
		s, ok := cfg[section].(map[string]interface{})
		if !ok {
			return def
		}
		scope = s
	}
	if v, ok := scope[key].(bool); ok {
		return v
	}
	return def
}

// optString reads a string option the same way.
func optString(cfg map[string]interface{}, section, key, def string) string {
	scope := cfg
	if section != "" {
		s, ok := cfg[section].(map[string]interface{})
		if !ok {
			return def
		}
		scope = s
	}
	if v, ok := scope[key].(string); ok && v != "" {
		return v
	}
	return def
}
