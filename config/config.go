// Package config builds the effective release configuration: library defaults
// layered under a user-supplied override document.
package config

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Sections are the option groups the release engine understands. Override
// keys inside a known section merge per-key; anything else replaces wholesale.
var Sections = []string{"git", "github", "gitlab", "npm", "hooks", "plugins"}

// Identity is the git author used when the release commits a changelog.
type Identity struct {
	Name  string
	Email string
}

// Options are the runtime fields forced onto the configuration after the
// merge, so an override can never switch the action back to interactive mode
// or silently flip dry-run.
type Options struct {
	DryRun   bool
	Identity Identity
}

// Defaults returns the base configuration. Platform releases and registry
// publishing are disabled on purpose: other workflow steps own those.
// The git commit/tag/push policy is an explicit default here, overridable
// per-key through the `config` input.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"ci": true,
		"git": map[string]interface{}{
			"commit":                 true,
			"tag":                    true,
			"push":                   true,
			"commitMessage":          "chore: release v${version}",
			"tagName":                "v${version}",
			"requireCleanWorkingDir": false,
		},
		"github": map[string]interface{}{
			"release": false,
		},
		"gitlab": map[string]interface{}{
			"release": false,
		},
		"npm": map[string]interface{}{
			"publish": false,
		},
		"hooks":   map[string]interface{}{},
		"plugins": map[string]interface{}{},
	}
}

// ParseOverride parses the `config` input. A malformed document is never
// fatal: the run proceeds with an empty override and a warning.
func ParseOverride(raw string) map[string]interface{} {
	if raw == "" {
		return map[string]interface{}{}
	}
	var override map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &override); err != nil {
		logrus.WithError(err).Warn("config input is not valid JSON, using empty override")
		return map[string]interface{}{}
	}
	return override
}

// ParseDocument parses an override document fetched from a config source.
// Sources may hold JSON or YAML; JSON is tried first.
func ParseDocument(data []byte) (map[string]interface{}, error) {
	var override map[string]interface{}
	if err := json.Unmarshal(data, &override); err == nil {
		return override, nil
	}
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, err
	}
	return override, nil
}

// Merge layers override over base: section-level shallow merge for map
// values, replacement for everything else. Base is not mutated.
func Merge(base, override map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base))
	for k, v := range base {
		if section, ok := v.(map[string]interface{}); ok {
			copied := make(map[string]interface{}, len(section))
			for sk, sv := range section {
				copied[sk] = sv
			}
			merged[k] = copied
			continue
		}
		merged[k] = v
	}
	for k, v := range override {
		section, baseIsMap := merged[k].(map[string]interface{})
		overrideSection, overrideIsMap := v.(map[string]interface{})
		if baseIsMap && overrideIsMap {
			for sk, sv := range overrideSection {
				section[sk] = sv
			}
			continue
		}
		merged[k] = v
	}
	return merged
}

// Effective builds the configuration handed to the release engine: defaults,
// then the override (section merge plus a whole-object overlay so top-level
// keys we never anticipated still land), then the forced runtime fields.
func Effective(override map[string]interface{}, opts Options) map[string]interface{} {
	cfg := Merge(Defaults(), override)
	for k, v := range override {
		if _, ok := v.(map[string]interface{}); ok {
			continue
		}
		cfg[k] = v
	}
	cfg["ci"] = true
	cfg["dry-run"] = opts.DryRun
	if opts.Identity.Name != "" {
		git, ok := cfg["git"].(map[string]interface{})
		if !ok {
			git = map[string]interface{}{}
			cfg["git"] = git
		}
		commit, ok := git["commit"].(bool)
		if !ok || commit {
			// an override-provided identity wins
			if _, set := git["userName"]; !set {
				git["userName"] = opts.Identity.Name
			}
			if _, set := git["userEmail"]; !set {
				git["userEmail"] = opts.Identity.Email
			}
		}
	}
	return cfg
}
