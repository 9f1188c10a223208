// Package seeder pre-creates the release engine's configuration file before
// the engine runs. The directory an action executes from is unpredictable
// (the runner's _actions cache, the checkout root, or the path named by
// GITHUB_ACTION_PATH), so every plausible candidate gets a minimal default
// payload. Seeding is strictly best-effort: a failed candidate is logged and
// skipped, and an existing file is never overwritten.
package seeder

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/release-ops/release-action/config"
)

const (
	// ConfigRelPath is where the release engine looks for its file-based
	// configuration, relative to its working directory.
	ConfigRelPath = "config/release-it.json"

	// ManifestName is the placeholder package manifest seeded alongside the
	// configuration so the engine's npm plugin finds one to read.
	ManifestName = "package.json"
)

var manifestPayload = []byte(`{
  "name": "release-action",
  "version": "0.0.0",
  "private": true
}
`)

// Seeder derives candidate directories from the process environment and the
// working directory and ensures each holds a configuration file.
type Seeder struct {
	// Getenv defaults to os.Getenv.
	Getenv func(string) string

	// Dir is the working directory; defaults to os.Getwd.
	Dir string
}

// Seed ensures every candidate configuration file exists, returning the
// paths in derivation order; the first is the primary path. Individual
// candidate failures are warnings, not errors.
func (s *Seeder) Seed() ([]string, error) {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	dir := s.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}

	payload, err := json.MarshalIndent(config.Defaults(), "", "  ")
	if err != nil {
		return nil, err
	}
	payload = append(payload, '\n')

	var seeded []string
	for _, candidate := range candidates(getenv, dir) {
		if err := seedDir(candidate, payload); err != nil {
			logrus.WithError(err).WithField("dir", candidate).Warn("could not seed configuration")
			continue
		}
		seeded = append(seeded, filepath.Join(candidate, ConfigRelPath))
	}
	return seeded, nil
}

// candidates lists, in order: every owner/repo[/version] directory under the
// runner's action cache, the directory named by GITHUB_ACTION_PATH, and the
// working directory. Duplicates are dropped.
func candidates(getenv func(string) string, dir string) []string {
	var dirs []string
	if home := getenv("HOME"); home != "" {
		dirs = append(dirs, actionCacheDirs(filepath.Join(home, "work", "_actions"))...)
	}
	if actionPath := getenv("GITHUB_ACTION_PATH"); actionPath != "" {
		dirs = append(dirs, actionPath)
	}
	dirs = append(dirs, dir)

	seen := make(map[string]bool, len(dirs))
	unique := dirs[:0]
	for _, d := range dirs {
		if seen[d] {
			continue
		}
		seen[d] = true
		unique = append(unique, d)
	}
	return unique
}

// actionCacheDirs walks the two-level <owner>/<repo> convention under the
// runner's _actions tree, adding each repo directory and any version
// directories below it.
func actionCacheDirs(base string) []string {
	owners, err := os.ReadDir(base)
	if err != nil {
		return nil
	}
	var dirs []string
	for _, owner := range owners {
		if !owner.IsDir() {
			continue
		}
		repos, err := os.ReadDir(filepath.Join(base, owner.Name()))
		if err != nil {
			continue
		}
		for _, repo := range repos {
			if !repo.IsDir() {
				continue
			}
			repoDir := filepath.Join(base, owner.Name(), repo.Name())
			dirs = append(dirs, repoDir)
			versions, err := os.ReadDir(repoDir)
			if err != nil {
				continue
			}
			for _, version := range versions {
				// a previous seed run leaves a config dir at the repo level
				if !version.IsDir() || version.Name() == "config" {
					continue
				}
				dirs = append(dirs, filepath.Join(repoDir, version.Name()))
			}
		}
	}
	return dirs
}

// seedDir writes the configuration file and placeholder manifest under dir,
// creating parents as needed and leaving existing files alone.
func seedDir(dir string, payload []byte) error {
	target := filepath.Join(dir, ConfigRelPath)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if err := writeIfAbsent(target, payload); err != nil {
		return err
	}
	if err := writeIfAbsent(filepath.Join(dir, ManifestName), manifestPayload); err != nil {
		// The manifest is a nicety; the configuration file is the point.
		logrus.WithError(err).WithField("dir", dir).Warn("could not seed package manifest")
	}
	return nil
}

func writeIfAbsent(path string, payload []byte) error {
	if _, err := os.Stat(path); err == nil {
		logrus.WithField("path", path).Debug("file exists, leaving as is")
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
