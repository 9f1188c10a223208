// Package runner orchestrates one release run: inputs, configuration
// seeding, the effective configuration, the release itself, and outputs.
package runner

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-githubactions"
	"github.com/sirupsen/logrus"

	"github.com/release-ops/release-action/action"
	"github.com/release-ops/release-action/config"
	"github.com/release-ops/release-action/releaser"
	"github.com/release-ops/release-action/source"
)

// Seeder pre-creates the release engine's configuration files.
type Seeder interface {
	Seed() ([]string, error)
}

// Runner wires the action surface to the seeder and the release engine.
type Runner struct {
	Action *githubactions.Action

	// Getenv defaults to the Action's environment.
	Getenv func(string) string

	Seeder Seeder

	// NewReleaser builds the releaser once the token is known.
	NewReleaser func(token string) releaser.Releaser

	// NewSource resolves a config-source location; defaults to source.New.
	NewSource func(location, token string) (source.Repository, error)
}

// Run performs one release. The missing-token check comes first, before any
// filesystem writes; seeding and config-source trouble are warnings; the
// release invocation is the single hard-failure path after setup.
func (r *Runner) Run(ctx context.Context) error {
	inputs, err := action.ParseInputs(r.Action)
	if err != nil {
		return err
	}

	if seeded, err := r.Seeder.Seed(); err != nil {
		logrus.WithError(err).Warn("configuration seeding failed")
	} else {
		logrus.WithField("paths", seeded).Debug("seeded configuration")
	}

	override := r.resolveOverride(ctx, inputs)
	cfg := config.Effective(override, config.Options{
		DryRun:   inputs.DryRun,
		Identity: action.Identity(r.getenv()),
	})

	logrus.WithField("dry-run", inputs.DryRun).Info("starting release")
	result, err := r.NewReleaser(inputs.Token).Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("release failed: %w", err)
	}

	action.WriteOutputs(r.Action, result)
	logrus.WithFields(logrus.Fields{
		"version":       result.Version,
		"latestVersion": result.LatestVersion,
	}).Info("release finished")
	return nil
}

// resolveOverride layers the inline `config` input over the document from
// `config-source`, when one is set. Source trouble never fails the run.
func (r *Runner) resolveOverride(ctx context.Context, inputs *action.Inputs) map[string]interface{} {
	override := config.ParseOverride(inputs.ConfigJSON)
	if inputs.ConfigSource == "" {
		return override
	}

	newSource := r.NewSource
	if newSource == nil {
		newSource = source.New
	}
	repo, err := newSource(inputs.ConfigSource, inputs.Token)
	if err != nil {
		logrus.WithError(err).Warn("invalid config-source, using inline config only")
		return override
	}
	data, err := repo.Fetch(ctx)
	if err != nil {
		logrus.WithError(err).WithField("type", repo.GetType()).
			Warn("could not fetch config-source, using inline config only")
		return override
	}
	fromSource, err := config.ParseDocument(data)
	if err != nil {
		logrus.WithError(err).Warn("could not parse config-source document, using inline config only")
		return override
	}
	return config.Merge(fromSource, override)
}

func (r *Runner) getenv() func(string) string {
	if r.Getenv != nil {
		return r.Getenv
	}
	return os.Getenv
}
