// Package action is the GitHub Actions surface: declared inputs, outputs and
// the git identity derived from the workflow actor.
package action

import (
	"errors"
	"strconv"

	"github.com/sethvargo/go-githubactions"

	"github.com/release-ops/release-action/config"
	"github.com/release-ops/release-action/releaser"
)

// ErrMissingToken is returned when the required github-token input is empty.
var ErrMissingToken = errors.New("github-token input is required")

// Inputs are the action's declared inputs.
type Inputs struct {
	Token        string
	ConfigJSON   string
	ConfigSource string
	DryRun       bool
}

// ParseInputs reads and validates the declared inputs. A missing token is an
// error; everything else is optional.
func ParseInputs(a *githubactions.Action) (*Inputs, error) {
	token := a.GetInput("github-token")
	if token == "" {
		return nil, ErrMissingToken
	}
	dryRun, err := strconv.ParseBool(a.GetInput("dry-run"))
	if err != nil {
		dryRun = false
	}
	return &Inputs{
		Token:        token,
		ConfigJSON:   a.GetInput("config"),
		ConfigSource: a.GetInput("config-source"),
		DryRun:       dryRun,
	}, nil
}

// Identity derives the git author for release commits from the workflow
// actor, falling back to the Actions bot.
func Identity(getenv func(string) string) config.Identity {
	if actor := getenv("GITHUB_ACTOR"); actor != "" {
		return config.Identity{
			Name:  actor,
			Email: actor + "@users.noreply.github.com",
		}
	}
	return config.Identity{
		Name:  "github-actions[bot]",
		Email: "github-actions[bot]@users.noreply.github.com",
	}
}

// WriteOutputs copies the present result fields to the action outputs.
// Absent fields set nothing.
func WriteOutputs(a *githubactions.Action, result *releaser.Result) {
	if result.Version != "" {
		a.SetOutput("version", result.Version)
	}
	if result.LatestVersion != "" {
		a.SetOutput("latestVersion", result.LatestVersion)
	}
	if result.Changelog != "" {
		a.SetOutput("changelog", result.Changelog)
	}
}
