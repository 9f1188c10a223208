package action

import (
	"errors"
	"io"
	"testing"

	"github.com/sethvargo/go-githubactions"
)

func newAction(env map[string]string) *githubactions.Action {
	return githubactions.New(
		githubactions.WithGetenv(func(key string) string { return env[key] }),
		githubactions.WithWriter(io.Discard),
	)
}

func TestParseInputs(t *testing.T) {
	a := newAction(map[string]string{
		"INPUT_GITHUB-TOKEN":  "secret",
		"INPUT_CONFIG":        `{"git": {"push": false}}`,
		"INPUT_CONFIG-SOURCE": "gs://configs/release-it.json",
		"INPUT_DRY-RUN":       "true",
	})
	inputs, err := ParseInputs(a)
	if err != nil {
		t.Fatal(err)
	}
	if inputs.Token != "secret" {
		t.Errorf("Token = %q", inputs.Token)
	}
	if inputs.ConfigJSON != `{"git": {"push": false}}` {
		t.Errorf("ConfigJSON = %q", inputs.ConfigJSON)
	}
	if inputs.ConfigSource != "gs://configs/release-it.json" {
		t.Errorf("ConfigSource = %q", inputs.ConfigSource)
	}
	if !inputs.DryRun {
		t.Error("DryRun should be true")
	}
}

func TestParseInputsMissingToken(t *testing.T) {
	_, err := ParseInputs(newAction(nil))
	if !errors.Is(err, ErrMissingToken) {
		t.Errorf("err = %v, want ErrMissingToken", err)
	}
}

func TestParseInputsDryRunDefaults(t *testing.T) {
	cases := map[string]bool{
		"":        false,
		"false":   false,
		"notabool": false,
		"true":    true,
		"1":       true,
	}
	for raw, want := range cases {
		a := newAction(map[string]string{
			"INPUT_GITHUB-TOKEN": "secret",
			"INPUT_DRY-RUN":      raw,
		})
		inputs, err := ParseInputs(a)
		if err != nil {
			t.Fatal(err)
		}
		if inputs.DryRun != want {
			t.Errorf("dry-run %q parsed as %v, want %v", raw, inputs.DryRun, want)
		}
	}
}

func TestIdentity(t *testing.T) {
	id := Identity(func(key string) string {
		if key == "GITHUB_ACTOR" {
			return "octocat"
		}
		return ""
	})
	if id.Name != "octocat" {
		t.Errorf("Name = %q", id.Name)
	}
	if id.Email != "octocat@users.noreply.github.com" {
		t.Errorf("Email = %q", id.Email)
	}

	bot := Identity(func(string) string { return "" })
	if bot.Name != "github-actions[bot]" {
		t.Errorf("fallback Name = %q", bot.Name)
	}
}
