package config

import (
	"testing"
)

func TestParseOverrideMalformed(t *testing.T) {
	cases := []string{
		"{not json",
		"[1,2,3",
		`{"git": }`,
		"true garbage",
	}
	for _, raw := range cases {
		override := ParseOverride(raw)
		if override == nil {
			t.Errorf("ParseOverride(%q) returned nil, want empty map", raw)
		}
		if len(override) != 0 {
			t.Errorf("ParseOverride(%q) = %v, want empty map", raw, override)
		}
	}
}

func TestParseOverrideEmpty(t *testing.T) {
	override := ParseOverride("")
	if len(override) != 0 {
		t.Errorf("expected empty override, got %v", override)
	}
}

func TestEffectiveSectionMerge(t *testing.T) {
	override := ParseOverride(`{"git": {"push": false}}`)
	cfg := Effective(override, Options{})

	git, ok := cfg["git"].(map[string]interface{})
	if !ok {
		t.Fatal("git section missing")
	}
	if push, _ := git["push"].(bool); push {
		t.Error("git.push should be false after override")
	}
	if msg, _ := git["commitMessage"].(string); msg != "chore: release v${version}" {
		t.Errorf("git.commitMessage = %q, want default", msg)
	}
	npm, ok := cfg["npm"].(map[string]interface{})
	if !ok {
		t.Fatal("npm section missing")
	}
	if publish, _ := npm["publish"].(bool); publish {
		t.Error("npm.publish should stay disabled")
	}
	github, ok := cfg["github"].(map[string]interface{})
	if !ok {
		t.Fatal("github section missing")
	}
	if release, _ := github["release"].(bool); release {
		t.Error("github.release should stay disabled")
	}
}

func TestEffectiveForcedFields(t *testing.T) {
	override := ParseOverride(`{"ci": false, "dry-run": false}`)
	cfg := Effective(override, Options{DryRun: true})

	if ci, _ := cfg["ci"].(bool); !ci {
		t.Error("ci must be forced on")
	}
	if dry, _ := cfg["dry-run"].(bool); !dry {
		t.Error("dry-run must come from the input, not the override")
	}
}

func TestEffectiveUnknownKeysOverlay(t *testing.T) {
	override := ParseOverride(`{"preRelease": "beta", "increment": "minor"}`)
	cfg := Effective(override, Options{})

	if cfg["preRelease"] != "beta" {
		t.Errorf("preRelease = %v, want beta", cfg["preRelease"])
	}
	if cfg["increment"] != "minor" {
		t.Errorf("increment = %v, want minor", cfg["increment"])
	}
}

func TestEffectiveIdentity(t *testing.T) {
	cfg := Effective(nil, Options{Identity: Identity{Name: "octocat", Email: "octocat@users.noreply.github.com"}})
	git := cfg["git"].(map[string]interface{})
	if git["userName"] != "octocat" {
		t.Errorf("git.userName = %v, want octocat", git["userName"])
	}
	if git["userEmail"] != "octocat@users.noreply.github.com" {
		t.Errorf("git.userEmail = %v", git["userEmail"])
	}
}

func TestMergeDoesNotMutateBase(t *testing.T) {
	base := Defaults()
	_ = Merge(base, map[string]interface{}{"git": map[string]interface{}{"push": false}})
	git := base["git"].(map[string]interface{})
	if push, _ := git["push"].(bool); !push {
		t.Error("Merge mutated the base configuration")
	}
}

func TestParseDocumentYAML(t *testing.T) {
	doc := []byte("git:\n  push: false\n")
	override, err := ParseDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	git, ok := override["git"].(map[string]interface{})
	if !ok {
		t.Fatalf("git section missing: %v", override)
	}
	if push, _ := git["push"].(bool); push {
		t.Error("git.push should be false")
	}
}

func TestParseDocumentJSON(t *testing.T) {
	override, err := ParseDocument([]byte(`{"npm": {"publish": true}}`))
	if err != nil {
		t.Fatal(err)
	}
	npm := override["npm"].(map[string]interface{})
	if publish, _ := npm["publish"].(bool); !publish {
		t.Error("npm.publish should be true")
	}
}
