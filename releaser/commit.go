package releaser

import (
	"regexp"
	"strings"
)

// Bump is the version component a set of changes moves.
type Bump int

const (
	BumpPatch Bump = iota
	BumpMinor
	BumpMajor
)

// Change is one commit, classified by its Conventional Commits header.
// Commits that do not follow the convention keep an empty Kind and count as
// a patch.
type Change struct {
	Kind     string
	Scope    string
	Subject  string
	Breaking bool
	Hash     string
}

var conventionalRe = regexp.MustCompile(`^(\w+)(\(([^)]*)\))?(!)?:\s*(.+)`)

func parseChange(message, hash string) Change {
	subject := message
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		subject = message[:i]
	}
	subject = strings.TrimSpace(subject)

	change := Change{Subject: subject, Hash: hash}
	if m := conventionalRe.FindStringSubmatch(subject); m != nil {
		change.Kind = m[1]
		change.Scope = m[3]
		change.Breaking = m[4] == "!"
		change.Subject = m[5]
	}
	if strings.Contains(message, "BREAKING CHANGE") {
		change.Breaking = true
	}
	return change
}

func classify(changes []Change) Bump {
	bump := BumpPatch
	for _, c := range changes {
		switch {
		case c.Breaking:
			return BumpMajor
		case c.Kind == "feat":
			bump = BumpMinor
		}
	}
	return bump
}
