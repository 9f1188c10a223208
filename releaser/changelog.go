package releaser

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

const changelogName = "CHANGELOG.md"

// renderChangelog renders the Markdown section for one release: a version
// header followed by changes grouped by kind.
func renderChangelog(tag string, changes []Change, date time.Time) string {
	var breaking, features, fixes, other []Change
	for _, c := range changes {
		switch {
		case c.Breaking:
			breaking = append(breaking, c)
		case c.Kind == "feat":
			features = append(features, c)
		case c.Kind == "fix":
			fixes = append(fixes, c)
		default:
			other = append(other, c)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s (%s)\n", tag, date.Format("2006-01-02"))
	writeGroup(&b, "Breaking Changes", breaking)
	writeGroup(&b, "Features", features)
	writeGroup(&b, "Bug Fixes", fixes)
	writeGroup(&b, "Other Changes", other)
	return b.String()
}

func writeGroup(b *strings.Builder, title string, changes []Change) {
	if len(changes) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, c := range changes {
		if c.Scope != "" {
			fmt.Fprintf(b, "- **%s:** %s (%s)\n", c.Scope, c.Subject, c.Hash)
			continue
		}
		fmt.Fprintf(b, "- %s (%s)\n", c.Subject, c.Hash)
	}
}

// prependChangelog puts the new section ahead of any existing changelog
// content in the worktree filesystem.
func prependChangelog(fs billy.Filesystem, entry string) error {
	var existing []byte
	if f, err := fs.Open(changelogName); err == nil {
		existing, err = io.ReadAll(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	content := entry
	if len(existing) > 0 {
		content = entry + "\n" + string(existing)
	}
	return util.WriteFile(fs, changelogName, []byte(content), 0o644)
}
