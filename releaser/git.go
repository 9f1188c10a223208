package releaser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/sirupsen/logrus"
)

const (
	botName  = "github-actions[bot]"
	botEmail = "github-actions[bot]@users.noreply.github.com"
)

// GitReleaser implements Releaser on a local git repository.
type GitReleaser struct {
	// Path is the repository to open when Repo is nil.
	Path string

	// Token authenticates the push.
	Token string

	// Repo overrides Path, for callers that already hold a repository.
	Repo *git.Repository

	// Now defaults to time.Now.
	Now func() time.Time
}

func (r *GitReleaser) Run(ctx context.Context, cfg map[string]interface{}) (*Result, error) {
	repo := r.Repo
	if repo == nil {
		var err error
		repo, err = git.PlainOpen(r.Path)
		if err != nil {
			return nil, fmt.Errorf("opening repository at %q: %w", r.Path, err)
		}
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	prev, prevHash, err := latestVersion(repo)
	if err != nil {
		return nil, err
	}

	changes, err := changesSince(repo, head.Hash(), prevHash)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, fmt.Errorf("no commits to release since %s", prev.Original())
	}

	next := nextVersion(prev, classify(changes))
	tagName := expand(optString(cfg, "git", "tagName", "v${version}"), next.String())
	entry := renderChangelog(tagName, changes, now())

	result := &Result{Version: next.String(), Changelog: entry}
	if prev != nil {
		result.LatestVersion = prev.String()
	}
	logrus.WithFields(logrus.Fields{
		"version": result.Version,
		"commits": len(changes),
	}).Info("computed release")

	if optBool(cfg, "", "dry-run", false) {
		logrus.Info("dry run, skipping commit, tag and push")
		return result, nil
	}

	signature := &object.Signature{
		Name:  optString(cfg, "git", "userName", botName),
		Email: optString(cfg, "git", "userEmail", botEmail),
		When:  now(),
	}

	target := head.Hash()
	if optBool(cfg, "git", "commit", true) {
		target, err = r.commitChangelog(repo, cfg, entry, next.String(), signature)
		if err != nil {
			return nil, err
		}
	}
	if optBool(cfg, "git", "tag", true) {
		_, err := repo.CreateTag(tagName, target, &git.CreateTagOptions{
			Tagger:  signature,
			Message: tagName,
		})
		if err != nil {
			return nil, fmt.Errorf("creating tag %s: %w", tagName, err)
		}
		logrus.WithField("tag", tagName).Info("created tag")
	}
	if optBool(cfg, "git", "push", true) {
		if err := r.push(ctx, repo, head.Name(), tagName); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *GitReleaser) commitChangelog(repo *git.Repository, cfg map[string]interface{}, entry, version string, signature *object.Signature) (plumbing.Hash, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("opening worktree: %w", err)
	}
	if err := prependChangelog(wt.Filesystem, entry); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("updating %s: %w", changelogName, err)
	}
	if _, err := wt.Add(changelogName); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("staging %s: %w", changelogName, err)
	}
	message := expand(optString(cfg, "git", "commitMessage", "chore: release v${version}"), version)
	hash, err := wt.Commit(message, &git.CommitOptions{Author: signature})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("committing changelog: %w", err)
	}
	logrus.WithField("commit", hash.String()).Info("committed changelog")
	return hash, nil
}

func (r *GitReleaser) push(ctx context.Context, repo *git.Repository, branch plumbing.ReferenceName, tagName string) error {
	var auth *githttp.BasicAuth
	if r.Token != "" {
		auth = &githttp.BasicAuth{Username: "x-access-token", Password: r.Token}
	}
	refSpecs := []gitconfig.RefSpec{
		gitconfig.RefSpec(fmt.Sprintf("%s:%s", branch, branch)),
		gitconfig.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tagName, tagName)),
	}
	err := repo.PushContext(ctx, &git.PushOptions{RefSpecs: refSpecs, Auth: auth})
	if err == git.NoErrAlreadyUpToDate {
		logrus.Debug("remote already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("pushing %s: %w", tagName, err)
	}
	logrus.WithField("tag", tagName).Info("pushed")
	return nil
}

// latestVersion finds the highest semantic-version tag and the commit it
// points at. A nil version means no release exists yet.
func latestVersion(repo *git.Repository) (*semver.Version, plumbing.Hash, error) {
	tags, err := repo.Tags()
	if err != nil {
		return nil, plumbing.ZeroHash, fmt.Errorf("listing tags: %w", err)
	}

	var best *semver.Version
	var bestRef *plumbing.Reference
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		name := strings.TrimPrefix(ref.Name().Short(), "v")
		version, err := semver.NewVersion(name)
		if err != nil {
			// not a release tag
			return nil
		}
		if best == nil || version.GreaterThan(best) {
			best = version
			bestRef = ref
		}
		return nil
	})
	if err != nil {
		return nil, plumbing.ZeroHash, err
	}
	if best == nil {
		return nil, plumbing.ZeroHash, nil
	}

	hash := bestRef.Hash()
	if tagObj, err := repo.TagObject(hash); err == nil {
		hash = tagObj.Target
	} else if err != plumbing.ErrObjectNotFound {
		return nil, plumbing.ZeroHash, fmt.Errorf("resolving tag %s: %w", bestRef.Name().Short(), err)
	}
	return best, hash, nil
}

// changesSince walks HEAD's history up to (excluding) the previous release
// commit, newest first.
func changesSince(repo *git.Repository, head, prev plumbing.Hash) ([]Change, error) {
	iter, err := repo.Log(&git.LogOptions{From: head})
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	var changes []Change
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == prev {
			return storer.ErrStop
		}
		changes = append(changes, parseChange(c.Message, c.Hash.String()[:7]))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changes, nil
}

func nextVersion(prev *semver.Version, bump Bump) *semver.Version {
	base := prev
	if base == nil {
		base = semver.New(0, 0, 0, "", "")
	}
	var next semver.Version
	switch bump {
	case BumpMajor:
		next = base.IncMajor()
	case BumpMinor:
		next = base.IncMinor()
	default:
		next = base.IncPatch()
	}
	return &next
}

func expand(template, version string) string {
	return strings.ReplaceAll(template, "${version}", version)
}
