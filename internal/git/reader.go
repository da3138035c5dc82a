package git

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// HistoryReader reads tag and commit history from a Git repository.
type HistoryReader struct {
	repo *git.Repository
	opts ReadOptions
}

// NewHistoryReader creates a new history reader for the given repository.
func NewHistoryReader(opts ReadOptions) (*HistoryReader, error) {
	repo, err := git.PlainOpen(opts.RepoPath)
	if err != nil {
		return nil, err
	}
	return &HistoryReader{repo: repo, opts: opts}, nil
}

// Tags enumerates repository tags, resolving annotated tags to the commit
// they point at. Tags that do not resolve to a commit (e.g. tagged trees)
// are skipped.
func (r *HistoryReader) Tags(ctx context.Context) ([]TagInfo, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, err
	}

	var tags []TagInfo

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		commit, err := r.resolveTagCommit(ref.Hash())
		if err != nil {
			return nil
		}

		tags = append(tags, TagInfo{
			Name:     ref.Name().Short(),
			CommitID: commit.Hash.String(),
			When:     commit.Committer.When,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tags, nil
}

// resolveTagCommit follows an annotated tag object to its commit, or treats
// the hash as a commit directly for lightweight tags.
func (r *HistoryReader) resolveTagCommit(hash plumbing.Hash) (*object.Commit, error) {
	if tagObj, err := r.repo.TagObject(hash); err == nil {
		return tagObj.Commit()
	}
	return r.repo.CommitObject(hash)
}

// Commits reads the commit history, most recent first. When path filters are
// configured, commits touching no surviving path are dropped.
func (r *HistoryReader) Commits(ctx context.Context) ([]CommitInfo, error) {
	from, err := r.startHash()
	if err != nil {
		return nil, err
	}

	cIter, err := r.repo.Log(&git.LogOptions{
		From:  from,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, err
	}

	filtered := len(r.opts.IncludePaths) > 0 || len(r.opts.ExcludePaths) > 0

	var results []CommitInfo

	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if filtered {
			ok, err := r.touchesIncludedPath(c)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		results = append(results, CommitInfo{
			ID:      c.Hash.String(),
			When:    c.Committer.When,
			Author:  AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
			Message: c.Message,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// startHash resolves the configured branch, falling back to HEAD.
func (r *HistoryReader) startHash() (plumbing.Hash, error) {
	if r.opts.Branch != "" {
		hash, err := r.repo.ResolveRevision(plumbing.Revision(r.opts.Branch))
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return *hash, nil
	}

	ref, err := r.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return ref.Hash(), nil
}

// touchesIncludedPath reports whether any path changed by the commit survives
// the include/exclude filters.
func (r *HistoryReader) touchesIncludedPath(c *object.Commit) (bool, error) {
	paths, err := r.changedPaths(c)
	if err != nil {
		return false, err
	}
	for _, p := range paths {
		if r.matchesFilters(p) {
			return true, nil
		}
	}
	return false, nil
}

// changedPaths lists the paths a commit changes relative to its first parent.
// The initial commit contributes its full tree.
func (r *HistoryReader) changedPaths(c *object.Commit) ([]string, error) {
	if c.NumParents() == 0 {
		var paths []string
		fIter, err := c.Files()
		if err != nil {
			return nil, err
		}
		err = fIter.ForEach(func(f *object.File) error {
			paths = append(paths, f.Name)
			return nil
		})
		return paths, err
	}

	parent, err := c.Parent(0)
	if err != nil {
		return nil, err
	}
	patch, err := parent.Patch(c)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, filePatch := range patch.FilePatches() {
		from, to := filePatch.Files()
		if to != nil {
			paths = append(paths, to.Path())
		} else if from != nil {
			paths = append(paths, from.Path())
		}
	}
	return paths, nil
}

// matchesFilters checks if a path matches the include/exclude filters.
func (r *HistoryReader) matchesFilters(path string) bool {
	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range r.opts.ExcludePaths {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return false
		}
	}

	// If no include patterns, accept all
	if len(r.opts.IncludePaths) == 0 {
		return true
	}

	// Check include patterns
	for _, pattern := range r.opts.IncludePaths {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return true
		}
	}

	return false
}
