package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// createTestRepo creates a temporary git repository for reader tests.
func createTestRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()

	tmpDir := t.TempDir()
	repo, err := gogit.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}

	return tmpDir, repo
}

// addCommit writes a file and commits it with the given timestamp.
func addCommit(t *testing.T, repo *gogit.Repository, message, filename string, when time.Time) plumbing.Hash {
	t.Helper()

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	path := filepath.Join(w.Filesystem.Root(), filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	content := "Content for " + filename + " at " + when.String() + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := w.Add(filename); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}

	sig := &object.Signature{Name: "Alice", Email: "alice@example.com", When: when}
	hash, err := w.Commit(message, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
	return hash
}

func newReader(t *testing.T, opts ReadOptions) *HistoryReader {
	t.Helper()
	reader, err := NewHistoryReader(opts)
	if err != nil {
		t.Fatalf("Failed to create reader: %v", err)
	}
	return reader
}

func TestNewHistoryReader_InvalidRepo(t *testing.T) {
	if _, err := NewHistoryReader(ReadOptions{RepoPath: t.TempDir()}); err == nil {
		t.Fatal("expected error for a directory that is not a repository, got nil")
	}
}

func TestHistoryReader_Commits_NewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repoPath, repo := createTestRepo(t)
	addCommit(t, repo, "first change", "a.txt", base)
	addCommit(t, repo, "second change", "b.txt", base.Add(time.Hour))
	addCommit(t, repo, "third change\n\nwith a body", "c.txt", base.Add(2*time.Hour))

	commits, err := newReader(t, ReadOptions{RepoPath: repoPath}).Commits(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(commits) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(commits))
	}
	if commits[0].Subject() != "third change" {
		t.Errorf("newest commit = %q, expected the most recent", commits[0].Subject())
	}
	if commits[2].Subject() != "first change" {
		t.Errorf("oldest commit = %q, expected the first", commits[2].Subject())
	}
	if commits[0].Author.Name != "Alice" || commits[0].Author.Email != "alice@example.com" {
		t.Errorf("author = %+v, expected Alice", commits[0].Author)
	}
	if commits[0].Message != "third change\n\nwith a body" {
		t.Errorf("full message not preserved: %q", commits[0].Message)
	}
}

func TestHistoryReader_Tags(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repoPath, repo := createTestRepo(t)
	h1 := addCommit(t, repo, "first", "a.txt", base)
	h2 := addCommit(t, repo, "second", "b.txt", base.Add(time.Hour))

	if _, err := repo.CreateTag("v1.0", h1, nil); err != nil {
		t.Fatalf("Failed to create lightweight tag: %v", err)
	}
	tagger := &object.Signature{Name: "Alice", Email: "alice@example.com", When: base.Add(2 * time.Hour)}
	if _, err := repo.CreateTag("v2.0", h2, &gogit.CreateTagOptions{Tagger: tagger, Message: "release 2.0"}); err != nil {
		t.Fatalf("Failed to create annotated tag: %v", err)
	}

	tags, err := newReader(t, ReadOptions{RepoPath: repoPath}).Tags(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}

	byName := make(map[string]TagInfo, len(tags))
	for _, tag := range tags {
		byName[tag.Name] = tag
	}

	light, ok := byName["v1.0"]
	if !ok {
		t.Fatal("lightweight tag v1.0 not found")
	}
	if light.CommitID != h1.String() {
		t.Errorf("v1.0 commit = %s, expected %s", light.CommitID, h1)
	}
	if !light.When.Equal(base) {
		t.Errorf("v1.0 time = %v, expected the commit time %v", light.When, base)
	}

	annotated, ok := byName["v2.0"]
	if !ok {
		t.Fatal("annotated tag v2.0 not found")
	}
	if annotated.CommitID != h2.String() {
		t.Errorf("v2.0 commit = %s, expected %s", annotated.CommitID, h2)
	}
}

func TestHistoryReader_Commits_PathFilters(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repoPath, repo := createTestRepo(t)
	addCommit(t, repo, "add main", "src/main.go", base)
	addCommit(t, repo, "update docs", "docs/readme.md", base.Add(time.Hour))
	addCommit(t, repo, "add util", "src/util.go", base.Add(2*time.Hour))

	t.Run("exclude drops matching commits", func(t *testing.T) {
		commits, err := newReader(t, ReadOptions{
			RepoPath:     repoPath,
			ExcludePaths: []string{"docs/**"},
		}).Commits(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(commits) != 2 {
			t.Fatalf("expected 2 commits, got %d", len(commits))
		}
		for _, c := range commits {
			if c.Subject() == "update docs" {
				t.Error("excluded commit still present")
			}
		}
	})

	t.Run("include keeps only matching commits", func(t *testing.T) {
		commits, err := newReader(t, ReadOptions{
			RepoPath:     repoPath,
			IncludePaths: []string{"docs/**"},
		}).Commits(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(commits) != 1 {
			t.Fatalf("expected 1 commit, got %d", len(commits))
		}
		if commits[0].Subject() != "update docs" {
			t.Errorf("kept commit = %q, expected the docs change", commits[0].Subject())
		}
	})

	t.Run("exclude wins over include", func(t *testing.T) {
		commits, err := newReader(t, ReadOptions{
			RepoPath:     repoPath,
			IncludePaths: []string{"**"},
			ExcludePaths: []string{"docs/**"},
		}).Commits(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(commits) != 2 {
			t.Fatalf("expected 2 commits, got %d", len(commits))
		}
	})
}
