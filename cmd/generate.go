package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/masmgr/changelog-go/config"
	gitpkg "github.com/masmgr/changelog-go/internal/git"
	"github.com/masmgr/changelog-go/internal/output"
	"github.com/masmgr/changelog-go/internal/release"
	"github.com/masmgr/changelog-go/internal/render"
	"github.com/urfave/cli/v2"
)

// GenerateCmd creates the generate command.
func GenerateCmd() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate a release-grouped change log document",
		ArgsUsage: "[repository path]",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to configuration file",
			},
		),
		Action: generateAction,
	}
}

func generateAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// All regex problems surface here, before any history is read.
	settings, err := cfg.Compile()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	repoPath := c.String("repo")
	if repoPath == "" {
		repoPath = "."
	}
	if c.NArg() > 0 {
		repoPath = c.Args().Get(0)
	}

	return runGenerate(repoPath, c.String("branch"), settings)
}

func runGenerate(repoPath, branch string, settings *config.Settings) error {
	start := time.Now()
	color.Green("Generating change log for %v", repoPath)

	reader, err := gitpkg.NewHistoryReader(gitpkg.ReadOptions{
		RepoPath:     repoPath,
		Branch:       branch,
		IncludePaths: settings.IncludePaths,
		ExcludePaths: settings.ExcludePaths,
	})
	if err != nil {
		return fmt.Errorf("invalid Git repository - please run from or specify the full path to the root of the project: %w", err)
	}

	document, col, err := generateDocument(context.Background(), reader, settings)
	if err != nil {
		return err
	}

	writer := output.NewDocumentWriter(settings.FileName)
	if err := writer.Write(document); err != nil {
		return err
	}

	if settings.FileName != output.StdoutPath {
		color.Green("Wrote %v releases to %v", len(col.Releases), settings.FileName)
	}
	fmt.Fprintf(os.Stderr, "\nCompleted in %s\n", time.Since(start))
	return nil
}

// generateDocument runs collection and rendering against a history source.
func generateDocument(ctx context.Context, source gitpkg.HistorySource, settings *config.Settings) (string, *release.Collection, error) {
	tags, err := source.Tags(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read tags: %w", err)
	}
	commits, err := source.Commits(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read history: %w", err)
	}

	collector := &release.Collector{
		TagPattern:     settings.TagPattern,
		MaxAge:         settings.MaxAge,
		ExcludeMessage: settings.ExcludeMessage,
		IncludeMessage: settings.IncludeMessage,
	}
	col, err := collector.Collect(tags, commits)
	if err != nil {
		return "", nil, err
	}

	if settings.Debug {
		traceCollection(tags, commits, col)
	}

	renderer := render.New(render.Config{
		WrapColumn:     settings.WrapColumn,
		TagPattern:     settings.TagPattern,
		CurrentVersion: settings.CurrentVersion,
	})
	return renderer.Render(col), col, nil
}

// traceCollection prints collection diagnostics to stderr.
func traceCollection(tags []gitpkg.TagInfo, commits []gitpkg.CommitInfo, col *release.Collection) {
	faint := color.New(color.Faint)
	faint.Fprintf(os.Stderr, "tags seen: %d, commits seen: %d\n", len(tags), len(commits))
	faint.Fprintf(os.Stderr, "earliest date: %s\n", col.EarliestDate.Format("2006-01-02"))
	faint.Fprintf(os.Stderr, "releases skipped by age: %d\n", col.SkippedReleases)
	for _, rel := range col.Releases {
		faint.Fprintf(os.Stderr, "release %s (%s): %d changes\n",
			rel.Tag, rel.Date.Format("2006-01-02"), len(rel.Changes))
	}
}
