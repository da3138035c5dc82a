package cmd

import (
	"fmt"
	"os"

	"github.com/masmgr/changelog-go/config"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "changelog",
		Usage:   "Change log generator for Git repositories",
		Version: "1.0.0",
		Commands: []*cli.Command{
			GenerateCmd(),
		},
		// The root command carries the generate flags so that
		// `changelog <repo>` works without naming the subcommand.
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		),
		Action: defaultAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Branch to generate the change log from",
		},
		&cli.IntFlag{
			Name:  "max-age",
			Usage: "Age cutoff for included releases, in days",
		},
		&cli.StringFlag{
			Name:  "tag-pattern",
			Usage: "Release tag regexp with one capture group for the version label",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output document name ('-' for stdout)",
		},
		&cli.IntFlag{
			Name:  "wrap",
			Usage: "Reflow width for rendered text",
		},
		&cli.StringFlag{
			Name:  "exclude-message",
			Usage: "Drop commits whose message matches this regexp",
		},
		&cli.StringFlag{
			Name:  "include-message",
			Usage: "Keep only commits whose message matches this regexp",
		},
		&cli.StringSliceFlag{
			Name:  "include-path",
			Usage: "Glob patterns of paths a commit must touch (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude-path",
			Usage: "Glob patterns of paths to ignore (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:  "current-version",
			Usage: "Version label for changes newer than the latest release tag",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Show collection diagnostics",
		},
	}
}

// loadConfig loads configuration from file or defaults, then applies CLI
// flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("max-age") {
		cfg.MaxAge = c.Int("max-age")
	}
	if c.IsSet("tag-pattern") {
		cfg.TagRegexp = c.String("tag-pattern")
	}
	if c.IsSet("output") {
		cfg.FileName = c.String("output")
	}
	if c.IsSet("wrap") {
		cfg.WrapColumn = c.Int("wrap")
	}
	if c.IsSet("exclude-message") {
		cfg.ExcludeMessage = c.String("exclude-message")
	}
	if c.IsSet("include-message") {
		cfg.IncludeMessage = c.String("include-message")
	}
	if c.IsSet("current-version") {
		cfg.CurrentVersion = c.String("current-version")
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if includes := c.StringSlice("include-path"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude-path"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	return cfg, nil
}

// defaultAction handles the default command behavior. A repository path
// given as the first argument runs generate against it.
func defaultAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}
	return GenerateCmd().Action(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
