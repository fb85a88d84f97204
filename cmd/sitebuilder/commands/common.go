package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/campuseats/sitebuilder/internal/config"
	"github.com/campuseats/sitebuilder/internal/pipeline"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitebuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Compile the data files into the output directory"`
	Validate ValidateCmd `cmd:"" help:"Load and validate the data files without writing anything"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(c.Verbose),
	}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel maps the verbose flag and SITEBUILDER_LOG_LEVEL to a slog
// level. The env var wins so CI can force debug output without flag changes.
func parseLogLevel(verbose bool) slog.Level {
	switch strings.ToLower(os.Getenv("SITEBUILDER_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// resolveOptions merges CLI flag overrides onto the loaded configuration.
// Priority: flag > config file > built-in default (applied by config.Load).
func resolveOptions(cfg *config.Config, restaurants, homepage, template, output string) pipeline.Options {
	opts := pipeline.Options{
		RestaurantsPath: cfg.Paths.Restaurants,
		HomepagePath:    cfg.Paths.Homepage,
		TemplatePath:    cfg.Paths.Template,
		OutputDir:       cfg.Output.Directory,
		SiteTitle:       cfg.Site.Title,
	}
	if restaurants != "" {
		opts.RestaurantsPath = restaurants
	}
	if homepage != "" {
		opts.HomepagePath = homepage
	}
	if template != "" {
		opts.TemplatePath = template
	}
	if output != "" {
		opts.OutputDir = output
	}
	return opts
}
