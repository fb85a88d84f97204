package commands

import (
	"log/slog"

	"github.com/campuseats/sitebuilder/internal/config"
	"github.com/campuseats/sitebuilder/internal/logfields"
	"github.com/campuseats/sitebuilder/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Restaurants string `short:"r" help:"Path to the restaurants JSONC data file" placeholder:"PATH"`
	Homepage    string `help:"Path to the homepage JSONC data file" placeholder:"PATH"`
	Template    string `short:"t" help:"Path to the HTML template" placeholder:"PATH"`
	Output      string `short:"o" help:"Output directory for the generated site" placeholder:"DIR"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	opts := resolveOptions(cfg, b.Restaurants, b.Homepage, b.Template, b.Output)

	slog.Info("starting site build",
		logfields.Path(opts.RestaurantsPath),
		logfields.Output(opts.OutputDir))
	return pipeline.Build(opts)
}
