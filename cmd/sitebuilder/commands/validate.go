package commands

import (
	"fmt"

	"github.com/campuseats/sitebuilder/internal/config"
	"github.com/campuseats/sitebuilder/internal/pipeline"
)

// ValidateCmd implements the 'validate' command: load and normalize the data
// files, write nothing.
type ValidateCmd struct {
	Restaurants string `short:"r" help:"Path to the restaurants JSONC data file" placeholder:"PATH"`
	Homepage    string `help:"Path to the homepage JSONC data file" placeholder:"PATH"`
}

func (v *ValidateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	opts := resolveOptions(cfg, v.Restaurants, v.Homepage, "", "")

	if err := pipeline.Validate(opts); err != nil {
		return err
	}
	fmt.Println("Data files are valid.")
	return nil
}
