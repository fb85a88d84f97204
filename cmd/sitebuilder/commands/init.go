package commands

import (
	"fmt"

	"github.com/campuseats/sitebuilder/internal/config"
)

// InitCmd implements the 'init' command: scaffold a configuration file plus
// starter data files and a starter template for the configured paths.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Scaffold(root.Config, i.Force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", root.Config)

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	written, err := config.ScaffoldExamples(cfg)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}
