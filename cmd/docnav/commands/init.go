package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration and sidebar files"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	w := g.out()
	fmt.Fprintf(w, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		fmt.Fprintln(w, "Initialization failed")
		return err
	}
	fmt.Fprintln(w, "initialized successfully")
	return nil
}
