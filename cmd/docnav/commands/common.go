package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	// Stdout receives command output; os.Stdout when nil.
	Stdout io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Site configuration file path" default:"docnav.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Validate ValidateCmd `cmd:"" help:"Validate the sidebar tree and its document references"`
	Render   RenderCmd   `cmd:"" help:"Render the validated sidebar tree (json, yaml, text, hugo)"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration and sidebar"`
	Watch    WatchCmd    `cmd:"" help:"Re-validate whenever the configuration, sidebar or docs change"`
	Docs     DocsCmd     `cmd:"" help:"List discovered documents and their IDs"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// SiteFlags selects the sidebar and docs directory, overriding the configuration.
type SiteFlags struct {
	Sidebar         string `short:"s" help:"Sidebar file (defaults to docs.sidebar_path)" type:"path"`
	Docs            string `short:"d" help:"Docs directory (defaults to docs.path)" type:"path"`
	AllowDuplicates bool   `help:"Report documents listed more than once as warnings instead of errors"`
}
