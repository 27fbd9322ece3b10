package commands

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/render"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	SiteFlags `embed:""`
	Format    string `short:"f" help:"Output format: json, yaml, text or hugo" default:"json" enum:"json,yaml,yml,text,hugo"`
	Output    string `short:"o" help:"Write to this file instead of stdout" type:"path"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) (err error) {
	format, err := render.ParseFormat(r.Format)
	if err != nil {
		return err
	}
	s, err := loadSite(root, r.SiteFlags)
	if err != nil {
		return err
	}
	if s.report.HasErrors() {
		return s.report.Err()
	}

	var w io.Writer = g.out()
	if r.Output != "" && r.Output != "-" {
		if err := os.MkdirAll(filepath.Dir(r.Output), 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
				WithContext("path", r.Output).
				Build()
		}
		f, createErr := os.Create(r.Output)
		if createErr != nil {
			return errors.WrapError(createErr, errors.CategoryFileSystem, "failed to create output file").
				WithContext("path", r.Output).
				Build()
		}
		defer closeOutput(f, r.Output, &err)
		w = f
	}

	return render.Write(w, format, s.tree, render.Options{
		Labels:    s.labels(),
		DocURL:    s.cfg.DocURL,
		Copyright: s.cfg.Footer.RenderCopyright(time.Now()),
	})
}

// closeOutput closes a written output file and reports a failed close
// through errp unless an earlier error is already set.
func closeOutput(c io.Closer, path string, errp *error) {
	if cerr := c.Close(); cerr != nil && *errp == nil {
		*errp = errors.WrapError(cerr, errors.CategoryFileSystem, "failed to close output file").
			WithContext("path", path).
			Build()
	}
}
