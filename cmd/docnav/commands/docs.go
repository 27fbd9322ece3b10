package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"git.home.luguber.info/inful/docnav/internal/docs"
)

// DocsCmd implements the 'docs' command.
type DocsCmd struct {
	Docs   string `short:"d" help:"Docs directory (defaults to docs.path)" type:"path"`
	Format string `help:"Output format: table, markdown or csv" default:"table" enum:"table,markdown,csv"`
}

func (d *DocsCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, d.Docs != "")
	if err != nil {
		return err
	}
	dir := d.Docs
	if dir == "" {
		dir = cfg.Docs.Path
	}
	idx, err := docs.Scan(dir)
	if err != nil {
		return err
	}

	// The edit column only appears when the site configures an edit URL.
	withEdit := cfg.Docs.EditURL != ""
	header := table.Row{"ID", "Label", "Source"}
	footer := table.Row{"", "Total", idx.Len()}
	if withEdit {
		header = append(header, "Edit")
		footer = append(footer, "")
	}

	t := table.NewWriter()
	t.SetOutputMirror(g.out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	for _, doc := range idx.Documents() {
		row := table.Row{doc.ID, doc.Label(), doc.RelativePath}
		if withEdit {
			row = append(row, cfg.Docs.EditURLFor(doc.RelativePath))
		}
		t.AppendRow(row)
	}
	t.AppendFooter(footer)

	switch d.Format {
	case "markdown":
		t.RenderMarkdown()
	case "csv":
		t.RenderCSV()
	default:
		t.Render()
	}
	return nil
}
