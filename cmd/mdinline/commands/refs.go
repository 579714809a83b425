package commands

import (
	"git.home.luguber.info/inful/mdinline/internal/config"
	"git.home.luguber.info/inful/mdinline/internal/document"
	"git.home.luguber.info/inful/mdinline/internal/inline"
)

// RefsCmd implements the 'refs' command. It does not fetch anything.
type RefsCmd struct {
	File   string `arg:"" type:"existingfile" help:"Markdown file to inspect"`
	Format string `short:"f" name:"format" help:"Output format (text, json, yaml)"`
}

func (r *RefsCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	return r.refs(g, cfg)
}

func (r *RefsCmd) refs(g *Global, cfg *config.Config) error {
	format, err := outputFormat(r.Format, cfg)
	if err != nil {
		return err
	}
	p, err := newPrinter(g.out(), format, colorNever)
	if err != nil {
		return err
	}
	doc, err := document.Load(r.File)
	if err != nil {
		return err
	}
	return p.refs(inline.ImageReferences(doc.Nodes()))
}
