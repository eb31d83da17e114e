package gen

import (
	"fmt"
	"log/slog"

	"github.com/broady/passwords/passwordsgen"
)

type Cmd struct {
	Packages []string `arg:"" optional:"" help:"Packages holding //passwords:entity declarations." default:"."`
	Schema   string   `help:"Read entities from a YAML schema instead of Go packages." short:"s" type:"existingfile"`
	Package  string   `help:"Package name of the generated files (default: the schema's package)." short:"p"`
	Out      string   `help:"Output directory for generated files." short:"o" default:"." type:"path"`
}

// Generator builds the generator the flags describe.
func (c *Cmd) Generator(logger *slog.Logger) *passwordsgen.Generator {
	var g *passwordsgen.Generator
	if c.Schema != "" {
		g = passwordsgen.FromFile(c.Schema)
	} else {
		g = passwordsgen.FromPackages(c.Packages...)
	}
	return g.PackageName(c.Package).Logger(logger)
}

func (c *Cmd) Run(logger *slog.Logger) error {
	res, err := c.Generator(logger).ToDir(c.Out)
	if err != nil {
		return err
	}
	fmt.Printf("✓ %d entities, %d files written to %s\n", len(res.Entities), len(res.Files), c.Out)
	return nil
}
