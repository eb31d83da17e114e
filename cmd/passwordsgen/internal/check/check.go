package check

import (
	"fmt"
	"log/slog"

	"github.com/broady/passwords/passwordsgen"
)

type Cmd struct {
	Packages []string `arg:"" optional:"" help:"Packages holding //passwords:entity declarations." default:"."`
	Schema   string   `help:"Read entities from a YAML schema instead of Go packages." short:"s" type:"existingfile"`
}

func (c *Cmd) Run(logger *slog.Logger) error {
	var g *passwordsgen.Generator
	if c.Schema != "" {
		g = passwordsgen.FromFile(c.Schema)
	} else {
		g = passwordsgen.FromPackages(c.Packages...)
	}

	res, err := g.Logger(logger).Generate()
	if err != nil {
		return err
	}
	for _, name := range res.Entities {
		fmt.Printf("✓ %s\n", name)
	}
	fmt.Printf("✓ %d entities render cleanly\n", len(res.Entities))
	return nil
}
