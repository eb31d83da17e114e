package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"

	"github.com/broady/passwords/cmd/passwordsgen/internal/check"
	"github.com/broady/passwords/cmd/passwordsgen/internal/gen"
)

type CLI struct {
	Verbose bool `help:"Log every written file." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate Go bindings for entity schemas."`
	Check   check.Cmd  `cmd:"" help:"Validate entity schemas without writing files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("passwordsgen"),
		kong.Description("Code generator for the Passwords API client."),
		kong.UsageOnError(),
	)

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: "15:04:05"}))

	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
