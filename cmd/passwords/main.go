// Command passwords manages the passwords stored in a Nextcloud Passwords
// account from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config   string `help:"Config file." type:"path" env:"PASSWORDS_CONFIG"`
	Server   string `help:"Nextcloud server URL." env:"PASSWORDS_SERVER"`
	User     string `help:"Nextcloud user name." short:"u" env:"PASSWORDS_USER"`
	Sessions string `help:"Directory sessions are stored in." type:"path" name:"session-dir"`
	Redis    string `help:"Store sessions in Redis at host:port instead of on disk." name:"redis-addr"`
	Metrics  string `help:"Write request metrics to this file on exit." type:"path" name:"metrics-file"`
	OTLP     string `help:"Export request traces to this OTLP/gRPC collector (host:port)." name:"otlp-endpoint"`
	Verbose  bool   `help:"Log requests and session transitions." short:"v"`

	Login     LoginCmd     `cmd:"" help:"Open a session and remember it."`
	Logout    LogoutCmd    `cmd:"" help:"Close the remembered session."`
	Status    StatusCmd    `cmd:"" help:"Show the remembered session."`
	Folders   FoldersCmd   `cmd:"" help:"Work with folders."`
	Passwords PasswordsCmd `cmd:"" help:"Work with passwords."`
	Generate  GenerateCmd  `cmd:"" help:"Generate a password on the server."`
}

// config merges the config file with flags.
func (c *CLI) config() (Config, error) {
	path := c.Config
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg, err := LoadConfig(path, c.Config != "")
	if err != nil {
		return cfg, err
	}
	if c.Server != "" {
		cfg.Server = c.Server
	}
	if c.User != "" {
		cfg.Username = c.User
	}
	if c.Sessions != "" {
		cfg.SessionDir = c.Sessions
	}
	if c.Redis != "" {
		cfg.Redis.Addr = c.Redis
	}
	if c.Metrics != "" {
		cfg.MetricsFile = c.Metrics
	}
	if c.OTLP != "" {
		cfg.OTLPEndpoint = c.OTLP
	}
	if c.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("passwords"),
		kong.Description("Command line client for Nextcloud Passwords."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := cli.config()
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg, stdin, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()
	return kctx.Run(a)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "passwords:", err)
		os.Exit(1)
	}
}
