package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/term"

	"github.com/broady/passwords"
	"github.com/broady/passwords/middleware"
	"github.com/broady/passwords/sessionstore"
)

// errNotLoggedIn is returned by commands that need a remembered session.
var errNotLoggedIn = errors.New("not logged in; run passwords login")

// readPassword reads a secret from a terminal without echo.
var readPassword = term.ReadPassword

type app struct {
	ctx    context.Context
	cfg    Config
	logger *slog.Logger

	client   *passwords.Client
	store    sessionstore.Store
	registry *prometheus.Registry

	stdin  *bufio.Reader
	in     io.Reader
	stdout io.Writer
	stderr io.Writer

	closers []func()
}

func newApp(ctx context.Context, cfg Config, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	logger := slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      cfg.level(),
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(stderr),
	}))
	a := &app{
		ctx:      ctx,
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		stdin:    bufio.NewReader(stdin),
		in:       stdin,
		stdout:   stdout,
		stderr:   stderr,
	}

	tp, shutdown, err := newTracerProvider(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, shutdown)

	metrics := middleware.NewMetrics(a.registry)
	client, err := passwords.New(cfg.Server,
		passwords.WithLogger(logger),
		passwords.WithUserAgent("passwords-cli"),
		passwords.WithMiddleware(
			middleware.Tracing(otelhttp.WithTracerProvider(tp)),
			metrics.Middleware(),
			middleware.Logging(logger),
		),
	)
	if err != nil {
		return nil, err
	}
	a.client = client

	if err := a.openStore(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) openStore() error {
	if r := a.cfg.Redis; r.Addr != "" {
		var opts []sessionstore.RedisOption
		if r.Prefix != "" {
			opts = append(opts, sessionstore.WithPrefix(r.Prefix))
		}
		store, err := sessionstore.DialRedis(r.Addr, r.Username, r.Password, opts...)
		if err != nil {
			return err
		}
		a.store = store
		a.closers = append(a.closers, store.Close)
		return nil
	}

	dir := a.cfg.SessionDir
	if dir == "" {
		var err error
		if dir, err = sessionstore.DefaultDir(); err != nil {
			return fmt.Errorf("session directory: %w", err)
		}
	}
	a.store = sessionstore.NewFileStore(dir)
	return nil
}

func (a *app) close() {
	if a.cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.registry); err != nil {
			a.logger.Warn("writing metrics failed", slog.Any("error", err))
		}
	}
	for _, c := range a.closers {
		c()
	}
}

// context returns a context bounded by the configured timeout.
func (a *app) context() (context.Context, context.CancelFunc) {
	if a.cfg.Timeout <= 0 {
		return context.WithCancel(a.ctx)
	}
	return context.WithTimeout(a.ctx, a.cfg.Timeout)
}

func (a *app) key() string {
	return sessionstore.Key(a.client.ServerURL(), a.cfg.Username)
}

// connect resumes the remembered session and stores the refreshed state.
func (a *app) connect(ctx context.Context) error {
	state, err := a.store.Load(ctx, a.key())
	if errors.Is(err, sessionstore.ErrNotFound) {
		return errNotLoggedIn
	}
	if err != nil {
		return err
	}
	if err := a.client.Resume(ctx, state); err != nil {
		kind := passwords.KindOf(err)
		if kind != passwords.KindUnauthenticated && kind != passwords.KindEndpoint {
			return err
		}
		// The server dropped the session before its lifetime ran out.
		a.logger.Debug("remembered session rejected, logging in again", slog.Any("error", err))
		if err := a.client.Login(ctx, state.Username, state.Password); err != nil {
			if passwords.KindOf(err) == passwords.KindConnectionFailed {
				_ = a.store.Delete(ctx, a.key())
				return fmt.Errorf("%w: %w", errNotLoggedIn, err)
			}
			return err
		}
	}
	return a.remember(ctx)
}

// remember stores the client's current session.
func (a *app) remember(ctx context.Context) error {
	state, ok := a.client.Session()
	if !ok {
		return errNotLoggedIn
	}
	return a.store.Save(ctx, a.key(), state)
}

// secret reads a secret with prompt. Terminals are read without echo;
// anything else is read line by line.
func (a *app) secret(prompt string) (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.stderr, prompt)
		b, err := readPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr)
		return string(b), err
	}
	line, err := a.stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
