package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"

	"github.com/smileynet/addressbook/internal/assistant"
	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/logging"
	"github.com/smileynet/addressbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	Config string `help:"Project config file." default:".addressbook/config.yaml" type:"path"`
}

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Repl    ReplCmd          `cmd:"" default:"withargs" help:"Start an interactive session (default)."`
	Exec    ExecCmd          `cmd:"" help:"Run commands from a file, one per line."`
}

// ReplCmd runs the interactive assistant.
type ReplCmd struct {
	Plain  bool    `help:"Force the line prompt even on a terminal." default:"false"`
	Prompt *string `help:"Text shown before each command."`
	Today  string  `help:"Treat this date as today (DD.MM.YYYY)." placeholder:"DD.MM.YYYY"`
}

// ExecCmd runs a script of commands without a prompt.
type ExecCmd struct {
	File  string `arg:"" help:"Command file." type:"existingfile"`
	Today string `help:"Treat this date as today (DD.MM.YYYY)." placeholder:"DD.MM.YYYY"`
}

// Run executes the repl command.
func (r *ReplCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}

	// Apply CLI flag overrides.
	if r.Prompt != nil {
		cfg.REPL.Prompt = *r.Prompt
	}
	if r.Plain {
		cfg.REPL.Display = config.DisplayPlain
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("repl: %w", err)
	}

	clock, err := clockFor(r.Today)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}

	logger, closer, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return r.run(ctx, os.Stdin, os.Stdout, cfg.REPL, logger, clock)
}

// run wires a fresh book to a session on in and w.
func (r *ReplCmd) run(ctx context.Context, in io.Reader, w io.Writer, settings config.REPL, logger *slog.Logger, clock func() time.Time) error {
	h := assistant.New(book.New(), assistant.WithClock(clock), assistant.WithLogger(logger))
	session := tui.NewSession(tui.SessionOptions{
		In:         in,
		Out:        w,
		Prompt:     settings.Prompt,
		Mode:       tui.Mode(settings.Display),
		Dispatcher: h,
	})

	logger.Debug("session started", "display", settings.Display)
	err := session.Run(ctx)
	logger.Debug("session ended", "err", err)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("repl: %w", err)
	}
	return nil
}

// Run executes the exec command.
func (e *ExecCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	clock, err := clockFor(e.Today)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	f, err := os.Open(e.File)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	defer func() { _ = f.Close() }()

	logger, closer, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return e.run(ctx, f, os.Stdout, logger, clock)
}

// run feeds every line of script to a fresh book and echoes the replies.
func (e *ExecCmd) run(ctx context.Context, script io.Reader, w io.Writer, logger *slog.Logger, clock func() time.Time) error {
	h := assistant.New(book.New(), assistant.WithClock(clock), assistant.WithLogger(logger))
	session := tui.NewPlainSession(script, w, "", h)

	logger.Debug("script started", "file", e.File)
	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("exec: %s: %w", e.File, err)
	}
	return nil
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig(projectPath string) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
		projectPath,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// clockFor returns time.Now, or a clock frozen at today when it is set.
func clockFor(today string) (func() time.Time, error) {
	if today == "" {
		return time.Now, nil
	}
	t, err := contact.ParseDate(today)
	if err != nil {
		return nil, fmt.Errorf("--today %q: %w", today, err)
	}
	return func() time.Time { return t }, nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitInput   = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, tui.ErrInput) {
		return exitInput
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("addressbook"),
		kong.Description("A command-line assistant for contacts and their birthdays."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
