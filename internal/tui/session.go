// Package tui runs the interactive read-eval-print loop, either as a Bubble
// Tea terminal UI or as a plain line-oriented prompt.
package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/addressbook/internal/assistant"
)

// ErrInput indicates the session could not read its input.
var ErrInput = errors.New("tui: reading input")

// Dispatcher turns one input line into a reply.
type Dispatcher interface {
	Dispatch(line string) assistant.Reply
}

// Session reads commands until the user quits, input ends, or ctx is cancelled.
type Session interface {
	Run(ctx context.Context) error
}

// Mode selects the session implementation.
type Mode string

const (
	ModeAuto  Mode = "auto"  // TUI when both ends are terminals, else plain.
	ModePlain Mode = "plain" // Always plain.
	ModeTUI   Mode = "tui"   // Always TUI.
)

// SessionOptions configures session creation.
type SessionOptions struct {
	In         io.Reader  // Command source (default: os.Stdin).
	Out        io.Writer  // Reply destination (default: os.Stdout).
	Prompt     string     // Shown before each command; empty for none.
	Mode       Mode       // Empty means ModeAuto.
	Dispatcher Dispatcher // Required.
}

// NewSession returns a TUI session when Mode asks for one, or when Mode is
// auto and both In and Out are terminals. Otherwise it returns a plain session.
func NewSession(opts SessionOptions) Session {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	plain := &PlainSession{in: opts.In, w: opts.Out, prompt: opts.Prompt, d: opts.Dispatcher}
	switch opts.Mode {
	case ModePlain:
		return plain
	case ModeTUI:
	default:
		if !isTTY(opts.In) || !isTTY(opts.Out) {
			return plain
		}
	}
	return &TUISession{plain: plain}
}

// NewPlainSession returns a line-oriented session reading from in and writing to w.
func NewPlainSession(in io.Reader, w io.Writer, prompt string, d Dispatcher) *PlainSession {
	return &PlainSession{in: in, w: w, prompt: prompt, d: d}
}

// isTTY reports whether v is a file connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainSession prints a prompt, reads a line, and prints the reply.
type PlainSession struct {
	in     io.Reader
	w      io.Writer
	prompt string
	d      Dispatcher
}

// Run loops until a reply asks to quit or input ends. Blank lines are skipped.
// Returns ctx.Err() if cancelled, or an ErrInput-wrapped error if reading fails.
func (s *PlainSession) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Reading blocks, so it happens off the dispatch loop to keep ctx responsive.
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- sc.Err()
	}()

	s.showPrompt()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("%w: %w", ErrInput, err)
				}
				if s.prompt != "" {
					_, _ = fmt.Fprintln(s.w)
				}
				return ctx.Err()
			}
			if isBlank(line) {
				s.showPrompt()
				continue
			}
			reply := s.d.Dispatch(line)
			_, _ = fmt.Fprintln(s.w, reply.Text)
			if reply.Quit {
				return nil
			}
			s.showPrompt()
		}
	}
}

func (s *PlainSession) showPrompt() {
	if s.prompt != "" {
		_, _ = fmt.Fprint(s.w, s.prompt)
	}
}

// TUISession runs the Bubble Tea model.
// Falls back to its PlainSession if the TUI program fails to start.
type TUISession struct {
	plain *PlainSession
}

// Run starts the Bubble Tea program on the session's input and output.
func (s *TUISession) Run(ctx context.Context) error {
	model := NewModel(s.plain.d, WithPrompt(s.plain.prompt))
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(s.plain.in),
		tea.WithOutput(s.plain.w),
	)

	_, err := p.Run()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		return ctx.Err()
	default:
		return s.plain.Run(ctx)
	}
}
