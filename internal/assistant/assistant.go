// Package assistant turns lines of user input into address book operations
// and renders the replies shown to the user.
package assistant

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/contact"
)

// Reply is the outcome of one dispatched line.
type Reply struct {
	Text   string
	Failed bool // Input was rejected, or named a missing contact.
	Quit   bool // The session should end after showing Text.
}

// Handler dispatches command lines against a single Book.
// Like the Book, it is not safe for concurrent use.
type Handler struct {
	book   *book.Book
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock sets the source of "today" for birthday queries.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithLogger sets the logger used to trace dispatched commands.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates a Handler operating on b.
func New(b *book.Book, opts ...Option) *Handler {
	h := &Handler{
		book:   b,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Dispatch parses line, runs the command it names, and returns the reply.
// Bad input never panics or ends the session; only close and exit set Quit.
func (h *Handler) Dispatch(line string) Reply {
	keyword, rest := Split(line)
	cmd, known := lookup(keyword)
	if !known {
		h.logger.Debug("unknown command", "keyword", keyword)
		return failed(msgInvalidCommand)
	}

	args, valid := cmd.args(rest)
	if !valid {
		if len(cmd.params) == 0 {
			h.logger.Debug("unexpected arguments", "keyword", keyword)
			return failed(msgInvalidCommand)
		}
		h.logger.Debug("missing arguments", "keyword", keyword)
		return failed(cmd.usage())
	}

	reply := cmd.run(h, args)
	h.logger.Debug("command dispatched", "keyword", keyword, "failed", reply.Failed, "quit", reply.Quit)
	return reply
}

// Split separates the command keyword from the rest of the line.
// Surrounding whitespace is trimmed; the rest is returned verbatim.
func Split(line string) (keyword, rest string) {
	line = strings.TrimSpace(line)
	keyword, rest, _ = strings.Cut(line, " ")
	return keyword, rest
}

func (h *Handler) hello([]string) Reply {
	return ok("Hello!")
}

func (h *Handler) add(args []string) Reply {
	name, phone := args[0], args[1]
	r := contact.NewRecord(name)
	if err := r.AddPhone(phone); err != nil {
		return errorReply(err)
	}
	h.book.AddRecord(r)
	return ok(fmt.Sprintf("Contact %s added with phone %s.", name, phone))
}

func (h *Handler) change(args []string) Reply {
	name, phone := args[0], args[1]
	r, found := h.book.Find(name)
	if !found {
		return notFound(name)
	}

	var err error
	if phones := r.Phones(); len(phones) > 0 {
		err = r.EditPhone(phones[0].String(), phone)
	} else {
		err = r.AddPhone(phone)
	}
	if err != nil {
		return errorReply(err)
	}
	return ok(fmt.Sprintf("Phone number for %s changed to %s.", name, phone))
}

func (h *Handler) phone(args []string) Reply {
	name := args[0]
	r, found := h.book.Find(name)
	if !found {
		return notFound(name)
	}
	phones := r.Phones()
	if len(phones) == 0 {
		return ok(fmt.Sprintf("%s has no phone numbers recorded.", name))
	}
	return ok(fmt.Sprintf("Phone number for %s: %s.", name, phones[0]))
}

func (h *Handler) all([]string) Reply {
	if h.book.Len() == 0 {
		return ok("Address book is empty.")
	}
	records := h.book.Records()
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return ok(strings.Join(lines, "\n"))
}

func (h *Handler) addBirthday(args []string) Reply {
	name, date := args[0], args[1]
	r, found := h.book.Find(name)
	if !found {
		return notFound(name)
	}
	if err := r.SetBirthday(date); err != nil {
		return errorReply(err)
	}
	return ok(fmt.Sprintf("Birthday added for %s.", name))
}

func (h *Handler) showBirthday(args []string) Reply {
	name := args[0]
	r, found := h.book.Find(name)
	if !found {
		return notFound(name)
	}
	bd, set := r.Birthday()
	if !set {
		return ok(fmt.Sprintf("%s has no birthday recorded.", name))
	}
	return ok(fmt.Sprintf("%s's birthday: %s.", name, bd))
}

func (h *Handler) birthdays([]string) Reply {
	up := h.book.UpcomingBirthdays(h.now())
	if up.Len() == 0 {
		return ok("No birthdays in the upcoming week.")
	}
	days := up.Days()
	lines := make([]string, len(days))
	for i, day := range days {
		lines[i] = fmt.Sprintf("%s: %s", day, strings.Join(up.Names(day), ", "))
	}
	return ok(strings.Join(lines, "\n"))
}

func (h *Handler) delete(args []string) Reply {
	name := args[0]
	if _, found := h.book.Find(name); !found {
		return notFound(name)
	}
	h.book.Delete(name)
	return ok(fmt.Sprintf("Contact %s deleted.", name))
}

func (h *Handler) help([]string) Reply {
	return ok(helpText())
}

func (h *Handler) close([]string) Reply {
	return Reply{Text: "Closing program.", Quit: true}
}

const msgInvalidCommand = "Invalid command. Please try again."

func ok(text string) Reply {
	return Reply{Text: text}
}

func failed(text string) Reply {
	return Reply{Text: text, Failed: true}
}

func notFound(name string) Reply {
	return failed(fmt.Sprintf("Contact %s not found.", name))
}

// errorReply maps a core validation error to its user-facing message.
func errorReply(err error) Reply {
	switch {
	case errors.Is(err, contact.ErrInvalidPhoneFormat):
		return failed("Invalid phone number format. Must be 10 digits.")
	case errors.Is(err, contact.ErrInvalidDateFormat):
		return failed("Invalid date format. Please use DD.MM.YYYY")
	default:
		return failed(err.Error())
	}
}
