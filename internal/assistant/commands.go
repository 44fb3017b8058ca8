package assistant

import (
	"fmt"
	"strings"
)

// command describes one keyword of the command surface.
type command struct {
	keyword string
	params  []string
	summary string
	run     func(h *Handler, args []string) Reply
}

// commands lists every keyword in the order shown by help. It is filled in
// init because help refers back to it.
var commands []command

func init() {
	commands = []command{
		{"hello", nil, "Greet the assistant.", (*Handler).hello},
		{"add", []string{"name", "phone"}, "Add a contact with one phone, replacing any contact with that name.", (*Handler).add},
		{"change", []string{"name", "phone"}, "Replace the contact's first phone.", (*Handler).change},
		{"phone", []string{"name"}, "Show the contact's first phone.", (*Handler).phone},
		{"all", nil, "List every contact.", (*Handler).all},
		{"add-birthday", []string{"name", "DD.MM.YYYY"}, "Set the contact's birthday.", (*Handler).addBirthday},
		{"show-birthday", []string{"name"}, "Show the contact's birthday.", (*Handler).showBirthday},
		{"birthdays", nil, "List birthdays in the next 7 days by weekday.", (*Handler).birthdays},
		{"delete", []string{"name"}, "Remove a contact.", (*Handler).delete},
		{"help", nil, "Show this list.", (*Handler).help},
		{"close", nil, "Exit the program.", (*Handler).close},
		{"exit", nil, "Exit the program.", (*Handler).close},
	}
}

func lookup(keyword string) (command, bool) {
	for _, c := range commands {
		if c.keyword == keyword {
			return c, true
		}
	}
	return command{}, false
}

// Keywords returns every recognized command keyword.
func Keywords() []string {
	out := make([]string, len(commands))
	for i, c := range commands {
		out[i] = c.keyword
	}
	return out
}

// args splits rest into exactly len(c.params) arguments on single spaces.
// The last argument takes the remainder of the line, spaces included.
func (c command) args(rest string) ([]string, bool) {
	n := len(c.params)
	if n == 0 {
		return nil, rest == ""
	}
	if rest == "" {
		return nil, false
	}
	parts := strings.SplitN(rest, " ", n)
	if len(parts) < n {
		return nil, false
	}
	return parts, true
}

func (c command) synopsis() string {
	var b strings.Builder
	b.WriteString(c.keyword)
	for _, p := range c.params {
		fmt.Fprintf(&b, " <%s>", p)
	}
	return b.String()
}

func (c command) usage() string {
	return "Usage: " + c.synopsis()
}

func helpText() string {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, c := range commands {
		fmt.Fprintf(&b, "\n  %-32s %s", c.synopsis(), c.summary)
	}
	return b.String()
}
