// Package help renders task help screens.
//
// Layout follows a fixed block structure: the title, an optional
// description, then the "Sub commands", "Arguments" and "Options" sections,
// each a two-column list whose key column is as wide as its widest key.
// Text wraps to the terminal width.
package help

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/specialistvlad/gridtask/internal/task"
	"golang.org/x/term"
)

// NoDescription is shown for entries declared without a description.
const NoDescription = "[No description provided]"

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 120

const (
	paddingX = 2
	minText  = 10
)

// Entry is one row of a section.
type Entry struct {
	Key         string
	Description string
}

// Message is everything a help screen shows.
type Message struct {
	Title       string
	Description string
	SubCommands []Entry
	Arguments   []Entry
	Options     []Entry
}

// ForTask builds the help message of t, titled with its dispatch path.
func ForTask(t *task.Task, path []string) Message {
	title := t.Name()
	if len(path) > 0 {
		title = strings.Join(path, " ")
	}
	msg := Message{Title: title, Description: t.Description()}

	for _, sub := range t.SubTasks() {
		msg.SubCommands = append(msg.SubCommands, entry(sub.Name(), sub.Description()))
	}
	for _, a := range t.Arguments() {
		msg.Arguments = append(msg.Arguments, entry(a.Label(), a.Description()))
	}
	for _, o := range t.Options() {
		msg.Options = append(msg.Options, entry(o.Label(), o.Description()))
	}
	return msg
}

func entry(key, description string) Entry {
	if description == "" {
		description = NoDescription
	}
	return Entry{Key: key, Description: description}
}

// Format lays msg out for the given width. Trailing whitespace is trimmed
// from every line and the result ends with a blank line.
func Format(msg Message, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	var lines []string
	lines = append(lines, "")
	lines = append(lines, block(msg.Title, width)...)

	if msg.Description != "" {
		lines = append(lines, "")
		lines = append(lines, block(msg.Description, width)...)
	}

	lines = append(lines, section("Sub commands", msg.SubCommands, width)...)
	lines = append(lines, section("Arguments", msg.Arguments, width)...)
	lines = append(lines, section("Options", msg.Options, width)...)

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func block(text string, width int) []string {
	style := lipgloss.NewStyle().
		PaddingLeft(paddingX).
		PaddingRight(paddingX).
		Width(max(width, minText+2*paddingX))
	return trimmed(style.Render(text))
}

func section(title string, entries []Entry, width int) []string {
	if len(entries) == 0 {
		return nil
	}

	lines := []string{""}
	lines = append(lines, block(title, width)...)
	lines = append(lines, "")

	keyWidth := 0
	for _, e := range entries {
		keyWidth = max(keyWidth, lipgloss.Width(e.Key))
	}

	indent := paddingX + 2*paddingX
	textWidth := max(width-indent-keyWidth-paddingX-paddingX, minText)

	keyStyle := lipgloss.NewStyle().Width(keyWidth + paddingX)
	textStyle := lipgloss.NewStyle().Width(textWidth)
	rowStyle := lipgloss.NewStyle().PaddingLeft(indent)

	for _, e := range entries {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			keyStyle.Render(e.Key),
			textStyle.Render(e.Description),
		)
		lines = append(lines, trimmed(rowStyle.Render(row))...)
	}
	return lines
}

func trimmed(rendered string) []string {
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// Renderer prints help messages to a writer.
type Renderer struct {
	out   io.Writer
	width int
}

// NewRenderer returns a Renderer writing to out. A width of zero means the
// terminal width of out, or DefaultWidth when out is not a terminal.
func NewRenderer(out io.Writer, width int) *Renderer {
	return &Renderer{out: out, width: width}
}

// Width is the layout width the renderer uses.
func (r *Renderer) Width() int {
	if r.width > 0 {
		return r.width
	}
	if f, ok := r.out.(interface{ Fd() uintptr }); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				return w
			}
		}
	}
	return DefaultWidth
}

// Render writes msg.
func (r *Renderer) Render(_ context.Context, msg Message) error {
	_, err := fmt.Fprintln(r.out, Format(msg, r.Width()))
	return err
}
