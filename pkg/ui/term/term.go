// Package term implements ui.ChatUI for a line-oriented terminal. Input is
// read a line at a time, with line editing and history when stdin is a
// terminal. Assistant replies are rendered as markdown with glamour when the
// output is a terminal and written as-is otherwise.
package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	// Packages
	glamour "github.com/charmbracelet/glamour"
	lipgloss "github.com/charmbracelet/lipgloss"
	termenv "github.com/muesli/termenv"
	chatbot "github.com/mutablelogic/go-chatbot"
	ui "github.com/mutablelogic/go-chatbot/pkg/ui"
	xterm "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Terminal implements ui.ChatUI and ui.Context for a single user
type Terminal struct {
	mu          sync.Mutex
	in          io.Reader
	out         io.Writer
	prompt      string
	commands    map[string]struct{}
	interactive bool
	markdown    bool
	width       int
	renderer    *glamour.TermRenderer
	typing      bool
	reader      lineReader
	once        sync.Once
	requests    chan struct{}
	lines       chan line
	pending     bool
	eof         bool
}

// Opt is a functional option for a terminal
type Opt func(*Terminal) error

type line struct {
	text string
	err  error
}

// lineReader returns one line of input per call, or io.EOF
type lineReader interface {
	ReadLine() (string, error)
}

// scanner reads lines from a pipe or file
type scanner struct {
	*bufio.Scanner
}

// editor reads lines from a terminal with line editing and history. The
// terminal is in raw mode only while a line is being read.
type editor struct {
	sync.Mutex
	tty   *xterm.Terminal
	fd    int
	state *xterm.State
}

var _ ui.ChatUI = (*Terminal)(nil)
var _ ui.Context = (*Terminal)(nil)

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")) // blue
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))  // red
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

const (
	defaultPrompt = "You: "
	defaultWidth  = 100
	clearLine     = "\r\033[K"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a terminal reading from stdin and writing to stdout, unless
// other streams are set with options
func New(opts ...Opt) (*Terminal, error) {
	t := &Terminal{
		in:       os.Stdin,
		out:      os.Stdout,
		prompt:   defaultPrompt,
		commands: make(map[string]struct{}),
		markdown: true,
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	// Styling and markdown only apply to a terminal
	if f, ok := t.out.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
		t.interactive = true
		if t.width == 0 {
			if w, _, err := xterm.GetSize(int(f.Fd())); err == nil && w > 0 {
				t.width = w
			}
		}
	}
	if t.width == 0 {
		t.width = defaultWidth
	}
	if t.interactive && t.markdown {
		stylePath := "dark"
		if !termenv.HasDarkBackground() {
			stylePath = "light"
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStylePath(stylePath),
			glamour.WithWordWrap(t.width-4),
		)
		if err != nil {
			return nil, chatbot.ErrInternalServerError.Withf("markdown renderer: %v", err)
		}
		t.renderer = renderer
	}

	// Line editing when both ends are a terminal
	if f, ok := t.in.(*os.File); ok && t.interactive && xterm.IsTerminal(int(f.Fd())) {
		t.reader = newEditor(struct {
			io.Reader
			io.Writer
		}{f, t.out}, int(f.Fd()), t.style(promptStyle, t.prompt))
	} else {
		t.reader = scanner{bufio.NewScanner(t.in)}
	}

	return t, nil
}

// Close stops the typing indicator and leaves raw mode. The input stream is
// not closed.
func (t *Terminal) Close() error {
	if e, ok := t.reader.(*editor); ok {
		e.restore()
	}
	return t.SetTyping(context.Background(), false)
}

func newEditor(rw io.ReadWriter, fd int, prompt string) *editor {
	return &editor{tty: xterm.NewTerminal(rw, prompt), fd: fd}
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithInput sets the stream lines are read from
func WithInput(r io.Reader) Opt {
	return func(t *Terminal) error {
		if r == nil {
			return chatbot.ErrBadParameter.With("input is required")
		}
		t.in = r
		return nil
	}
}

// WithOutput sets the stream output is written to
func WithOutput(w io.Writer) Opt {
	return func(t *Terminal) error {
		if w == nil {
			return chatbot.ErrBadParameter.With("output is required")
		}
		t.out = w
		return nil
	}
}

// WithPrompt sets the prompt shown before each line of input
func WithPrompt(prompt string) Opt {
	return func(t *Terminal) error {
		t.prompt = prompt
		return nil
	}
}

// WithCommands sets the reserved words which are reported as commands.
// A line is a command when it is exactly one of the words, or when it starts
// with a slash followed by one of the words and optional arguments.
func WithCommands(names ...string) Opt {
	return func(t *Terminal) error {
		for _, name := range names {
			t.commands[strings.ToLower(name)] = struct{}{}
		}
		return nil
	}
}

// WithMarkdown enables or disables markdown rendering
func WithMarkdown(enabled bool) Opt {
	return func(t *Terminal) error {
		t.markdown = enabled
		return nil
	}
}

// WithWidth sets the width used to wrap rendered markdown
func WithWidth(width int) Opt {
	return func(t *Terminal) error {
		if width < 20 {
			return chatbot.ErrBadParameter.Withf("width %d is too narrow", width)
		}
		t.width = width
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// CHATUI

// Receive shows the prompt and returns the next non-empty line. It returns
// io.EOF when the input is exhausted. A line which is still being read when
// the context is cancelled is returned by the next call.
func (t *Terminal) Receive(ctx context.Context) (ui.Event, error) {
	t.once.Do(t.read)
	for {
		if t.eof {
			return ui.Event{}, io.EOF
		}
		if !t.pending {
			t.printPrompt()
			t.pending = true
			t.requests <- struct{}{}
		}
		select {
		case <-ctx.Done():
			return ui.Event{}, ctx.Err()
		case line, ok := <-t.lines:
			t.pending = false
			if !ok {
				t.eof = true
				return ui.Event{}, io.EOF
			}
			if line.err != nil {
				return ui.Event{}, line.err
			}
			text := strings.TrimSpace(line.text)
			if text == "" {
				continue
			}
			return t.parse(text), nil
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// CONTEXT

// SendText writes text followed by a newline
func (t *Terminal) SendText(_ context.Context, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTyping()
	_, err := fmt.Fprintln(t.out, strings.TrimRight(text, "\n"))
	return err
}

// SendMarkdown renders markdown for a terminal, or writes it unchanged
func (t *Terminal) SendMarkdown(ctx context.Context, markdown string) error {
	if t.renderer != nil {
		if out, err := t.renderer.Render(markdown); err == nil {
			return t.SendText(ctx, strings.TrimSpace(out))
		}
	}
	return t.SendText(ctx, markdown)
}

// SendError writes an error message
func (t *Terminal) SendError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	return t.SendText(ctx, t.style(errorStyle, "Error: ")+err.Error())
}

// SetTyping shows a transient indicator on a terminal
func (t *Terminal) SetTyping(_ context.Context, typing bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.interactive || typing == t.typing {
		return nil
	}
	if typing {
		t.typing = true
		_, err := fmt.Fprint(t.out, dimStyle.Render("thinking..."))
		return err
	}
	t.stopTyping()
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// read starts a goroutine which reads a line for each request, so Receive
// can be cancelled and nothing is read while a reply is being generated
func (t *Terminal) read() {
	t.requests = make(chan struct{}, 1)
	t.lines = make(chan line)
	go func() {
		defer close(t.lines)
		for range t.requests {
			text, err := t.reader.ReadLine()
			if errors.Is(err, io.EOF) {
				return
			}
			t.lines <- line{text: text, err: err}
			if err != nil {
				return
			}
		}
	}()
}

func (t *Terminal) parse(text string) ui.Event {
	event := ui.Event{Type: ui.EventText, Context: t, Text: text}
	fields := strings.Fields(text)
	name := strings.ToLower(fields[0])
	slash := strings.HasPrefix(name, "/")
	name = strings.TrimPrefix(name, "/")
	if _, exists := t.commands[name]; !exists {
		return event
	}
	if slash || len(fields) == 1 {
		event.Type = ui.EventCommand
		event.Command = name
		event.Args = fields[1:]
	}
	return event
}

// printPrompt writes the prompt, unless the editor draws it
func (t *Terminal) printPrompt() {
	if _, ok := t.reader.(*editor); ok || t.prompt == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprint(t.out, t.style(promptStyle, t.prompt))
}

func (t *Terminal) stopTyping() {
	if t.typing {
		fmt.Fprint(t.out, clearLine)
		t.typing = false
	}
}

func (t *Terminal) style(style lipgloss.Style, text string) string {
	if !t.interactive {
		return text
	}
	return style.Render(text)
}

///////////////////////////////////////////////////////////////////////////////
// LINE READERS

func (s scanner) ReadLine() (string, error) {
	if s.Scan() {
		return s.Text(), nil
	}
	if err := s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// ReadLine reads a line in raw mode. Ctrl-C and Ctrl-D on an empty line
// return io.EOF.
func (e *editor) ReadLine() (string, error) {
	if e.fd >= 0 {
		state, err := xterm.MakeRaw(e.fd)
		if err != nil {
			return "", err
		}
		e.Lock()
		e.state = state
		e.Unlock()
		defer e.restore()
	}
	text, err := e.tty.ReadLine()
	if errors.Is(err, xterm.ErrPasteIndicator) {
		err = nil
	}
	return text, err
}

func (e *editor) restore() {
	e.Lock()
	defer e.Unlock()
	if e.state != nil {
		xterm.Restore(e.fd, e.state)
		e.state = nil
	}
}
