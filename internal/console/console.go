// Package console provides the line sources behind input statements: a plain
// reader for pipes and files, and a line editor for interactive terminals.
package console

import (
    "bufio"
    "errors"
    "fmt"
    "io"
    "os"
    "strings"

    "github.com/mattn/go-isatty"
    "github.com/peterh/liner"
)

type Mode string

const (
    ModeAuto  Mode = "auto"
    ModePlain Mode = "plain"
    ModeLine  Mode = "line"
)

func ParseMode(s string) (Mode, error) {
    switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
    case "", ModeAuto:
        return ModeAuto, nil
    case ModePlain, ModeLine:
        return m, nil
    }
    return "", fmt.Errorf("unknown input mode %q (want auto, plain or line)", s)
}

// Session is a line source that must be closed when the run ends.
type Session interface {
    ReadLine(prompt string) (string, error)
    Close() error
}

// Open picks the line source for mode. Auto uses the line editor only when
// both in and out are terminals.
func Open(mode Mode, in io.Reader, out io.Writer, history string) Session {
    if mode == ModeLine || (mode == ModeAuto && IsTerminal(in) && IsTerminal(out)) {
        return NewLineEditor(history)
    }
    return Plain(in, out)
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
    f, ok := v.(*os.File)
    if !ok || f == nil { return false }
    fd := f.Fd()
    return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PlainReader writes the prompt followed by a space, then reads one line.
type PlainReader struct {
    r   *bufio.Reader
    out io.Writer
}

func Plain(in io.Reader, out io.Writer) *PlainReader {
    return &PlainReader{r: bufio.NewReader(in), out: out}
}

// ReadLine returns the next line without its terminator. A final line with
// no newline is returned normally; io.EOF comes back only with no data.
func (p *PlainReader) ReadLine(prompt string) (string, error) {
    if _, err := io.WriteString(p.out, prompt+" "); err != nil { return "", err }
    line, err := p.r.ReadString('\n')
    if err != nil && !(errors.Is(err, io.EOF) && line != "") { return "", err }
    line = strings.TrimSuffix(line, "\n")
    line = strings.TrimSuffix(line, "\r")
    return line, nil
}

func (p *PlainReader) Close() error { return nil }

// LineEditor reads with terminal line editing and keeps an optional history file.
type LineEditor struct {
    st      *liner.State
    history string
}

func NewLineEditor(history string) *LineEditor {
    st := liner.NewLiner()
    st.SetCtrlCAborts(true)
    if history != "" {
        if f, err := os.Open(history); err == nil {
            _, _ = st.ReadHistory(f)
            _ = f.Close()
        }
    }
    return &LineEditor{st: st, history: history}
}

func (l *LineEditor) ReadLine(prompt string) (string, error) {
    line, err := l.st.Prompt(prompt + " ")
    if errors.Is(err, liner.ErrPromptAborted) { return "", fmt.Errorf("input aborted") }
    if err != nil { return "", err }
    if line != "" { l.st.AppendHistory(line) }
    return line, nil
}

func (l *LineEditor) Close() error {
    if l.history != "" {
        if f, err := os.Create(l.history); err == nil {
            _, _ = l.st.WriteHistory(f)
            _ = f.Close()
        }
    }
    return l.st.Close()
}
