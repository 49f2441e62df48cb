package editor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ClearValue typed at an update prompt empties the field.
const ClearValue = "-"

// Prompter fills forms line by line from an interactive input.
type Prompter struct {
	src     io.Reader
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Prompter{src: in, scanner: sc, out: out}
}

// Line asks label and returns the trimmed answer.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Secret asks label without echo when the input is a terminal.
func (p *Prompter) Secret(label string) (string, error) {
	f, ok := p.src.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Fill walks every field of form. With current == nil it collects the
// values of a new record and blank answers fall back to the field default.
// Otherwise blank answers keep the current value, ClearValue empties it, and
// only changed fields are returned.
func (p *Prompter) Fill(form Form, current map[string]string) (map[string]string, error) {
	values := make(map[string]string)
	for _, fd := range form.Fields {
		if current != nil && fd.Local {
			continue
		}
		answer, err := p.ask(fd, current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fd.Key, err)
		}
		switch {
		case current == nil:
			if answer != "" {
				values[fd.Key] = answer
			}
		case answer == ClearValue:
			values[fd.Key] = ""
		case answer != "" && answer != current[fd.Key]:
			values[fd.Key] = answer
		}
	}
	return values, nil
}

func (p *Prompter) ask(fd Field, current map[string]string) (string, error) {
	label := fd.Label
	if fd.Kind == Choice {
		label += " (" + strings.Join(fd.Choices, "/") + ")"
	}
	hint := fd.Default
	if current != nil {
		hint = current[fd.Key]
	}
	if hint != "" && !fd.Secret {
		label += " [" + abbreviate(hint, 40) + "]"
	}
	if fd.Required && current == nil {
		label += " *"
	}
	label += ": "

	if fd.Secret {
		return p.Secret(label)
	}
	if fd.FromFile {
		path, err := p.Line("Enter file path to load (leave empty for manual input): ")
		if err != nil {
			return "", err
		}
		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", fmt.Errorf("read %q: %w", path, err)
			}
			return string(data), nil
		}
	}
	return p.Line(label)
}

func abbreviate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
