package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// errNoInput is returned when the input ends before a usable answer.
var errNoInput = errors.New("no input")

// prompter asks interactive questions on out and reads answers from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// next returns the next trimmed line. A final line without a newline is
// returned with a nil error; io.EOF is only reported once nothing is left.
func (p *prompter) next() (string, error) {
	line, err := p.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimSpace(line), err
}

// Line asks for a non-empty answer, repeating the prompt on blank lines.
func (p *prompter) Line(label string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		line, err := p.next()
		if err != nil {
			if err == io.EOF {
				return "", fmt.Errorf("%s: %w", label, errNoInput)
			}
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

// Confirm asks a yes/no question. Blank answers and end of input pick
// defaultYes. Indonesian answers (ya, tidak) are accepted alongside English.
func (p *prompter) Confirm(label string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, hint)
		line, err := p.next()
		if err == io.EOF {
			return defaultYes, nil
		}
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return defaultYes, nil
		case "y", "yes", "ya":
			return true, nil
		case "n", "no", "t", "tidak":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}
