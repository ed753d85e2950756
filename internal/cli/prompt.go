package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// maxAnswerLen bounds a single answer. Longer lines are discarded.
const maxAnswerLen = 4096

var errAnswerTooLong = errors.New("answer too long")

// prompter asks questions on out and reads one answer per input line.
// Every read returns io.EOF once input is exhausted.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(r), out: w}
}

// ask prints label and returns the next line without its line ending.
// An over-long line is consumed and the question asked again.
func (p *prompter) ask(label string) (string, error) {
	for {
		fmt.Fprint(p.out, label)
		line, err := p.readLine()
		switch {
		case errors.Is(err, errAnswerTooLong):
			fmt.Fprintln(p.out, color.RedString("  answer too long (max %d characters)", maxAnswerLen))
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(p.out)
			return "", io.EOF
		case err != nil:
			return "", err
		}
		return strings.TrimRight(line, "\r"), nil
	}
}

// readLine reads through the next newline. A final line without a newline
// is returned as is; io.EOF is returned only when nothing is left.
func (p *prompter) readLine() (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := p.in.ReadLine()
		if err != nil {
			if len(buf) > 0 || tooLong {
				break
			}
			return "", err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxAnswerLen {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", errAnswerTooLong
	}
	return string(buf), nil
}

// askUntil repeats the question until check accepts the answer.
func (p *prompter) askUntil(label string, check func(string) error) (string, error) {
	for {
		answer, err := p.ask(label)
		if err != nil {
			return "", err
		}
		if err := check(answer); err != nil {
			fmt.Fprintln(p.out, color.RedString("  %v", err))
			continue
		}
		return answer, nil
	}
}

// askInt repeats the question until the answer is a whole number that
// check (if given) accepts.
func (p *prompter) askInt(label string, check func(int) error) (int, error) {
	var n int
	_, err := p.askUntil(label, func(s string) error {
		v, err := parseInt(s)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(v); err != nil {
				return err
			}
		}
		n = v
		return nil
	})
	return n, err
}

// confirm asks a yes/no question. Only "y" and "yes" count as yes.
func (p *prompter) confirm(question string) (bool, error) {
	answer, err := p.ask(question + " (y/N): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("please enter a whole number")
	}
	return v, nil
}
