// Package prompt reads answers from an interactive console. Every read
// observes a context so that Ctrl-C can abandon a blocked prompt.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/Tiliavir/worktracker/internal/model"
	"github.com/Tiliavir/worktracker/internal/timecalc"
)

var (
	// ErrInterrupted is returned when the context is cancelled while waiting.
	ErrInterrupted = errors.New("interrupted")
	// ErrAborted is returned once the input is exhausted.
	ErrAborted = errors.New("input closed")
	// ErrInvalidNumber is returned when an answer is not an integer.
	ErrInvalidNumber = errors.New("invalid number")
)

type line struct {
	text string
	err  error
}

// Prompter writes prompts to out and reads one answer line at a time from in.
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	lines chan line
	once  sync.Once
}

// New returns a Prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan line),
	}
}

// Out is the writer prompts are printed to.
func (p *Prompter) Out() io.Writer { return p.out }

// readLoop forwards input lines until the reader fails, then closes the
// channel. The send blocks until a prompt asks for the next line.
func (p *Prompter) readLoop() {
	defer close(p.lines)
	for {
		s, err := p.in.ReadString('\n')
		if s != "" {
			p.lines <- line{text: strings.TrimRight(s, "\r\n")}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.lines <- line{err: fmt.Errorf("reading input: %w", err)}
			}
			return
		}
	}
}

// ReadLine prints label and waits for one line of input.
func (p *Prompter) ReadLine(ctx context.Context, label string) (string, error) {
	p.once.Do(func() { go p.readLoop() })
	fmt.Fprint(p.out, label)
	select {
	case <-ctx.Done():
		return "", ErrInterrupted
	case l, ok := <-p.lines:
		if !ok {
			return "", ErrAborted
		}
		if l.err != nil {
			return "", l.err
		}
		return l.text, nil
	}
}

// ReadTime asks for an "HH:MM" answer.
func (p *Prompter) ReadTime(ctx context.Context, label string) (model.Clock, error) {
	s, err := p.ReadLine(ctx, label+" (HH:MM): ")
	if err != nil {
		return model.Clock{}, err
	}
	h, m, err := timecalc.ParseHHMM(s)
	if err != nil {
		return model.Clock{}, err
	}
	return model.Clock{Hour: h, Minute: m}, nil
}

// ReadInt asks for an integer answer.
func (p *Prompter) ReadInt(ctx context.Context, label string) (int, error) {
	s, err := p.ReadLine(ctx, label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}

// Confirm asks a yes/no question. Only answers starting with y or Y count
// as yes.
func (p *Prompter) Confirm(ctx context.Context, label string) (bool, error) {
	s, err := p.ReadLine(ctx, label+" (y/n): ")
	if err != nil {
		return false, err
	}
	s = strings.TrimSpace(s)
	return s != "" && (s[0] == 'y' || s[0] == 'Y'), nil
}
