package prompt

//go:generate $MOCKGEN -source=prompt.go -destination=mocks/prompt_mock.go

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputClosed indicates that input ended before a question was answered.
var ErrInputClosed = errors.New("input closed")

// Prompter asks questions and prints messages on an interactive console.
type Prompter interface {
	// Ask prints the question and waits for one line of input.
	// The answer is returned with surrounding whitespace removed.
	Ask(ctx context.Context, question string) (string, error)
	// Printf prints a formatted message.
	Printf(format string, args ...any)
}

// ConsolePrompter implements Prompter over a reader and a writer.
type ConsolePrompter struct {
	// in is where answers are read from.
	in io.Reader
	// out is where questions and messages are written to.
	out io.Writer
	// lines delivers lines read from in, closed when input ends.
	lines chan lineResult
	// stop is closed by Close to release the reader goroutine.
	stop chan struct{}
	// readerOnce starts the reader goroutine on the first question.
	readerOnce sync.Once
	// closeOnce guards stop.
	closeOnce sync.Once
}

// lineResult is one line read from input, or the read error that ended it.
type lineResult struct {
	line string
	err  error
}

// NewConsolePrompter creates a prompter reading answers from in and writing questions to out.
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		in:    in,
		out:   out,
		lines: make(chan lineResult),
		stop:  make(chan struct{}),
	}
}

// Ask prints the question and waits for one line of input.
func (p *ConsolePrompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	select {
	case <-p.stop:
		return "", ErrInputClosed
	default:
	}

	_, _ = fmt.Fprint(p.out, question)

	p.readerOnce.Do(p.startReader)

	select {
	case result, ok := <-p.lines:
		if !ok {
			_, _ = fmt.Fprintln(p.out)

			return "", ErrInputClosed
		}

		if result.err != nil {
			return "", fmt.Errorf("failed to read input: %w", result.err)
		}

		return strings.TrimSpace(result.line), nil
	case <-ctx.Done():
		_, _ = fmt.Fprintln(p.out)

		return "", ctx.Err()
	case <-p.stop:
		return "", ErrInputClosed
	}
}

// Close releases the reader goroutine once it has a line to hand over.
// A read already blocked on in ends only when in delivers data or is closed.
// Questions asked after Close fail with ErrInputClosed.
func (p *ConsolePrompter) Close() {
	p.closeOnce.Do(func() {
		close(p.stop)
	})
}

// Printf prints a formatted message.
func (p *ConsolePrompter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// startReader reads input line by line until it ends.
// A last line without a trailing newline still counts as an answer.
func (p *ConsolePrompter) startReader() {
	go func() {
		defer close(p.lines)

		reader := bufio.NewReader(p.in)

		for {
			line, err := reader.ReadString('\n')
			if (err == nil || line != "") && !p.send(lineResult{line: line}) {
				return
			}

			if err == nil {
				continue
			}

			if !errors.Is(err, io.EOF) {
				p.send(lineResult{err: err})
			}

			return
		}
	}()
}

// send hands the result over to Ask, giving up when the prompter is closed.
func (p *ConsolePrompter) send(result lineResult) bool {
	select {
	case p.lines <- result:
		return true
	case <-p.stop:
		return false
	}
}
