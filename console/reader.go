package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/chzyer/readline"
)

// maxLineBytes bounds a single line of input.
const maxLineBytes = 1 << 20

var (
	// ErrInterrupted is returned when the user presses Ctrl-C at a prompt.
	ErrInterrupted = errors.New("input interrupted")
	// ErrLineTooLong is returned for a line over maxLineBytes. The reader
	// stays usable.
	ErrLineTooLong = errors.New("input line too long")
)

// LineReader shows a prompt and returns the next line of input without its
// trailing newline. It returns io.EOF once the input is exhausted.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
	Close() error
}

// NewLineReader returns a readline-backed reader when in is a terminal and
// a plain line scanner otherwise (pipes, files, tests).
func NewLineReader(in io.Reader, out io.Writer) (LineReader, error) {
	if f, ok := in.(*os.File); ok && readline.IsTerminal(int(f.Fd())) {
		rl, err := NewReadlineReader(f, out)
		if err != nil {
			return nil, err
		}
		return rl, nil
	}
	return NewScannerReader(in, out), nil
}

// ReadlineReader reads from an interactive terminal with line editing.
type ReadlineReader struct {
	rl *readline.Instance
}

func NewReadlineReader(in io.ReadCloser, out io.Writer) (*ReadlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Stdin:           in,
		Stdout:          out,
		HistoryLimit:    -1,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt: %w", err)
	}
	return &ReadlineReader{rl: rl}, nil
}

func (r *ReadlineReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	r.rl.SetPrompt(prompt)

	// closing the instance unblocks a pending Readline
	stop := context.AfterFunc(ctx, func() { _ = r.rl.Close() })
	defer stop()

	line, err := r.rl.Readline()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupted
	}
	return line, err
}

func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}

type scannedLine struct {
	text string
	err  error
}

// ScannerReader reads newline-delimited input from any io.Reader. Lines are
// read on a background goroutine so a pending read honours ctx.
type ScannerReader struct {
	in        io.Reader
	out       io.Writer
	lines     chan scannedLine
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{
		in:    in,
		out:   out,
		lines: make(chan scannedLine),
		done:  make(chan struct{}),
	}
}

func (r *ScannerReader) scan() {
	defer close(r.lines)

	br := bufio.NewReader(r.in)
	for {
		text, err := readLine(br)
		if errors.Is(err, io.EOF) {
			return
		}
		select {
		case r.lines <- scannedLine{text: text, err: err}:
		case <-r.done:
			return
		}
		if err != nil && !errors.Is(err, ErrLineTooLong) {
			return
		}
	}
}

// readLine returns the next line without its line ending. A line longer
// than maxLineBytes is consumed in full and reported as ErrLineTooLong so
// the caller can reject it and keep reading.
func readLine(br *bufio.Reader) (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong) {
				break
			}
			return "", err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", ErrLineTooLong
	}
	return string(buf), nil
}

func (r *ScannerReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if _, err := io.WriteString(r.out, prompt); err != nil {
		return "", err
	}
	r.startOnce.Do(func() { go r.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-r.done:
		return "", io.EOF
	case l, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

// Close stops the background scanner. It does not close the underlying reader.
func (r *ScannerReader) Close() error {
	r.closeOnce.Do(func() { close(r.done) })
	return nil
}
