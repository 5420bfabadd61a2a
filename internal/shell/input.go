package shell

import (
	"bufio"
	"context"
	"io"
	"sync"
)

// lineReader delivers input lines to the shell. Reading happens on a
// separate goroutine so a blocked read never prevents cancellation.
type lineReader struct {
	scanner *bufio.Scanner
	lines   chan string
	err     error

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	finished  chan struct{}
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		scanner:  bufio.NewScanner(r),
		lines:    make(chan string),
		stop:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

func (l *lineReader) start() {
	go func() {
		defer close(l.finished)
		defer close(l.lines)
		for l.scanner.Scan() {
			select {
			case l.lines <- l.scanner.Text():
			case <-l.stop:
				return
			}
		}
		l.err = l.scanner.Err()
	}()
}

// ReadLine returns the next line, io.EOF at end of input, or the context error.
func (l *lineReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l.startOnce.Do(l.start)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-l.lines:
		if !ok {
			if l.err != nil {
				return "", l.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// Close releases the reading goroutine once it has a line to hand over.
// A goroutine blocked inside the underlying Read stays until that Read returns.
func (l *lineReader) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}
