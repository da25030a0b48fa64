package rpc

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// maxLineSize bounds one request line.
const maxLineSize = 64 << 20

// ErrLineTooLong is returned for a request line over the size limit.
var ErrLineTooLong = errors.New("request line too long")

// lineReader splits the input into request lines.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// next returns the next non-empty line without its terminator.
// It returns io.EOF after the last line.
func (l *lineReader) next() ([]byte, error) {
	for {
		var line []byte
		for {
			chunk, err := l.r.ReadSlice('\n')
			line = append(line, chunk...)
			if len(line) > maxLineSize {
				return nil, ErrLineTooLong
			}
			if err == bufio.ErrBufferFull {
				continue
			}
			if err != nil && (err != io.EOF || len(line) == 0) {
				return nil, err
			}
			break
		}
		line = bytes.TrimRight(line, "\r\n")
		if len(bytes.TrimSpace(line)) > 0 {
			return line, nil
		}
	}
}

// lineWriter writes response lines; safe for concurrent use.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lineWriter) write(line []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// readLoop feeds lines into out until EOF, a read error, or ctx ends.
func readLoop(ctx context.Context, r *lineReader, out chan<- []byte) error {
	defer close(out)
	for {
		line, err := r.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read request: %w", err)
		}
		select {
		case out <- line:
		case <-ctx.Done():
			return nil
		}
	}
}
