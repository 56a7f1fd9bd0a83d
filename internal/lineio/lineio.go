// Package lineio provides the line source and sink abstractions the parser
// reads from and the writer writes to.
package lineio

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrNotOpen is returned when a source or sink is used before Open.
var ErrNotOpen = errors.New("lineio: not open")

// Source yields lines without their terminators.
type Source interface {
	Open() error
	// ReadLine returns the next line, or false at end of input or on error.
	ReadLine() (string, bool)
	// Err returns the first read error, if any.
	Err() error
	Close() error
}

// Sink accepts lines; it adds the line terminator.
type Sink interface {
	Open() error
	WriteLine(line string) error
	Close() error
}

// ReaderSource reads lines from an io.Reader. Lines may be of any length.
// If the reader is also an io.Closer it is closed by Close.
type ReaderSource struct {
	r      io.Reader
	reader *bufio.Reader
	done   bool
	err    error
}

// NewReaderSource wraps r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// NewStringSource reads lines from s.
func NewStringSource(s string) *ReaderSource {
	return NewReaderSource(strings.NewReader(s))
}

func (s *ReaderSource) Open() error {
	s.reader = bufio.NewReader(s.r)
	s.done, s.err = false, nil
	return nil
}

func (s *ReaderSource) ReadLine() (string, bool) {
	if s.reader == nil || s.done {
		return "", false
	}
	line, err := s.reader.ReadString('\n')
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = err
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), true
}

func (s *ReaderSource) Err() error {
	if s.reader == nil {
		return ErrNotOpen
	}
	return s.err
}

func (s *ReaderSource) Close() error {
	s.reader = nil
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// WriterSink writes newline-terminated lines to an io.Writer.
type WriterSink struct {
	w   io.Writer
	buf *bufio.Writer
}

// NewWriterSink wraps w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Open() error {
	s.buf = bufio.NewWriter(s.w)
	return nil
}

func (s *WriterSink) WriteLine(line string) error {
	if s.buf == nil {
		return ErrNotOpen
	}
	if _, err := s.buf.WriteString(line); err != nil {
		return err
	}
	return s.buf.WriteByte('\n')
}

func (s *WriterSink) Close() error {
	if s.buf == nil {
		return nil
	}
	err := s.buf.Flush()
	s.buf = nil
	return err
}

// BufferSink collects lines in memory.
type BufferSink struct {
	b    strings.Builder
	open bool
}

func (s *BufferSink) Open() error {
	s.b.Reset()
	s.open = true
	return nil
}

func (s *BufferSink) WriteLine(line string) error {
	if !s.open {
		return ErrNotOpen
	}
	s.b.WriteString(line)
	s.b.WriteByte('\n')
	return nil
}

func (s *BufferSink) Close() error {
	s.open = false
	return nil
}

// String returns everything written so far.
func (s *BufferSink) String() string {
	return s.b.String()
}

// ReadAll opens src, collects every line, and closes it.
func ReadAll(src Source) (lines []string, err error) {
	if err := src.Open(); err != nil {
		return nil, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for {
		line, ok := src.ReadLine()
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	return lines, src.Err()
}
