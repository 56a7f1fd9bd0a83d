package lineio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource reads lines from a file on disk.
type FileSource struct {
	Path string

	file *os.File
	src  *ReaderSource
}

// NewFileSource returns a source for path. Nothing is opened until Open.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Open() error {
	f, err := os.Open(s.Path)
	if err != nil {
		return err
	}
	s.file = f
	s.src = NewReaderSource(f)
	return s.src.Open()
}

func (s *FileSource) ReadLine() (string, bool) {
	if s.src == nil {
		return "", false
	}
	return s.src.ReadLine()
}

func (s *FileSource) Err() error {
	if s.src == nil {
		return ErrNotOpen
	}
	return s.src.Err()
}

func (s *FileSource) Close() error {
	if s.src == nil {
		return nil
	}
	err := s.src.Close()
	s.src = nil
	s.file = nil
	return err
}

// FileSink writes lines to a temporary file in the target directory and
// renames it into place on Close, so a failed write never leaves a torn
// note behind. Abort discards the temporary file instead.
type FileSink struct {
	Path string
	// Perm is used for the new file. If zero, the existing file's mode is
	// kept, falling back to 0644.
	Perm os.FileMode

	tmp *os.File
	buf *bufio.Writer
	err error
}

// NewFileSink returns a sink for path. Nothing is created until Open.
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

func (s *FileSink) Open() error {
	perm := s.Perm
	if perm == 0 {
		if st, err := os.Stat(s.Path); err == nil {
			perm = st.Mode()
		} else {
			perm = 0o644
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), "."+filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	// Best-effort; some filesystems do not support chmod here.
	_ = tmp.Chmod(perm)

	s.tmp = tmp
	s.buf = bufio.NewWriter(tmp)
	s.err = nil
	return nil
}

func (s *FileSink) WriteLine(line string) error {
	if s.buf == nil {
		return ErrNotOpen
	}
	if s.err != nil {
		return s.err
	}
	if _, err := s.buf.WriteString(line); err != nil {
		s.err = err
		return err
	}
	if err := s.buf.WriteByte('\n'); err != nil {
		s.err = err
		return err
	}
	return nil
}

// Abort discards everything written since Open.
func (s *FileSink) Abort() {
	if s.tmp == nil {
		return
	}
	name := s.tmp.Name()
	_ = s.tmp.Close()
	_ = os.Remove(name)
	s.tmp = nil
	s.buf = nil
}

// Close commits the file. If any write failed, the temporary file is
// removed and the target is left untouched.
func (s *FileSink) Close() error {
	if s.tmp == nil {
		return nil
	}
	if s.err != nil {
		err := s.err
		s.Abort()
		return err
	}

	tmpPath := s.tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
		s.tmp = nil
		s.buf = nil
	}()

	if err := s.buf.Flush(); err != nil {
		_ = s.tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := s.tmp.Sync(); err != nil {
		_ = s.tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := s.tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// On Windows, renaming over an existing file fails. Remove first (not atomic).
	if err := os.Rename(tmpPath, s.Path); err != nil {
		_ = os.Remove(s.Path)
		if err2 := os.Rename(tmpPath, s.Path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}
