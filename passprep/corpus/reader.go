// Package corpus reads tab-separated password corpora and exposes a lazy,
// auto-restarting pair stream over them.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Pair is one raw corpus record: a password and its transformed counterpart.
type Pair struct {
	X string
	Y string
}

// fieldsPerLine is the fixed corpus layout: identifier, x, y.
const fieldsPerLine = 3

// Stream is a single pass over a corpus file. It is not safe for concurrent
// use; open one Stream per reader.
type Stream struct {
	path    string
	sep     string
	file    *os.File
	scanner *bufio.Scanner
	line    int
}

// Open starts a fresh pass over the corpus at path, splitting each line on sep.
func Open(path, sep string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus %s: %w", path, err)
	}
	return &Stream{
		path:    path,
		sep:     sep,
		file:    f,
		scanner: bufio.NewScanner(f),
	}, nil
}

// Next returns the next pair in the pass. It returns io.EOF when the pass is
// complete and a parse error when a line does not hold exactly three fields;
// parse errors abort the pass.
func (s *Stream) Next() (Pair, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return Pair{}, fmt.Errorf("failed to read corpus %s: %w", s.path, err)
		}
		return Pair{}, io.EOF
	}
	s.line++
	fields := strings.Split(strings.TrimRight(s.scanner.Text(), "\r\n"), s.sep)
	if len(fields) != fieldsPerLine {
		return Pair{}, fmt.Errorf("corpus %s line %d: expected %d fields, got %d",
			s.path, s.line, fieldsPerLine, len(fields))
	}
	return Pair{X: fields[1], Y: fields[2]}, nil
}

// Close releases the underlying file handle.
func (s *Stream) Close() error {
	return s.file.Close()
}
