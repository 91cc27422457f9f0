package corpus

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrEmptyCorpus is returned by Next when a freshly reopened pass yields no
// records; without it an empty file would restart forever.
var ErrEmptyCorpus = errors.New("corpus is empty")

// State tracks where the loader sits in its restart cycle.
type State int

const (
	// Streaming means the current pass still has (or may have) records.
	Streaming State = iota
	// Exhausted means the current pass hit end-of-file and a fresh pass
	// must be opened before the next record can be served.
	Exhausted
)

func (s State) String() string {
	if s == Exhausted {
		return "exhausted"
	}
	return "streaming"
}

// LazyLoader serves an infinite sequence of raw pairs over a finite corpus by
// reopening the file whenever a pass ends. A single loader owns a single
// stream handle; concurrent Next calls are not supported.
type LazyLoader struct {
	path   string
	sep    string
	stream *Stream
	state  State
}

// NewLazyLoader opens the first pass over the corpus.
func NewLazyLoader(path, sep string) (*LazyLoader, error) {
	stream, err := Open(path, sep)
	if err != nil {
		return nil, err
	}
	return &LazyLoader{path: path, sep: sep, stream: stream, state: Streaming}, nil
}

// Next returns one raw pair, transparently restarting at end-of-pass. Exactly
// one reopen is attempted per call; if the reopened pass is immediately empty,
// Next returns ErrEmptyCorpus. Parse and I/O failures propagate unchanged.
func (l *LazyLoader) Next() (Pair, error) {
	pair, err := l.stream.Next()
	if err == nil {
		return pair, nil
	}
	if !errors.Is(err, io.EOF) {
		return Pair{}, err
	}

	l.state = Exhausted
	if err := l.restart(); err != nil {
		return Pair{}, err
	}

	pair, err = l.stream.Next()
	if errors.Is(err, io.EOF) {
		return Pair{}, fmt.Errorf("%w: %s", ErrEmptyCorpus, l.path)
	}
	return pair, err
}

// Statistics runs one full fresh pass and returns the maximum x length, the
// maximum y length and the record count, with no discard filtering applied.
// The pass is destructive to loader position: it re-initializes the stream.
func (l *LazyLoader) Statistics() (Stats, error) {
	if err := l.restart(); err != nil {
		return Stats{}, err
	}
	var stats Stats
	for {
		pair, err := l.stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Stats{}, err
		}
		stats.MaxLenX = max(stats.MaxLenX, len([]rune(pair.X)))
		stats.MaxLenY = max(stats.MaxLenY, len([]rune(pair.Y)))
		stats.NumLines++
	}
	l.state = Exhausted
	slog.Debug("corpus statistics computed",
		"maxLenX", stats.MaxLenX, "maxLenY", stats.MaxLenY, "numLines", stats.NumLines)
	return stats, nil
}

// State reports where the loader sits in its restart cycle.
func (l *LazyLoader) State() State {
	return l.state
}

// Close releases the loader's stream handle.
func (l *LazyLoader) Close() error {
	return l.stream.Close()
}

func (l *LazyLoader) restart() error {
	_ = l.stream.Close()
	stream, err := Open(l.path, l.sep)
	if err != nil {
		return err
	}
	l.stream = stream
	l.state = Streaming
	return nil
}

// Stats summarizes one full pass over the corpus.
type Stats struct {
	MaxLenX  int
	MaxLenY  int
	NumLines int
}
