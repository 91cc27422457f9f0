package batcher

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// ErrNoDataset signals that the dataset archive is missing.
var ErrNoDataset = errors.New("dataset archive not found: run the vectorization build first")

// Archive layout (gzip-compressed, little-endian):
// [magic 'PPDS'] [u32 version] [build uuid 16 bytes] [u64 n]
// then n length-prefixed inputs, then n length-prefixed targets.
const (
	archiveMagic   = "PPDS"
	archiveVersion = uint32(1)
)

func writeArchive(path string, buildID uuid.UUID, inputs, targets []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset archive %s: %w", path, err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	w := bufio.NewWriter(zw)

	if _, err := w.WriteString(archiveMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, archiveVersion); err != nil {
		return err
	}
	if _, err := w.Write(buildID[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(inputs))); err != nil {
		return err
	}
	for _, arr := range [][]string{inputs, targets} {
		for _, s := range arr {
			if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
				return err
			}
			if _, err := w.WriteString(s); err != nil {
				return err
			}
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize dataset archive %s: %w", path, err)
	}
	return f.Close()
}

func readArchive(path string) (uuid.UUID, []string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return uuid.Nil, nil, nil, fmt.Errorf("%w (missing %s)", ErrNoDataset, path)
		}
		return uuid.Nil, nil, nil, fmt.Errorf("failed to open dataset archive %s: %w", path, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return uuid.Nil, nil, nil, fmt.Errorf("failed to decompress dataset archive %s: %w", path, err)
	}
	defer zr.Close()
	r := bufio.NewReader(zr)

	magic := make([]byte, len(archiveMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return uuid.Nil, nil, nil, err
	}
	if string(magic) != archiveMagic {
		return uuid.Nil, nil, nil, fmt.Errorf("dataset archive %s: bad magic %q", path, magic)
	}
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return uuid.Nil, nil, nil, err
	}
	if version != archiveVersion {
		return uuid.Nil, nil, nil, fmt.Errorf("dataset archive %s: unsupported version %d", path, version)
	}
	var buildID uuid.UUID
	if _, err := io.ReadFull(r, buildID[:]); err != nil {
		return uuid.Nil, nil, nil, err
	}
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return uuid.Nil, nil, nil, err
	}

	arrays := make([][]string, 2)
	for a := range arrays {
		arr := make([]string, n)
		for i := uint64(0); i < n; i++ {
			var size uint32
			if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
				return uuid.Nil, nil, nil, err
			}
			buf := make([]byte, size)
			if _, err := io.ReadFull(r, buf); err != nil {
				return uuid.Nil, nil, nil, err
			}
			arr[i] = string(buf)
		}
		arrays[a] = arr
	}
	return buildID, arrays[0], arrays[1], nil
}
