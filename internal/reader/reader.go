// Package reader loads tabular files into a dataset.Dataset.
//
// CSV is the primary format. Files ending in .gz or .zst are decompressed
// transparently and the remaining extension decides the format, so
// data.csv.gz is read as gzip-compressed CSV. Files ending in .parquet are
// read with the parquet reader and every value is turned into text.
package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/vegasq/csvcat/internal/dataset"
)

// Options controls how files are decoded
type Options struct {
	// Delimiter for CSV. Zero means ','.
	Delimiter rune
}

// FileAccessError is returned when the input file cannot be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	if errors.Is(e.Err, fs.ErrNotExist) {
		return fmt.Sprintf("file '%s' not found", e.Path)
	}
	return fmt.Sprintf("cannot read file '%s': %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// Format is the decoded file format
type Format int

const (
	FormatCSV Format = iota
	FormatParquet
)

// compression of the input stream
type compression int

const (
	compressionNone compression = iota
	compressionGzip
	compressionZstd
)

// detect resolves compression and format from the file name.
func detect(path string) (Format, compression) {
	name := strings.ToLower(filepath.Base(path))

	comp := compressionNone
	switch {
	case strings.HasSuffix(name, ".gz"):
		comp = compressionGzip
		name = strings.TrimSuffix(name, ".gz")
	case strings.HasSuffix(name, ".zst"):
		comp = compressionZstd
		name = strings.TrimSuffix(name, ".zst")
	case strings.HasSuffix(name, ".zstd"):
		comp = compressionZstd
		name = strings.TrimSuffix(name, ".zstd")
	}

	if strings.HasSuffix(name, ".parquet") {
		return FormatParquet, comp
	}
	return FormatCSV, comp
}

// ReadFile loads the whole file into memory.
//
// Example:
//
//	ds, err := reader.ReadFile("phones.csv", reader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
func ReadFile(path string, opts Options) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	if stat.IsDir() {
		return nil, &FileAccessError{Path: path, Err: errors.New("is a directory")}
	}

	format, comp := detect(path)

	var r io.Reader = file
	switch comp {
	case compressionGzip:
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	case compressionZstd:
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	switch format {
	case FormatParquet:
		if comp == compressionNone {
			return readParquet(file, stat.Size())
		}
		// parquet needs random access, so compressed input is buffered
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress file: %w", err)
		}
		return readParquet(bytes.NewReader(data), int64(len(data)))
	default:
		return ReadCSV(r, opts)
	}
}
