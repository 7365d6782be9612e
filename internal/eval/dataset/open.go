package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Supported dataset formats
const (
	FormatXML     = "xml"
	FormatJSONL   = "jsonl"
	FormatParquet = "parquet"
	FormatCSV     = "csv"
)

// DetectFormat returns the dataset format and compression for path, based
// on its extensions (for example "discs.xml.zst" is zstd-compressed XML).
func DetectFormat(path string) (format, compression string, err error) {
	name := strings.ToLower(filepath.Base(path))

	switch ext := filepath.Ext(name); ext {
	case ".gz", ".zst":
		compression = strings.TrimPrefix(ext, ".")
		name = strings.TrimSuffix(name, ext)
	}

	switch ext := filepath.Ext(name); ext {
	case ".xml":
		format = FormatXML
	case ".jsonl", ".json":
		format = FormatJSONL
	case ".parquet":
		format = FormatParquet
	case ".csv":
		format = FormatCSV
	default:
		return "", "", fmt.Errorf("unsupported file format: %s (supported: .xml, .jsonl, .parquet, .csv, optionally .gz or .zst)", ext)
	}

	return format, compression, nil
}

// openDataset opens path and wraps it in a decompressing reader when the
// name carries a compression extension.
func openDataset(path, compression string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}

	if info, err := file.Stat(); err == nil {
		slog.Debug("Dataset file stats", "path", path, "size_bytes", info.Size(), "compression", compression)
	}

	switch compression {
	case "":
		return file, nil
	case "gz":
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return &stackedReadCloser{Reader: gz, closers: []io.Closer{gz, file}}, nil
	case "zst":
		zr, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return &stackedReadCloser{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), file}}, nil
	default:
		file.Close()
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

// stackedReadCloser closes a decompressor and the file under it
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
