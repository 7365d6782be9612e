package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"
)

// maxLineCapacity bounds a single JSONL line
const maxLineCapacity = 10 * 1024 * 1024

// Loader reads disc records from an XML, JSONL or Parquet file, optionally
// gzip or zstd compressed
type Loader struct {
	datasetPath string
}

// NewLoader creates a new record loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load reads every record in the dataset
func (l *Loader) Load() ([]DiscRecord, error) {
	return l.LoadSample(0)
}

// LoadSample reads at most limit records; a limit of zero or less reads
// them all
func (l *Loader) LoadSample(limit int) ([]DiscRecord, error) {
	format, compression, err := DetectFormat(l.datasetPath)
	if err != nil {
		return nil, err
	}

	rc, err := openDataset(l.datasetPath, compression)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var records []DiscRecord
	switch format {
	case FormatXML:
		records, err = readXMLDiscs(rc, limit)
	case FormatJSONL:
		records, err = readJSONLDiscs(rc, limit)
	case FormatParquet:
		records, err = readParquetDiscs(rc, limit)
	default:
		return nil, fmt.Errorf("unsupported record format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("Finished reading records", "path", l.datasetPath, "format", format, "total_records", len(records))

	return records, nil
}

// readXMLDiscs decodes every child of the document root as a disc
func readXMLDiscs(r io.Reader, limit int) ([]DiscRecord, error) {
	decoder := xml.NewDecoder(r)

	var records []DiscRecord
	depth := 0
	for limit <= 0 || len(records) < limit {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				depth++
				continue
			}
			var disc DiscRecord
			if err := decoder.DecodeElement(&disc, &t); err != nil {
				return nil, fmt.Errorf("failed to parse disc %d: %w", len(records)+1, err)
			}
			records = append(records, disc)

			if len(records)%1000 == 0 {
				slog.Debug("Reading XML", "records_read", len(records))
			}
		case xml.EndElement:
			depth--
		}
	}

	return records, nil
}

// readJSONLDiscs reads one JSON object per line, skipping blank lines
func readJSONLDiscs(r io.Reader, limit int) ([]DiscRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineCapacity)

	var records []DiscRecord
	lineNum := 0
	for (limit <= 0 || len(records) < limit) && scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var disc DiscRecord
		if err := json.Unmarshal(line, &disc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		records = append(records, disc)

		if lineNum%1000 == 0 {
			slog.Debug("Reading JSONL", "lines_read", lineNum)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	return records, nil
}

// readParquetDiscs buffers the stream so compressed Parquet files can be
// opened with random access
func readParquetDiscs(r io.Reader, limit int) ([]DiscRecord, error) {
	var reader io.ReaderAt
	var size int64

	if f, ok := r.(*os.File); ok {
		if info, err := f.Stat(); err == nil {
			reader, size = f, info.Size()
		}
	}

	if reader == nil {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet data: %w", err)
		}
		reader, size = bytes.NewReader(data), int64(len(data))
	}

	pf, err := parquet.OpenFile(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	pr := parquet.NewGenericReader[DiscRecord](pf)
	defer pr.Close()

	var records []DiscRecord
	rows := make([]DiscRecord, 128)
	for limit <= 0 || len(records) < limit {
		n, err := pr.Read(rows)
		if n > 0 {
			if limit > 0 && n > limit-len(records) {
				n = limit - len(records)
			}
			records = append(records, rows[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return records, nil
}
