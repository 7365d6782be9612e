package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// GroundTruthLoader reads known duplicate pairs. Each entry is returned
// as the list of record ids it references; entries that do not hold
// exactly two ids are passed through unchanged for the evaluator to skip.
type GroundTruthLoader struct {
	path string
}

// NewGroundTruthLoader creates a loader for an XML, JSONL or CSV file
func NewGroundTruthLoader(path string) *GroundTruthLoader {
	return &GroundTruthLoader{path: path}
}

// pairXML is a <pair> element holding <disc> references
type pairXML struct {
	Discs []struct {
		ID string `xml:"id"`
	} `xml:"disc"`
}

// Load reads all pair entries
func (l *GroundTruthLoader) Load() ([][]string, error) {
	format, compression, err := DetectFormat(l.path)
	if err != nil {
		return nil, err
	}

	rc, err := openDataset(l.path, compression)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var entries [][]string
	switch format {
	case FormatXML:
		entries, err = readXMLPairs(rc)
	case FormatJSONL:
		entries, err = readJSONLPairs(rc)
	case FormatCSV:
		entries, err = readCSVPairs(rc)
	default:
		return nil, fmt.Errorf("unsupported ground truth format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("Finished reading ground truth", "path", l.path, "format", format, "entries", len(entries))

	return entries, nil
}

// readXMLPairs collects the <pair> children of the document root
func readXMLPairs(r io.Reader) ([][]string, error) {
	decoder := xml.NewDecoder(r)

	var entries [][]string
	depth := 0
	for {
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
			if t.Name.Local != "pair" {
				if err := decoder.Skip(); err != nil {
					return nil, fmt.Errorf("failed to parse XML: %w", err)
				}
				continue
			}

			var pair pairXML
			if err := decoder.DecodeElement(&pair, &t); err != nil {
				return nil, fmt.Errorf("failed to parse pair %d: %w", len(entries)+1, err)
			}
			ids := make([]string, len(pair.Discs))
			for i, d := range pair.Discs {
				ids[i] = d.ID
			}
			entries = append(entries, ids)
		case xml.EndElement:
			depth--
		}
	}

	return entries, nil
}

// readJSONLPairs reads {"ids": [...]} objects, one per line
func readJSONLPairs(r io.Reader) ([][]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineCapacity)

	var entries [][]string
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var gt groundTruthLine
		if err := json.Unmarshal(line, &gt); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		ids := make([]string, len(gt.IDs))
		for i, id := range gt.IDs {
			ids[i] = string(id)
		}
		entries = append(entries, ids)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ground truth: %w", err)
	}

	return entries, nil
}

// readCSVPairs treats every row as one entry. Lines starting with # are
// comments. Empty cells are kept as empty ids so a row like "1,2," keeps
// its arity of three.
func readCSVPairs(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var entries [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}

		ids := make([]string, len(row))
		for i, field := range row {
			ids[i] = strings.TrimSpace(field)
		}
		entries = append(entries, ids)
	}

	return entries, nil
}
