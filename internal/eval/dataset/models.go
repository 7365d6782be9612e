package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lehigh-university-libraries/reclink/internal/linkage"
)

// DiscRecord is a CDDB disc as it appears in the benchmark dumps
type DiscRecord struct {
	ID     Identifier `json:"id" parquet:"id" xml:"id"`
	Artist string     `json:"artist" parquet:"artist" xml:"artist"`
	DTitle string     `json:"dtitle" parquet:"dtitle" xml:"dtitle"`
}

// ToRecord converts the disc to the linkage record shape
func (d DiscRecord) ToRecord() linkage.Record {
	return linkage.Record{
		ID:     string(d.ID),
		Artist: d.Artist,
		Title:  d.DTitle,
	}
}

// Identifier is a record id. JSON sources may write ids as numbers; they
// are kept in their textual form so they compare equal to the same id
// written as a string.
type Identifier string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = Identifier(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = Identifier(n.String())
	return nil
}

// groundTruthLine is one JSONL ground-truth entry
type groundTruthLine struct {
	IDs []Identifier `json:"ids"`
}

// Records converts discs to linkage records
func Records(discs []DiscRecord) []linkage.Record {
	records := make([]linkage.Record, len(discs))
	for i, d := range discs {
		records[i] = d.ToRecord()
	}
	return records
}
