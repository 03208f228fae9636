package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/odenysenko/postlens/internal/model"
)

// ReadRecords reads a delimited post export into an ordered sequence of raw
// field mappings. The first row is the header; column order in the file is
// not significant. Rows whose cells are all blank are skipped, matching the
// exporter's habit of leaving trailing empty lines.
func ReadRecords(path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return parseRecords(f)
}

func parseRecords(r io.Reader) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	var records []model.RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if isBlankRow(row) {
			continue
		}

		rec := make(model.RawRecord, len(header))
		for i, value := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			rec[header[i]] = value
		}
		records = append(records, rec)
	}

	return records, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
