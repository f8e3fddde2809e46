package sink

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gamecatalog/lib/catalog"
)

// WriteCSV writes the header row followed by one row per record, in order.
func WriteCSV(w io.Writer, records []catalog.GameRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(catalog.Columns); err != nil {
		return err
	}
	for _, record := range records {
		if err := writer.Write(record.Row()); err != nil {
			return fmt.Errorf("write appid %d: %w", record.AppID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// CSVFile writes records to a UTF-8 CSV file at Path, creating parent
// directories and replacing any previous file.
type CSVFile struct {
	Path string
}

func (f CSVFile) Write(_ context.Context, records []catalog.GameRecord) (err error) {
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(f.Path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	return WriteCSV(file, records)
}

// ReadCSV reads a file produced by CSVFile back into header and rows.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("csv has no header row")
	}
	return rows[0], rows[1:], nil
}
