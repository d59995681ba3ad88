// README: CSV row source reading drivers.csv, passengers.csv and trips.csv from a directory.
package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type CSVSource struct {
	Dir string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

func (s *CSVSource) DriverRows(ctx context.Context) ([]Row, error) {
	return s.readFile(ctx, tableDrivers+".csv")
}

func (s *CSVSource) PassengerRows(ctx context.Context) ([]Row, error) {
	return s.readFile(ctx, tablePassengers+".csv")
}

func (s *CSVSource) TripRows(ctx context.Context) ([]Row, error) {
	return s.readFile(ctx, tableTrips+".csv")
}

func (s *CSVSource) readFile(ctx context.Context, name string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rows, nil
}

// ReadCSV reads a header line followed by records; header names are lower-cased and trimmed.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.ToLower(strings.TrimSpace(h))
	}
	cr.FieldsPerRecord = len(cols)

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = rec[i]
		}
		rows = append(rows, row)
	}
}
