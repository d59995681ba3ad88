// README: SQL row source reading drivers, passengers and trips tables through database/sql.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DriverRows(ctx context.Context) ([]Row, error) {
	return s.queryRows(ctx, tableDrivers, DriverColumns)
}

func (s *Store) PassengerRows(ctx context.Context) ([]Row, error) {
	return s.queryRows(ctx, tablePassengers, PassengerColumns)
}

func (s *Store) TripRows(ctx context.Context) ([]Row, error) {
	return s.queryRows(ctx, tableTrips, TripColumns)
}

// queryRows selects cols from table in id order; every value is scanned as text, NULL becomes "".
func (s *Store) queryRows(ctx context.Context, table string, cols []string) ([]Row, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(cols, ", "), table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var out []Row
	vals := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = vals[i].String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}
