// README: Loader turns raw tabular rows into drivers, passengers and trips and wires their associations.
package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"rideshare/internal/types"
)

// Row is one tabular record keyed by column name.
type Row map[string]string

const (
	tableDrivers    = "drivers"
	tablePassengers = "passengers"
	tableTrips      = "trips"
)

var (
	DriverColumns    = []string{"id", "name", "vin", "status"}
	PassengerColumns = []string{"id", "name", "phone_number"}
	TripColumns      = []string{"id", "driver_id", "passenger_id", "start_time", "end_time", "cost", "rating"}
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func LoadDrivers(rows []Row) ([]*Driver, error) {
	drivers := make([]*Driver, 0, len(rows))
	for i, row := range rows {
		id, err := parseKey(tableDrivers, i, row)
		if err != nil {
			return nil, err
		}
		raw := strings.TrimSpace(row["status"])
		status, ok := ParseStatus(raw)
		if !ok {
			return nil, &FormatError{Table: tableDrivers, Row: i + 1, Column: "status", Value: raw}
		}
		drivers = append(drivers, &Driver{
			ID:     id,
			Name:   row["name"],
			VIN:    NormalizeVIN(row["vin"]),
			Status: status,
		})
	}
	return drivers, nil
}

func LoadPassengers(rows []Row) ([]*Passenger, error) {
	passengers := make([]*Passenger, 0, len(rows))
	for i, row := range rows {
		id, err := parseKey(tablePassengers, i, row)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, &Passenger{
			ID:    id,
			Name:  row["name"],
			Phone: row["phone_number"],
		})
	}
	return passengers, nil
}

// LoadTrips builds trips in row order and appends each to its driver and passenger.
// Trip ids must run 1..n in row order so that new trips can be numbered count+1.
func LoadTrips(rows []Row, drivers []*Driver, passengers []*Passenger) ([]*Trip, error) {
	trips := make([]*Trip, 0, len(rows))
	seen := make(map[int64]bool, len(rows))
	for i, row := range rows {
		id, err := parseKey(tableTrips, i, row)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, &FormatError{Table: tableTrips, Row: i + 1, Column: "id", Value: row["id"],
				Err: fmt.Errorf("duplicate trip id %d", id)}
		}
		seen[id] = true
		if want := int64(i) + 1; id != want {
			return nil, &FormatError{Table: tableTrips, Row: i + 1, Column: "id", Value: row["id"],
				Err: fmt.Errorf("trip ids must be sequential, expected %d", want)}
		}
		driverID, err := parseID(tableTrips, i, row, "driver_id")
		if err != nil {
			return nil, err
		}
		passengerID, err := parseID(tableTrips, i, row, "passenger_id")
		if err != nil {
			return nil, err
		}
		driver, err := findDriver(drivers, driverID)
		if err != nil {
			return nil, fmt.Errorf("trips row %d: %w", i+1, err)
		}
		if driver == nil {
			return nil, fmt.Errorf("trips row %d: driver %d: %w", i+1, driverID, ErrNotFound)
		}
		passenger, err := findPassenger(passengers, passengerID)
		if err != nil {
			return nil, fmt.Errorf("trips row %d: %w", i+1, err)
		}
		if passenger == nil {
			return nil, fmt.Errorf("trips row %d: passenger %d: %w", i+1, passengerID, ErrNotFound)
		}

		trip := &Trip{ID: id, Driver: driver, Passenger: passenger}
		if trip.StartTime, err = parseTime(tableTrips, i, row, "start_time"); err != nil {
			return nil, err
		}
		if err := parseCompletion(trip, i, row); err != nil {
			return nil, err
		}

		driver.AddTrip(trip)
		passenger.AddTrip(trip)
		trips = append(trips, trip)
	}
	return trips, nil
}

// parseCompletion fills end time, cost and rating; all three are empty for a trip in progress.
func parseCompletion(trip *Trip, i int, row Row) error {
	endRaw := strings.TrimSpace(row["end_time"])
	costRaw := strings.TrimSpace(row["cost"])
	ratingRaw := strings.TrimSpace(row["rating"])
	if endRaw == "" && costRaw == "" && ratingRaw == "" {
		return nil
	}

	end, err := parseTime(tableTrips, i, row, "end_time")
	if err != nil {
		return err
	}
	if end.Before(trip.StartTime) {
		return &FormatError{Table: tableTrips, Row: i + 1, Column: "end_time", Value: endRaw,
			Err: fmt.Errorf("ends before start %s", trip.StartTime.Format(time.RFC3339))}
	}
	cost, err := types.ParseMoney(costRaw)
	if err != nil {
		return &FormatError{Table: tableTrips, Row: i + 1, Column: "cost", Value: costRaw, Err: err}
	}
	rating, err := strconv.Atoi(ratingRaw)
	if err != nil {
		return &FormatError{Table: tableTrips, Row: i + 1, Column: "rating", Value: ratingRaw, Err: err}
	}
	if err := ValidateRating(rating); err != nil {
		return &FormatError{Table: tableTrips, Row: i + 1, Column: "rating", Value: ratingRaw, Err: err}
	}

	trip.EndTime = &end
	trip.Cost = &cost
	trip.Rating = &rating
	return nil
}

// ValidateRating rejects ratings outside the 1..5 scale with ErrDataFormat.
func ValidateRating(r int) error {
	if r < 1 || r > 5 {
		return fmt.Errorf("%w: rating %d outside 1..5", ErrDataFormat, r)
	}
	return nil
}

func parseID(table string, i int, row Row, col string) (int64, error) {
	raw := strings.TrimSpace(row[col])
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &FormatError{Table: table, Row: i + 1, Column: col, Value: raw, Err: err}
	}
	return id, nil
}

// parseKey parses the row's own identifier, which must be positive.
func parseKey(table string, i int, row Row) (int64, error) {
	id, err := parseID(table, i, row, "id")
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, &FormatError{Table: table, Row: i + 1, Column: "id", Value: row["id"], Err: ErrInvalidArgument}
	}
	return id, nil
}

func parseTime(table string, i int, row Row, col string) (time.Time, error) {
	raw := strings.TrimSpace(row[col])
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &FormatError{Table: table, Row: i + 1, Column: col, Value: raw}
}

func findDriver(drivers []*Driver, id int64) (*Driver, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	for _, d := range drivers {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func findPassenger(passengers []*Passenger, id int64) (*Passenger, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	for _, p := range passengers {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
