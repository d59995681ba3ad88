// README: Loader tests covering parsing, VIN normalization and trip association.
package ledger

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDrivers(t *testing.T) {
	drivers, err := LoadDrivers([]Row{
		{"id": "1", "name": "Bernardo Prosacco", "vin": "WBWSS52P9NEYLVDE9", "status": "UNAVAILABLE"},
		{"id": "2", "name": "Emory Rosenbaum", "vin": "short", "status": "AVAILABLE"},
	})
	if err != nil {
		t.Fatalf("load drivers: %v", err)
	}
	if len(drivers) != 2 {
		t.Fatalf("expected 2 drivers, got %d", len(drivers))
	}
	first := drivers[0]
	if first.ID != 1 || first.Name != "Bernardo Prosacco" || first.Status != StatusUnavailable {
		t.Fatalf("unexpected first driver: %+v", first)
	}
	if first.VIN != "WBWSS52P9NEYLVDE9" {
		t.Fatalf("valid VIN was rewritten: %s", first.VIN)
	}
	if drivers[1].VIN != PlaceholderVIN {
		t.Fatalf("expected placeholder VIN, got %s", drivers[1].VIN)
	}
}

func TestLoadDriversRejectsUnknownStatus(t *testing.T) {
	_, err := LoadDrivers([]Row{
		{"id": "1", "name": "A", "vin": PlaceholderVIN, "status": "AVAILABLE"},
		{"id": "2", "name": "B", "vin": PlaceholderVIN, "status": "ON_BREAK"},
	})
	if !errors.Is(err, ErrDataFormat) {
		t.Fatalf("expected ErrDataFormat, got %v", err)
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %T", err)
	}
	if fe.Row != 2 || fe.Column != "status" || fe.Value != "ON_BREAK" {
		t.Fatalf("unexpected format error: %+v", fe)
	}
}

func TestLoadDriversRejectsBadID(t *testing.T) {
	_, err := LoadDrivers([]Row{{"id": "x1", "name": "A", "vin": PlaceholderVIN, "status": "AVAILABLE"}})
	if !errors.Is(err, ErrDataFormat) {
		t.Fatalf("expected ErrDataFormat, got %v", err)
	}
}

func TestLoadPassengers(t *testing.T) {
	passengers, err := LoadPassengers([]Row{
		{"id": "1", "name": "Nina Hintz Sr.", "phone_number": "560.815.3059"},
	})
	if err != nil {
		t.Fatalf("load passengers: %v", err)
	}
	p := passengers[0]
	if p.ID != 1 || p.Name != "Nina Hintz Sr." || p.Phone != "560.815.3059" {
		t.Fatalf("unexpected passenger: %+v", p)
	}
}

func TestLoadTripsAssociates(t *testing.T) {
	drivers, passengers := fixturePeople(t)
	trips, err := LoadTrips([]Row{
		tripRow("1", "1", "2", "2016-04-05T14:01:00+00:00", "2016-04-05T14:09:00+00:00", "10.00", "3"),
		tripRow("2", "1", "1", "2016-05-05 10:00:00 -0700", "", "", ""),
	}, drivers, passengers)
	if err != nil {
		t.Fatalf("load trips: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	for _, trip := range trips {
		if !containsTrip(trip.Driver.Trips, trip) {
			t.Errorf("trip %d missing from driver %d", trip.ID, trip.Driver.ID)
		}
		if !containsTrip(trip.Passenger.Trips, trip) {
			t.Errorf("trip %d missing from passenger %d", trip.ID, trip.Passenger.ID)
		}
	}
	if drivers[0].Trips[0].ID != 1 || drivers[0].Trips[1].ID != 2 {
		t.Fatalf("driver trips out of row order")
	}

	done := trips[0]
	if done.InProgress() || done.Cost.Amount != 1000 || *done.Rating != 3 {
		t.Fatalf("unexpected completed trip: %+v", done)
	}
	if d, ok := done.Duration(); !ok || d != 8*time.Minute {
		t.Fatalf("expected 8m duration, got %v %v", d, ok)
	}
	open := trips[1]
	if !open.InProgress() || open.Cost != nil || open.Rating != nil {
		t.Fatalf("expected in-progress trip, got %+v", open)
	}
}

func TestLoadTripsUnknownDriver(t *testing.T) {
	drivers, passengers := fixturePeople(t)
	_, err := LoadTrips([]Row{
		tripRow("1", "99", "1", "2016-04-05T14:01:00+00:00", "", "", ""),
	}, drivers, passengers)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadTripsUnknownPassenger(t *testing.T) {
	drivers, passengers := fixturePeople(t)
	_, err := LoadTrips([]Row{
		tripRow("1", "1", "42", "2016-04-05T14:01:00+00:00", "", "", ""),
	}, drivers, passengers)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadTripsNonPositiveReference(t *testing.T) {
	drivers, passengers := fixturePeople(t)
	_, err := LoadTrips([]Row{
		tripRow("1", "0", "1", "2016-04-05T14:01:00+00:00", "", "", ""),
	}, drivers, passengers)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestLoadTripsFormatErrors(t *testing.T) {
	cases := []struct {
		name string
		row  Row
		col  string
	}{
		{"bad start", tripRow("1", "1", "1", "yesterday", "", "", ""), "start_time"},
		{"bad end", tripRow("1", "1", "1", "2016-04-05T14:01:00Z", "later", "1.00", "3"), "end_time"},
		{"end before start", tripRow("1", "1", "1", "2016-04-05T14:01:00Z", "2016-04-05T13:00:00Z", "1.00", "3"), "end_time"},
		{"bad cost", tripRow("1", "1", "1", "2016-04-05T14:01:00Z", "2016-04-05T14:30:00Z", "ten", "3"), "cost"},
		{"bad rating", tripRow("1", "1", "1", "2016-04-05T14:01:00Z", "2016-04-05T14:30:00Z", "1.00", "x"), "rating"},
		{"rating out of range", tripRow("1", "1", "1", "2016-04-05T14:01:00Z", "2016-04-05T14:30:00Z", "1.00", "6"), "rating"},
		{"partial completion", tripRow("1", "1", "1", "2016-04-05T14:01:00Z", "2016-04-05T14:30:00Z", "", ""), "cost"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			drivers, passengers := fixturePeople(t)
			_, err := LoadTrips([]Row{tc.row}, drivers, passengers)
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %v", err)
			}
			if !errors.Is(err, ErrDataFormat) {
				t.Fatalf("expected ErrDataFormat in chain, got %v", err)
			}
			if fe.Column != tc.col {
				t.Fatalf("expected column %s, got %s", tc.col, fe.Column)
			}
		})
	}
}

func TestLoadTripsRequiresSequentialIDs(t *testing.T) {
	start := "2016-04-05T14:01:00Z"
	cases := []struct {
		name string
		ids  []string
		row  int
	}{
		{"gap at start", []string{"2", "3"}, 1},
		{"duplicate", []string{"1", "1"}, 2},
		{"out of order", []string{"2", "1"}, 1},
		{"skipped", []string{"1", "2", "4"}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			drivers, passengers := fixturePeople(t)
			var rows []Row
			for _, id := range tc.ids {
				rows = append(rows, tripRow(id, "1", "1", start, "", "", ""))
			}
			trips, err := LoadTrips(rows, drivers, passengers)
			if trips != nil {
				t.Fatalf("expected no trips on failure, got %d", len(trips))
			}
			var fe *FormatError
			if !errors.As(err, &fe) || !errors.Is(err, ErrDataFormat) {
				t.Fatalf("expected data format error, got %v", err)
			}
			if fe.Column != "id" || fe.Row != tc.row {
				t.Fatalf("expected id error on row %d, got column %s row %d", tc.row, fe.Column, fe.Row)
			}
		})
	}
}

func fixturePeople(t *testing.T) ([]*Driver, []*Passenger) {
	t.Helper()
	drivers, err := LoadDrivers([]Row{
		{"id": "1", "name": "Bernardo Prosacco", "vin": "WBWSS52P9NEYLVDE9", "status": "UNAVAILABLE"},
		{"id": "2", "name": "Emory Rosenbaum", "vin": "1B9WEX2R92R12900E", "status": "AVAILABLE"},
	})
	if err != nil {
		t.Fatalf("load drivers: %v", err)
	}
	passengers, err := LoadPassengers([]Row{
		{"id": "1", "name": "Nina Hintz Sr.", "phone_number": "560.815.3059"},
		{"id": "2", "name": "Kaia Klocko", "phone_number": "(392) 217-0777"},
	})
	if err != nil {
		t.Fatalf("load passengers: %v", err)
	}
	return drivers, passengers
}

func tripRow(id, driverID, passengerID, start, end, cost, rating string) Row {
	return Row{
		"id":           id,
		"driver_id":    driverID,
		"passenger_id": passengerID,
		"start_time":   start,
		"end_time":     end,
		"cost":         cost,
		"rating":       rating,
	}
}

func containsTrip(trips []*Trip, want *Trip) bool {
	for _, t := range trips {
		if t == want {
			return true
		}
	}
	return false
}
