// README: Repository owns the drivers, passengers and trips collections built once at startup.
package ledger

import (
	"context"
	"fmt"
)

// Source hands the loader raw rows for each table, in source order.
type Source interface {
	DriverRows(ctx context.Context) ([]Row, error)
	PassengerRows(ctx context.Context) ([]Row, error)
	TripRows(ctx context.Context) ([]Row, error)
}

// Repository is not safe for concurrent mutation; callers serialize writes.
type Repository struct {
	drivers    []*Driver
	passengers []*Passenger
	trips      []*Trip
}

func NewRepository(drivers []*Driver, passengers []*Passenger, trips []*Trip) *Repository {
	return &Repository{drivers: drivers, passengers: passengers, trips: trips}
}

// Load reads drivers, then passengers, then trips from src and links them.
func Load(ctx context.Context, src Source) (*Repository, error) {
	driverRows, err := src.DriverRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read drivers: %w", err)
	}
	drivers, err := LoadDrivers(driverRows)
	if err != nil {
		return nil, fmt.Errorf("load drivers: %w", err)
	}

	passengerRows, err := src.PassengerRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read passengers: %w", err)
	}
	passengers, err := LoadPassengers(passengerRows)
	if err != nil {
		return nil, fmt.Errorf("load passengers: %w", err)
	}

	tripRows, err := src.TripRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read trips: %w", err)
	}
	trips, err := LoadTrips(tripRows, drivers, passengers)
	if err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}
	return NewRepository(drivers, passengers, trips), nil
}

func (r *Repository) Drivers() []*Driver       { return r.drivers }
func (r *Repository) Passengers() []*Passenger { return r.passengers }
func (r *Repository) Trips() []*Trip           { return r.trips }
func (r *Repository) TripCount() int           { return len(r.trips) }

// FindDriver returns nil without error when no driver has id.
func (r *Repository) FindDriver(id int64) (*Driver, error) {
	return findDriver(r.drivers, id)
}

// FindPassenger returns nil without error when no passenger has id.
func (r *Repository) FindPassenger(id int64) (*Passenger, error) {
	return findPassenger(r.passengers, id)
}

func (r *Repository) FindTrip(id int64) (*Trip, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	for _, t := range r.trips {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *Repository) AppendTrip(t *Trip) {
	r.trips = append(r.trips, t)
}

