// README: Value snapshots of ledger entities, safe to hand out after the dispatch lock is released.
package ledger

import "time"

type DriverSummary struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	VIN           string     `json:"vin"`
	Status        Status     `json:"status"`
	TripCount     int        `json:"trip_count"`
	AverageRating float64    `json:"average_rating"`
	TotalRevenue  string     `json:"total_revenue"`
	LastTripEnd   *time.Time `json:"last_trip_end,omitempty"`
}

type PassengerSummary struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone_number"`
	TripCount       int     `json:"trip_count"`
	NetExpenditures string  `json:"net_expenditures"`
	TotalTimeSpentS float64 `json:"total_time_spent_seconds"`
}

type TripSummary struct {
	ID          int64      `json:"id"`
	DriverID    int64      `json:"driver_id"`
	PassengerID int64      `json:"passenger_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Cost        *string    `json:"cost,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
}

func (d *Driver) Summary() DriverSummary {
	s := DriverSummary{
		ID:            d.ID,
		Name:          d.Name,
		VIN:           d.VIN,
		Status:        d.Status,
		TripCount:     len(d.Trips),
		AverageRating: d.AverageRating(),
		TotalRevenue:  d.TotalRevenue().String(),
	}
	if last, ok := d.LastTripEnd(); ok {
		s.LastTripEnd = &last
	}
	return s
}

func (p *Passenger) Summary() PassengerSummary {
	return PassengerSummary{
		ID:              p.ID,
		Name:            p.Name,
		Phone:           p.Phone,
		TripCount:       len(p.Trips),
		NetExpenditures: p.NetExpenditures().String(),
		TotalTimeSpentS: p.TotalTimeSpent().Seconds(),
	}
}

func (t *Trip) Summary() TripSummary {
	s := TripSummary{
		ID:          t.ID,
		DriverID:    t.Driver.ID,
		PassengerID: t.Passenger.ID,
		StartTime:   t.StartTime,
	}
	if t.EndTime != nil {
		end := *t.EndTime
		s.EndTime = &end
	}
	if t.Cost != nil {
		c := t.Cost.String()
		s.Cost = &c
	}
	if t.Rating != nil {
		r := *t.Rating
		s.Rating = &r
	}
	return s
}
