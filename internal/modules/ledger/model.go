// README: Driver, passenger and trip records with their back-references.
package ledger

import (
	"time"
	"unicode/utf8"

	"rideshare/internal/types"
)

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusUnavailable Status = "UNAVAILABLE"
)

// VINLength is the fixed length of a vehicle identification number.
const VINLength = 17

// PlaceholderVIN replaces any VIN whose length is not VINLength.
const PlaceholderVIN = "00000000000000000"

// driverFee is withheld from each trip cost before the driver's share is computed.
var driverFee = types.Cents(165)

const driverSharePercent = 80

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusAvailable, StatusUnavailable:
		return Status(s), true
	}
	return "", false
}

// NormalizeVIN counts characters, not bytes.
func NormalizeVIN(vin string) string {
	if utf8.RuneCountInString(vin) != VINLength {
		return PlaceholderVIN
	}
	return vin
}

type Driver struct {
	ID     int64
	Name   string
	VIN    string
	Status Status
	Trips  []*Trip
}

// AddTrip appends t in assignment order.
func (d *Driver) AddTrip(t *Trip) {
	d.Trips = append(d.Trips, t)
}

// StartTrip records t as the driver's trip in progress.
func (d *Driver) StartTrip(t *Trip) {
	d.Status = StatusUnavailable
	d.AddTrip(t)
}

// LastTripEnd returns the latest end time among completed trips.
func (d *Driver) LastTripEnd() (time.Time, bool) {
	var last time.Time
	found := false
	for _, t := range d.Trips {
		if t.EndTime == nil {
			continue
		}
		if !found || t.EndTime.After(last) {
			last = *t.EndTime
			found = true
		}
	}
	return last, found
}

func (d *Driver) AverageRating() float64 {
	sum, n := 0, 0
	for _, t := range d.Trips {
		if t.Rating == nil {
			continue
		}
		sum += *t.Rating
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// TotalRevenue is the driver's share of completed trip costs after the per-trip fee.
func (d *Driver) TotalRevenue() types.Money {
	total := types.Cents(0)
	for _, t := range d.Trips {
		if t.Cost == nil || t.Cost.Amount <= driverFee.Amount {
			continue
		}
		net := t.Cost.Amount - driverFee.Amount
		total = total.Add(types.Cents(net * driverSharePercent / 100))
	}
	return total
}

type Passenger struct {
	ID    int64
	Name  string
	Phone string
	Trips []*Trip
}

func (p *Passenger) AddTrip(t *Trip) {
	p.Trips = append(p.Trips, t)
}

func (p *Passenger) NetExpenditures() types.Money {
	total := types.Cents(0)
	for _, t := range p.Trips {
		if t.Cost != nil {
			total = total.Add(*t.Cost)
		}
	}
	return total
}

func (p *Passenger) TotalTimeSpent() time.Duration {
	var total time.Duration
	for _, t := range p.Trips {
		if d, ok := t.Duration(); ok {
			total += d
		}
	}
	return total
}

// Trip is completed when EndTime, Cost and Rating are all set, and in progress when none are.
type Trip struct {
	ID        int64
	Driver    *Driver
	Passenger *Passenger
	StartTime time.Time
	EndTime   *time.Time
	Cost      *types.Money
	Rating    *int
}

func (t *Trip) InProgress() bool {
	return t.EndTime == nil
}

func (t *Trip) Duration() (time.Duration, bool) {
	if t.EndTime == nil {
		return 0, false
	}
	return t.EndTime.Sub(t.StartTime), true
}
