// README: Dispatch service selects drivers by recency and records new trip requests.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"rideshare/internal/modules/ledger"
)

// Locker serializes dispatch across processes. Release must be called once Lock succeeds.
type Locker interface {
	Lock(ctx context.Context) (release func(context.Context) error, err error)
}

// DriverClaims is the shared record of drivers on a trip dispatched by any instance.
// Each instance keeps its own in-memory ledger, so availability seen by one instance
// must be narrowed by the claims of the others before a driver is picked.
type DriverClaims interface {
	Claimed(ctx context.Context) (map[int64]bool, error)
	Claim(ctx context.Context, driverID int64) error
	Unclaim(ctx context.Context, driverID int64) error
}

// Service is safe for concurrent use; every read or write of the ledger happens under mu.
type Service struct {
	mu     sync.Mutex
	repo   *ledger.Repository
	locker Locker
	claims DriverClaims
	now    func() time.Time
}

// NewService wraps repo. locker may be nil for a single-instance deployment.
// When locker also implements DriverClaims, dispatch skips drivers claimed elsewhere.
func NewService(repo *ledger.Repository, locker Locker) *Service {
	s := &Service{repo: repo, locker: locker, now: time.Now}
	if c, ok := locker.(DriverClaims); ok {
		s.claims = c
	}
	return s
}

// WithClock replaces the time source used for trip start and end times.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) FindDriver(id int64) (*ledger.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.FindDriver(id)
}

func (s *Service) FindPassenger(id int64) (*ledger.Passenger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.FindPassenger(id)
}

// FindAvailableDriver returns the AVAILABLE driver whose last completed trip ended longest ago.
// Drivers with no completed trip come first; ties keep input order.
// It reads the local ledger only; RequestTrip also honours claims from other instances.
func (s *Service) FindAvailableDriver() (*ledger.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextDriver(nil)
}

func (s *Service) nextDriver(claimed map[int64]bool) (*ledger.Driver, error) {
	type candidate struct {
		driver  *ledger.Driver
		lastEnd time.Time
		hasEnd  bool
	}
	var pool []candidate
	for _, d := range s.repo.Drivers() {
		if d.Status != ledger.StatusAvailable || claimed[d.ID] {
			continue
		}
		end, ok := d.LastTripEnd()
		pool = append(pool, candidate{driver: d, lastEnd: end, hasEnd: ok})
	}
	if len(pool) == 0 {
		return nil, ErrNoAvailableDriver
	}
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.hasEnd != b.hasEnd {
			return !a.hasEnd
		}
		return a.lastEnd.Before(b.lastEnd)
	})
	return pool[0].driver, nil
}

// RequestTrip assigns the next available driver to passengerID and starts a trip.
func (s *Service) RequestTrip(ctx context.Context, passengerID int64) (*ledger.Trip, error) {
	if passengerID <= 0 {
		return nil, fmt.Errorf("%w: passenger id must be positive (got %d)", ErrInvalidArgument, passengerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	passenger, err := s.repo.FindPassenger(passengerID)
	if err != nil {
		return nil, err
	}
	if passenger == nil {
		return nil, fmt.Errorf("passenger %d: %w", passengerID, ErrNotFound)
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	claimed, err := s.claimedDrivers(ctx)
	if err != nil {
		return nil, err
	}
	driver, err := s.nextDriver(claimed)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.claims != nil {
		if err := s.claims.Claim(ctx, driver.ID); err != nil {
			return nil, fmt.Errorf("claim driver %d: %w", driver.ID, err)
		}
	}

	trip := &ledger.Trip{
		ID:        int64(s.repo.TripCount()) + 1,
		Driver:    driver,
		Passenger: passenger,
		StartTime: s.now(),
	}
	driver.StartTrip(trip)
	passenger.AddTrip(trip)
	s.repo.AppendTrip(trip)

	log.Printf("[DISPATCH] action=request_trip trip_id=%d driver_id=%d passenger_id=%d", trip.ID, driver.ID, passenger.ID)
	return trip, nil
}

// CompleteTrip closes an in-progress trip and returns its driver to AVAILABLE.
func (s *Service) CompleteTrip(ctx context.Context, cmd CompleteCommand) (*ledger.Trip, error) {
	if err := ledger.ValidateRating(cmd.Rating); err != nil {
		return nil, err
	}
	if cmd.Cost.Amount < 0 {
		return nil, fmt.Errorf("%w: negative cost %s", ErrDataFormat, cmd.Cost)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.repo.FindTrip(cmd.TripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, fmt.Errorf("trip %d: %w", cmd.TripID, ErrNotFound)
	}
	if !trip.InProgress() {
		return nil, ErrTripCompleted
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	freed := !hasOtherTripInProgress(trip.Driver, trip)
	if freed && s.claims != nil {
		if err := s.claims.Unclaim(ctx, trip.Driver.ID); err != nil {
			return nil, fmt.Errorf("unclaim driver %d: %w", trip.Driver.ID, err)
		}
	}

	end := s.now()
	if end.Before(trip.StartTime) {
		end = trip.StartTime
	}
	cost, rating := cmd.Cost, cmd.Rating
	trip.EndTime = &end
	trip.Cost = &cost
	trip.Rating = &rating

	if freed {
		trip.Driver.Status = ledger.StatusAvailable
	}

	log.Printf("[DISPATCH] action=complete_trip trip_id=%d driver_id=%d cost=%s rating=%d", trip.ID, trip.Driver.ID, cost, rating)
	return trip, nil
}

func (s *Service) DescribeDriver(id int64) (ledger.DriverSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.repo.FindDriver(id)
	if err != nil {
		return ledger.DriverSummary{}, err
	}
	if d == nil {
		return ledger.DriverSummary{}, fmt.Errorf("driver %d: %w", id, ErrNotFound)
	}
	return d.Summary(), nil
}

// DescribeNextDriver previews the driver RequestTrip would pick right now.
func (s *Service) DescribeNextDriver(ctx context.Context) (ledger.DriverSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claimed, err := s.claimedDrivers(ctx)
	if err != nil {
		return ledger.DriverSummary{}, err
	}
	d, err := s.nextDriver(claimed)
	if err != nil {
		return ledger.DriverSummary{}, err
	}
	return d.Summary(), nil
}

func (s *Service) DescribePassenger(id int64) (ledger.PassengerSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.repo.FindPassenger(id)
	if err != nil {
		return ledger.PassengerSummary{}, err
	}
	if p == nil {
		return ledger.PassengerSummary{}, fmt.Errorf("passenger %d: %w", id, ErrNotFound)
	}
	return p.Summary(), nil
}

func (s *Service) DescribeTrip(id int64) (ledger.TripSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.repo.FindTrip(id)
	if err != nil {
		return ledger.TripSummary{}, err
	}
	if t == nil {
		return ledger.TripSummary{}, fmt.Errorf("trip %d: %w", id, ErrNotFound)
	}
	return t.Summary(), nil
}

// acquire takes the cross-instance lock when one is configured. Callers hold mu.
func (s *Service) acquire(ctx context.Context) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	release, err := s.locker.Lock(ctx)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			log.Printf("[DISPATCH] action=release_lock err=%v", err)
		}
	}, nil
}

func (s *Service) claimedDrivers(ctx context.Context) (map[int64]bool, error) {
	if s.claims == nil {
		return nil, nil
	}
	claimed, err := s.claims.Claimed(ctx)
	if err != nil {
		return nil, fmt.Errorf("read driver claims: %w", err)
	}
	return claimed, nil
}

func hasOtherTripInProgress(d *ledger.Driver, except *ledger.Trip) bool {
	for _, t := range d.Trips {
		if t != except && t.InProgress() {
			return true
		}
	}
	return false
}
