package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/numpang/numpang/internal/pkg/apperrors"
	"github.com/numpang/numpang/internal/pkg/logger"
)

// SeatStore is the persistence surface the manager drives. It is the only
// path through which a ride's available_seats counter changes; the catalog
// repository implements it but does not expose it to any other caller.
type SeatStore interface {
	AvailableSeats(ctx context.Context, rideID uuid.UUID) (int, error)
	DeductSeats(ctx context.Context, rideID uuid.UUID, seats int) error
	RestoreSeats(ctx context.Context, rideID uuid.UUID, seats int) error
}

// Token is a time-bounded claim on N seats of a ride, issued by Reserve
// before a booking is durably recorded.
type Token struct {
	ID        uuid.UUID `json:"id"`
	RideID    uuid.UUID `json:"ride_id"`
	Seats     int       `json:"seats"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CommitResult is the durable outcome of committing a token. Committing
// the same token again returns the identical result.
type CommitResult struct {
	Token       Token     `json:"token"`
	CommittedAt time.Time `json:"committed_at"`
}

type tokenState int

const (
	stateHeld tokenState = iota
	stateCommitted
	stateReleased
	stateExpired
)

// terminalRetention is how long released and expired tokens stay around
// before the sweep drops them. Committed tokens are never swept: the ledger
// may cancel a confirmed booking at any point before departure, and that
// cancel must still find the token to restore its seats.
const terminalRetention = 1 * time.Hour

type tokenRecord struct {
	token       Token
	state       tokenState
	committedAt time.Time
	settledAt   time.Time
}

// rideState serializes all inventory operations for one ride. Contention
// is bounded to callers of the same ride; unrelated rides never share a lock.
type rideState struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*tokenRecord
}

// Manager is the sole mutator of ride seat counters. Reserve, Commit and
// Release run in a per-ride critical section, so two concurrent reservations
// can never both observe the same stale seat count.
type Manager struct {
	store   SeatStore
	holdTTL time.Duration

	mu        sync.Mutex // guards rides and rideIndex, never held across store calls
	rides     map[uuid.UUID]*rideState
	rideIndex map[uuid.UUID]uuid.UUID // token ID -> ride ID

	sweepQuit chan struct{}
	sweepDone chan struct{}
}

// NewManager creates a seat inventory manager with the given hold TTL
func NewManager(store SeatStore, holdTTL time.Duration) *Manager {
	return &Manager{
		store:     store,
		holdTTL:   holdTTL,
		rides:     make(map[uuid.UUID]*rideState),
		rideIndex: make(map[uuid.UUID]uuid.UUID),
	}
}

// Reserve claims seats on a ride. It acquires the ride's exclusive section,
// reclaims any lapsed holds, then performs the guarded decrement and issues
// a token carrying the hold expiry.
func (m *Manager) Reserve(ctx context.Context, rideID uuid.UUID, seats int) (Token, error) {
	if seats < 1 {
		return Token{}, fmt.Errorf("%w: seats must be at least 1", apperrors.ErrValidation)
	}

	rs := m.rideStateFor(rideID)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	m.reclaimExpiredLocked(ctx, rideID, rs)

	if err := m.store.DeductSeats(ctx, rideID, seats); err != nil {
		return Token{}, err
	}

	token := Token{
		ID:        uuid.New(),
		RideID:    rideID,
		Seats:     seats,
		ExpiresAt: time.Now().Add(m.holdTTL),
	}
	rs.tokens[token.ID] = &tokenRecord{token: token, state: stateHeld}

	m.mu.Lock()
	m.rideIndex[token.ID] = rideID
	m.mu.Unlock()

	logger.Debug("Seats reserved",
		logger.String("ride_id", rideID.String()),
		logger.String("token_id", token.ID.String()),
		logger.Int("seats", seats))

	return token, nil
}

// Commit converts a live hold into a durable reservation. It is idempotent:
// committing an already-committed token returns the recorded result without
// touching the seat counter again. A lapsed hold is released and reported
// as ErrHoldExpired; a released token reports ErrTokenConsumed.
func (m *Manager) Commit(ctx context.Context, tokenID uuid.UUID) (CommitResult, error) {
	rideID, rs, ok := m.lookup(tokenID)
	if !ok {
		return CommitResult{}, apperrors.ErrHoldExpired
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	record, ok := rs.tokens[tokenID]
	if !ok {
		return CommitResult{}, apperrors.ErrHoldExpired
	}

	switch record.state {
	case stateCommitted:
		return CommitResult{Token: record.token, CommittedAt: record.committedAt}, nil
	case stateReleased:
		return CommitResult{}, apperrors.ErrTokenConsumed
	case stateExpired:
		return CommitResult{}, apperrors.ErrHoldExpired
	}

	if time.Now().After(record.token.ExpiresAt) {
		m.expireLocked(ctx, rideID, record)
		return CommitResult{}, apperrors.ErrHoldExpired
	}

	record.state = stateCommitted
	record.committedAt = time.Now()
	record.settledAt = record.committedAt

	logger.Info("Reservation committed",
		logger.String("ride_id", rideID.String()),
		logger.String("token_id", tokenID.String()),
		logger.Int("seats", record.token.Seats))

	return CommitResult{Token: record.token, CommittedAt: record.committedAt}, nil
}

// Release returns a token's seats to the ride. Held and committed tokens
// are restored exactly once; releasing an already-released, expired or
// unknown token is a no-op, not an error.
func (m *Manager) Release(ctx context.Context, tokenID uuid.UUID) error {
	rideID, rs, ok := m.lookup(tokenID)
	if !ok {
		return nil
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	record, ok := rs.tokens[tokenID]
	if !ok {
		return nil
	}

	switch record.state {
	case stateReleased, stateExpired:
		return nil
	}

	if record.state == stateHeld && time.Now().After(record.token.ExpiresAt) {
		m.expireLocked(ctx, rideID, record)
		return nil
	}

	if err := m.store.RestoreSeats(ctx, rideID, record.token.Seats); err != nil {
		return err
	}
	record.state = stateReleased
	record.settledAt = time.Now()

	logger.Info("Reservation released",
		logger.String("ride_id", rideID.String()),
		logger.String("token_id", tokenID.String()),
		logger.Int("seats", record.token.Seats))

	return nil
}

// AdoptHold registers a hold whose seats were already deducted durably,
// typically while rebuilding the token table from the ledger after a
// restart. The seat counter is not touched. A token that is already known
// is left untouched.
func (m *Manager) AdoptHold(token Token) {
	rs := m.rideStateFor(token.RideID)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if _, ok := rs.tokens[token.ID]; ok {
		return
	}
	rs.tokens[token.ID] = &tokenRecord{token: token, state: stateHeld}

	m.mu.Lock()
	m.rideIndex[token.ID] = token.RideID
	m.mu.Unlock()

	logger.Info("Adopted seat hold",
		logger.String("ride_id", token.RideID.String()),
		logger.String("token_id", token.ID.String()),
		logger.Int("seats", token.Seats))
}

// AdoptCommitted registers an already-committed token, so a later cancel of
// its confirmed booking can restore the seats. A token that is already
// known is left untouched.
func (m *Manager) AdoptCommitted(token Token, committedAt time.Time) {
	rs := m.rideStateFor(token.RideID)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if _, ok := rs.tokens[token.ID]; ok {
		return
	}
	rs.tokens[token.ID] = &tokenRecord{
		token:       token,
		state:       stateCommitted,
		committedAt: committedAt,
		settledAt:   committedAt,
	}

	m.mu.Lock()
	m.rideIndex[token.ID] = token.RideID
	m.mu.Unlock()

	logger.Info("Adopted committed reservation",
		logger.String("ride_id", token.RideID.String()),
		logger.String("token_id", token.ID.String()),
		logger.Int("seats", token.Seats))
}

// StartSweep launches the background reclaim of expired holds
func (m *Manager) StartSweep(interval time.Duration) {
	m.sweepQuit = make(chan struct{})
	m.sweepDone = make(chan struct{})

	go func() {
		defer close(m.sweepDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.sweep(context.Background())
			case <-m.sweepQuit:
				return
			}
		}
	}()
}

// StopSweep stops the background sweep and waits for it to finish
func (m *Manager) StopSweep() {
	if m.sweepQuit == nil {
		return
	}
	close(m.sweepQuit)
	<-m.sweepDone
	m.sweepQuit = nil
}

// sweep reclaims lapsed holds across all rides and drops released and
// expired tokens past the retention window. Committed tokens are kept so
// a later cancel can still restore their seats.
func (m *Manager) sweep(ctx context.Context) {
	m.mu.Lock()
	states := make(map[uuid.UUID]*rideState, len(m.rides))
	for rideID, rs := range m.rides {
		states[rideID] = rs
	}
	m.mu.Unlock()

	for rideID, rs := range states {
		rs.mu.Lock()
		m.reclaimExpiredLocked(ctx, rideID, rs)

		var dropped []uuid.UUID
		for id, record := range rs.tokens {
			settled := record.state == stateReleased || record.state == stateExpired
			if settled && time.Since(record.settledAt) > terminalRetention {
				delete(rs.tokens, id)
				dropped = append(dropped, id)
			}
		}
		rs.mu.Unlock()

		if len(dropped) > 0 {
			m.mu.Lock()
			for _, id := range dropped {
				delete(m.rideIndex, id)
			}
			m.mu.Unlock()
		}
	}
}

// reclaimExpiredLocked restores seats of lapsed holds. Caller holds rs.mu.
func (m *Manager) reclaimExpiredLocked(ctx context.Context, rideID uuid.UUID, rs *rideState) {
	now := time.Now()
	for _, record := range rs.tokens {
		if record.state == stateHeld && now.After(record.token.ExpiresAt) {
			m.expireLocked(ctx, rideID, record)
		}
	}
}

// expireLocked moves a held token to expired and restores its seats.
// Caller holds rs.mu.
func (m *Manager) expireLocked(ctx context.Context, rideID uuid.UUID, record *tokenRecord) {
	if err := m.store.RestoreSeats(ctx, rideID, record.token.Seats); err != nil {
		// Leave the token held so the next reclaim retries the restore
		logger.Error("Failed to restore seats for expired hold",
			logger.String("ride_id", rideID.String()),
			logger.String("token_id", record.token.ID.String()),
			logger.Err(err))
		return
	}
	record.state = stateExpired
	record.settledAt = time.Now()

	logger.Info("Reservation hold expired",
		logger.String("ride_id", rideID.String()),
		logger.String("token_id", record.token.ID.String()),
		logger.Int("seats", record.token.Seats))
}

// rideStateFor returns the per-ride state, creating it on first use
func (m *Manager) rideStateFor(rideID uuid.UUID) *rideState {
	m.mu.Lock()
	defer m.mu.Unlock()

	rs, ok := m.rides[rideID]
	if !ok {
		rs = &rideState{tokens: make(map[uuid.UUID]*tokenRecord)}
		m.rides[rideID] = rs
	}
	return rs
}

// lookup resolves a token ID to its ride and state
func (m *Manager) lookup(tokenID uuid.UUID) (uuid.UUID, *rideState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rideID, ok := m.rideIndex[tokenID]
	if !ok {
		return uuid.Nil, nil, false
	}
	rs, ok := m.rides[rideID]
	if !ok {
		return uuid.Nil, nil, false
	}
	return rideID, rs, true
}
