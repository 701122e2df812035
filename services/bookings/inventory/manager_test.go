package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/numpang/numpang/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSeatStore is an in-memory SeatStore with the same guarded semantics
// as the Postgres implementation.
type memSeatStore struct {
	mu    sync.Mutex
	seats map[uuid.UUID]int
	total map[uuid.UUID]int

	restoreErr error
}

func newMemSeatStore() *memSeatStore {
	return &memSeatStore{
		seats: make(map[uuid.UUID]int),
		total: make(map[uuid.UUID]int),
	}
}

func (s *memSeatStore) addRide(rideID uuid.UUID, seats int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seats[rideID] = seats
	s.total[rideID] = seats
}

func (s *memSeatStore) AvailableSeats(_ context.Context, rideID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	available, ok := s.seats[rideID]
	if !ok {
		return 0, apperrors.ErrRideNotFound
	}
	return available, nil
}

func (s *memSeatStore) DeductSeats(_ context.Context, rideID uuid.UUID, seats int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	available, ok := s.seats[rideID]
	if !ok {
		return apperrors.ErrRideNotFound
	}
	if available < seats {
		return apperrors.ErrInsufficientSeats
	}
	s.seats[rideID] = available - seats
	return nil
}

func (s *memSeatStore) RestoreSeats(_ context.Context, rideID uuid.UUID, seats int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restoreErr != nil {
		return s.restoreErr
	}
	available, ok := s.seats[rideID]
	if !ok {
		return apperrors.ErrRideNotFound
	}
	restored := available + seats
	if restored > s.total[rideID] {
		restored = s.total[rideID]
	}
	s.seats[rideID] = restored
	return nil
}

func (s *memSeatStore) available(t *testing.T, rideID uuid.UUID) int {
	t.Helper()
	count, err := s.AvailableSeats(context.Background(), rideID)
	require.NoError(t, err)
	return count
}

func TestReserve_DeductsSeatsAndIssuesToken(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)

	manager := NewManager(store, 5*time.Minute)

	token, err := manager.Reserve(context.Background(), rideID, 2)
	require.NoError(t, err)

	assert.Equal(t, rideID, token.RideID)
	assert.Equal(t, 2, token.Seats)
	assert.NotEqual(t, uuid.Nil, token.ID)
	assert.True(t, token.ExpiresAt.After(time.Now()))
	assert.Equal(t, 2, store.available(t, rideID))
}

func TestReserve_InvalidSeatCount(t *testing.T) {
	manager := NewManager(newMemSeatStore(), 5*time.Minute)

	_, err := manager.Reserve(context.Background(), uuid.New(), 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReserve_InsufficientSeats(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 1)

	manager := NewManager(store, 5*time.Minute)

	_, err := manager.Reserve(context.Background(), rideID, 3)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientSeats)
	assert.Equal(t, 1, store.available(t, rideID))
}

func TestReserve_UnknownRide(t *testing.T) {
	manager := NewManager(newMemSeatStore(), 5*time.Minute)

	_, err := manager.Reserve(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, apperrors.ErrRideNotFound)
}

func TestReserve_ConcurrentLastSeat(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 1)

	manager := NewManager(store, 5*time.Minute)

	const attempts = 16
	results := make(chan error, attempts)
	var start sync.WaitGroup
	start.Add(1)

	for i := 0; i < attempts; i++ {
		go func() {
			start.Wait()
			_, err := manager.Reserve(context.Background(), rideID, 1)
			results <- err
		}()
	}
	start.Done()

	var wins, losses int
	for i := 0; i < attempts; i++ {
		if err := <-results; err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInsufficientSeats)
			losses++
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, losses)
	assert.Equal(t, 0, store.available(t, rideID))
}

func TestReserve_ConcurrentNeverOversells(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 5)

	manager := NewManager(store, 5*time.Minute)

	const attempts = 20
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func(seats int) {
			_, err := manager.Reserve(context.Background(), rideID, seats)
			results <- err
		}(1 + i%2)
	}

	for i := 0; i < attempts; i++ {
		<-results
	}

	assert.GreaterOrEqual(t, store.available(t, rideID), 0)
}

func TestCommit_Succeeds(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)

	manager := NewManager(store, 5*time.Minute)

	token, err := manager.Reserve(context.Background(), rideID, 2)
	require.NoError(t, err)

	result, err := manager.Commit(context.Background(), token.ID)
	require.NoError(t, err)

	assert.Equal(t, token.ID, result.Token.ID)
	assert.False(t, result.CommittedAt.IsZero())
	// Committed seats stay deducted
	assert.Equal(t, 2, store.available(t, rideID))
}

func TestCommit_Idempotent(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)

	manager := NewManager(store, 5*time.Minute)

	token, err := manager.Reserve(context.Background(), rideID, 2)
	require.NoError(t, err)

	first, err := manager.Commit(context.Background(), token.ID)
	require.NoError(t, err)

	second, err := manager.Commit(context.Background(), token.ID)
	require.NoError(t, err)

	assert.Equal(t, first.CommittedAt, second.CommittedAt)
	assert.Equal(t, first.Token, second.Token)
	assert.Equal(t, 2, store.available(t, rideID))
}

func TestCommit_UnknownToken(t *testing.T) {
	manager := NewManager(newMemSeatStore(), 5*time.Minute)

	_, err := manager.Commit(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrHoldExpired)
}

func TestCommit_ExpiredHoldRestoresSeats(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)

	manager := NewManager(store, 10*time.Millisecond)

	token, err := manager.Reserve(context.Background(), rideID, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, store.available(t, rideID))

	time.Sleep(20 * time.Millisecond)

	_, err = manager.Commit(context.Background(), token.ID)
	assert.ErrorIs(t, err, apperrors.ErrHoldExpired)
	assert.Equal(t, 4, store.available(t, rideID))
}

func TestCommit_AfterRelease(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)

	manager := NewManager(store, 5*time.Minute)

	token, err := manager.Reserve(context.Background(), rideID, 2)
	require.NoError(t, err)
	require.NoError(t, manager.Release(context.Background(), token.ID))

	_, err = manager.Commit(context.Background(), token.ID)
	assert.ErrorIs(t, err, apperrors.ErrTokenConsumed)
}

func TestRelease_RestoresHeldSeats(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)

	manager := NewManager(store, 5*time.Minute)

	token, err := manager.Reserve(context.Background(), rideID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, store.available(t, rideID))

	require.NoError(t, manager.Release(context.Background(), token.ID))
	assert.Equal(t, 4, store.available(t, rideID))
}

func TestRelease_IsIdempotent(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)

	manager := NewManager(store, 5*time.Minute)

	token, err := manager.Reserve(context.Background(), rideID, 2)
	require.NoError(t, err)

	require.NoError(t, manager.Release(context.Background(), token.ID))
	require.NoError(t, manager.Release(context.Background(), token.ID))

	// Seats restored exactly once
	assert.Equal(t, 4, store.available(t, rideID))
}

func TestRelease_UnknownTokenIsNoop(t *testing.T) {
	manager := NewManager(newMemSeatStore(), 5*time.Minute)
	assert.NoError(t, manager.Release(context.Background(), uuid.New()))
}

func TestRelease_CommittedTokenRestoresSeats(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)

	manager := NewManager(store, 5*time.Minute)

	token, err := manager.Reserve(context.Background(), rideID, 2)
	require.NoError(t, err)
	_, err = manager.Commit(context.Background(), token.ID)
	require.NoError(t, err)

	require.NoError(t, manager.Release(context.Background(), token.ID))
	assert.Equal(t, 4, store.available(t, rideID))
}

func TestReserve_ReclaimsExpiredHolds(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 2)

	manager := NewManager(store, 10*time.Millisecond)

	_, err := manager.Reserve(context.Background(), rideID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, store.available(t, rideID))

	time.Sleep(20 * time.Millisecond)

	// The lapsed hold is reclaimed before the new deduction
	token, err := manager.Reserve(context.Background(), rideID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, token.Seats)
	assert.Equal(t, 0, store.available(t, rideID))
}

func TestExpiry_RetriesRestoreAfterStoreFailure(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 2)

	manager := NewManager(store, 10*time.Millisecond)

	token, err := manager.Reserve(context.Background(), rideID, 2)
	require.NoError(t, err)

	store.mu.Lock()
	store.restoreErr = errors.New("store unavailable")
	store.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	// Restore fails, the hold stays reclaimable
	_, err = manager.Commit(context.Background(), token.ID)
	assert.ErrorIs(t, err, apperrors.ErrHoldExpired)
	assert.Equal(t, 0, store.available(t, rideID))

	store.mu.Lock()
	store.restoreErr = nil
	store.mu.Unlock()

	// The next reserve reclaims it and succeeds
	_, err = manager.Reserve(context.Background(), rideID, 2)
	require.NoError(t, err)
}

func TestSweep_ReclaimsExpiredHolds(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 3)

	manager := NewManager(store, 10*time.Millisecond)

	_, err := manager.Reserve(context.Background(), rideID, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, store.available(t, rideID))

	time.Sleep(20 * time.Millisecond)
	manager.sweep(context.Background())

	assert.Equal(t, 3, store.available(t, rideID))
}

func TestSweep_RetainsCommittedTokens(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)

	manager := NewManager(store, 5*time.Minute)
	ctx := context.Background()

	token, err := manager.Reserve(ctx, rideID, 3)
	require.NoError(t, err)
	_, err = manager.Commit(ctx, token.ID)
	require.NoError(t, err)

	// A confirmed booking can sit for hours before its rider cancels
	manager.rides[rideID].tokens[token.ID].settledAt = time.Now().Add(-2 * time.Hour)
	manager.sweep(ctx)

	require.NoError(t, manager.Release(ctx, token.ID))
	assert.Equal(t, 4, store.available(t, rideID))
}

func TestSweep_DropsReleasedTokensPastRetention(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)

	manager := NewManager(store, 5*time.Minute)
	ctx := context.Background()

	token, err := manager.Reserve(ctx, rideID, 2)
	require.NoError(t, err)
	require.NoError(t, manager.Release(ctx, token.ID))
	assert.Equal(t, 4, store.available(t, rideID))

	manager.rides[rideID].tokens[token.ID].settledAt = time.Now().Add(-2 * time.Hour)
	manager.sweep(ctx)

	_, ok := manager.rides[rideID].tokens[token.ID]
	assert.False(t, ok)

	// A late duplicate release stays a no-op
	require.NoError(t, manager.Release(ctx, token.ID))
	assert.Equal(t, 4, store.available(t, rideID))
}

func TestAdoptHold_ReleaseRestoresSeats(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)
	ctx := context.Background()

	// Seats were deducted durably before the process restarted
	require.NoError(t, store.DeductSeats(ctx, rideID, 2))

	manager := NewManager(store, 5*time.Minute)
	token := Token{ID: uuid.New(), RideID: rideID, Seats: 2, ExpiresAt: time.Now().Add(5 * time.Minute)}
	manager.AdoptHold(token)

	require.NoError(t, manager.Release(ctx, token.ID))
	assert.Equal(t, 4, store.available(t, rideID))
}

func TestAdoptHold_LapsedHoldIsReclaimed(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)
	ctx := context.Background()

	require.NoError(t, store.DeductSeats(ctx, rideID, 3))

	manager := NewManager(store, 5*time.Minute)
	token := Token{ID: uuid.New(), RideID: rideID, Seats: 3, ExpiresAt: time.Now().Add(-time.Second)}
	manager.AdoptHold(token)

	manager.sweep(ctx)
	assert.Equal(t, 4, store.available(t, rideID))

	_, err := manager.Commit(ctx, token.ID)
	assert.ErrorIs(t, err, apperrors.ErrHoldExpired)
}

func TestAdoptCommitted_ReleaseRestoresSeats(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)
	ctx := context.Background()

	require.NoError(t, store.DeductSeats(ctx, rideID, 2))

	manager := NewManager(store, 5*time.Minute)
	token := Token{ID: uuid.New(), RideID: rideID, Seats: 2}
	committedAt := time.Now().Add(-24 * time.Hour)
	manager.AdoptCommitted(token, committedAt)

	// Re-commit is idempotent against the adopted record
	result, err := manager.Commit(ctx, token.ID)
	require.NoError(t, err)
	assert.True(t, result.CommittedAt.Equal(committedAt))

	require.NoError(t, manager.Release(ctx, token.ID))
	assert.Equal(t, 4, store.available(t, rideID))
}

func TestAdopt_KnownTokenIsUntouched(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)
	ctx := context.Background()

	manager := NewManager(store, 5*time.Minute)
	token, err := manager.Reserve(ctx, rideID, 2)
	require.NoError(t, err)

	manager.AdoptCommitted(token, time.Now())

	// The live hold is still held, not committed
	_, err = manager.Commit(ctx, token.ID)
	require.NoError(t, err)

	require.NoError(t, manager.Release(ctx, token.ID))
	assert.Equal(t, 4, store.available(t, rideID))
}

func TestStartStopSweep(t *testing.T) {
	manager := NewManager(newMemSeatStore(), time.Minute)

	manager.StartSweep(10 * time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	manager.StopSweep()

	// Stopping twice is safe
	manager.StopSweep()
}

func TestSeatLifecycle_EndToEnd(t *testing.T) {
	store := newMemSeatStore()
	rideID := uuid.New()
	store.addRide(rideID, 4)

	manager := NewManager(store, 5*time.Minute)
	ctx := context.Background()

	// Two riders hold 2 and 1 seats
	first, err := manager.Reserve(ctx, rideID, 2)
	require.NoError(t, err)
	second, err := manager.Reserve(ctx, rideID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, store.available(t, rideID))

	// A third rider cannot take more than what is left
	_, err = manager.Reserve(ctx, rideID, 2)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientSeats)

	// First rider confirms, second walks away
	_, err = manager.Commit(ctx, first.ID)
	require.NoError(t, err)
	require.NoError(t, manager.Release(ctx, second.ID))
	assert.Equal(t, 2, store.available(t, rideID))

	// The confirmed rider later cancels; their seats come back too
	require.NoError(t, manager.Release(ctx, first.ID))
	assert.Equal(t, 4, store.available(t, rideID))
}
