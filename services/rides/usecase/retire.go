package usecase

import (
	"context"
	"time"

	"github.com/numpang/numpang/internal/pkg/logger"
	"github.com/numpang/numpang/services/rides"
)

// RetireSweeper periodically soft-retires rides whose departure time has
// passed, so they stop appearing in searches without being deleted.
type RetireSweeper struct {
	ridesRepo rides.RideRepo
	quit      chan struct{}
	done      chan struct{}
}

func NewRetireSweeper(rideRepo rides.RideRepo) *RetireSweeper {
	return &RetireSweeper{ridesRepo: rideRepo}
}

// Start launches the background retire loop.
func (s *RetireSweeper) Start(interval time.Duration) {
	s.quit = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.retire(context.Background())
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop halts the retire loop and waits for it to finish.
func (s *RetireSweeper) Stop() {
	if s.quit == nil {
		return
	}
	close(s.quit)
	<-s.done
	s.quit = nil
}

func (s *RetireSweeper) retire(ctx context.Context) {
	retired, err := s.ridesRepo.RetireExpired(ctx, time.Now())
	if err != nil {
		logger.Warn("Ride retire sweep failed", logger.Err(err))
		return
	}
	if retired > 0 {
		logger.Info("Retired departed rides", logger.Int64("count", retired))
	}
}
