package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"librarium/internal/circulation"
	"librarium/internal/config"
)

// OverdueSweeper periodically flips ISSUED records past their due date to
// OVERDUE. The sweep only rewrites record status; book availability is
// untouched because an overdue book is still out of the building.
type OverdueSweeper struct {
	circulation *circulation.Service
	cfg         config.OverdueSweep

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewOverdueSweeper(circ *circulation.Service, cfg config.OverdueSweep) *OverdueSweeper {
	return &OverdueSweeper{
		circulation: circ,
		cfg:         cfg,
		cron:        cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules the sweep if it is enabled in configuration.
func (s *OverdueSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Overdue sweep: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("invalid overdue sweep schedule '%s': %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Overdue sweep: started with schedule '%s'", s.cfg.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running sweep to complete.
func (s *OverdueSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Overdue sweep: stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *OverdueSweeper) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// RunNow triggers a sweep outside the schedule, for operators who do not
// want to wait for the next cron firing.
func (s *OverdueSweeper) RunNow() (int64, error) {
	return s.circulation.MarkOverdue(time.Now())
}

func (s *OverdueSweeper) runSweep() {
	affected, err := s.circulation.MarkOverdue(time.Now())
	if err != nil {
		log.Printf("Overdue sweep failed: %v", err)
		return
	}
	if affected > 0 {
		log.Printf("Overdue sweep: marked %d record(s) overdue", affected)
	}
}
