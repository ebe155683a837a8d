package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Task is one periodic job. Run is called once at Start and then every
// Interval; a task never overlaps itself.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

// Scheduler runs independent periodic tasks until stopped.
type Scheduler struct {
	clock clockwork.Clock
	tasks []Task

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Scheduler. Every task needs a positive interval.
func New(clock clockwork.Clock, tasks ...Task) (*Scheduler, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	for _, t := range tasks {
		if t.Interval <= 0 {
			return nil, fmt.Errorf("scheduler: task %q: interval must be positive, got %s", t.Name, t.Interval)
		}
		if t.Run == nil {
			return nil, fmt.Errorf("scheduler: task %q has no Run func", t.Name)
		}
	}
	return &Scheduler{clock: clock, tasks: tasks}, nil
}

// Start launches every task. Calling Start on a running scheduler restarts it.
func (s *Scheduler) Start(ctx context.Context) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, s.cancel = context.WithCancel(ctx)
	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, t)
	}
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(t.Interval)
	defer ticker.Stop()

	t.Run(ctx)
	for {
		select {
		case <-ticker.Chan():
			t.Run(ctx)
		case <-ctx.Done():
			log.Printf("[scheduler] %s stopped\n", t.Name)
			return
		}
	}
}

// Stop cancels all tasks and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}
