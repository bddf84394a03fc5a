package scheduler

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a unit of scheduled work. The context is cancelled when the task
// is removed or the scheduler stops.
type Task func(ctx context.Context) error

// Scheduler runs named periodic and one-shot maintenance jobs.
type Scheduler struct {
	mu     sync.Mutex
	jobs   map[string]*job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *zap.Logger
}

type job struct {
	cancel   context.CancelFunc
	periodic bool
}

// New creates a Scheduler. Jobs run until Stop is called.
func New(logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*job),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Every runs fn on a fixed interval. A job with the same name is replaced.
func (s *Scheduler) Every(name string, interval time.Duration, fn Task) {
	ctx := s.register(name, true)
	if ctx == nil {
		return
	}
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.run(ctx, name, fn)
			case <-ctx.Done():
				return
			}
		}
	}()
	s.logger.Info("scheduler job registered", zap.String("name", name), zap.Duration("interval", interval))
}

// After runs fn once after delay. A job with the same name is replaced.
func (s *Scheduler) After(name string, delay time.Duration, fn Task) {
	ctx := s.register(name, false)
	if ctx == nil {
		return
	}
	go func() {
		defer s.wg.Done()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
			s.run(ctx, name, fn)
			s.forget(name, ctx)
		case <-ctx.Done():
		}
	}()
}

// Remove cancels a job by name. Unknown names are ignored.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[name]; ok {
		j.cancel()
		delete(s.jobs, name)
	}
}

// Stop cancels every job and waits for running ones to return.
func (s *Scheduler) Stop() {
	s.cancel()
	s.mu.Lock()
	clear(s.jobs)
	s.mu.Unlock()
	s.wg.Wait()
}

// Periodic returns the sorted names of registered interval jobs.
func (s *Scheduler) Periodic() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.jobs))
	for name, j := range s.jobs {
		if j.periodic {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// register returns nil once the scheduler is stopped.
func (s *Scheduler) register(name string, periodic bool) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return nil
	}
	if old, ok := s.jobs[name]; ok {
		old.cancel()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.jobs[name] = &job{cancel: cancel, periodic: periodic}
	s.wg.Add(1)
	return ctx
}

func (s *Scheduler) forget(name string, ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A replacement may already own the name.
	if ctx.Err() == nil {
		if j, ok := s.jobs[name]; ok && !j.periodic {
			j.cancel()
			delete(s.jobs, name)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, name string, fn Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduler job panicked", zap.String("job", name), zap.Any("recover", r))
		}
	}()
	if err := fn(ctx); err != nil && ctx.Err() == nil {
		s.logger.Warn("scheduler job failed", zap.String("job", name), zap.Error(err))
	}
}
