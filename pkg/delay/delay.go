package delay

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/orgball2608/insta-feed/pkg/logger"
)

// Scheduler runs one-shot delayed functions that can be called off.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    logger.Logger

	mu      sync.Mutex
	pending map[*Handle]struct{}
}

func New(log logger.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create delay scheduler: %w", err)
	}
	return &Scheduler{
		scheduler: s,
		logger:    log.WithComponent("Delay"),
		pending:   map[*Handle]struct{}{},
	}, nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Shutdown cancels everything still pending and stops the scheduler.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	pending := make([]*Handle, 0, len(s.pending))
	for h := range s.pending {
		pending = append(pending, h)
	}
	s.mu.Unlock()

	for _, h := range pending {
		h.Cancel()
	}
	return s.scheduler.Shutdown()
}

// After runs fn once d has passed, unless the returned handle is cancelled
// first. fn may be nil when the caller only waits on Done.
func (s *Scheduler) After(name string, d time.Duration, fn func()) (*Handle, error) {
	h := &Handle{
		name:  name,
		done:  make(chan struct{}),
		owner: s,
	}

	s.mu.Lock()
	s.pending[h] = struct{}{}
	s.mu.Unlock()

	task := gocron.NewTask(func() {
		if !h.fire() {
			return
		}
		s.forget(h)
		if fn != nil {
			fn()
		}
		close(h.done)
	})

	start := gocron.OneTimeJobStartImmediately()
	if d > 0 {
		start = gocron.OneTimeJobStartDateTime(time.Now().Add(d))
	}
	job, err := s.scheduler.NewJob(gocron.OneTimeJob(start), task, gocron.WithName(name))
	if errors.Is(err, gocron.ErrOneTimeJobStartDateTimePast) {
		// The deadline passed before gocron saw it.
		job, err = s.scheduler.NewJob(gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()), task, gocron.WithName(name))
	}
	if err != nil {
		s.forget(h)
		return nil, fmt.Errorf("failed to schedule %s: %w", name, err)
	}

	h.mu.Lock()
	h.id = job.ID()
	h.mu.Unlock()

	s.logger.Debug("Delay scheduled", "name", name, "after", d.String())
	return h, nil
}

func (s *Scheduler) forget(h *Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, h)
}

type state int

const (
	statePending state = iota
	stateFired
	stateCancelled
)

// Handle is one scheduled delay.
type Handle struct {
	name  string
	id    uuid.UUID
	done  chan struct{}
	owner *Scheduler

	mu    sync.Mutex
	state state
}

// Done is closed after the function ran or the handle was cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Fired reports whether the function ran.
func (h *Handle) Fired() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state == stateFired
}

// Cancel stops a pending delay and reports whether it did. The function is
// guaranteed not to run afterwards. Cancelling twice, or after firing, does
// nothing.
func (h *Handle) Cancel() bool {
	h.mu.Lock()
	if h.state != statePending {
		h.mu.Unlock()
		return false
	}
	h.state = stateCancelled
	id := h.id
	h.mu.Unlock()

	close(h.done)

	s := h.owner
	s.forget(h)
	if id != uuid.Nil {
		if err := s.scheduler.RemoveJob(id); err != nil {
			s.logger.Debug("Cancelled delay already gone", "name", h.name, "error", err)
		}
	}
	s.logger.Debug("Delay cancelled", "name", h.name)
	return true
}

func (h *Handle) fire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != statePending {
		return false
	}
	h.state = stateFired
	return true
}
