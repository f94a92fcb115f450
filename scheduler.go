package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const scheduleLayout = "2006-01-02 15:04"

type scheduledJob struct {
	id    string
	runAt time.Time
	run   func()
}

// Scheduler defers payload delivery to a future wall-clock time. Jobs are
// held in memory and drained by a single loop goroutine; they do not survive
// a restart.
type Scheduler struct {
	mu   sync.Mutex
	jobs []scheduledJob
	wake chan struct{}
	done chan struct{}
	log  *zap.Logger
}

// NewScheduler creates a stopped Scheduler.
func NewScheduler(log *zap.Logger) *Scheduler {
	return &Scheduler{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		log:  log,
	}
}

// Start launches the scheduler loop.
func (s *Scheduler) Start() {
	go s.loop()
}

// Stop terminates the scheduler loop. Pending jobs are discarded.
func (s *Scheduler) Stop() {
	close(s.done)
}

// Schedule queues run for execution at the given time and returns the job id.
// Past or zero timestamps are rejected synchronously.
func (s *Scheduler) Schedule(at time.Time, run func()) (string, error) {
	if !at.After(time.Now()) {
		return "", fmt.Errorf("scheduled time %s is not in the future", at.Format(scheduleLayout))
	}

	job := scheduledJob{id: uuid.NewString(), runAt: at, run: run}
	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}

	s.log.Info("job scheduled", zap.String("job_id", job.id), zap.Time("run_at", at))
	return job.id, nil
}

func (s *Scheduler) loop() {
	for {
		next, ok := s.nextJob()
		if !ok {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}

		timer := time.NewTimer(time.Until(next.runAt))
		select {
		case <-timer.C:
			s.fireDue()
		case <-s.wake:
			timer.Stop()
		case <-s.done:
			timer.Stop()
			return
		}
	}
}

// nextJob returns the earliest pending job.
func (s *Scheduler) nextJob() (scheduledJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.jobs) == 0 {
		return scheduledJob{}, false
	}
	earliest := s.jobs[0]
	for _, j := range s.jobs[1:] {
		if j.runAt.Before(earliest.runAt) {
			earliest = j
		}
	}
	return earliest, true
}

// fireDue removes all due jobs and runs each on its own goroutine so a slow
// delivery cannot hold up the loop.
func (s *Scheduler) fireDue() {
	now := time.Now()

	s.mu.Lock()
	var due []scheduledJob
	remaining := s.jobs[:0]
	for _, j := range s.jobs {
		if !j.runAt.After(now) {
			due = append(due, j)
		} else {
			remaining = append(remaining, j)
		}
	}
	s.jobs = remaining
	s.mu.Unlock()

	for _, j := range due {
		s.log.Info("job fired", zap.String("job_id", j.id))
		go j.run()
	}
}

// parseScheduleInput parses the admin scheduling input
// "YYYY-MM-DD HH:MM <message body>": the first two whitespace-delimited
// tokens are the date and time, the remainder is the payload verbatim.
func parseScheduleInput(text string) (time.Time, string, error) {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 3)
	if len(parts) < 3 {
		return time.Time{}, "", fmt.Errorf("expected format: YYYY-MM-DD HH:MM <текст>")
	}
	at, err := time.ParseInLocation(scheduleLayout, parts[0]+" "+parts[1], time.Local)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid date or time: %w", err)
	}
	return at, parts[2], nil
}
