package system

import "sort"

// Task is a unit of work the scheduler runs once its due time is reached.
type Task func(now int64)

type scheduled struct {
	dueAt int64
	seq   uint64
	run   Task
}

// Scheduler runs deferred work on the frame loop. Tasks never run
// concurrently with a frame; they run at the start of the first process
// phase whose clock reading has reached their due time.
type Scheduler struct {
	tasks []scheduled
	seq   uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// At schedules fn to run once the clock reaches dueAt. Scheduled tasks
// cannot be cancelled.
func (s *Scheduler) At(dueAt int64, fn Task) {
	s.seq++
	s.tasks = append(s.tasks, scheduled{dueAt: dueAt, seq: s.seq, run: fn})
}

// After schedules fn delayMs after now.
func (s *Scheduler) After(now, delayMs int64, fn Task) {
	if delayMs < 0 {
		delayMs = 0
	}
	s.At(now+delayMs, fn)
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Run executes every task due at now, earliest first, ties in scheduling
// order. Tasks scheduled while running are deferred to the next call.
// It returns the number of tasks run.
func (s *Scheduler) Run(now int64) int {
	if len(s.tasks) == 0 {
		return 0
	}

	var due, pending []scheduled
	for _, t := range s.tasks {
		if t.dueAt <= now {
			due = append(due, t)
		} else {
			pending = append(pending, t)
		}
	}
	if len(due) == 0 {
		return 0
	}
	s.tasks = pending

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].dueAt != due[j].dueAt {
			return due[i].dueAt < due[j].dueAt
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.run(now)
	}
	return len(due)
}
