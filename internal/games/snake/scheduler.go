package snake

import (
	"sort"
	"time"
)

// Handle identifies a scheduled effect. Zero is never issued.
type Handle uint64

// Scheduler runs delayed effects on behalf of the simulation.
// Effects must be invoked on the same goroutine that drives Tick.
type Scheduler interface {
	// ScheduleAfter arranges for effect to run once after d.
	ScheduleAfter(d time.Duration, effect func()) Handle

	// Cancel drops a pending effect. Unknown or fired handles are ignored.
	Cancel(h Handle)
}

// ManualScheduler is a virtual-time Scheduler. Time only moves when Advance
// is called, which makes bonus and countdown timing deterministic.
type ManualScheduler struct {
	now     time.Duration
	next    Handle
	pending map[Handle]*manualTask
}

type manualTask struct {
	handle Handle
	due    time.Duration
	effect func()
}

// NewManualScheduler creates a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[Handle]*manualTask)}
}

// ScheduleAfter implements Scheduler.
func (m *ManualScheduler) ScheduleAfter(d time.Duration, effect func()) Handle {
	m.next++
	m.pending[m.next] = &manualTask{handle: m.next, due: m.now + d, effect: effect}
	return m.next
}

// Cancel implements Scheduler.
func (m *ManualScheduler) Cancel(h Handle) {
	delete(m.pending, h)
}

// Advance moves virtual time forward by d and runs every effect that falls due,
// in due order. Effects scheduled while advancing run too if they fall inside
// the window.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		task := m.earliest()
		if task == nil || task.due > target {
			break
		}
		delete(m.pending, task.handle)
		m.now = task.due
		task.effect()
	}
	m.now = target
}

// Now returns the current virtual time.
func (m *ManualScheduler) Now() time.Duration {
	return m.now
}

// Pending returns the number of effects waiting to run.
func (m *ManualScheduler) Pending() int {
	return len(m.pending)
}

// earliest returns the next task to run, breaking ties by handle order.
func (m *ManualScheduler) earliest() *manualTask {
	if len(m.pending) == 0 {
		return nil
	}
	tasks := make([]*manualTask, 0, len(m.pending))
	for _, t := range m.pending {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].due != tasks[j].due {
			return tasks[i].due < tasks[j].due
		}
		return tasks[i].handle < tasks[j].handle
	})
	return tasks[0]
}
