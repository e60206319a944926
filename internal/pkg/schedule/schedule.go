package schedule

import (
	"sync"
	"time"
)

// Task is a pending one-shot callback. Cancel reports whether the call
// stopped the task before it ran.
type Task interface {
	Cancel() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	After(d time.Duration, f func()) Task
}

// Real schedules on the runtime timer.
type Real struct{}

func (Real) After(d time.Duration, f func()) Task {
	return timerTask{time.AfterFunc(d, f)}
}

type timerTask struct{ t *time.Timer }

func (t timerTask) Cancel() bool { return t.t.Stop() }

// Fake is a controllable Scheduler for tests. Tasks only run when Fire is
// called. Safe for use across goroutines.
type Fake struct {
	mu    sync.Mutex
	tasks []*FakeTask
}

// FakeTask is a task registered on a Fake.
type FakeTask struct {
	Delay     time.Duration
	f         func()
	mu        sync.Mutex
	cancelled bool
	fired     bool
}

func (t *FakeTask) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Cancelled reports whether Cancel stopped the task.
func (t *FakeTask) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

func NewFake() *Fake { return &Fake{} }

func (f *Fake) After(d time.Duration, fn func()) Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &FakeTask{Delay: d, f: fn}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns every task registered so far, cancelled or not.
func (f *Fake) Tasks() []*FakeTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeTask(nil), f.tasks...)
}

// Fire runs every task that is neither cancelled nor already fired and
// returns how many ran.
func (f *Fake) Fire() int {
	n := 0
	for _, t := range f.Tasks() {
		t.mu.Lock()
		run := !t.cancelled && !t.fired
		t.fired = t.fired || run
		t.mu.Unlock()
		if run {
			t.f()
			n++
		}
	}
	return n
}
