// Package clock is the discrete tick clock that drives every animation and delay.
//
// Work is expressed as tasks due at a future tick. Tasks due on the same tick run
// in the order they were first scheduled. A cancelled task stays queued and is
// dropped when its tick comes around.
package clock

import "container/heap"

// Progress is handed to repeating tasks. Ticks counts invocations from 1 to Of.
type Progress struct {
	Ticks int
	Of    int
}

// Fraction returns Ticks/Of.
func (p Progress) Fraction() float64 {
	if p.Of <= 0 {
		return 1
	}
	return float64(p.Ticks) / float64(p.Of)
}

// Last reports whether this is the final invocation.
func (p Progress) Last() bool {
	return p.Ticks >= p.Of
}

// Task is a handle on scheduled work.
type Task struct {
	due   uint64
	seq   uint64
	index int

	fn    func(Progress)
	count int
	fired int
	alive bool
}

// Cancel makes the task a no-op. Safe on nil and on finished tasks.
func (t *Task) Cancel() {
	if t != nil {
		t.alive = false
	}
}

// Alive reports whether the task will still fire.
func (t *Task) Alive() bool {
	return t != nil && t.alive
}

// Clock counts ticks and runs due tasks on Advance.
type Clock struct {
	ticks uint64
	seq   uint64
	queue taskQueue
}

func New() *Clock {
	return &Clock{}
}

// Ticks returns the number of completed Advance calls.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Pending returns the number of queued tasks, cancelled ones included.
func (c *Clock) Pending() int {
	return len(c.queue)
}

// Delay runs fn once, the given number of ticks from now. Values below 1 mean next tick.
func (c *Clock) Delay(ticks int, fn func()) *Task {
	if ticks < 1 {
		ticks = 1
	}
	return c.schedule(uint64(ticks), 1, func(Progress) { fn() })
}

// Repeat runs fn on each of the next count ticks, starting with the next one.
func (c *Clock) Repeat(count int, fn func(Progress)) *Task {
	if count < 1 {
		count = 1
	}
	return c.schedule(1, count, fn)
}

func (c *Clock) schedule(in uint64, count int, fn func(Progress)) *Task {
	c.seq++
	t := &Task{
		due:   c.ticks + in,
		seq:   c.seq,
		fn:    fn,
		count: count,
		alive: true,
	}
	heap.Push(&c.queue, t)
	return t
}

// Advance moves the clock forward one tick and runs every task due on it.
func (c *Clock) Advance() {
	c.ticks++
	for len(c.queue) > 0 && c.queue[0].due <= c.ticks {
		t := heap.Pop(&c.queue).(*Task)
		if !t.alive {
			continue
		}
		t.fired++
		t.fn(Progress{Ticks: t.fired, Of: t.count})
		if t.fired >= t.count {
			t.alive = false
			continue
		}
		if t.alive {
			t.due = c.ticks + 1
			heap.Push(&c.queue, t)
		}
	}
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
