package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of work per key: only the most recently scheduled
// func for a key runs, delay after the last Schedule call.
type Debouncer struct {
	mu       sync.Mutex
	idle     *sync.Cond
	delay    time.Duration
	pending  map[string]*task
	keys     map[string]*keyState
	inflight int
	seq      uint64
	closed   bool
}

type task struct {
	seq   uint64
	timer *time.Timer
	fn    func()
}

// keyState serializes runs of one key. It lives only while a task of that key
// is running or about to run, so idle keys hold no memory.
type keyState struct {
	mu      sync.Mutex
	lastRun uint64
	refs    int
}

func New(delay time.Duration) *Debouncer {
	d := &Debouncer{
		delay:   delay,
		pending: make(map[string]*task),
		keys:    make(map[string]*keyState),
	}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Schedule replaces any pending func for key. After Close the func runs
// synchronously.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	d.seq++
	t := &task{seq: d.seq, fn: fn}
	if d.closed {
		ks := d.acquireLocked(key)
		d.mu.Unlock()
		d.run(key, ks, t)
		return
	}
	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}
	d.pending[key] = t
	t.timer = time.AfterFunc(d.delay, func() { d.fire(key, t) })
	d.mu.Unlock()
}

// Flush runs every pending func now and returns once nothing is running,
// including funcs whose timer had already fired.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	due := make(map[string]*task, len(d.pending))
	states := make(map[string]*keyState, len(d.pending))
	for key, t := range d.pending {
		t.timer.Stop()
		due[key] = t
		states[key] = d.acquireLocked(key)
	}
	d.pending = make(map[string]*task)
	d.mu.Unlock()

	var wg sync.WaitGroup
	for key, t := range due {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.run(key, states[key], t)
		}()
	}
	wg.Wait()
	d.waitIdle()
}

// Close flushes and switches to synchronous execution.
func (d *Debouncer) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.Flush()
}

func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Busy reports whether key has a func waiting, running or about to run.
func (d *Debouncer) Busy(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, pending := d.pending[key]
	_, running := d.keys[key]
	return pending || running
}

// Tracked is the number of keys with a task running or about to run.
func (d *Debouncer) Tracked() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.keys)
}

func (d *Debouncer) fire(key string, t *task) {
	d.mu.Lock()
	if d.pending[key] != t {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	ks := d.acquireLocked(key)
	d.mu.Unlock()

	d.run(key, ks, t)
}

// run executes funcs of one key one at a time and drops any that are older
// than the last one already executed.
func (d *Debouncer) run(key string, ks *keyState, t *task) {
	defer d.release(key, ks)

	ks.mu.Lock()
	defer ks.mu.Unlock()
	if t.seq < ks.lastRun {
		return
	}
	ks.lastRun = t.seq
	t.fn()
}

// acquireLocked pins the key state before the task leaves d.mu, so a task
// taken off pending earlier always shares state with any later one.
func (d *Debouncer) acquireLocked(key string) *keyState {
	ks, ok := d.keys[key]
	if !ok {
		ks = &keyState{}
		d.keys[key] = ks
	}
	ks.refs++
	d.inflight++
	return ks
}

func (d *Debouncer) release(key string, ks *keyState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ks.refs--
	if ks.refs == 0 {
		delete(d.keys, key)
	}
	d.inflight--
	if d.inflight == 0 {
		d.idle.Broadcast()
	}
}

func (d *Debouncer) waitIdle() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for d.inflight > 0 {
		d.idle.Wait()
	}
}
