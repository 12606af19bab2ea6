/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package pool holds the idle-session queue, the in-use counter, and the
// acquire/release/release_all state machine described in DESIGN.md. It is
// the component with the most to get wrong: a mutex-guarded FIFO queue
// paired with a lock-free atomic counter that is deliberately not
// snapshottable together with the queue.
package pool

import (
	"sync"
	"sync/atomic"

	liberr "github.com/rohitjoshi/connpool/errors"
	"github.com/rohitjoshi/connpool/logging"
	"github.com/rohitjoshi/connpool/poolconfig"
	"github.com/rohitjoshi/connpool/session"
)

// Pool holds an idle queue of Sessions, tracks in-use count, and serves
// acquire/release against a single Endpoint Config.
type Pool struct {
	mu   sync.Mutex
	idle []session.Session

	inUse int32

	min           int
	max           int
	allowOverflow bool

	cfg poolconfig.Config
	log logging.Logger
}

// New constructs an empty Pool. No sockets are opened; call Init to eagerly
// warm the idle queue. Precondition: min <= max.
func New(min, max int, allowOverflow bool, cfg poolconfig.Config, log logging.Logger) (*Pool, liberr.Error) {
	if min < 0 || max < 0 || min > max {
		return nil, ErrorInvalidBounds.Error(nil)
	}
	if log == nil {
		log = logging.Discard()
	}

	return &Pool{
		idle:          make([]session.Session, 0, max),
		min:           min,
		max:           max,
		allowOverflow: allowOverflow,
		cfg:           cfg.Normalize().Clone(),
		log:           log,
	}, nil
}

// Init opens exactly min Sessions in sequence and enqueues them into the idle
// queue, whose capacity for max was reserved by New. If any open fails, Init stops, keeps
// whatever it has already opened, and returns false.
func (p *Pool) Init() bool {
	p.log.Event("pool.init.begin", logging.NewFields().Add("min", p.min).Add("max", p.max))

	ok := true
	for i := 0; i < p.min; i++ {
		s, err := session.Connect(p.cfg, p.log)
		if err != nil {
			p.log.EventError("pool.init.session_failed", logging.NewFields().Add("attempt", i), err)
			ok = false
			break
		}

		p.log.Event("pool.init.session_created", logging.NewFields().Add("session_id", s.ID()))

		p.mu.Lock()
		p.idle = append(p.idle, s)
		p.mu.Unlock()
	}

	p.log.Event("pool.init.end", logging.NewFields().Add("ok", ok).Add("idle_count", p.IdleCount()))
	return ok
}

// Acquire returns a ready session: the front of the idle queue if non-empty,
// otherwise a newly opened one (subject to the max/allow_overflow bound).
func (p *Pool) Acquire() (session.Session, liberr.Error) {
	p.mu.Lock()
	if len(p.idle) > 0 {
		s := p.idle[0]
		p.idle = p.idle[1:]
		atomic.AddInt32(&p.inUse, 1)
		p.mu.Unlock()

		p.log.Event("pool.acquire.reuse", logging.NewFields().Add("session_id", s.ID()))
		return s, nil
	}

	total := int(atomic.LoadInt32(&p.inUse))
	if total >= p.max && !p.allowOverflow {
		p.mu.Unlock()
		p.log.Event("pool.acquire.exhausted", logging.NewFields().Add("total", total).Add("max", p.max))
		return nil, ErrorExhausted.Error(nil)
	}
	p.mu.Unlock()

	s, err := session.Connect(p.cfg, p.log)
	if err != nil {
		return nil, err
	}
	atomic.AddInt32(&p.inUse, 1)

	p.log.Event("pool.acquire.open_new", logging.NewFields().Add("session_id", s.ID()))
	return s, nil
}

// Release applies the reinsertion policy: a valid Session is reinserted only
// while the warm set sits below min; otherwise it decrements in_use and lets
// the Session be destroyed. The decision uses min, not max, by design — see
// DESIGN.md.
func (p *Pool) Release(s session.Session) {
	p.mu.Lock()

	idleLen := len(p.idle)
	inUse := int(atomic.LoadInt32(&p.inUse))

	// inUse still counts the Session being released here, so the low-water
	// comparison is against inUse-1; idleLen+inUse <= p.min is that
	// comparison rearranged to avoid underflow.
	if s.Valid() && idleLen+inUse <= p.min {
		p.idle = append(p.idle, s)
		atomic.AddInt32(&p.inUse, -1)
		p.mu.Unlock()

		p.log.Event("pool.release.reinserted", logging.NewFields().Add("session_id", s.ID()))
		return
	}

	atomic.AddInt32(&p.inUse, -1)
	p.mu.Unlock()

	event := "pool.release.destroyed_over_min"
	if !s.Valid() {
		event = "pool.release.destroyed_invalid"
	}
	p.log.Event(event, logging.NewFields().Add("session_id", s.ID()))
	s.Close()
}

// ReleaseAll clears the idle queue (destroying every Session in it) and
// resets in_use to zero. It is a reset, not a graceful drain: it does not
// wait for outstanding borrows. Callers must quiesce borrows first.
func (p *Pool) ReleaseAll() {
	p.mu.Lock()
	victims := p.idle
	p.idle = make([]session.Session, 0, p.max)
	p.mu.Unlock()

	for _, s := range victims {
		s.Close()
	}
	atomic.StoreInt32(&p.inUse, 0)

	p.log.Event("pool.release_all", logging.NewFields().Add("destroyed", len(victims)))
}

// Destroy is the explicit drop helper for a Session the caller knows is
// unusable: it decrements in_use and destroys the Session. It does not touch
// the idle queue.
func (p *Pool) Destroy(s session.Session) {
	atomic.AddInt32(&p.inUse, -1)
	s.Close()
}

// IdleCount returns the current length of the idle queue.
func (p *Pool) IdleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// InUse returns the current in-use counter. Combined with IdleCount the sum
// is racy by construction; see DESIGN.md.
func (p *Pool) InUse() int {
	return int(atomic.LoadInt32(&p.inUse))
}
