package ledger

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/tokenized/voting/pkg/address"

	sync "github.com/sasha-s/go-deadlock"
)

var potentialDeadlocks uint64

// ConfigureLocks sets how long a caller may wait on an account lock before the wait is reported
// as a potential deadlock. Zero never reports. A report is counted and written to stderr, it does
// not end the process. Call before any locks are taken.
//
// Lock order detection is off. Lock takes accounts in address order, and account locks are freed
// and reallocated, so pairs recorded against a recycled lock would be false reports.
func ConfigureLocks(timeout time.Duration) {
	sync.Opts.DeadlockTimeout = timeout
	sync.Opts.DisableLockOrderDetection = true
	sync.Opts.OnPotentialDeadlock = func() {
		atomic.AddUint64(&potentialDeadlocks, 1)
	}
}

// PotentialDeadlocks returns the number of lock waits reported since start.
func PotentialDeadlocks() uint64 {
	return atomic.LoadUint64(&potentialDeadlocks)
}

// Locker holds account level read/write locks. Instructions that share a writable account run
// one at a time. Instructions on disjoint accounts run in parallel.
type Locker struct {
	lock  sync.Mutex
	locks map[address.Address]*accountLock
}

type accountLock struct {
	sync.RWMutex
	refs int
}

type heldLock struct {
	address  address.Address
	lock     *accountLock
	writable bool
}

// NewLocker returns an empty Locker.
func NewLocker() *Locker {
	return &Locker{
		locks: make(map[address.Address]*accountLock),
	}
}

// Lock blocks until every account is held and returns the function that releases them. An
// address listed as both writable and read only is write locked. Locks are taken in address
// order so two callers can not deadlock on each other.
func (l *Locker) Lock(writable, readOnly []address.Address) func() {
	modes := make(map[address.Address]bool, len(writable)+len(readOnly))
	for _, a := range readOnly {
		modes[a] = false
	}
	for _, a := range writable {
		modes[a] = true
	}

	held := make([]heldLock, 0, len(modes))
	l.lock.Lock()
	for a, w := range modes {
		al, exists := l.locks[a]
		if !exists {
			al = &accountLock{}
			l.locks[a] = al
		}
		al.refs++
		held = append(held, heldLock{address: a, lock: al, writable: w})
	}
	l.lock.Unlock()

	sort.Slice(held, func(i, j int) bool {
		return held[i].address.Compare(held[j].address) < 0
	})

	for _, h := range held {
		if h.writable {
			h.lock.Lock()
		} else {
			h.lock.RLock()
		}
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			if held[i].writable {
				held[i].lock.Unlock()
			} else {
				held[i].lock.RUnlock()
			}
		}

		l.lock.Lock()
		for _, h := range held {
			h.lock.refs--
			if h.lock.refs == 0 {
				delete(l.locks, h.address)
			}
		}
		l.lock.Unlock()
	}
}

// Len returns the number of addresses with a live lock.
func (l *Locker) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return len(l.locks)
}
