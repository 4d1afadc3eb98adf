// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"bytes"
	"slices"
	"sync"

	"github.com/luxfi/ids"
)

// addressLocks hands out exclusive access to sets of addresses. Lock entries
// are reference counted and removed once nobody holds or waits for them.
type addressLocks struct {
	mu    sync.Mutex
	locks map[ids.ID]*addressLock
}

type addressLock struct {
	sync.Mutex
	refs int
}

func newAddressLocks() *addressLocks {
	return &addressLocks{
		locks: make(map[ids.ID]*addressLock),
	}
}

// Lock blocks until every address in [addrs] is held and returns the release
// function. Addresses are acquired in byte order, so two callers can never
// deadlock on overlapping sets.
func (l *addressLocks) Lock(addrs []ids.ID) func() {
	sorted := slices.Clone(addrs)
	slices.SortFunc(sorted, func(a, b ids.ID) int {
		return bytes.Compare(a[:], b[:])
	})
	sorted = slices.Compact(sorted)

	held := make([]*addressLock, len(sorted))
	l.mu.Lock()
	for i, addr := range sorted {
		lock, ok := l.locks[addr]
		if !ok {
			lock = &addressLock{}
			l.locks[addr] = lock
		}
		lock.refs++
		held[i] = lock
	}
	l.mu.Unlock()

	for _, lock := range held {
		lock.Lock()
	}

	return func() {
		for _, lock := range held {
			lock.Unlock()
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		for i, addr := range sorted {
			held[i].refs--
			if held[i].refs == 0 {
				delete(l.locks, addr)
			}
		}
	}
}

// len returns the number of tracked addresses.
func (l *addressLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
