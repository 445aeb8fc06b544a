package sitepdf

import (
	"strconv"
	"sync"
)

var _ IDAllocator = (*HeaderIDAllocator)(nil)

// HeaderIDAllocator guarantees heading id uniqueness across every page of a
// run. Create one per run. It is safe for concurrent use.
type HeaderIDAllocator struct {
	mu   sync.Mutex
	used map[string]struct{}
	next map[string]int
}

// NewHeaderIDAllocator returns an empty allocator.
func NewHeaderIDAllocator() *HeaderIDAllocator {
	return &HeaderIDAllocator{
		used: make(map[string]struct{}),
		next: make(map[string]int),
	}
}

// Allocate returns candidate if it is unused, otherwise the first of
// candidate-1, candidate-2, ... that is unused. The result is reserved.
func (a *HeaderIDAllocator) Allocate(candidate string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, taken := a.used[candidate]; !taken {
		a.used[candidate] = struct{}{}
		return candidate
	}

	n := a.next[candidate]
	for {
		n++
		id := candidate + "-" + strconv.Itoa(n)
		if _, taken := a.used[id]; !taken {
			a.next[candidate] = n
			a.used[id] = struct{}{}
			return id
		}
	}
}

// Len returns the number of ids handed out.
func (a *HeaderIDAllocator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.used)
}
