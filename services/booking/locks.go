package booking

import "sync"

// nurseLocks serializes booking creation per nurse so the availability check
// and the insert behave as one linearizable step within this process. The
// transactional re-check in the repository covers multi-instance deployments.
type nurseLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (n *nurseLocks) forNurse(nurseID string) *sync.Mutex {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.locks == nil {
		n.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := n.locks[nurseID]
	if !ok {
		lock = &sync.Mutex{}
		n.locks[nurseID] = lock
	}
	return lock
}
