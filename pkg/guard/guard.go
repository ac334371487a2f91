package guard

import "sync"

// CropGuard serializes mutations for a single crop. The task pass and a
// concurrent manual completion both rewrite a crop's health scores and task
// rows, so each holds the crop's lock for the duration of its write set.
type CropGuard struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func New() *CropGuard {
	return &CropGuard{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for cropID and returns its unlock func.
func (g *CropGuard) Lock(cropID uint) func() {
	g.mu.Lock()
	l, ok := g.locks[cropID]
	if !ok {
		l = &sync.Mutex{}
		g.locks[cropID] = l
	}
	g.mu.Unlock()

	l.Lock()
	return l.Unlock
}
