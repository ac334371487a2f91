package guard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameCrop(t *testing.T) {
	g := New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := g.Lock(7)
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestDifferentCropsDoNotBlock(t *testing.T) {
	g := New()

	unlockA := g.Lock(1)
	done := make(chan struct{})
	go func() {
		unlockB := g.Lock(2)
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}
