package syncs_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MacroPower/abischema/pkg/syncs"
)

var _ syncs.KeyLocker = &syncs.KeyLock{}

func TestKeyLock(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		keys    []string
		writers int
	}{
		"single key": {
			keys:    []string{"contract_types.ts"},
			writers: 100,
		},
		"many keys": {
			keys:    []string{"a.ts", "b.k", "c.schema.json"},
			writers: 40,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			kl := syncs.NewKeyLock()
			counts := make(map[string]*int, len(tc.keys))

			for _, k := range tc.keys {
				counts[k] = new(int)
			}

			var wg sync.WaitGroup

			for _, k := range tc.keys {
				for range tc.writers {
					wg.Add(1)

					go func() {
						defer wg.Done()

						kl.Lock(k)
						defer kl.Unlock(k)

						*counts[k]++
					}()
				}
			}

			wg.Wait()

			for k, n := range counts {
				assert.Equal(t, tc.writers, *n, k)
			}

			assert.Zero(t, kl.Len())
		})
	}
}

func TestKeyLockIndependentKeys(t *testing.T) {
	t.Parallel()

	var kl syncs.KeyLock

	kl.Lock("a")

	done := make(chan struct{})

	go func() {
		kl.Lock("b")
		kl.Unlock("b")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("locking an unrelated key blocked")
	}

	assert.Equal(t, 1, kl.Len())

	kl.Unlock("a")
	assert.Zero(t, kl.Len())
}

func TestKeyLockSameKeyBlocks(t *testing.T) {
	t.Parallel()

	kl := syncs.NewKeyLock()
	kl.Lock("out")

	acquired := make(chan struct{})

	go func() {
		kl.Lock("out")
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a locked key")
	case <-time.After(50 * time.Millisecond):
	}

	kl.Unlock("out")
	<-acquired
	kl.Unlock("out")

	assert.Zero(t, kl.Len())
}

func TestKeyLockUnlockUnheld(t *testing.T) {
	t.Parallel()

	kl := syncs.NewKeyLock()

	assert.PanicsWithValue(t, `syncs: unlock of unlocked key "x"`, func() {
		kl.Unlock("x")
	})
}
