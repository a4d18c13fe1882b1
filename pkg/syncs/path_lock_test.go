package syncs_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/abischema/pkg/syncs"
)

func TestKey(t *testing.T) {
	t.Parallel()

	wd, err := os.Getwd()
	require.NoError(t, err)

	tcs := map[string]string{
		"contract_types.ts":        filepath.Join(wd, "contract_types.ts"),
		"./contract_types.ts":      filepath.Join(wd, "contract_types.ts"),
		"out/../contract_types.ts": filepath.Join(wd, "contract_types.ts"),
		"/tmp/abischema//types.ts": "/tmp/abischema/types.ts",
	}

	for input, want := range tcs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			got, err := syncs.Key(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestPathLock(t *testing.T) {
	t.Parallel()

	pl := syncs.NewPathLock()
	dir := t.TempDir()

	counter := 0

	const n = 50

	var wg sync.WaitGroup
	wg.Add(n)

	for i := range n {
		go func() {
			defer wg.Done()

			// Alternate spellings of the same path.
			path := filepath.Join(dir, "out.ts")
			if i%2 == 0 {
				path = filepath.Join(dir, "x", "..", "out.ts")
			}

			unlock, err := pl.Lock(path)
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			counter++
		}()
	}

	wg.Wait()

	assert.Equal(t, n, counter)
}

func TestPathLockIndependentPaths(t *testing.T) {
	t.Parallel()

	pl := syncs.NewPathLock()
	dir := t.TempDir()

	unlockA, err := pl.Lock(filepath.Join(dir, "a.ts"))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		unlockB, err := pl.Lock(filepath.Join(dir, "b.ts"))
		assert.NoError(t, err)
		unlockB()
		close(done)
	}()

	<-done
	unlockA()
}
