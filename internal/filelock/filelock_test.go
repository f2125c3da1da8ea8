package filelock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock := NewFileLock(lockPath)

	require.NoError(t, lock.Lock())
	require.NoError(t, lock.Unlock())
}

func TestWithLock_Serializes(t *testing.T) {
	counterPath := filepath.Join(t.TempDir(), "counter.txt")
	require.NoError(t, os.WriteFile(counterPath, []byte("0"), 0644))

	const goroutines = 5
	const iterations = 10

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				err := WithLock(counterPath, func() error {
					data, err := os.ReadFile(counterPath)
					if err != nil {
						return err
					}
					n, _ := strconv.Atoi(string(data))
					return os.WriteFile(counterPath, []byte(strconv.Itoa(n+1)), 0644)
				})
				if err != nil {
					t.Errorf("WithLock failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(counterPath)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(goroutines*iterations), string(data))
}

func TestWithLock_PropagatesError(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "file.yaml")

	err := WithLock(target, func() error { return fmt.Errorf("boom") })

	assert.EqualError(t, err, "boom")
	assert.FileExists(t, target+LockSuffix)
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sub", "config.yaml")

	require.NoError(t, AtomicWrite(target, []byte("first"), 0600))
	require.NoError(t, AtomicWrite(target, []byte("second"), 0600))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLockAndWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, LockAndWrite(target, []byte("log_level: debug\n")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "log_level: debug\n", string(data))
}
