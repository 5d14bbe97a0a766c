package testutil

import (
	"testing"
	"time"
)

// Eventually polls fn until it returns nil or timeout elapses, then fails
// with the last error.
func Eventually(t testing.TB, timeout time.Duration, fn func() error) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		err := fn()
		if err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before timeout: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
