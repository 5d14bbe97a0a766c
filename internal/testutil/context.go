package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// DefaultTimeout bounds a test context when the caller passes zero.
const DefaultTimeout = 5 * time.Second

// Context returns a context cancelled when the test ends, when timeout
// passes, or a second before the test binary's deadline. The cancellation
// cause names the test.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	deadline := time.Now().Add(timeout)
	if testDeadline, ok := t.Deadline(); ok && testDeadline.Add(-time.Second).Before(deadline) {
		deadline = testDeadline.Add(-time.Second)
	}
	ctx, cancel := context.WithDeadlineCause(context.Background(), deadline, fmt.Errorf("%s: test context expired", t.Name()))
	t.Cleanup(cancel)
	return ctx
}
