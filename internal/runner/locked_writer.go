package runner

import (
	"io"
	"sync"
)

// lockedWriter serializes writes to an underlying writer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// Write writes to the underlying writer with a mutex guard.
func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// wrapWriters returns concurrency-safe verbose and warning writers when
// workers > 1.
func wrapWriters(workers int, verboseWriter io.Writer, warningWriter io.Writer) (io.Writer, io.Writer) {
	if workers <= 1 {
		return verboseWriter, warningWriter
	}
	if verboseWriter != nil {
		verboseWriter = &lockedWriter{w: verboseWriter}
	}
	if warningWriter != nil {
		warningWriter = &lockedWriter{w: warningWriter}
	}
	return verboseWriter, warningWriter
}
