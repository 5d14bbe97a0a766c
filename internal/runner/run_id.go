package runner

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// runIDSuffixLen keeps the leading bytes of a random UUID, which are never
// overwritten by the version and variant bits.
const runIDSuffixLen = 12

// NewRunID returns a sortable run id such as 20250605T184800Z-1a2b3c4d5e6f.
func NewRunID() (string, error) {
	return NewRunIDWithRand(time.Now().UTC(), rand.Reader)
}

// NewRunIDWithRand builds a run id from now and a random UUID read from r.
func NewRunIDWithRand(now time.Time, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("random reader is nil")
	}
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	suffix := strings.ReplaceAll(id.String(), "-", "")[:runIDSuffixLen]
	return FormatRunID(now, suffix), nil
}

func FormatRunID(now time.Time, suffix string) string {
	return now.UTC().Format("20060102T150405Z") + "-" + suffix
}
