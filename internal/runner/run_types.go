package runner

import (
	"io"
	"time"
)

type RunDependencies struct {
	RunID     func() (string, error)
	Now       func() time.Time
	OpenStore StoreFactory
}

type RunParams struct {
	RepoRoot      string
	OutputDir     string
	Verbose       bool
	VerboseWriter io.Writer
	NoColor       bool
	// WarningWriter receives skipped-topic and failed-submission warnings.
	WarningWriter io.Writer
	Observer      RunObserver
	Deps          RunDependencies
}

// reportTimeLayout matches "06:48 PM PKT on June 05, 2025".
const reportTimeLayout = "03:04 PM MST on January 02, 2006"

func ensureRunID(factory func() (string, error)) (string, error) {
	if factory == nil {
		factory = NewRunID
	}
	return factory()
}
