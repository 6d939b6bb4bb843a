// Package spinner shows progress while an analysis runs.
package spinner

import (
	"time"

	"github.com/briandowns/spinner"
)

var loader *spinner.Spinner

// StartSpinner starts the loading spinner on stdout.
func StartSpinner() {
	loader = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	loader.Color("yellow") //nolint:errcheck
	loader.Suffix = " Analyzing security groups..."
	loader.Start()
}

// StopSpinner stops the loading spinner if one is running.
func StopSpinner() {
	if loader != nil {
		loader.Stop()
		loader = nil
	}
}
