package commands

import (
	"bytes"
	"testing"

	"github.com/dyluth/dilemma/internal/printer"
	"github.com/fatih/color"
)

// captureOutput redirects printer output for the duration of the test
func captureOutput(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	restore := printer.SetOutput(stdout, stderr)
	prevNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		restore()
		color.NoColor = prevNoColor
	})
	return stdout, stderr
}
