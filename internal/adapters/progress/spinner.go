package progress

import (
	"context"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/trebuchet-org/chaindeploy/internal/config"
	"github.com/trebuchet-org/chaindeploy/internal/usecase"
)

// SpinnerSink reports progress with a terminal spinner on stderr.
type SpinnerSink struct {
	spinner *spinner.Spinner
}

// NewSpinnerSink creates a spinner-based progress sink.
func NewSpinnerSink() *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.HideCursor = false
	return &SpinnerSink{spinner: s}
}

// OnProgress handles progress events.
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Spinner {
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		r.spinner.Suffix = " " + event.Message
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message without garbling the spinner.
func (r *SpinnerSink) Info(message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	color.New(color.FgCyan).Fprintln(os.Stderr, message)

	if wasActive {
		r.spinner.Start()
	}
}

// Error prints an error message without garbling the spinner.
func (r *SpinnerSink) Error(message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	color.New(color.FgRed).Fprintln(os.Stderr, message)

	if wasActive {
		r.spinner.Start()
	}
}

// NewSink picks the spinner sink on interactive terminals and the no-op
// sink otherwise, so piped output stays clean.
func NewSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || !isatty.IsTerminal(os.Stderr.Fd()) {
		return NewNopSink()
	}
	return NewSpinnerSink()
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
