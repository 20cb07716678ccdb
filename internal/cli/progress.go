package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/ytget/playlist-downloader/internal/model"
)

// BarTotal is the bar resolution; updates are rendered as whole percents
const BarTotal = 100

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	// ErrorColor prints command failures
	ErrorColor = color.New(color.FgRed)
)

// progressReporter renders session updates as a terminal progress bar
type progressReporter struct {
	out io.Writer

	mu      sync.Mutex
	message string
}

func newProgressReporter(out io.Writer) *progressReporter {
	return &progressReporter{out: out}
}

func (r *progressReporter) setMessage(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.message = msg
}

func (r *progressReporter) currentMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}

// Run drains updates until the channel closes and returns the last one
func (r *progressReporter) Run(name string, updates <-chan model.Update) model.Update {
	p := mpb.New(mpb.WithOutput(r.out), mpb.WithAutoRefresh())
	bar := p.AddBar(BarTotal,
		mpb.PrependDecorators(
			decor.Name(name, decor.WCSyncSpaceR),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.Any(func(decor.Statistics) string { return r.currentMessage() }),
		),
	)

	var last model.Update
	for u := range updates {
		last = u
		r.setMessage(u.Message)
		if !u.Progress.Indeterminate {
			bar.SetCurrent(int64(u.Progress.Percent()))
		}
	}

	if last.Status == model.RunStatusCompleted {
		bar.SetCurrent(BarTotal)
	} else {
		bar.Abort(false)
	}
	p.Wait()

	r.printResult(last)
	return last
}

func (r *progressReporter) printResult(u model.Update) {
	for _, w := range u.Warnings {
		warnColor.Fprintln(r.out, "warning:", w)
	}
	if u.Status != model.RunStatusCompleted {
		return
	}
	successColor.Fprintln(r.out, u.Message)
	if u.OutputPath != "" {
		fmt.Fprintln(r.out, u.OutputPath)
	}
}
