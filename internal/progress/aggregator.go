package progress

import (
	"fmt"
	"sync"

	"github.com/ytget/playlist-downloader/internal/model"
)

// Status messages
const (
	MessageIndeterminate  = "Downloading..."
	MessagePercentFormat  = "Downloading: %.2f%%"
	MessageSpeedFormat    = "Downloading: %.2f%% at %.2f KB/s"
	MessageItemDoneFormat = "Completed video %d of %d"
)

const (
	BytesPerKilobyte = 1024.0
	MinTotalItems    = 1
	MaxOverall       = 1.0
)

// Aggregator computes overall = (items_completed + item_fraction) / total_items.
// The overall value never decreases within a run and never exceeds 1.
type Aggregator struct {
	mu        sync.Mutex
	state     model.ProgressState
	highWater float64
}

// New creates an aggregator for a run of total items
func New(total int) *Aggregator {
	a := &Aggregator{}
	a.Reset(total)
	return a
}

// Reset starts a new run
func (a *Aggregator) Reset(total int) {
	if total < MinTotalItems {
		total = MinTotalItems
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = model.ProgressState{TotalItems: total}
	a.highWater = 0
}

// State returns a copy of the current counters
func (a *Aggregator) State() model.ProgressState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Observe folds one item event into the run. Events with a status other than
// downloading or finished are ignored and reported with ok == false.
func (a *Aggregator) Observe(ev model.ItemEvent) (p model.Progress, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch ev.Status {
	case model.ItemStatusDownloading:
		total := ev.TotalBytes
		if total <= 0 {
			total = ev.TotalBytesEstimate
		}
		if total <= 0 {
			return a.snapshot(true, MessageIndeterminate), true
		}

		fraction := float64(ev.DownloadedBytes) / float64(total)
		if fraction < 0 {
			fraction = 0
		}
		if fraction > 1 {
			fraction = 1
		}
		a.raise((float64(a.state.ItemsCompleted) + fraction) / float64(a.state.TotalItems))

		msg := fmt.Sprintf(MessagePercentFormat, a.highWater*100)
		if ev.Speed > 0 {
			msg = fmt.Sprintf(MessageSpeedFormat, a.highWater*100, ev.Speed/BytesPerKilobyte)
		}
		return a.snapshot(false, msg), true

	case model.ItemStatusFinished:
		if a.state.ItemsCompleted < a.state.TotalItems {
			a.state.ItemsCompleted++
		}
		a.raise(float64(a.state.ItemsCompleted) / float64(a.state.TotalItems))
		msg := fmt.Sprintf(MessageItemDoneFormat, a.state.ItemsCompleted, a.state.TotalItems)
		return a.snapshot(false, msg), true
	}

	return model.Progress{}, false
}

func (a *Aggregator) raise(overall float64) {
	if overall > MaxOverall {
		overall = MaxOverall
	}
	if overall > a.highWater {
		a.highWater = overall
	}
}

func (a *Aggregator) snapshot(indeterminate bool, msg string) model.Progress {
	return model.Progress{
		Overall:        a.highWater,
		Indeterminate:  indeterminate,
		Message:        msg,
		ItemsCompleted: a.state.ItemsCompleted,
		TotalItems:     a.state.TotalItems,
	}
}
