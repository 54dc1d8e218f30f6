package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// progressBar renders an in-place progress bar. It refreshes at a fixed
// interval and supports concurrent Increment calls from worker goroutines.
type progressBar struct {
	w         io.Writer
	total     int64
	processed atomic.Int64
	label     string
	unit      string
	barWidth  int
	start     time.Time
	done      chan struct{}
	once      sync.Once
	mu        sync.Mutex
}

func newProgressBar(w io.Writer, label, unit string, total int64) *progressBar {
	pb := &progressBar{
		w:        w,
		total:    total,
		label:    label,
		unit:     unit,
		barWidth: 30,
		start:    time.Now(),
		done:     make(chan struct{}),
	}
	go pb.run()
	return pb
}

// Increment marks one more item as processed. Safe for concurrent use.
func (pb *progressBar) Increment() {
	pb.processed.Add(1)
}

// Finish stops the refresh loop and prints the final state with a newline.
// Later calls do nothing.
func (pb *progressBar) Finish() {
	pb.once.Do(func() {
		close(pb.done)
		pb.draw()
		fmt.Fprint(pb.w, "\n")
	})
}

func (pb *progressBar) run() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-pb.done:
			return
		case <-ticker.C:
			pb.draw()
		}
	}
}

func (pb *progressBar) draw() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	fmt.Fprint(pb.w, pb.line(time.Since(pb.start)))
}

func (pb *progressBar) line(elapsed time.Duration) string {
	processed := pb.processed.Load()
	total := pb.total

	var frac float64
	if total > 0 {
		frac = float64(processed) / float64(total)
	}
	frac = min(frac, 1)

	filled := int(float64(pb.barWidth) * frac)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", pb.barWidth-filled)

	rate := float64(0)
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(processed) / secs
	}
	return fmt.Sprintf("\r%s [%s] %3.0f%%  %d/%d %s  %.0f/s  %s\033[K",
		pb.label, bar, frac*100, processed, total, pb.unit, rate, formatDuration(elapsed))
}

// formatDuration formats a duration concisely (e.g. "1m23s", "45s", "0s").
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) - m*60
	return fmt.Sprintf("%dm%02ds", m, s)
}
