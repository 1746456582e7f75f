package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const progressDots = 40

// progressBar prints a row of dots as deals finish, one dot per 2.5%
type progressBar struct {
	mu          sync.Mutex
	out         io.Writer
	total       int
	dotsPrinted int
	startTime   time.Time
	finished    bool
}

func newProgressBar(out io.Writer, total int) *progressBar {
	fmt.Fprintf(out, "Playing %d deals: ", total)
	return &progressBar{
		out:       out,
		total:     max(total, 1),
		startTime: time.Now(),
	}
}

// Update is safe to call from several goroutines
func (p *progressBar) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total > 0 {
		p.total = total
	}
	target := min(done*progressDots/p.total, progressDots)
	if target > p.dotsPrinted {
		fmt.Fprint(p.out, strings.Repeat(".", target-p.dotsPrinted))
		p.dotsPrinted = target
	}
}

// Finish ends the line with the elapsed time
func (p *progressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return
	}
	p.finished = true
	fmt.Fprintf(p.out, " %.1fs\n", time.Since(p.startTime).Seconds())
}
