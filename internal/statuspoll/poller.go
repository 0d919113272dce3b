// Package statuspoll drives the multi-host status window: a repeating timer
// fetches the operation summary and the newest answer wins the display.
package statuspoll

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/samqfs/samqfsui/internal/protocol"
)

var (
	ErrAlreadyRunning  = errors.New("status poller already running")
	ErrInvalidInterval = errors.New("status poll interval must be positive")
	ErrNoFetcher       = errors.New("status poller has no fetcher")
)

type Fetcher interface {
	Fetch(ctx context.Context) (protocol.HostStatusSummary, error)
}

type FetcherFunc func(ctx context.Context) (protocol.HostStatusSummary, error)

func (f FetcherFunc) Fetch(ctx context.Context) (protocol.HostStatusSummary, error) {
	return f(ctx)
}

type Display interface {
	Show(protocol.HostStatusSummary)
}

type DisplayFunc func(protocol.HostStatusSummary)

func (f DisplayFunc) Show(s protocol.HostStatusSummary) { f(s) }

// Poller issues one fetch per tick. Fetches may overlap when the endpoint is
// slower than the interval; a response is only shown if no later-issued
// response has been shown already.
type Poller struct {
	Fetcher Fetcher
	Display Display
	// StopWhen, when set, disarms the poller after a summary it accepts.
	StopWhen func(protocol.HostStatusSummary) bool
	OnError  func(error)

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	issued  uint64
	inner   sync.WaitGroup
	showMu  sync.Mutex
	applyMu sync.Mutex
	applied uint64
	latest  protocol.HostStatusSummary
	seen    bool
}

func (p *Poller) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	if p.Fetcher == nil {
		return ErrNoFetcher
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.gen++
	p.cancel = cancel
	gen := p.gen

	p.inner.Add(1)
	go p.loop(runCtx, gen, interval)
	return nil
}

// Stop disarms the timer. It is safe to call any number of times, including
// from a Display callback.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Wait blocks until the loop and all in-flight fetches have returned.
func (p *Poller) Wait() {
	p.inner.Wait()
}

// Latest returns the most recently displayed summary.
func (p *Poller) Latest() (protocol.HostStatusSummary, bool) {
	p.applyMu.Lock()
	defer p.applyMu.Unlock()
	return p.latest, p.seen
}

func (p *Poller) loop(ctx context.Context, gen uint64, interval time.Duration) {
	defer p.inner.Done()
	defer p.disarm(gen)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			p.issued++
			seq := p.issued
			p.mu.Unlock()

			p.inner.Add(1)
			go p.fetch(ctx, seq)
		}
	}
}

func (p *Poller) disarm(gen uint64) {
	p.mu.Lock()
	if p.gen == gen && p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()
}

func (p *Poller) fetch(ctx context.Context, seq uint64) {
	defer p.inner.Done()

	sum, err := p.Fetcher.Fetch(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		slog.Warn("status poll failed", "seq", seq, "error", err)
		if p.OnError != nil {
			p.OnError(err)
		}
		return
	}
	if p.apply(ctx, seq, sum) && p.StopWhen != nil && p.StopWhen(sum) {
		p.Stop()
	}
}

// apply records sum unless a later-issued summary was already recorded, then
// shows it. showMu keeps displays in issue order; Show runs without applyMu so
// a Display may call Latest.
func (p *Poller) apply(ctx context.Context, seq uint64, sum protocol.HostStatusSummary) bool {
	p.showMu.Lock()
	defer p.showMu.Unlock()

	p.applyMu.Lock()
	if seq <= p.applied || ctx.Err() != nil {
		p.applyMu.Unlock()
		return false
	}
	p.applied = seq
	p.latest = sum
	p.seen = true
	p.applyMu.Unlock()

	if p.Display != nil {
		p.Display.Show(sum)
	}
	return true
}
