package poll

import (
	"context"
	"sync"
	"time"

	"github.com/sahatak/telecare-agent/src/common/logger"
)

type poller struct {
	name     string
	interval time.Duration
	tick     TickFunc

	mu        sync.Mutex
	state     State
	resources map[string]struct{}

	ticker *time.Ticker
	wake   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	done   sync.WaitGroup
}

func NewPoller(name string, interval time.Duration, tick TickFunc) Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &poller{
		name:      name,
		interval:  interval,
		tick:      tick,
		state:     Idle,
		resources: make(map[string]struct{}),
		wake:      make(chan struct{}, 1),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (p *poller) Track(resourceID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resources[resourceID] = struct{}{}
}

func (p *poller) Untrack(resourceID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.resources, resourceID)
}

func (p *poller) Start() {
	p.mu.Lock()
	if p.state != Idle {
		p.mu.Unlock()
		return
	}
	p.state = Polling
	p.ticker = time.NewTicker(p.interval)
	p.mu.Unlock()

	p.done.Add(1)
	go p.loop()
	logger.GetLogger().Debugf("action: poller_start | poller: %s | interval: %s", p.name, p.interval)
}

func (p *poller) Suspend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Polling {
		return
	}
	p.state = Suspended
	p.ticker.Stop()
	logger.GetLogger().Debugf("action: poller_suspend | poller: %s", p.name)
}

func (p *poller) Resume() {
	p.mu.Lock()
	if p.state != Suspended {
		p.mu.Unlock()
		return
	}
	p.state = Polling
	p.ticker.Reset(p.interval)
	p.mu.Unlock()

	logger.GetLogger().Debugf("action: poller_resume | poller: %s", p.name)
	p.Refresh()
}

func (p *poller) Refresh() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *poller) Stop() {
	p.mu.Lock()
	if p.state == Terminated {
		p.mu.Unlock()
		return
	}
	previous := p.state
	p.state = Terminated
	if p.ticker != nil {
		p.ticker.Stop()
	}
	p.mu.Unlock()

	p.cancel()
	if previous != Idle {
		p.done.Wait()
	}
	logger.GetLogger().Debugf("action: poller_stop | poller: %s", p.name)
}

func (p *poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *poller) loop() {
	defer p.done.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.wake:
			p.tickAll()
		case <-p.ticker.C:
			p.tickAll()
		}
	}
}

// tickAll fans out one fetch per tracked resource and waits for all of them.
// Failures are logged, not surfaced; the next scheduled tick is the only retry.
func (p *poller) tickAll() {
	p.mu.Lock()
	if p.state != Polling {
		p.mu.Unlock()
		return
	}
	snapshot := make([]string, 0, len(p.resources))
	for id := range p.resources {
		snapshot = append(snapshot, id)
	}
	p.mu.Unlock()

	var wg sync.WaitGroup
	for _, resourceID := range snapshot {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := p.tick(p.ctx, id); err != nil && p.ctx.Err() == nil {
				logger.GetLogger().Warnf("poller %s tick failed for %s: %v", p.name, id, err)
			}
		}(resourceID)
	}
	wg.Wait()
}
