package sample

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cast"

	"github.com/vanehq/vane/internal/core"
)

// Heartbeat is a scope with its own configuration: the pulse interval.
type Heartbeat struct {
	*core.ModuleContext

	Interval time.Duration
}

// NewHeartbeat creates the heartbeat scope below parent.
func NewHeartbeat(parent core.Context) (*Heartbeat, error) {
	h := &Heartbeat{}
	mc, err := core.NewModuleContext(parent, "heartbeat", core.WithFields(h), core.WithDeferredCompile())
	if err != nil {
		return nil, err
	}
	h.ModuleContext = mc
	if err := mc.CompileSelf(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Heartbeat) Fields() []core.Field {
	return []core.Field{
		core.ConfigDuration("interval", &h.Interval).WithDefault(5 * time.Second).Describe("time between pulses"),
	}
}

// currentInterval reads the interval from the configuration source.
func (h *Heartbeat) currentInterval() (time.Duration, error) {
	v, err := h.Root().Config().Resolve(h.Key("interval"))
	if err != nil {
		return 0, err
	}
	return cast.ToDurationE(v)
}

// Pulse prints a line every heartbeat interval while enabled.
type Pulse struct {
	scope *Heartbeat
	out   *syncWriter

	Beat core.Message

	mu       sync.Mutex
	interval time.Duration
	count    int
	reset    chan time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func (p *Pulse) Fields() []core.Field {
	return []core.Field{
		core.LangMessage("beat", &p.Beat).WithDefault("beat #{0}"),
	}
}

func (p *Pulse) OnEnable() error {
	if p.stop != nil {
		return nil
	}
	if p.interval = p.scope.Interval; p.interval <= 0 {
		return fmt.Errorf("heartbeat interval must be positive, got %s", p.interval)
	}
	p.reset = make(chan time.Duration)
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.loop(p.interval)
	return nil
}

func (p *Pulse) loop(interval time.Duration) {
	defer close(p.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case d := <-p.reset:
			ticker.Reset(d)
		case <-ticker.C:
			p.mu.Lock()
			p.count++
			n := p.count
			p.mu.Unlock()
			p.out.println(p.Beat.Format(n))
		}
	}
}

func (p *Pulse) OnDisable() error {
	if p.stop == nil {
		return errors.New("pulse is not running")
	}
	close(p.stop)
	<-p.done
	p.stop = nil
	return nil
}

// OnConfigChange applies a changed interval to the scope, so the next enable
// starts with it, and to the running ticker.
func (p *Pulse) OnConfigChange() error {
	d, err := p.scope.currentInterval()
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("heartbeat interval must be positive, got %s", d)
	}
	p.scope.Interval = d
	if d == p.interval || p.stop == nil {
		p.interval = d
		return nil
	}
	p.interval = d
	p.reset <- d
	return nil
}

// Count returns the number of pulses so far.
func (p *Pulse) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}
