// Package sample holds the built-in module tree run by the vane CLI:
//
//	vane
//	├── greeter            Greeting
//	└── heartbeat          Pulse
//	    └── heartbeat_audit  Recorder
package sample

import (
	"fmt"
	"io"
	"sync"

	"github.com/vanehq/vane/internal/core"
)

// Tree gives access to the scopes and components Build attached.
type Tree struct {
	Greeter   *core.ModuleContext
	Greeting  *Greeting
	Heartbeat *Heartbeat
	Pulse     *Pulse
	Audit     *Audit
	Recorder  *Recorder
}

// Build attaches the sample scopes to m. Component output goes to out.
func Build(m *core.Module, out io.Writer) (*Tree, error) {
	w := &syncWriter{w: out}

	greeter, err := core.NewModuleContext(m, "greeter")
	if err != nil {
		return nil, err
	}
	greeting := &Greeting{scope: greeter, out: w}
	if err := greeter.Compile(greeting); err != nil {
		return nil, err
	}

	heartbeat, err := NewHeartbeat(m)
	if err != nil {
		return nil, err
	}
	pulse := &Pulse{scope: heartbeat, out: w}
	if err := heartbeat.Compile(pulse); err != nil {
		return nil, err
	}

	audit, err := NewAudit(heartbeat)
	if err != nil {
		return nil, err
	}
	recorder := &Recorder{scope: audit}
	if err := audit.Compile(recorder); err != nil {
		return nil, err
	}

	return &Tree{
		Greeter:   greeter,
		Greeting:  greeting,
		Heartbeat: heartbeat,
		Pulse:     pulse,
		Audit:     audit,
		Recorder:  recorder,
	}, nil
}

// syncWriter serializes writes from hooks and the pulse goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *syncWriter) println(msg string) {
	_, _ = fmt.Fprintln(s, msg)
}
