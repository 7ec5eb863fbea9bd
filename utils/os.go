package utils

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

var interruptSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// CallbackOnInterrupt calls cb once on the first SIGINT or SIGTERM received before ctx is done
func CallbackOnInterrupt(ctx context.Context, cb func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, interruptSignals...)
	go func() {
		defer signal.Stop(c)
		select {
		case <-c:
			cb()
		case <-ctx.Done():
		}
	}()
}

// ProtectedSection records interrupts while active. Work inside the section
// should run on a context detached from interrupt cancellation and check
// Signaled once the section is closed.
type ProtectedSection struct {
	info     string
	ch       chan os.Signal
	done     chan struct{}
	signaled atomic.Bool
}

func StartNewProtectedSection(info string) *ProtectedSection {
	section := &ProtectedSection{
		info: info,
		ch:   make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(section.ch, interruptSignals...)
	go func() {
		defer close(section.done)
		for sig := range section.ch {
			section.signaled.Store(true)
			slog.Warn("received signal", "signal", sig, "info", section.info)
		}
	}()
	return section
}

// Close stops capturing signals. Signals delivered before Close are reflected by Signaled.
func (p *ProtectedSection) Close() {
	signal.Stop(p.ch)
	close(p.ch)
	<-p.done
}

func (p *ProtectedSection) Signaled() bool {
	return p.signaled.Load()
}
