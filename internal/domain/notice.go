package domain

import (
	"sync"
	"time"
)

const DefaultNoticeDelay = 4 * time.Second

// Notice is a single transient message that dismisses itself after a fixed
// delay. Showing a new message replaces the old one and restarts the timer.
type Notice struct {
	delay time.Duration

	mu    sync.Mutex
	msg   string
	gen   uint64
	timer *time.Timer
}

func NewNotice(delay time.Duration) *Notice {
	if delay <= 0 {
		delay = DefaultNoticeDelay
	}
	return &Notice{delay: delay}
}

func (n *Notice) Show(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.msg = msg
	n.timer = time.AfterFunc(n.delay, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// a stale timer must not clear a newer message
		if n.gen == gen {
			n.msg = ""
			n.timer = nil
		}
	})
}

// Current returns the live message, or "" once dismissed.
func (n *Notice) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg
}

func (n *Notice) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.msg = ""
}
