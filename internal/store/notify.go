package store

import (
	"sync"
	"time"

	"github.com/juju/clock"
)

const DefaultNotifyDelay = 5 * time.Second

// Notifier shows the error of a store as soon as it is set and clears it again after a delay.
// A new operation on the store clears the error too, which hides the notification.
type Notifier struct {
	store *Store
	clock clock.Clock
	delay time.Duration
	show  func(msg string)
	hide  func()

	mu          sync.Mutex
	current     string
	version     uint64
	gen         int
	timer       clock.Timer
	unsubscribe func()
}

func NewNotifier(s *Store, clk clock.Clock, delay time.Duration, show func(msg string), hide func()) *Notifier {
	if clk == nil {
		clk = clock.WallClock
	}
	if hide == nil {
		hide = func() {}
	}
	n := &Notifier{
		store: s,
		clock: clk,
		delay: delay,
		show:  show,
		hide:  hide,
	}
	n.unsubscribe = s.Subscribe(n.onChange)
	return n
}

// Dismiss clears the error before the delay has passed
func (n *Notifier) Dismiss() {
	n.store.ClearError()
}

// Close detaches the notifier from the store. A pending notification is left visible.
func (n *Notifier) Close() {
	n.unsubscribe()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopTimer()
}

func (n *Notifier) onChange(st State) {
	n.mu.Lock()
	if st.Version < n.version {
		n.mu.Unlock()
		return
	}
	n.version = st.Version
	if st.Error == n.current {
		n.mu.Unlock()
		return
	}
	n.current = st.Error
	n.gen++
	n.stopTimer()
	if st.Error != "" {
		gen := n.gen
		n.timer = n.clock.AfterFunc(n.delay, func() { n.expire(gen) })
	}
	n.mu.Unlock()

	if st.Error != "" {
		n.show(st.Error)
	} else {
		n.hide()
	}
}

func (n *Notifier) expire(gen int) {
	n.mu.Lock()
	stale := gen != n.gen
	n.mu.Unlock()
	if !stale {
		n.store.ClearError()
	}
}

func (n *Notifier) stopTimer() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
