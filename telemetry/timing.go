package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/robinvdvleuten/maestro/output"
)

// TimingCollector records operations as a tree of spans. The first operation
// started becomes the root; a session run under --telemetry roots everything
// at the session itself.
type TimingCollector struct {
	mu      sync.Mutex
	now     func() time.Time
	root    *span
	current *span
	count   int
}

type span struct {
	name     string
	start    time.Time
	end      time.Time
	parent   *span
	children []*span
}

func (s *span) duration() time.Duration {
	if s.end.IsZero() {
		return 0
	}
	return s.end.Sub(s.start)
}

// NewTimingCollector creates an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{now: time.Now}
}

// Start begins timing an operation under the currently running one.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &span{name: name, start: c.now()}
	c.count++

	switch {
	case c.root == nil:
		c.root = s
	case c.current == nil:
		// The root already ended; later operations still hang off it.
		s.parent = c.root
		c.root.children = append(c.root.children, s)
	default:
		s.parent = c.current
		c.current.children = append(c.current.children, s)
	}
	c.current = s

	return &timingTimer{collector: c, span: s}
}

// Operations returns how many operations were started.
func (c *TimingCollector) Operations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Report writes the timing tree to w.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}
	formatTimingTree(w, c.root, c.count, styles)
}

type timingTimer struct {
	collector *TimingCollector
	span      *span
}

func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	if !t.span.end.IsZero() {
		return
	}
	t.span.end = t.collector.now()
	if t.collector.current == t.span {
		t.collector.current = t.span.parent
	}
}

func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	s := &span{name: name, start: t.collector.now(), parent: t.span}
	t.span.children = append(t.span.children, s)
	t.collector.count++

	return &timingTimer{collector: t.collector, span: s}
}
