package components

import (
	"strconv"

	"github.com/pthm/pulse"
	"golang.org/x/net/html"
)

// Counter shows a number that buttons step up or reset.
//
//	<div pulse="counter" step="2">
//	    <b ref="count">0</b>
//	    <button onclick="increment">+</button>
//	    <button onclick="reset">reset</button>
//	</div>
type Counter struct {
	c     *pulse.Component
	count int
}

// NewCounter is the pulse.Definition for Counter.
func NewCounter(c *pulse.Component) any {
	return &Counter{c: c}
}

// Increment adds the step option (default 1).
func (b *Counter) Increment(ev *pulse.Event, el *html.Node) {
	step, err := strconv.Atoi(b.c.Options().Value("step"))
	if err != nil || step == 0 {
		step = 1
	}
	b.count += step
	b.render()
}

// Reset sets the count back to zero.
func (b *Counter) Reset() {
	b.count = 0
	b.render()
}

// Count returns the current value.
func (b *Counter) Count() int {
	return b.count
}

func (b *Counter) render() {
	setText(b.c.Ref("count").Node(), strconv.Itoa(b.count))
}
