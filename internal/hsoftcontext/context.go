package hsoftcontext

import (
	"context"
	"fmt"
	"sync"
)

// ContextErr is a cancelable context whose Err carries the cancellation cause.
type ContextErr struct {
	context.Context
	cancelInner context.CancelFunc

	err error
	m   sync.Mutex
}

func (c *ContextErr) Err() error {
	c.m.Lock()
	defer c.m.Unlock()

	if c.err == nil {
		c.err = c.Context.Err()
	}

	return c.err
}

func (c *ContextErr) cancel(err error) {
	c.m.Lock()
	defer c.m.Unlock()

	if c.err != nil {
		return
	}

	c.cancelInner()
	if err == nil {
		c.err = c.Context.Err()
	} else {
		c.err = fmt.Errorf("%w: %w", c.Context.Err(), err)
	}
}

var _ context.Context = (*ContextErr)(nil)

func WithCancel(octx context.Context) (context.Context, func(err error)) {
	ctx, cancel := context.WithCancel(octx)

	ctx2 := &ContextErr{
		Context:     ctx,
		cancelInner: cancel,
	}

	return ctx2, ctx2.cancel
}
