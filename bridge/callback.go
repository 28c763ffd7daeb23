package bridge

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Callback is an ordered set of connected functions that run together.
// The zero value is ready to use. Connecting and disconnecting are safe
// from any goroutine; Run executes handlers in connection order.
type Callback struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []callbackHandler
}

type callbackHandler struct {
	id uint64
	fn func()
}

// Connect registers fn and returns a token for Disconnect.
func (c *Callback) Connect(fn func()) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.handlers = append(c.handlers, callbackHandler{id: c.nextID, fn: fn})
	return c.nextID
}

// Disconnect removes a previously connected function. Unknown tokens
// are ignored.
func (c *Callback) Disconnect(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, h := range c.handlers {
		if h.id == id {
			c.handlers = append(c.handlers[:i], c.handlers[i+1:]...)
			return
		}
	}
}

// Run executes the connected functions in order. A panicking handler
// is logged and stops the run; later handlers do not execute.
func (c *Callback) Run(log *zap.Logger) {
	c.mu.Lock()
	handlers := make([]callbackHandler, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		if err := runHandler(h.fn); err != nil {
			if log != nil {
				log.Error("callback handler failed", zap.Error(err))
			}
			return
		}
	}
}

func runHandler(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in callback: %v", r)
		}
	}()
	fn()
	return nil
}
