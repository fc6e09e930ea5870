package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/jcllobet/mother-in-law-decoder/internal/fsm"
	"github.com/jcllobet/mother-in-law-decoder/internal/ipc"
	"github.com/jcllobet/mother-in-law-decoder/internal/session"
)

// Control bridges socket commands into the running UI. Socket handlers run on
// their own goroutines; requests are queued and the UI drains them on its
// next tick.
type Control struct {
	saveReq chan struct{}
	stopReq chan struct{}

	mu    sync.Mutex
	state fsm.State
	sess  *session.Session
}

// NewControl builds the command bridge for an open session.
func NewControl(sess *session.Session) *Control {
	return &Control{
		saveReq: make(chan struct{}, 1),
		stopReq: make(chan struct{}, 1),
		state:   fsm.StateIdle,
		sess:    sess,
	}
}

// SetState publishes the UI's current state for status responses.
func (c *Control) SetState(state fsm.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

// State returns the last published state.
func (c *Control) State() fsm.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Handle implements ipc.Handler for the save, stop, and status commands.
func (c *Control) Handle(_ context.Context, req ipc.Request) ipc.Response {
	switch req.Command {
	case "status":
		return ipc.Response{
			OK:       true,
			State:    string(c.State()),
			Session:  c.sess.Name(),
			Segments: c.sess.SegmentCount(),
			Tokens:   len(c.sess.Tokens()),
		}
	case "save":
		c.enqueue(c.saveReq)
		return ipc.Response{OK: true, State: string(c.State()), Message: "segment save requested"}
	case "stop":
		c.enqueue(c.stopReq)
		return ipc.Response{OK: true, State: string(c.State()), Message: "stop requested"}
	default:
		return ipc.Response{OK: false, Error: fmt.Sprintf("unknown command %q", req.Command)}
	}
}

// TakeSave drains one pending save request, if any.
func (c *Control) TakeSave() bool {
	return c.take(c.saveReq)
}

// TakeStop drains one pending stop request, if any.
func (c *Control) TakeStop() bool {
	return c.take(c.stopReq)
}

func (c *Control) enqueue(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (c *Control) take(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
