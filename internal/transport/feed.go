// Package transport receives presence and chat events from outside the tick
// loop and buffers them until the next tick boundary.
package transport

import (
	"fmt"
	"strings"
	"sync"
)

type EventKind string

const (
	KindJoin     EventKind = "join"
	KindPresence EventKind = "presence"
	KindMessage  EventKind = "message"
)

// Event is one decoded frame. Which fields are set depends on Kind.
type Event struct {
	Kind      EventKind `json:"type"`
	UID       string    `json:"uid"`
	Username  string    `json:"username,omitempty"`
	RoleColor string    `json:"role_color,omitempty"`
	Presence  string    `json:"presence,omitempty"`
	Channel   string    `json:"channel,omitempty"`
	Text      string    `json:"text,omitempty"`
}

// Validate rejects events the town cannot apply.
func (e Event) Validate() error {
	if strings.TrimSpace(e.UID) == "" {
		return fmt.Errorf("%s event without uid", e.Kind)
	}
	switch e.Kind {
	case KindJoin, KindPresence:
		return nil
	case KindMessage:
		if e.Text == "" {
			return fmt.Errorf("message from %s has no text", e.UID)
		}
		return nil
	}
	return fmt.Errorf("unknown event type %q", e.Kind)
}

// Feed is a thread-safe event buffer. Connections push; the tick loop drains.
type Feed struct {
	mu     sync.Mutex
	events []Event
}

func NewFeed() *Feed {
	return &Feed{}
}

func (f *Feed) Push(e Event) {
	f.mu.Lock()
	f.events = append(f.events, e)
	f.mu.Unlock()
}

// Drain returns every buffered event in arrival order and empties the buffer.
func (f *Feed) Drain() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.events
	f.events = nil
	return out
}

// Len returns the number of buffered events.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}
