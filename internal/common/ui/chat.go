// Package ui holds the in-process stand-ins for the page's mount points:
// the chat message list, select controls, submit buttons and result panels.
// Every widget is safe for concurrent use.
package ui

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// BubbleID identifies one message in a ChatBox.
type BubbleID string

type BubbleKind string

const (
	BubbleUser BubbleKind = "user"
	BubbleBot  BubbleKind = "bot"
)

type Bubble struct {
	ID   BubbleID
	Kind BubbleKind
	Text string
}

// ChatBox is the ordered message list. Bubbles are addressed by the handle
// Append returns, never by position.
type ChatBox struct {
	mu       sync.RWMutex
	bubbles  []Bubble
	index    map[BubbleID]int
	onChange func(Bubble)
}

func NewChatBox() *ChatBox {
	return &ChatBox{index: make(map[BubbleID]int)}
}

// Append adds a bubble at the end and returns its handle.
func (c *ChatBox) Append(kind BubbleKind, text string) BubbleID {
	b := Bubble{ID: BubbleID(uuid.NewString()), Kind: kind, Text: text}

	c.mu.Lock()
	c.index[b.ID] = len(c.bubbles)
	c.bubbles = append(c.bubbles, b)
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(b)
	}
	return b.ID
}

// Replace rewrites the text of an existing bubble in place.
func (c *ChatBox) Replace(id BubbleID, text string) error {
	c.mu.Lock()
	i, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("bubble %s not found", id)
	}
	c.bubbles[i].Text = text
	b := c.bubbles[i]
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(b)
	}
	return nil
}

// Get returns a copy of one bubble.
func (c *ChatBox) Get(id BubbleID) (Bubble, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return Bubble{}, false
	}
	return c.bubbles[i], true
}

// Bubbles returns a snapshot in display order.
func (c *ChatBox) Bubbles() []Bubble {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Bubble, len(c.bubbles))
	copy(out, c.bubbles)
	return out
}

// OnChange registers a listener called after every append or replace.
// It runs on the caller's goroutine, outside the box's lock.
func (c *ChatBox) OnChange(fn func(Bubble)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}
