// Package chat holds the assistant overlay's conversation state.
//
// The controller never talks to the network. Submit hands out a Request and
// the caller reports the outcome through Resolve or Fail; outcomes for a
// session that has since been closed are dropped.
package chat

import (
	"strings"
	"time"
)

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one conversation entry.
type Message struct {
	Sender    Sender
	Text      string
	Timestamp time.Time
}

// Request is a question in flight.
type Request struct {
	Question   string
	Generation int
}

// Controller owns the overlay state. The zero value is a closed, empty panel.
type Controller struct {
	Open         bool
	Query        string
	Conversation []Message
	Pending      bool
	Err          string

	generation int
	openedAt   time.Time
	now        func() time.Time
}

// New returns a closed controller.
func New() *Controller {
	return &Controller{now: time.Now}
}

func (c *Controller) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// Toggle opens or closes the panel. Closing discards the conversation, query
// and error and returns the discarded messages.
func (c *Controller) Toggle() []Message {
	if !c.Open {
		c.Open = true
		c.openedAt = c.clock()
		return nil
	}
	closed := c.Conversation
	c.Open = false
	c.Conversation = nil
	c.Query = ""
	c.Err = ""
	c.Pending = false
	c.generation++
	return closed
}

// OpenedAt reports when the current session started.
func (c *Controller) OpenedAt() time.Time {
	return c.openedAt
}

// Generation identifies the current session.
func (c *Controller) Generation() int {
	return c.generation
}

// SetQuery replaces the draft question.
func (c *Controller) SetQuery(text string) {
	c.Query = text
}

// Submit records the draft as a user message and returns the request to send.
// It refuses while a request is pending or when the draft is blank.
func (c *Controller) Submit() (Request, bool) {
	if c.Pending || strings.TrimSpace(c.Query) == "" {
		return Request{}, false
	}
	question := c.Query
	c.Conversation = append(c.Conversation, Message{Sender: SenderUser, Text: question, Timestamp: c.clock()})
	c.Query = ""
	c.Err = ""
	c.Pending = true
	return Request{Question: question, Generation: c.generation}, true
}

// Resolve appends the answer for req. It reports false when req is stale.
func (c *Controller) Resolve(req Request, answer string) bool {
	if req.Generation != c.generation {
		return false
	}
	c.Conversation = append(c.Conversation, Message{Sender: SenderAI, Text: answer, Timestamp: c.clock()})
	c.Pending = false
	return true
}

// Fail records reason as the visible error for req. The conversation is kept.
func (c *Controller) Fail(req Request, reason string) bool {
	if req.Generation != c.generation {
		return false
	}
	c.Err = reason
	c.Pending = false
	return true
}

// Lines splits an answer for display. Model output sometimes carries the
// two-character sequence `\n` instead of a newline, so both are accepted.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
