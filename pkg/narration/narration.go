// Package narration implements the single-slot latch through which the
// core hands narration strings to the external text-to-speech consumer.
package narration

import "github.com/seekerror/stdlib/pkg/lang"

// Channel is a single latched optional string. Set replaces whatever was
// there; narration is advisory, not queued, so an unread message is simply
// lost when overwritten.
type Channel struct {
	slot lang.Optional[string]
}

// Set latches msg, discarding any unread message.
func (c *Channel) Set(msg string) {
	c.slot = lang.Some(msg)
}

// Consume returns the latched message, if any, and clears the slot.
func (c *Channel) Consume() (string, bool) {
	msg, ok := c.slot.V()
	if ok {
		c.slot = lang.Optional[string]{}
	}
	return msg, ok
}
