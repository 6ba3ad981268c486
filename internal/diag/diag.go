// Package diag implements a per-call diagnostic collector. spec.md §9 calls
// out the C reference's process-wide fixed diagnostic buffer as something a
// reentrant implementation should replace with an explicit, caller-owned
// collector — this is that replacement, sized only by available memory
// rather than a fixed 2048-byte buffer.
package diag

import (
	"fmt"
	"strings"
)

// Collector accumulates diagnostic messages for a single Parse call. A zero
// Collector is ready to use.
type Collector struct {
	messages []string
}

// Add appends msg to the collector.
func (c *Collector) Add(msg string) {
	c.messages = append(c.messages, msg)
}

// Addf appends a formatted message to the collector.
func (c *Collector) Addf(format string, args ...any) {
	c.Add(fmt.Sprintf(format, args...))
}

// Empty reports whether no diagnostics have been recorded.
func (c *Collector) Empty() bool {
	return c == nil || len(c.messages) == 0
}

// String renders every recorded diagnostic, newline-joined, matching the
// shape of the C reference's GetErrors().
func (c *Collector) String() string {
	if c == nil {
		return ""
	}
	return strings.Join(c.messages, "\n")
}

// Messages returns the recorded diagnostics in order. The returned slice
// must not be mutated by the caller.
func (c *Collector) Messages() []string {
	if c == nil {
		return nil
	}
	return c.messages
}
