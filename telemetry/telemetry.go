// Package telemetry replaces the verbose-flag global named in spec.md §9
// ("Global state to eliminate") with an explicit Sink passed into every
// obfuscate/evaluate call. Nothing in the core packages logs directly; they
// all accept a Sink and call its methods, so a caller that wants silence
// passes Discard.
package telemetry

import (
	"fmt"
	"log/slog"
)

// Sink receives diagnostic events from the obfuscator and evaluator. Event
// names are short and stable ("lz-evaluate-toplevel-mismatch",
// "lin-evaluate-zero-test-failed", "lz-obfuscate-progress", ...)
// so a Sink implementation can branch on them without string-parsing a
// formatted message.
type Sink interface {
	Event(name string, fields map[string]any)
}

// Discard is a Sink that does nothing. It is the zero value callers should
// use when no telemetry is wanted.
type Discard struct{}

func (Discard) Event(string, map[string]any) {}

// Slog adapts a *slog.Logger to Sink.
type Slog struct {
	L *slog.Logger
}

func (s Slog) Event(name string, fields map[string]any) {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	s.L.Info(name, args...)
}

// Collector is a Sink that buffers events in memory, useful in tests that
// assert a specific diagnostic fired (e.g. a ZeroTestFailure or a
// TopLevelMismatch) without depending on log output.
type Collector struct {
	Events []Record
}

// Record is a single buffered telemetry event.
type Record struct {
	Name   string
	Fields map[string]any
}

func (c *Collector) Event(name string, fields map[string]any) {
	c.Events = append(c.Events, Record{Name: name, Fields: fields})
}

// Has reports whether the collector recorded an event with the given name.
func (c *Collector) Has(name string) bool {
	for _, e := range c.Events {
		if e.Name == name {
			return true
		}
	}
	return false
}

func (r Record) String() string {
	return fmt.Sprintf("%s%v", r.Name, r.Fields)
}
