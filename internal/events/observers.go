package events

import "log"

// LogObserver writes every event to the process log. Used in debug mode.
type LogObserver struct {
	name string
}

// NewLogObserver creates a logging observer.
func NewLogObserver() *LogObserver {
	return &LogObserver{name: "LogObserver"}
}

// OnEvent logs the event.
func (o *LogObserver) OnEvent(event Event) error {
	log.Printf("[%s] %s %+v", o.name, event.Type, event.TypedData)
	return nil
}

// Name returns the observer's name.
func (o *LogObserver) Name() string {
	return o.name
}

// ShouldHandle accepts every event type.
func (o *LogObserver) ShouldHandle(string) bool {
	return true
}

// FuncObserver adapts a function into an Observer, optionally filtered to a
// set of event types. Handy for tests and one-off subscriptions.
type FuncObserver struct {
	ObserverName string
	Types        []string
	Fn           func(Event) error
}

// OnEvent invokes the wrapped function.
func (o *FuncObserver) OnEvent(event Event) error {
	return o.Fn(event)
}

// Name returns the observer's name.
func (o *FuncObserver) Name() string {
	if o.ObserverName == "" {
		return "FuncObserver"
	}
	return o.ObserverName
}

// ShouldHandle accepts all types when Types is empty.
func (o *FuncObserver) ShouldHandle(eventType string) bool {
	if len(o.Types) == 0 {
		return true
	}
	for _, t := range o.Types {
		if t == eventType {
			return true
		}
	}
	return false
}
