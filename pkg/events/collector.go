package events

// EventCollector buffers the events an aggregate raises until they are pulled
// for publishing. The zero value is ready to use.
type EventCollector struct {
	pending []DomainEvent
}

// Record buffers e. Nil events are ignored.
func (c *EventCollector) Record(e DomainEvent) {
	if e == nil {
		return
	}
	c.pending = append(c.pending, e)
}

// Pending reports how many events are waiting to be pulled.
func (c *EventCollector) Pending() int {
	return len(c.pending)
}

// Pull hands over the buffered events in recording order and empties the
// buffer. It returns nil when nothing is pending.
func (c *EventCollector) Pull() []DomainEvent {
	if len(c.pending) == 0 {
		return nil
	}
	pulled := c.pending
	c.pending = nil
	return pulled
}
