package bus

import (
	"errors"
	"time"
)

// Wildcard subscribes a handler to every event type of a topic.
const Wildcard = "*"

var ErrNilHandler = errors.New("bus: nil handler")

// EventBus is a thread-safe, in-process pub/sub bus.
//
// Delivery is synchronous: Publish calls handlers in the caller goroutine, in
// subscription order, and joins their errors. Handlers should be quick or hand the
// event off to their own goroutine.
type EventBus interface {
	// Publish delivers event to the subscribers of event.Type() and of Wildcard
	// within topic.
	Publish(topic string, event Event) error
	// Subscribe registers handler for eventType within topic.
	Subscribe(topic, eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. Nil is ignored.
	Unsubscribe(Subscription) error

	// Topics returns a snapshot of the topics that have been used.
	Topics() []TopicInfo
	// Metrics returns accumulated delivery counters.
	Metrics() Metrics
}

// Event is an immutable message transported by the bus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

// EventHandler is invoked once per delivered event.
type EventHandler func(event Event) error

// Subscription is a registered handler. Cancel is safe to call more than once.
type Subscription interface {
	ID() string
	Topic() string
	EventType() string
	IsActive() bool
	Cancel() error
}

// Metrics are best-effort delivery counters.
type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}

// TopicInfo provides a minimal snapshot about a topic.
type TopicInfo struct {
	Name       string
	EventTypes int
	Subs       int
}
