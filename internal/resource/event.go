package resource

type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
)

// Event represents a change to a resource.
type Event[T any] struct {
	Type    EventType
	Payload T
}

// Publisher is the interface for emitting resource change events.
type Publisher[T any] interface {
	Publish(EventType, T)
}
