package utils

const (
	EventBoardUpdated = "board_updated"
	EventBoardDeleted = "board_deleted"
)

type Event struct {
	Event  string      `json:"event"`
	UserID string      `json:"-"`
	Data   interface{} `json:"data"`
}

// EventBus hands published events to a single buffered channel read by the
// websocket hub. Events are dropped while the buffer is full.
type EventBus struct {
	events chan Event
}

func NewEventBus() *EventBus {
	return &EventBus{
		events: make(chan Event, 100),
	}
}

func (eb *EventBus) Publish(event, userID string, data interface{}) {
	select {
	case eb.events <- Event{Event: event, UserID: userID, Data: data}:
	default:
	}
}

func (eb *EventBus) SubscribeCh() <-chan Event {
	return eb.events
}
