package core

// Event represents something that happened during a frame
type Event struct {
	Type    EventType
	Frame   uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtPress EventType = iota
	EvtGlobeHit
	EvtTreePlanted
	EvtPlantDenied
	EvtFactMilestone
)

func (t EventType) String() string {
	switch t {
	case EvtPress:
		return "press"
	case EvtGlobeHit:
		return "globe-hit"
	case EvtTreePlanted:
		return "tree-planted"
	case EvtPlantDenied:
		return "plant-denied"
	case EvtFactMilestone:
		return "fact-milestone"
	}
	return "unknown"
}

// TreePlanted is the payload of EvtTreePlanted
type TreePlanted struct {
	Tree  *Tree
	Total int
}

// FactMilestone is the payload of EvtFactMilestone
type FactMilestone struct {
	Total int
	Fact  string
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Dispatch processes all queued events. Events emitted by handlers are
// delivered on the next Dispatch.
func (eb *EventBus) Dispatch() {
	queue := eb.queue
	eb.queue = nil
	for _, e := range queue {
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
	}
}
