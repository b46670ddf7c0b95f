// Package events delivers committed game events to subscribers and turns
// them into one-line narration for text hosts. Dispatch is single pass:
// handlers observe events but cannot emit new ones.
package events

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/nathoo/titanhunt/types"
)

// Handler observes one committed event.
type Handler func(types.Event)

// Bus fans events out to handlers registered per event type.
type Bus struct {
	byType map[types.EventType][]Handler
	all    []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{byType: map[types.EventType][]Handler{}}
}

// Subscribe registers h for events of type t.
func (b *Bus) Subscribe(t types.EventType, h Handler) {
	b.byType[t] = append(b.byType[t], h)
}

// SubscribeAll registers h for every event.
func (b *Bus) SubscribeAll(h Handler) {
	b.all = append(b.all, h)
}

// Dispatch runs handlers for each event in order. Typed handlers run
// before catch-all handlers.
func (b *Bus) Dispatch(events []types.Event) {
	if b == nil {
		return
	}
	for _, e := range events {
		for _, h := range b.byType[e.Type()] {
			h(e)
		}
		for _, h := range b.all {
			h(e)
		}
	}
}

// Describe renders an event as a sentence.
func Describe(e types.Event) string {
	switch ev := e.(type) {
	case types.UnitMoved:
		if ev.From == ev.To {
			return fmt.Sprintf("Unit %d holds %v and turns %s.", ev.UnitID, ev.To, ev.Facing)
		}
		return fmt.Sprintf("Unit %d moves %v -> %v, facing %s.", ev.UnitID, ev.From, ev.To, ev.Facing)
	case types.PhaseChanged:
		return fmt.Sprintf("%s phase ends; %s phase begins.", ev.From, ev.To)
	case types.TurnChanged:
		return fmt.Sprintf("The %s turn begins.", humanize.Ordinal(ev.Turn))
	case types.UnitDestroyed:
		return fmt.Sprintf("Unit %d is destroyed.", ev.UnitID)
	default:
		return fmt.Sprintf("Unknown event %q.", e.Type())
	}
}
