// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package greenspace

// Event is a change in the set of objects of a scene.
// It is either ObjectAdded or ObjectRemoved.
//
// Subscribers of a Service receive whole States; Diff
// recovers the events between two of them.
type Event interface {
	event()
}

// ObjectAdded is the Event of an object insertion.
type ObjectAdded struct {
	Object Object
}

// ObjectRemoved is the Event of an object removal.
type ObjectRemoved struct {
	ID string
}

func (ObjectAdded) event()   {}
func (ObjectRemoved) event() {}

// Diff returns the events that turn the objects of prev
// into those of next.
// Removals come first, in prev's order, followed by
// insertions, in next's order. Objects present in both
// produce no event, even if their transforms differ.
// Neither prev nor next is modified.
func Diff(prev, next *State) []Event {
	ids := make(map[string]struct{}, len(next.Objects))
	for _, o := range next.Objects {
		ids[o.ID] = struct{}{}
	}
	var evs []Event
	for _, o := range prev.Objects {
		if _, ok := ids[o.ID]; !ok {
			evs = append(evs, ObjectRemoved{ID: o.ID})
		}
	}
	clear(ids)
	for _, o := range prev.Objects {
		ids[o.ID] = struct{}{}
	}
	for _, o := range next.Objects {
		if _, ok := ids[o.ID]; !ok {
			evs = append(evs, ObjectAdded{Object: o})
		}
	}
	return evs
}
