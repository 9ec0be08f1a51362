package editor

// EventKind classifies editor notifications.
type EventKind string

const (
	EventSaved EventKind = "saved"
	EventError EventKind = "error"
)

// Event is a notification emitted after a remote operation settles.
// Scope identifies what was being saved ("strategy.mission",
// "objectives/obj-123"). Ref is set on the save that reconciles an
// optimistic insert: it carries the temporary id the item was added
// under, so a caller holding only that id can match the event without
// re-listing. Err is set only for EventError.
type Event struct {
	Kind  EventKind `json:"kind"`
	Scope string    `json:"scope"`
	Ref   string    `json:"ref,omitempty"`
	Err   string    `json:"error,omitempty"`
}

// Notifier receives editor events. Implementations must be safe for
// concurrent use; a nil Notifier drops events.
type Notifier func(Event)

func (n Notifier) saved(scope string) {
	if n != nil {
		n(Event{Kind: EventSaved, Scope: scope})
	}
}

func (n Notifier) reconciled(scope, tempID string) {
	if n != nil {
		n(Event{Kind: EventSaved, Scope: scope, Ref: tempID})
	}
}

func (n Notifier) failed(scope string, err error) {
	if n == nil {
		return
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	n(Event{Kind: EventError, Scope: scope, Err: msg})
}
