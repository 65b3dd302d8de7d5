package events

import "time"

// Event defines the contract for all viewer-originated events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "SELECTION_END").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Topic is the watermill topic all viewer events are published on.
const Topic = "viewer.events"

// Viewer event type codes. This is a closed set: payloads arriving from the
// renderer are decoded into one of these variants at the bridge boundary and
// untyped data never travels further.
const (
	TypeRenderStart  = "RENDER_START"
	TypeSelectionEnd = "SELECTION_END"
	TypePageScrolled = "PAGE_SCROLLED"
	TypeKeyDown      = "KEY_DOWN"
	TypePointerDown  = "POINTER_DOWN"
)

// BaseEvent carries the fields shared by every viewer event.
type BaseEvent struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string    { return e.Type }
func (e BaseEvent) Timestamp() time.Time { return e.OccurredAt }

// RenderStart fires when the viewer begins rendering a document.
type RenderStart struct {
	BaseEvent
	DocumentID string `json:"document_id"`
}

// SelectionEnd fires when the user finishes selecting text. The selected text
// and current page are not carried on the event; the bridge queries the
// viewer for both.
type SelectionEnd struct {
	BaseEvent
	DocumentID string `json:"document_id"`
}

// PageScrolled fires when the visible page changes. PageNumber is 0-based.
type PageScrolled struct {
	BaseEvent
	DocumentID string `json:"document_id"`
	PageNumber int    `json:"page_number"`
}

// KeyDown fires for keyboard input the viewer does not consume itself.
type KeyDown struct {
	BaseEvent
	Key  string `json:"key"`
	Ctrl bool   `json:"ctrl"`
}

// PointerDown fires for any pointer press. Markers lists the structural
// markers of the elements under the pointer, innermost first; the widget
// store uses it for the outside-click dismissal contract.
type PointerDown struct {
	BaseEvent
	Markers []string `json:"markers"`
}

// Envelope is the wire form of a viewer event as published on the bus. Kind
// selects which typed payload is populated.
type Envelope struct {
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`

	DocumentID string   `json:"document_id,omitempty"`
	PageNumber int      `json:"page_number,omitempty"`
	Key        string   `json:"key,omitempty"`
	Ctrl       bool     `json:"ctrl,omitempty"`
	Markers    []string `json:"markers,omitempty"`
}

// Decode maps an envelope to its typed event. Unknown kinds return nil; the
// bridge drops them without acting.
func (env Envelope) Decode() Event {
	base := BaseEvent{Type: env.Kind, OccurredAt: env.OccurredAt}
	switch env.Kind {
	case TypeRenderStart:
		return RenderStart{BaseEvent: base, DocumentID: env.DocumentID}
	case TypeSelectionEnd:
		return SelectionEnd{BaseEvent: base, DocumentID: env.DocumentID}
	case TypePageScrolled:
		return PageScrolled{BaseEvent: base, DocumentID: env.DocumentID, PageNumber: env.PageNumber}
	case TypeKeyDown:
		return KeyDown{BaseEvent: base, Key: env.Key, Ctrl: env.Ctrl}
	case TypePointerDown:
		return PointerDown{BaseEvent: base, Markers: env.Markers}
	default:
		return nil
	}
}
