// Package ipc is the message channel between the UI and the backend: message
// kinds and payloads, the response envelope, the handler router, a client,
// and the in-process transport. The WebSocket transport lives in wsbridge.
package ipc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/twinview/internal/domain/entity"
)

// Kind names a message.
type Kind string

// UI to backend.
const (
	KindCreatePrimary      Kind = "createPrimary"
	KindUpdateBounds       Kind = "updateBounds"
	KindDestroySecondary   Kind = "destroySecondary"
	KindDestroyAll         Kind = "destroyAll"
	KindGetStatus          Kind = "getStatus"
	KindGetDetailedStatus  Kind = "getDetailedStatus"
	KindUpdateSplitRatio   Kind = "updateSplitRatio"
	KindShowOverlay        Kind = "showOverlay"
	KindHideOverlay        Kind = "hideOverlay"
	KindSimulateNavigation Kind = "simulateNavigation"
)

// Backend to UI.
const (
	KindSecondaryCreated  Kind = "secondaryCreated"
	KindNavigationBlocked Kind = "navigationBlocked"
	KindSplitStateChanged Kind = "splitStateChanged"
)

// IsRequest reports whether the sender waits for a Response.
func (k Kind) IsRequest() bool {
	return k == KindGetStatus || k == KindGetDetailedStatus
}

// IsEvent reports whether the kind flows from backend to UI.
func (k Kind) IsEvent() bool {
	switch k {
	case KindSecondaryCreated, KindNavigationBlocked, KindSplitStateChanged:
		return true
	}
	return false
}

// Frame is one JSON message on the wire. Responses reuse the request's ID
// and Kind and carry Response instead of Payload.
type Frame struct {
	ID       uint64          `json:"id,omitempty"`
	Kind     Kind            `json:"kind"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Response *Response       `json:"response,omitempty"`
}

// NewFrame encodes payload into a frame. A nil payload leaves it empty.
func NewFrame(kind Kind, payload any) (Frame, error) {
	f := Frame{Kind: kind}
	if payload == nil {
		return f, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	f.Payload = raw
	return f, nil
}

// DecodePayload unmarshals the frame payload into v.
func (f Frame) DecodePayload(v any) error {
	if len(f.Payload) == 0 {
		return fmt.Errorf("%s: missing payload", f.Kind)
	}
	if err := json.Unmarshal(f.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", f.Kind, err)
	}
	return nil
}

type CreatePrimaryPayload struct {
	URL    string      `json:"url"`
	Bounds entity.Rect `json:"bounds"`
}

type UpdateBoundsPayload struct {
	Role   entity.Role `json:"role"`
	Bounds entity.Rect `json:"bounds"`
}

type UpdateSplitRatioPayload struct {
	Ratio float64 `json:"ratio"`
}

type SimulateNavigationPayload struct {
	Role      entity.Role `json:"role"`
	URL       string      `json:"url"`
	NewWindow bool        `json:"newWindow"`
}

// SecondaryCreatedPayload carries the creation time in Unix milliseconds.
type SecondaryCreatedPayload struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// Time returns the creation time.
func (p SecondaryCreatedPayload) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

type NavigationBlockedPayload struct {
	FromURL string `json:"fromUrl"`
	ToURL   string `json:"toUrl"`
}

type SplitStateChangedPayload struct {
	IsSplit      bool `json:"isSplit"`
	HasSecondary bool `json:"hasSecondary"`
}

// Event is a decoded backend-to-UI message. Only the field matching Kind is set.
type Event struct {
	Kind              Kind
	SecondaryCreated  SecondaryCreatedPayload
	NavigationBlocked NavigationBlockedPayload
	SplitStateChanged SplitStateChangedPayload
}

// DecodeEvent converts an event frame into an Event.
func DecodeEvent(f Frame) (Event, error) {
	ev := Event{Kind: f.Kind}
	var err error
	switch f.Kind {
	case KindSecondaryCreated:
		err = f.DecodePayload(&ev.SecondaryCreated)
	case KindNavigationBlocked:
		err = f.DecodePayload(&ev.NavigationBlocked)
	case KindSplitStateChanged:
		err = f.DecodePayload(&ev.SplitStateChanged)
	default:
		err = fmt.Errorf("%w: %s is not an event", ErrUnknownKind, f.Kind)
	}
	if err != nil {
		return Event{}, err
	}
	return ev, nil
}
