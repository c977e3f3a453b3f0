package paginator

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout reports that no qualifying event or reply arrived within the
// wait window. It is an expected outcome of a wait cycle, not a failure.
var ErrTimeout = errors.New("no qualifying event within timeout")

// SurfaceID identifies one externally-visible message-like object.
type SurfaceID struct {
	Destination string
	ID          string
}

// IsZero reports whether the surface has not been published yet.
func (s SurfaceID) IsZero() bool {
	return s.ID == ""
}

// Identity describes the source of an external event. Bot is set by the
// transport for system or automated identities so unrestricted sessions can
// exclude them.
type Identity struct {
	ID  string
	Bot bool
}

// Event is one marker added to a surface by some identity.
type Event struct {
	Surface SurfaceID
	Actor   Identity
	Symbol  string
}

// Reply is one textual message sent to a destination. Surface identifies the
// reply's own message so it can be deleted after it is consumed.
type Reply struct {
	Surface SurfaceID
	Author  Identity
	Text    string
}

// Content is an opaque renderable page payload. The session never inspects
// it; the transport decides how to draw it on a surface.
type Content any

// PageView is what a surface should display: the page payload plus the
// textual position indicator, empty when the indicator is suppressed.
type PageView struct {
	Body      Content
	Indicator string
}

// Capability names one transport permission the session needs on its
// destination.
type Capability string

const (
	// CapabilityAddMarker allows drawing markers on a surface.
	CapabilityAddMarker Capability = "add-marker"
	// CapabilityManageMarkers allows retracting and clearing markers added
	// by other identities.
	CapabilityManageMarkers Capability = "manage-markers"
	// CapabilityManageSurfaces allows deleting surfaces owned by others,
	// used to remove consumed jump replies.
	CapabilityManageSurfaces Capability = "manage-surfaces"
	// CapabilityRenderRichContent allows publishing rich page payloads.
	CapabilityRenderRichContent Capability = "render-rich-content"
)

// RequiredCapabilities lists every capability a session needs before it
// draws its first marker.
func RequiredCapabilities() []Capability {
	return []Capability{
		CapabilityAddMarker,
		CapabilityManageMarkers,
		CapabilityManageSurfaces,
		CapabilityRenderRichContent,
	}
}

// Transport is the abstract chat boundary a session runs against.
//
// AwaitEvent and AwaitReply subscribe at call time: events delivered before
// the call are never buffered into it, and only the first qualifying event
// of a call is returned. Both return ErrTimeout when the wait window closes
// without a qualifying event.
type Transport interface {
	// Publish creates a new surface at destination showing view.
	Publish(ctx context.Context, destination string, view PageView) (SurfaceID, error)
	// Edit replaces what surface displays.
	Edit(ctx context.Context, surface SurfaceID, view PageView) error
	// Delete removes surface entirely.
	Delete(ctx context.Context, surface SurfaceID) error

	// AddMarker draws symbol on surface.
	AddMarker(ctx context.Context, surface SurfaceID, symbol string) error
	// RemoveMarker retracts one actor's symbol from surface.
	RemoveMarker(ctx context.Context, surface SurfaceID, symbol string, actor Identity) error
	// ClearMarkers removes every marker from surface.
	ClearMarkers(ctx context.Context, surface SurfaceID) error

	// AwaitEvent waits up to wait for the first marker event on surface
	// accepted by qualify.
	AwaitEvent(ctx context.Context, surface SurfaceID, qualify func(Event) bool, wait time.Duration) (Event, error)
	// AwaitReply waits up to wait for the first reply at destination
	// accepted by qualify.
	AwaitReply(ctx context.Context, destination string, qualify func(Reply) bool, wait time.Duration) (Reply, error)

	// Capabilities reports the permissions held at destination.
	Capabilities(ctx context.Context, destination string) ([]Capability, error)
}
