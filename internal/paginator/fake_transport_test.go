package paginator

import (
	"context"
	"fmt"
	"time"
)

// eventStep scripts one AwaitEvent cycle: candidates are offered in order
// and the first qualifying one is returned. No qualifying candidate means
// the cycle times out.
type eventStep struct {
	candidates []Event
	err        error
}

type replyStep struct {
	candidates []Reply
	err        error
}

type markerCall struct {
	surface SurfaceID
	symbol  string
}

type removeCall struct {
	surface SurfaceID
	symbol  string
	actor   Identity
}

type editCall struct {
	surface SurfaceID
	view    PageView
}

type publishCall struct {
	surface SurfaceID
	view    PageView
}

type fakeTransport struct {
	capabilities []Capability
	capsErr      error

	events  []eventStep
	replies []replyStep

	publishErr error
	editErr    error
	deleteErr  error
	addErr     error
	clearErr   error
	removeErr  error

	nextID    int
	published []publishCall
	edits     []editCall
	deleted   []SurfaceID
	markers   []markerCall
	clears    []SurfaceID
	removed   []removeCall

	// visible is the marker set currently drawn: appended by AddMarker,
	// reset by ClearMarkers. visibleAtLastClear snapshots the set that was
	// up when the most recent clear happened, so tests can assert on the
	// affordances a timed-out session ended with.
	visible            []string
	visibleAtLastClear []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{capabilities: RequiredCapabilities()}
}

func (f *fakeTransport) Publish(ctx context.Context, destination string, view PageView) (SurfaceID, error) {
	if f.publishErr != nil {
		return SurfaceID{}, f.publishErr
	}
	f.nextID++
	surface := SurfaceID{Destination: destination, ID: fmt.Sprintf("surface-%d", f.nextID)}
	f.published = append(f.published, publishCall{surface: surface, view: view})
	return surface, nil
}

func (f *fakeTransport) Edit(ctx context.Context, surface SurfaceID, view PageView) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.edits = append(f.edits, editCall{surface: surface, view: view})
	return nil
}

func (f *fakeTransport) Delete(ctx context.Context, surface SurfaceID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, surface)
	return nil
}

func (f *fakeTransport) AddMarker(ctx context.Context, surface SurfaceID, symbol string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.markers = append(f.markers, markerCall{surface: surface, symbol: symbol})
	f.visible = append(f.visible, symbol)
	return nil
}

func (f *fakeTransport) RemoveMarker(ctx context.Context, surface SurfaceID, symbol string, actor Identity) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, removeCall{surface: surface, symbol: symbol, actor: actor})
	return nil
}

func (f *fakeTransport) ClearMarkers(ctx context.Context, surface SurfaceID) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.clears = append(f.clears, surface)
	f.visibleAtLastClear = f.visible
	f.visible = nil
	return nil
}

func (f *fakeTransport) AwaitEvent(ctx context.Context, surface SurfaceID, qualify func(Event) bool, wait time.Duration) (Event, error) {
	if len(f.events) == 0 {
		return Event{}, ErrTimeout
	}
	step := f.events[0]
	f.events = f.events[1:]
	if step.err != nil {
		return Event{}, step.err
	}
	for _, candidate := range step.candidates {
		candidate.Surface = surface
		if qualify(candidate) {
			return candidate, nil
		}
	}
	return Event{}, ErrTimeout
}

func (f *fakeTransport) AwaitReply(ctx context.Context, destination string, qualify func(Reply) bool, wait time.Duration) (Reply, error) {
	if len(f.replies) == 0 {
		return Reply{}, ErrTimeout
	}
	step := f.replies[0]
	f.replies = f.replies[1:]
	if step.err != nil {
		return Reply{}, step.err
	}
	for _, candidate := range step.candidates {
		if qualify(candidate) {
			return candidate, nil
		}
	}
	return Reply{}, ErrTimeout
}

func (f *fakeTransport) Capabilities(ctx context.Context, destination string) ([]Capability, error) {
	if f.capsErr != nil {
		return nil, f.capsErr
	}
	return f.capabilities, nil
}

