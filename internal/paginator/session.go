package paginator

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Status describes the lifecycle state of a session.
type Status int

const (
	// StatusBuilding means the display surface has not been published yet.
	StatusBuilding Status = iota
	// StatusActive means the session is waiting for action events.
	StatusActive
	// StatusAwaitingJumpInput means a jump prompt is collecting a target.
	StatusAwaitingJumpInput
	// StatusTerminated is absorbing: no further mutation or rendering
	// happens once it is reached.
	StatusTerminated
)

// String returns a stable name for logging.
func (s Status) String() string {
	switch s {
	case StatusBuilding:
		return "building"
	case StatusActive:
		return "active"
	case StatusAwaitingJumpInput:
		return "awaiting-jump-input"
	case StatusTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Session drives one paginated browsing session over a transport. It is a
// single-threaded cooperative state machine: at most one wait is outstanding
// at any time, and callers must not mutate the display surface while Run is
// in flight.
type Session struct {
	transport Transport
	cfg       config
	pageCount int
	current   int
	status    Status
	surface   SurfaceID
}

// New validates cfg and returns a session ready to Run. No transport side
// effect occurs before validation succeeds.
func New(transport Transport, cfg Config) (*Session, error) {
	if transport == nil {
		return nil, &ConfigError{Reason: "transport is required"}
	}
	normalized, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Session{
		transport: transport,
		cfg:       normalized,
		pageCount: len(normalized.pages),
		current:   normalized.start,
		status:    StatusBuilding,
	}, nil
}

// Page returns the current 1-indexed page.
func (s *Session) Page() int { return s.current }

// PageCount returns the fixed page total.
func (s *Session) PageCount() int { return s.pageCount }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Surface returns the display surface handle, zero before Run publishes it.
func (s *Session) Surface() SurfaceID { return s.surface }

// Run publishes the display surface, verifies transport capabilities, and
// drives the session until it terminates. Timeout expiry and the Delete
// action both return nil; configuration, capability, and transport failures
// are returned to the caller after best-effort cleanup.
func (s *Session) Run(ctx context.Context) error {
	if s.status != StatusBuilding {
		return fmt.Errorf("session already ran (status %s)", s.status)
	}

	surface, err := s.transport.Publish(ctx, s.cfg.destination, s.view())
	if err != nil {
		s.status = StatusTerminated
		return fmt.Errorf("publish display surface: %w", err)
	}
	s.surface = surface

	held, err := s.transport.Capabilities(ctx, s.cfg.destination)
	if err != nil {
		s.status = StatusTerminated
		return fmt.Errorf("query destination capabilities: %w", err)
	}
	if missing := missingCapabilities(held); len(missing) > 0 {
		s.status = StatusTerminated
		return &CapabilityError{Missing: missing}
	}

	if err := s.drawMarkers(ctx); err != nil {
		return s.fail(ctx, fmt.Errorf("draw markers: %w", err))
	}
	s.status = StatusActive

	return s.loop(ctx)
}

// loop is the dispatcher: one iteration per wait cycle, each with a fresh
// timeout window.
func (s *Session) loop(ctx context.Context) error {
	for s.status == StatusActive {
		event, err := s.transport.AwaitEvent(ctx, s.surface, s.qualifies, s.cfg.timeout)
		if errors.Is(err, ErrTimeout) {
			s.status = StatusTerminated
			s.clearMarkers(ctx)
			return nil
		}
		if err != nil {
			return s.fail(ctx, fmt.Errorf("await action event: %w", err))
		}

		action, ok := s.cfg.bindings.ActionFor(event.Symbol)
		if !ok {
			continue
		}
		if action != ActionDelete {
			s.retract(ctx, event)
		}

		switch action {
		case ActionDelete:
			s.status = StatusTerminated
			if err := s.transport.Delete(ctx, s.surface); err != nil {
				return fmt.Errorf("delete display surface: %w", err)
			}
			return nil
		case ActionJump:
			if s.pageCount <= 2 {
				continue
			}
			if err := s.runJump(ctx, event.Actor); err != nil {
				return s.fail(ctx, err)
			}
		case ActionBack, ActionForward:
			next := Transition(s.current, s.pageCount, action, 0)
			if next == s.current {
				continue
			}
			if err := s.moveTo(ctx, next, false); err != nil {
				return s.fail(ctx, err)
			}
		}
	}
	return nil
}

// moveTo edits the surface for the new page and redraws markers when the
// visible affordance set may have changed. Jump-originated moves always
// force a full redraw since they can skip across boundary pages.
func (s *Session) moveTo(ctx context.Context, next int, jumped bool) error {
	previous := s.current
	s.current = next
	if err := s.transport.Edit(ctx, s.surface, s.view()); err != nil {
		return fmt.Errorf("edit display surface: %w", err)
	}
	if jumped || boundaryRedraw(previous, next, s.pageCount) {
		if err := s.transport.ClearMarkers(ctx, s.surface); err != nil {
			return fmt.Errorf("clear markers: %w", err)
		}
		if err := s.drawMarkers(ctx); err != nil {
			return fmt.Errorf("draw markers: %w", err)
		}
	}
	return nil
}

// qualifies accepts events carrying a bound symbol from an allowed identity.
func (s *Session) qualifies(event Event) bool {
	if _, ok := s.cfg.bindings.ActionFor(event.Symbol); !ok {
		return false
	}
	return s.allowed(event.Actor)
}

func (s *Session) allowed(actor Identity) bool {
	if s.cfg.authorized != "" {
		return actor.ID == s.cfg.authorized
	}
	if s.cfg.qualify != nil {
		return s.cfg.qualify(actor)
	}
	return !actor.Bot
}

// retract removes the triggering marker so the surface stays single-marker
// per affordance. Failure is non-fatal.
func (s *Session) retract(ctx context.Context, event Event) {
	if err := s.transport.RemoveMarker(ctx, s.surface, event.Symbol, event.Actor); err != nil {
		log.Printf("retract marker %s on %s: %v", event.Symbol, s.surface.ID, err)
	}
}

// fail clears affordances best-effort and re-raises the original error. A
// cleanup failure is logged rather than propagated so it cannot mask err.
func (s *Session) fail(ctx context.Context, err error) error {
	s.status = StatusTerminated
	s.clearMarkers(ctx)
	return err
}

func (s *Session) clearMarkers(ctx context.Context) {
	if s.surface.IsZero() {
		return
	}
	if err := s.transport.ClearMarkers(ctx, s.surface); err != nil {
		log.Printf("clear markers on %s: %v", s.surface.ID, err)
	}
}
