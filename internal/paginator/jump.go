package paginator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
)

// CancelToken is the case-insensitive reply that abandons a jump prompt.
const CancelToken = "cancel"

// runJump drives the jump sub-session: publish a prompt, wait for the
// requester's page number or cancellation, then resume the main loop. A
// prompt timeout is a silent cancellation, not an error.
func (s *Session) runJump(ctx context.Context, requester Identity) error {
	s.status = StatusAwaitingJumpInput
	defer func() {
		if s.status == StatusAwaitingJumpInput {
			s.status = StatusActive
		}
	}()

	promptText := fmt.Sprintf("Reply with a page number (1-%d) or %q to stay on page %d.", s.pageCount, CancelToken, s.current)
	prompt, err := s.transport.Publish(ctx, s.cfg.destination, PageView{Body: promptText})
	if err != nil {
		return fmt.Errorf("publish jump prompt: %w", err)
	}

	reply, err := s.transport.AwaitReply(ctx, s.cfg.destination, func(r Reply) bool {
		return r.Author.ID == requester.ID && s.isJumpReply(r.Text)
	}, s.cfg.timeout)
	if errors.Is(err, ErrTimeout) {
		s.deleteQuietly(ctx, prompt)
		return nil
	}
	if err != nil {
		s.deleteQuietly(ctx, prompt)
		return fmt.Errorf("await jump reply: %w", err)
	}

	s.deleteQuietly(ctx, prompt)
	s.deleteQuietly(ctx, reply.Surface)

	text := strings.TrimSpace(reply.Text)
	if strings.EqualFold(text, CancelToken) {
		return nil
	}
	target, err := strconv.Atoi(text)
	if err != nil {
		// The qualify predicate only admits numbers and the cancel token.
		return nil
	}

	next := Transition(s.current, s.pageCount, ActionJump, target)
	if next == s.current {
		return nil
	}
	s.status = StatusActive
	return s.moveTo(ctx, next, true)
}

// isJumpReply admits the cancel token and in-range page numbers different
// from the current page.
func (s *Session) isJumpReply(text string) bool {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, CancelToken) {
		return true
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return false
	}
	return n >= 1 && n <= s.pageCount && n != s.current
}

// deleteQuietly removes an ephemeral surface best-effort; failure must not
// mask the outcome of the sub-session.
func (s *Session) deleteQuietly(ctx context.Context, surface SurfaceID) {
	if surface.IsZero() {
		return
	}
	if err := s.transport.Delete(ctx, surface); err != nil {
		log.Printf("delete surface %s: %v", surface.ID, err)
	}
}
