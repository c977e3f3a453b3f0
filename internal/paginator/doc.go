// Package paginator implements a reaction-driven browsing session over a
// single continuously-edited message surface.
//
// A session owns one display surface for its whole life: it publishes the
// surface once, draws navigation markers that match the current position,
// then loops waiting for qualifying marker events until it times out, is
// deleted, or the transport fails. Page content is opaque to the session;
// callers supply pre-rendered payloads and the transport decides how to
// draw them.
//
// The package is organized around three seams:
//   - Config: an immutable value object validated once before any transport
//     side effect occurs.
//   - Transport: the abstract chat boundary (publish, edit, markers, awaited
//     events and replies, capability queries).
//   - Session: the state machine driving Building → Active →
//     AwaitingJumpInput → Terminated.
package paginator
