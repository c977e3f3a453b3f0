// Package timeouts defines shared timeout constants used across commands.
// Centralizing these values prevents drift between the bot process and the
// paginator defaults and makes the durations discoverable.
package timeouts

import "time"

// PageWait is the default inactivity window of one paginator wait cycle.
// The window restarts every time the controller re-enters a waiting state.
const PageWait = 30 * time.Second

// GatewayClose limits how long the bot waits for the chat gateway to close
// during graceful shutdown.
const GatewayClose = 5 * time.Second

// Shutdown limits how long telemetry flushing may take on exit.
const Shutdown = 5 * time.Second
