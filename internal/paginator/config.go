package paginator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wfaller/pageturn/internal/platform/timeouts"
)

// Start tokens accepted in place of a numeric initial page. Both resolve
// relative to page 1 and clamp at the sequence boundary.
const (
	StartBack    = "back"
	StartForward = "forward"
)

// Config is the immutable input for a session. The zero value of every
// optional field selects its default; New validates the whole value once
// and rejects it before any transport side effect.
type Config struct {
	// Pages is the fixed ordered page sequence. At least one is required.
	Pages []Content
	// Destination is where the display surface is published.
	Destination string
	// AuthorizedUser restricts qualifying events to one identity when set.
	AuthorizedUser string
	// Qualify filters event identities when AuthorizedUser is empty. Nil
	// falls back to rejecting identities the transport flagged as bots.
	Qualify func(Identity) bool
	// Bindings overrides the action symbols. Zero value uses
	// DefaultBindings; a partial override is a configuration error.
	Bindings Bindings
	// Timeout is the inactivity window of each wait cycle. Zero uses the
	// shared default; negative values are rejected.
	Timeout time.Duration
	// Start selects the initial page: empty for page 1, a page number, or
	// one of the Start tokens.
	Start string
	// HideIndicator suppresses the "Page N of M" text. The indicator is
	// always suppressed for single-page sessions.
	HideIndicator bool
}

// config is the normalized form consumed by the session.
type config struct {
	pages         []Content
	destination   string
	authorized    string
	qualify       func(Identity) bool
	bindings      Bindings
	timeout       time.Duration
	start         int
	hideIndicator bool
}

func normalizeConfig(c Config) (config, error) {
	if len(c.Pages) == 0 {
		return config{}, &ConfigError{Reason: "at least one page is required"}
	}
	destination := strings.TrimSpace(c.Destination)
	if destination == "" {
		return config{}, &ConfigError{Reason: "destination is required"}
	}

	bindings := c.Bindings
	if bindings.IsZero() {
		bindings = DefaultBindings()
	}
	if err := bindings.validate(); err != nil {
		return config{}, err
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = timeouts.PageWait
	}
	if timeout <= 0 {
		return config{}, &ConfigError{Reason: "timeout must be a positive duration"}
	}

	start, err := resolveStart(c.Start, len(c.Pages))
	if err != nil {
		return config{}, err
	}

	return config{
		pages:         c.Pages,
		destination:   destination,
		authorized:    strings.TrimSpace(c.AuthorizedUser),
		qualify:       c.Qualify,
		bindings:      bindings,
		timeout:       timeout,
		start:         start,
		hideIndicator: c.HideIndicator,
	}, nil
}

// resolveStart turns the Start option into a concrete initial page. Tokens
// resolve relative to page 1 and clamp at the boundary; numeric values must
// land inside the sequence.
func resolveStart(start string, count int) (int, error) {
	start = strings.ToLower(strings.TrimSpace(start))
	switch start {
	case "":
		return 1, nil
	case StartBack:
		return 1, nil
	case StartForward:
		if count > 1 {
			return 2, nil
		}
		return 1, nil
	}
	page, err := strconv.Atoi(start)
	if err != nil {
		return 0, &ConfigError{Reason: fmt.Sprintf("start page %q is neither a number nor a navigation token", start)}
	}
	if page < 1 || page > count {
		return 0, &ConfigError{Reason: fmt.Sprintf("start page %d is outside [1, %d]", page, count)}
	}
	return page, nil
}
