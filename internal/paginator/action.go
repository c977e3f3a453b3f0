package paginator

// Action is one of the closed set of things a qualifying event can request.
type Action int

const (
	// ActionNoOp leaves the session unchanged and re-enters the wait loop.
	ActionNoOp Action = iota
	// ActionBack moves one page toward the first page.
	ActionBack
	// ActionForward moves one page toward the last page.
	ActionForward
	// ActionJump starts the jump sub-session to collect a target page.
	ActionJump
	// ActionDelete removes the display surface and terminates the session.
	ActionDelete
)

// String returns a stable name for logging.
func (a Action) String() string {
	switch a {
	case ActionBack:
		return "back"
	case ActionForward:
		return "forward"
	case ActionJump:
		return "jump"
	case ActionDelete:
		return "delete"
	default:
		return "noop"
	}
}

// Bindings maps each action to the marker symbol that triggers it. All four
// symbols must be set and pairwise distinct.
type Bindings struct {
	Back    string
	Forward string
	Jump    string
	Delete  string
}

// DefaultBindings returns the stock symbol set.
func DefaultBindings() Bindings {
	return Bindings{
		Back:    "◀",
		Forward: "▶",
		Jump:    "🔢",
		Delete:  "🗑",
	}
}

// IsZero reports whether no symbol was configured at all.
func (b Bindings) IsZero() bool {
	return b == Bindings{}
}

func (b Bindings) validate() error {
	symbols := []string{b.Back, b.Forward, b.Jump, b.Delete}
	seen := make(map[string]bool, len(symbols))
	for _, symbol := range symbols {
		if symbol == "" {
			return &ConfigError{Reason: "all four action symbols are required"}
		}
		if seen[symbol] {
			return &ConfigError{Reason: "action symbols must be distinct"}
		}
		seen[symbol] = true
	}
	return nil
}

// ActionFor classifies a marker symbol into its bound action.
func (b Bindings) ActionFor(symbol string) (Action, bool) {
	switch symbol {
	case b.Back:
		return ActionBack, true
	case b.Forward:
		return ActionForward, true
	case b.Jump:
		return ActionJump, true
	case b.Delete:
		return ActionDelete, true
	default:
		return ActionNoOp, false
	}
}

// Transition returns the page after applying action at current within a
// sequence of count pages. Jump uses target; the other actions ignore it.
// Boundary-violating moves and out-of-range targets leave the page
// unchanged.
func Transition(current, count int, action Action, target int) int {
	switch action {
	case ActionBack:
		if current > 1 {
			return current - 1
		}
	case ActionForward:
		if current < count {
			return current + 1
		}
	case ActionJump:
		if count > 2 && target >= 1 && target <= count {
			return target
		}
	}
	return current
}
