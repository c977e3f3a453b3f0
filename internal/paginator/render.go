package paginator

import (
	"context"
	"fmt"
)

// view returns what the display surface should show for the current page.
// The indicator is suppressed for single-page sessions and when the config
// hides it.
func (s *Session) view() PageView {
	view := PageView{Body: s.cfg.pages[s.current-1]}
	if s.pageCount > 1 && !s.cfg.hideIndicator {
		view.Indicator = fmt.Sprintf("Page %d of %d", s.current, s.pageCount)
	}
	return view
}

// markersFor returns the affordances for a page, in draw order: Back when
// not on the first page, Jump when there are more than two pages, Forward
// when not on the last page, and always Delete.
func markersFor(b Bindings, current, count int) []string {
	symbols := make([]string, 0, 4)
	if current != 1 {
		symbols = append(symbols, b.Back)
	}
	if count > 2 {
		symbols = append(symbols, b.Jump)
	}
	if current != count {
		symbols = append(symbols, b.Forward)
	}
	return append(symbols, b.Delete)
}

// boundaryRedraw reports whether an adjacent page move changes the visible
// affordance set: leaving or entering a boundary page adds or removes Back
// or Forward, which forces a clear-and-redraw to keep marker order in sync.
func boundaryRedraw(previous, next, count int) bool {
	return previous == 1 || previous == count || next == 1 || next == count
}

func (s *Session) drawMarkers(ctx context.Context) error {
	for _, symbol := range markersFor(s.cfg.bindings, s.current, s.pageCount) {
		if err := s.transport.AddMarker(ctx, s.surface, symbol); err != nil {
			return fmt.Errorf("add marker %s: %w", symbol, err)
		}
	}
	return nil
}
