package paginator

import (
	"reflect"
	"testing"
)

func TestMarkersFor(t *testing.T) {
	b := DefaultBindings()
	tests := []struct {
		name    string
		current int
		count   int
		want    []string
	}{
		{"single page", 1, 1, []string{b.Delete}},
		{"two pages first", 1, 2, []string{b.Forward, b.Delete}},
		{"two pages last", 2, 2, []string{b.Back, b.Delete}},
		{"many pages first", 1, 5, []string{b.Jump, b.Forward, b.Delete}},
		{"many pages interior", 3, 5, []string{b.Back, b.Jump, b.Forward, b.Delete}},
		{"many pages last", 5, 5, []string{b.Back, b.Jump, b.Delete}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := markersFor(b, tc.current, tc.count)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("markersFor(%d, %d) = %v, want %v", tc.current, tc.count, got, tc.want)
			}
		})
	}
}

func TestBoundaryRedraw(t *testing.T) {
	tests := []struct {
		name     string
		previous int
		next     int
		count    int
		want     bool
	}{
		{"leaving first page", 1, 2, 5, true},
		{"entering first page", 2, 1, 5, true},
		{"leaving last page", 5, 4, 5, true},
		{"entering last page", 4, 5, 5, true},
		{"interior move", 3, 4, 6, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := boundaryRedraw(tc.previous, tc.next, tc.count); got != tc.want {
				t.Fatalf("boundaryRedraw(%d, %d, %d) = %t, want %t",
					tc.previous, tc.next, tc.count, got, tc.want)
			}
		})
	}
}
