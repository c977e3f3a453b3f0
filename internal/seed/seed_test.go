package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/wfaller/pageturn/internal/services/bot/storage"
)

type fakeEntryStore struct {
	existing map[string]bool
	created  []storage.Entry
	failOn   string
}

func (f *fakeEntryStore) CreateEntry(ctx context.Context, entry storage.Entry) error {
	if entry.Slug == f.failOn {
		return errors.New("disk full")
	}
	if f.existing[entry.Slug] {
		return storage.ErrAlreadyExists
	}
	f.created = append(f.created, entry)
	return nil
}

func (f *fakeEntryStore) GetEntry(ctx context.Context, slug string) (storage.Entry, error) {
	return storage.Entry{}, storage.ErrNotFound
}

func (f *fakeEntryStore) ListEntries(ctx context.Context) ([]storage.Entry, error) {
	return f.created, nil
}

func (f *fakeEntryStore) TopEntries(ctx context.Context, limit int) ([]storage.Entry, error) {
	return f.created, nil
}

func TestApplyInsertsFixtures(t *testing.T) {
	store := &fakeEntryStore{}
	inserted, err := Apply(context.Background(), store)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if inserted != len(Fixtures()) {
		t.Fatalf("expected %d inserts, got %d", len(Fixtures()), inserted)
	}
}

func TestApplySkipsExisting(t *testing.T) {
	store := &fakeEntryStore{existing: map[string]bool{"hyperion": true, "ubik": true}}
	inserted, err := Apply(context.Background(), store)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if inserted != len(Fixtures())-2 {
		t.Fatalf("expected %d inserts, got %d", len(Fixtures())-2, inserted)
	}
}

func TestApplyStopsOnFailure(t *testing.T) {
	store := &fakeEntryStore{failOn: "annihilation"}
	if _, err := Apply(context.Background(), store); err == nil {
		t.Fatal("expected seed failure to surface")
	}
}

func TestFixtureSlugsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, entry := range Fixtures() {
		if seen[entry.Slug] {
			t.Fatalf("duplicate slug %s", entry.Slug)
		}
		seen[entry.Slug] = true
	}
}
