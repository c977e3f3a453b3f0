// Package seed populates a codex store with demo entries for local
// development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/wfaller/pageturn/internal/services/bot/storage"
)

// Fixtures returns the demo entry set, ordered by descending score.
func Fixtures() []storage.Entry {
	return []storage.Entry{
		{Slug: "hyperion", Title: "Hyperion", Author: "Dan Simmons", Score: 97},
		{Slug: "blindsight", Title: "Blindsight", Author: "Peter Watts", Score: 91},
		{Slug: "annihilation", Title: "Annihilation", Author: "Jeff VanderMeer", Score: 88},
		{Slug: "piranesi", Title: "Piranesi", Author: "Susanna Clarke", Score: 86},
		{Slug: "dawn", Title: "Dawn", Author: "Octavia E. Butler", Score: 84},
		{Slug: "exhalation", Title: "Exhalation", Author: "Ted Chiang", Score: 83},
		{Slug: "solaris", Title: "Solaris", Author: "Stanisław Lem", Score: 81},
		{Slug: "embassytown", Title: "Embassytown", Author: "China Miéville", Score: 78},
		{Slug: "ubik", Title: "Ubik", Author: "Philip K. Dick", Score: 76},
		{Slug: "roadside-picnic", Title: "Roadside Picnic", Author: "Arkady Strugatsky", Score: 74},
		{Slug: "the-sparrow", Title: "The Sparrow", Author: "Mary Doria Russell", Score: 71},
		{Slug: "lagoon", Title: "Lagoon", Author: "Nnedi Okorafor", Score: 68},
	}
}

// Apply inserts the fixtures, skipping entries that already exist.
func Apply(ctx context.Context, store storage.EntryStore) (int, error) {
	inserted := 0
	for _, entry := range Fixtures() {
		err := store.CreateEntry(ctx, entry)
		if errors.Is(err, storage.ErrAlreadyExists) {
			log.Printf("skip existing entry %s", entry.Slug)
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("seed entry %s: %w", entry.Slug, err)
		}
		inserted++
	}
	return inserted, nil
}
