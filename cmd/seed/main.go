// Package main provides a CLI for seeding the local codex database with
// demo entries.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/wfaller/pageturn/internal/platform/config"
	"github.com/wfaller/pageturn/internal/seed"
	"github.com/wfaller/pageturn/internal/services/bot/storage/sqlite"
)

func main() {
	var storagePath string
	var list bool
	flag.StringVar(&storagePath, "storage-path", "pageturn.db", "codex SQLite database path")
	flag.BoolVar(&list, "list", false, "list fixture entries without writing")
	flag.Parse()
	log.SetPrefix("[SEED] ")

	if list {
		for _, entry := range seed.Fixtures() {
			fmt.Printf("%-20s %-30s score %d\n", entry.Slug, entry.Title, entry.Score)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.Open(storagePath)
	if err != nil {
		config.Exitf("open codex store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close codex store: %v", err)
		}
	}()

	inserted, err := seed.Apply(ctx, store)
	if err != nil {
		config.Exitf("seed codex: %v", err)
	}
	log.Printf("seeded %d entries into %s", inserted, storagePath)
}
