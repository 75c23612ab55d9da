// Package main provides a tool to seed the record store with demo books.
//
// It posts a fixed set of drafts to the record store's create endpoint and
// prints the resulting list so the catalog has something to show on first run.
//
// Usage:
//
//	RECORD_STORE_URL=http://localhost:4000 go run ./cmd/seed
//	go run ./cmd/seed --url http://localhost:4000 --wipe
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/shelfline/shelfline-server/internal/domain"
	"github.com/shelfline/shelfline-server/internal/metrics"
	"github.com/shelfline/shelfline-server/internal/recordstore"
)

var (
	baseURL = flag.String("url", "", "Record store base URL (overrides RECORD_STORE_URL)")
	wipe    = flag.Bool("wipe", false, "Delete all existing books before seeding")
)

func main() {
	flag.Parse()

	url := *baseURL
	if url == "" {
		url = os.Getenv("RECORD_STORE_URL")
	}
	if url == "" {
		url = "http://localhost:4000"
	}

	fmt.Printf("Seeding record store at: %s\n", url)

	client := recordstore.New(recordstore.Config{
		BaseURL: url,
		Timeout: 10 * time.Second,
	}, slog.New(slog.NewTextHandler(os.Stderr, nil)), metrics.NewRegistry())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *wipe {
		existing, err := client.List(ctx)
		if err != nil {
			log.Fatalf("Failed to list existing books: %v", err)
		}
		for _, b := range existing {
			if err := client.Delete(ctx, b.ID); err != nil {
				log.Printf("Failed to delete book %d (%s): %v", b.ID, b.Title, err)
				continue
			}
			fmt.Printf("Deleted: %s\n", b.Title)
		}
	}

	for _, draft := range demoDrafts() {
		if err := client.Create(ctx, draft); err != nil {
			log.Printf("Failed to create %q: %v", draft.Title, err)
			continue
		}
		fmt.Printf("Created: %-45s $%.2f\n", draft.Title, draft.Price)
	}

	books, err := client.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list books after seeding: %v", err)
	}
	fmt.Printf("\nRecord store now holds %d books\n", len(books))
}

func demoDrafts() []domain.BookDraft {
	return []domain.BookDraft{
		{Title: "The Pragmatic Shelf Stocker", Desc: "A field guide to keeping a small bookstore's inventory honest.", Price: 29.95},
		{Title: "Cloud Native Patterns", Desc: "Designing change-tolerant software for AWS and friends.", Price: 44.50},
		{Title: "Zen and the Art of Quiet Mornings", Desc: "Essays on calm, mindfulness, and slow coffee.", Price: 14.00},
		{Title: "Docker Up & Running", Desc: "Shipping reliable containers in production, third edition.", Price: 39.99},
		{Title: "JavaScript for Impatient Readers", Desc: "A fast-paced web programming refresher.", Price: 24.75},
		{Title: "The Sourdough Ledger", Desc: "Recipes and bookkeeping from a baker who ran a bookshop.", Price: 18.25},
		{Title: "Kubernetes in Small Doses", Desc: "DevOps orchestration without the migraine.", Price: 49.00},
		{Title: "A History of Marginalia", Desc: "What readers leave behind in secondhand books.", Price: 21.40},
		{Title: "Machine Learning, Plainly", Desc: "AI concepts explained over diner napkins.", Price: 36.80},
		{Title: "The Security Mindset", Desc: "Thinking like an attacker to defend your systems.", Price: 42.10},
		{Title: "Gardens of the North Atlantic", Desc: "Travel writing from windswept coastal plots.", Price: 16.90},
		{Title: "Refactoring Old Houses", Desc: "Home design lessons software people keep borrowing.", Price: 27.30},
	}
}
