package api

import (
	"context"
	"testing"
	"time"

	"contentfield/models"
)

type deadlineFetcher struct {
	hadDeadline bool
	remaining   time.Duration
}

func (f *deadlineFetcher) FetchSuggestions(ctx context.Context, _ models.ContentType, _ string, _ models.CountryCode) ([]models.Suggestion, error) {
	deadline, ok := ctx.Deadline()
	f.hadDeadline = ok
	f.remaining = time.Until(deadline)
	return []models.Suggestion{}, nil
}

func TestFetchSuggestionsWithoutGateway(t *testing.T) {
	prevGateway, prevSessions, prevTimeout := gateway, sessions, lookupTimeout
	t.Cleanup(func() { gateway, sessions, lookupTimeout = prevGateway, prevSessions, prevTimeout })

	Configure(nil, nil, 0)
	got, err := fetchSuggestions(models.ContentTypeBrand, "x", models.CountrySE)
	if err == nil {
		t.Fatal("expected an error when no gateway is configured")
	}
	if got != nil {
		t.Errorf("expected nil suggestions, got %+v", got)
	}
}

func TestFetchSuggestionsIsBounded(t *testing.T) {
	prevGateway, prevSessions, prevTimeout := gateway, sessions, lookupTimeout
	t.Cleanup(func() { gateway, sessions, lookupTimeout = prevGateway, prevSessions, prevTimeout })

	fetcher := &deadlineFetcher{}
	Configure(fetcher, nil, 2*time.Second)

	if _, err := fetchSuggestions(models.ContentTypeBrand, "x", models.CountrySE); err != nil {
		t.Fatalf("fetchSuggestions failed: %v", err)
	}
	if !fetcher.hadDeadline {
		t.Fatal("lookup ran without a deadline")
	}
	if fetcher.remaining <= 0 || fetcher.remaining > 2*time.Second {
		t.Errorf("expected a deadline within 2s, got %v", fetcher.remaining)
	}
}
