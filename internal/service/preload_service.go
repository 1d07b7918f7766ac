package service

import (
	"context"
	"fmt"
	"log/slog"

	"eventfinder/internal/events"
	"eventfinder/pkg/ticketmaster"
)

// Preload walks the unfiltered listing from the first page and archives up
// to pages pages of events. It stops early on the last upstream page.
func (s *eventsService) Preload(ctx context.Context, pages int) (int, error) {
	if s.apiKey == "" {
		return 0, ErrNotConfigured
	}

	size := ticketmaster.DefaultSize
	archived := 0

	slog.Info("starting preloader process", "pages", pages)

	for page := 0; page < pages; page++ {
		resp, err := s.client.SearchEvents(ctx, &ticketmaster.SearchParams{
			Page: &page,
			Size: &size,
		})
		if err != nil {
			slog.Error("unable to get events", "error", err, "page", page)
			return archived, fmt.Errorf("fetch page %d: %w", page, err)
		}

		items := resp.Events()
		normalized := make([]events.Event, 0, len(items))
		for _, tm := range items {
			normalized = append(normalized, events.Normalize(tm))
		}

		if s.archiver != nil {
			if err := s.archiver.ArchiveEvents(ctx, normalized); err != nil {
				slog.Error("unable to archive events", "error", err, "page", page)
				return archived, fmt.Errorf("archive page %d: %w", page, err)
			}
		}
		archived += len(normalized)

		slog.Info("fetched events page", "page", page, "count", len(normalized))

		if len(items) < size || page+1 >= resp.Page.TotalPages {
			break
		}
	}

	if _, err := s.RefreshClassifications(ctx); err != nil {
		slog.Warn("unable to refresh classifications", "error", err)
	}

	slog.Info("preloader process completed successfully", "events_archived", archived)
	return archived, nil
}
