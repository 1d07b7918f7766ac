package sqlc

import (
	"context"
	"database/sql"
	"errors"

	"eventfinder/internal/events"

	sq "github.com/Masterminds/squirrel"
)

var eventColumns = []string{
	"id", "title", "description", "location", "venue", "date_time",
	"event_type", "organizer", "price", "image_url", "ticket_url", "please_note",
}

const upsertEventSuffix = `ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	description = excluded.description,
	location = excluded.location,
	venue = excluded.venue,
	date_time = excluded.date_time,
	event_type = excluded.event_type,
	organizer = excluded.organizer,
	price = excluded.price,
	image_url = excluded.image_url,
	ticket_url = excluded.ticket_url,
	please_note = excluded.please_note,
	archived_at = CURRENT_TIMESTAMP`

// UpsertEvents stores the events, replacing earlier copies with the same id.
func (q *Queries) UpsertEvents(ctx context.Context, items []events.Event) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	query := sq.Insert("events_archive").Columns(eventColumns...)
	for _, e := range items {
		query = query.Values(
			e.ID, e.Title, e.Description, e.Location, e.Venue, e.DateTime,
			e.EventType, e.Organizer,
			nullString(e.Price), nullString(e.ImageURL), nullString(e.TicketURL), nullString(e.PleaseNote),
		)
	}
	query = query.Suffix(upsertEventSuffix)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := q.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) GetEvent(ctx context.Context, id string) (events.Event, error) {
	query, args, err := sq.Select(eventColumns...).
		From("events_archive").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return events.Event{}, err
	}

	var e events.Event
	var price, imageURL, ticketURL, pleaseNote sql.NullString
	err = q.db.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.Title, &e.Description, &e.Location, &e.Venue, &e.DateTime,
		&e.EventType, &e.Organizer, &price, &imageURL, &ticketURL, &pleaseNote,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return events.Event{}, ErrNotFound
	}
	if err != nil {
		return events.Event{}, err
	}

	e.Price = price.String
	e.ImageURL = imageURL.String
	e.TicketURL = ticketURL.String
	e.PleaseNote = pleaseNote.String
	return e, nil
}

type CountEventsParams struct {
	EventType *string
}

func (q *Queries) CountEvents(ctx context.Context, arg CountEventsParams) (int64, error) {
	query := sq.Select("count(*)").From("events_archive")
	if arg.EventType != nil {
		query = query.Where(sq.Eq{"event_type": *arg.EventType})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := q.db.QueryRowContext(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
