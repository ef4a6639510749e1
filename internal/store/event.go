package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventlane/apiserver/types"
)

// EventRepository handles persistence for events.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListByUser returns a user's events ordered by (date, time) ascending.
// Dates and times are formatted in SQL so the API always serves
// YYYY-MM-DD and HH:MM regardless of column precision.
func (r *EventRepository) ListByUser(ctx context.Context, userID int) ([]types.Event, error) {
	const query = `
		SELECT id, user_id, title,
			to_char(date, 'YYYY-MM-DD'),
			to_char(time, 'HH24:MI'),
			description, link
		FROM events
		WHERE user_id = $1
		ORDER BY date ASC, time ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]types.Event, 0)
	for rows.Next() {
		var event types.Event
		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.Title,
			&event.Date,
			&event.Time,
			&event.Description,
			&event.Link,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) Get(ctx context.Context, id int) (types.Event, error) {
	const query = `
		SELECT id, user_id, title,
			to_char(date, 'YYYY-MM-DD'),
			to_char(time, 'HH24:MI'),
			description, link
		FROM events
		WHERE id = $1`
	var event types.Event
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.UserID,
		&event.Title,
		&event.Date,
		&event.Time,
		&event.Description,
		&event.Link,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Event{}, ErrNotFound
		}
		return types.Event{}, err
	}
	return event, nil
}

func (r *EventRepository) Create(ctx context.Context, event types.Event) (int, error) {
	const query = `
		INSERT INTO events (user_id, title, date, time, description, link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int
	err := r.db.QueryRowContext(
		ctx,
		query,
		event.UserID,
		event.Title,
		event.Date,
		event.Time,
		event.Description,
		event.Link,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update overwrites all five mutable fields unconditionally. A nil
// description or link overwrites the stored value with NULL.
func (r *EventRepository) Update(ctx context.Context, event types.Event) error {
	const query = `
		UPDATE events
		SET title = $1,
			date = $2,
			time = $3,
			description = $4,
			link = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		event.Title,
		event.Date,
		event.Time,
		event.Description,
		event.Link,
		event.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM events WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
