package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrItemNotFound indicates the requested queue item does not exist.
var ErrItemNotFound = errors.New("queue item not found")

// NewItem inserts a pending item. The (kind, content_id) pair is unique;
// callers check FindByContent first to keep repeated CSV imports idempotent.
func (s *Store) NewItem(ctx context.Context, item *Item) (*Item, error) {
	ctx = ensureContext(ctx)
	now := time.Now().UTC()

	res, err := s.execWithRetry(ctx, `
		INSERT INTO queue_items (
			kind, content_id, title, body, narration_text,
			background_theme, music_mood, show_title, status,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(item.Kind),
		item.ContentID,
		nullableString(item.Title),
		item.Body,
		nullableString(item.NarrationText),
		nullableString(item.BackgroundTheme),
		nullableString(item.MusicMood),
		nullableBool(item.ShowTitle),
		string(StatusPending),
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert queue item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read inserted id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a single item.
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM queue_items WHERE id = ?", id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get queue item %d: %w", id, err)
	}
	return item, nil
}

// FindByContent looks up an item by its source row identity.
func (s *Store) FindByContent(ctx context.Context, kind Kind, contentID string) (*Item, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM queue_items WHERE kind = ? AND content_id = ?",
		string(kind), contentID)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find queue item %s/%s: %w", kind, contentID, err)
	}
	return item, nil
}

// Update persists every mutable column of the item.
func (s *Store) Update(ctx context.Context, item *Item) error {
	ctx = ensureContext(ctx)
	item.UpdatedAt = time.Now().UTC()

	res, err := s.execWithRetry(ctx, `
		UPDATE queue_items SET
			title = ?,
			body = ?,
			narration_text = ?,
			background_theme = ?,
			music_mood = ?,
			show_title = ?,
			status = ?,
			error_message = ?,
			cues_json = ?,
			background_file = ?,
			cta_file = ?,
			music_file = ?,
			narration_file = ?,
			rendered_file = ?,
			final_file = ?,
			progress_stage = ?,
			progress_percent = ?,
			progress_message = ?,
			updated_at = ?
		WHERE id = ?`,
		nullableString(item.Title),
		item.Body,
		nullableString(item.NarrationText),
		nullableString(item.BackgroundTheme),
		nullableString(item.MusicMood),
		nullableBool(item.ShowTitle),
		string(item.Status),
		nullableString(item.ErrorMessage),
		nullableString(item.CuesJSON),
		nullableString(item.BackgroundFile),
		nullableString(item.CTAFile),
		nullableString(item.MusicFile),
		nullableString(item.NarrationFile),
		nullableString(item.RenderedFile),
		nullableString(item.FinalFile),
		nullableString(item.ProgressStage),
		item.ProgressPercent,
		nullableString(item.ProgressMessage),
		item.UpdatedAt.Format(time.RFC3339Nano),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update queue item %d: %w", item.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update queue item %d: %w", item.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, item.ID)
	}
	return nil
}

// List returns items filtered by status, oldest first. With no statuses it
// returns everything.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Item, error) {
	ctx = ensureContext(ctx)

	query := "SELECT " + itemColumns + " FROM queue_items"
	var args []any
	if len(statuses) > 0 {
		query += " WHERE status IN (" + makePlaceholders(len(statuses)) + ")"
		args = statusArgs(statuses)
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list queue items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queue items: %w", err)
	}
	return items, nil
}

// NextForStatuses claims the oldest item in one of the given statuses, or
// nil when the queue has nothing to do.
func (s *Store) NextForStatuses(ctx context.Context, statuses ...Status) (*Item, error) {
	ctx = ensureContext(ctx)
	if len(statuses) == 0 {
		return nil, nil
	}

	query := "SELECT " + itemColumns + " FROM queue_items WHERE status IN (" +
		makePlaceholders(len(statuses)) + ") ORDER BY id ASC LIMIT 1"

	row := s.db.QueryRowContext(ctx, query, statusArgs(statuses)...)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("next queue item: %w", err)
	}
	return item, nil
}

// Remove deletes a single item.
func (s *Store) Remove(ctx context.Context, id int64) error {
	ctx = ensureContext(ctx)
	res, err := s.execWithRetry(ctx, "DELETE FROM queue_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("remove queue item %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove queue item %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	return nil
}
