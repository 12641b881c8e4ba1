package queue

import (
	"context"
	"fmt"
	"time"
)

// Clear deletes all items.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	return s.deleteWhere(ctx, "", nil)
}

// ClearCompleted deletes items that finished successfully.
func (s *Store) ClearCompleted(ctx context.Context) (int64, error) {
	return s.deleteWhere(ctx, "status = ?", []any{string(StatusCompleted)})
}

// ClearFailed deletes failed and review items.
func (s *Store) ClearFailed(ctx context.Context) (int64, error) {
	return s.deleteWhere(ctx, "status IN (?, ?)",
		[]any{string(StatusFailed), string(StatusReview)})
}

func (s *Store) deleteWhere(ctx context.Context, where string, args []any) (int64, error) {
	ctx = ensureContext(ctx)
	query := "DELETE FROM queue_items"
	if where != "" {
		query += " WHERE " + where
	}
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear queue items: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear queue items: %w", err)
	}
	return affected, nil
}

// RetryFailed returns failed and review items to pending and clears their
// error state.
func (s *Store) RetryFailed(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	res, err := s.execWithRetry(ctx, `
		UPDATE queue_items SET
			status = ?,
			error_message = NULL,
			progress_stage = NULL,
			progress_percent = 0,
			progress_message = NULL,
			updated_at = ?
		WHERE status IN (?, ?)`,
		string(StatusPending),
		time.Now().UTC().Format(time.RFC3339Nano),
		string(StatusFailed),
		string(StatusReview),
	)
	if err != nil {
		return 0, fmt.Errorf("retry failed items: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("retry failed items: %w", err)
	}
	return affected, nil
}

// ResetStuck rolls items left in a processing status (after a crash or an
// interrupted run) back to the status their stage consumes.
func (s *Store) ResetStuck(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	var total int64
	for _, transition := range stageRollbackTransitions {
		res, err := s.execWithRetry(ctx, `
			UPDATE queue_items SET status = ?, updated_at = ?
			WHERE status = ?`,
			string(transition.to), now, string(transition.from))
		if err != nil {
			return total, fmt.Errorf("reset stuck items (%s): %w", transition.from, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("reset stuck items (%s): %w", transition.from, err)
		}
		total += affected
	}
	return total, nil
}

// Stats returns the item count per status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(1) FROM queue_items GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("queue stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int, len(allStatuses))
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan queue stats: %w", err)
		}
		stats[Status(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queue stats: %w", err)
	}
	return stats, nil
}
