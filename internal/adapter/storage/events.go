package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
)

var _ port.ViewEventsReader = (*EventsRepository)(nil)
var _ port.EventsSaver = (*EventsRepository)(nil)
var _ port.ProfilesCounter = (*EventsRepository)(nil)

// EventsRepository stores and reads raw usage events. The analytics
// tables may be unprovisioned in a fresh deployment; reads then return
// [domain.ErrUnavailable] through mapErr.
type EventsRepository struct {
	sqldb sqldb
}

func NewEventsRepository(sqldb sqldb) EventsRepository {
	return EventsRepository{sqldb}
}

func (r EventsRepository) ProductViews(
	ctx context.Context, windowDays int,
) ([]domain.ProductViewEvent, error) {
	const op = "EventsRepository.ProductViews"

	query := `
		SELECT product_id, COALESCE(user_id, ''), viewed_at
		FROM product_views
		WHERE viewed_at >= now() - make_interval(days => $1);`

	rows, err := r.sqldb.QueryContext(ctx, query, windowDays)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	defer rows.Close()

	var evts []domain.ProductViewEvent
	for rows.Next() {
		var evt domain.ProductViewEvent
		err := rows.Scan(&evt.ProductID, &evt.UserID, &evt.ViewedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		evts = append(evts, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return evts, nil
}

func (r EventsRepository) SiteVisitCount(ctx context.Context) (int, error) {
	const op = "EventsRepository.SiteVisitCount"

	var n int
	row := r.sqldb.QueryRowContext(ctx,
		`SELECT count(*) FROM website_visits;`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return n, nil
}

func (r EventsRepository) SaveProductViews(
	ctx context.Context, evts []domain.ProductViewEvent,
) error {
	const op = "EventsRepository.SaveProductViews"

	query := `
		INSERT INTO product_views (product_id, user_id, viewed_at)
		VALUES ($1, $2, $3);`

	return r.saveInTx(ctx, op, func(tx *sql.Tx) error {
		for _, evt := range evts {
			_, err := tx.ExecContext(ctx, query,
				evt.ProductID, nullableString(evt.UserID), evt.ViewedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r EventsRepository) SaveSiteVisits(
	ctx context.Context, evts []domain.SiteVisitEvent,
) error {
	const op = "EventsRepository.SaveSiteVisits"

	query := `
		INSERT INTO website_visits (page_url, user_id, visited_at)
		VALUES ($1, $2, $3);`

	return r.saveInTx(ctx, op, func(tx *sql.Tx) error {
		for _, evt := range evts {
			_, err := tx.ExecContext(ctx, query,
				evt.PageURL, nullableString(evt.UserID), evt.VisitedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r EventsRepository) saveInTx(
	ctx context.Context, op string, fn func(tx *sql.Tx) error,
) (saveErr error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if saveErr == nil {
			if err := tx.Commit(); err != nil {
				saveErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return nil
}

func (r EventsRepository) ProfileCount(ctx context.Context) (int, error) {
	const op = "EventsRepository.ProfileCount"

	var n int
	row := r.sqldb.QueryRowContext(ctx, `SELECT count(*) FROM profiles;`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return n, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
