package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"visitmap/internal/overlay/models"
	"visitmap/pkg/platform/sentinel"
	"visitmap/pkg/platform/tx"
)

// uniqueViolation is the PostgreSQL SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

// PostgresStore persists overlays in the overlays table, one row per overlay,
// ordered by position within a collection.
type PostgresStore struct {
	db         *sql.DB
	collection string
}

// PostgresStoreOption configures a PostgresStore instance.
type PostgresStoreOption func(*PostgresStore)

// WithPostgresCollection selects the collection rows are scoped to.
func WithPostgresCollection(collection string) PostgresStoreOption {
	return func(s *PostgresStore) {
		if collection != "" {
			s.collection = collection
		}
	}
}

// NewPostgresStore constructs a PostgreSQL-backed overlay store.
func NewPostgresStore(db *sql.DB, opts ...PostgresStoreOption) *PostgresStore {
	s := &PostgresStore{db: db, collection: DefaultCollection}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

const selectOverlays = `
	SELECT id, name, color, countries, visible, paint_order, tooltip, timeline_enabled, timeline_snapshot
	FROM overlays
	WHERE collection = $1
	ORDER BY position`

func (s *PostgresStore) Load(ctx context.Context) ([]models.Overlay, error) {
	rows, err := s.db.QueryContext(ctx, selectOverlays, s.collection)
	if err != nil {
		return nil, fmt.Errorf("load overlays: %w", err)
	}
	defer rows.Close()

	list := []models.Overlay{}
	for rows.Next() {
		o, err := scanOverlay(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load overlays: %w", err)
	}
	return list, nil
}

// Save replaces the collection's rows with overlays in one transaction.
func (s *PostgresStore) Save(ctx context.Context, overlays []models.Overlay) error {
	return tx.Run(ctx, s.db, func(ctx context.Context, t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, `DELETE FROM overlays WHERE collection = $1`, s.collection); err != nil {
			return fmt.Errorf("clear overlays: %w", err)
		}
		for i, o := range overlays {
			if err := s.insert(ctx, t, o, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostgresStore) Add(ctx context.Context, overlay models.Overlay) error {
	if overlay.ID == "" {
		return fmt.Errorf("overlay id is required: %w", sentinel.ErrInvalidState)
	}
	return tx.Run(ctx, s.db, func(ctx context.Context, t *sql.Tx) error {
		var next int
		err := t.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position) + 1, 0) FROM overlays WHERE collection = $1`,
			s.collection,
		).Scan(&next)
		if err != nil {
			return fmt.Errorf("next overlay position: %w", err)
		}
		return s.insert(ctx, t, overlay, next)
	})
}

func (s *PostgresStore) Edit(ctx context.Context, overlay models.Overlay) error {
	query := `
		UPDATE overlays SET
			name = $3,
			color = $4,
			countries = $5,
			visible = $6,
			paint_order = $7,
			tooltip = $8,
			timeline_enabled = $9,
			timeline_snapshot = $10
		WHERE collection = $1 AND id = $2
	`
	res, err := s.db.ExecContext(ctx, query,
		s.collection, overlay.ID,
		overlay.Name, overlay.Color, pq.Array(countriesOrEmpty(overlay.Countries)), overlay.Visible,
		nullInt(overlay.Order), nullString(overlay.Tooltip),
		overlay.TimelineEnabled, nullBool(overlay.TimelineSnapshot),
	)
	if err != nil {
		return fmt.Errorf("edit overlay: %w", err)
	}
	return requireAffected(res, overlay.ID)
}

func (s *PostgresStore) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM overlays WHERE collection = $1 AND id = $2`, s.collection, id)
	if err != nil {
		return fmt.Errorf("remove overlay: %w", err)
	}
	return requireAffected(res, id)
}

func (s *PostgresStore) insert(ctx context.Context, t *sql.Tx, o models.Overlay, position int) error {
	query := `
		INSERT INTO overlays (
			collection, id, position, name, color, countries, visible,
			paint_order, tooltip, timeline_enabled, timeline_snapshot
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := t.ExecContext(ctx, query,
		s.collection, o.ID, position, o.Name, o.Color, pq.Array(countriesOrEmpty(o.Countries)), o.Visible,
		nullInt(o.Order), nullString(o.Tooltip), o.TimelineEnabled, nullBool(o.TimelineSnapshot),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("overlay %q: %w", o.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert overlay: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOverlay(row rowScanner) (models.Overlay, error) {
	var (
		o        models.Overlay
		order    sql.NullInt64
		tooltip  sql.NullString
		snapshot sql.NullBool
	)
	err := row.Scan(&o.ID, &o.Name, &o.Color, pq.Array(&o.Countries), &o.Visible,
		&order, &tooltip, &o.TimelineEnabled, &snapshot)
	if err != nil {
		return models.Overlay{}, fmt.Errorf("scan overlay: %w", err)
	}
	if o.Countries == nil {
		o.Countries = []string{}
	}
	if order.Valid {
		v := int(order.Int64)
		o.Order = &v
	}
	if tooltip.Valid {
		v := tooltip.String
		o.Tooltip = &v
	}
	if snapshot.Valid {
		v := snapshot.Bool
		o.TimelineSnapshot = &v
	}
	return o, nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("overlay %q: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

func countriesOrEmpty(c []string) []string {
	if c == nil {
		return []string{}
	}
	return c
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}
