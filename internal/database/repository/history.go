package repository

import (
	"context"
	"database/sql"
	"time"
)

// HistoryEntry is one recorded result: a produced recommendation or a
// completed booking-week simulation.
type HistoryEntry struct {
	ID        string
	Kind      string // "recommendation" or "booking_week"
	Mode      string
	Summary   string
	Price     float64 // final price for recommendations, base price for simulations
	CreatedAt time.Time
}

// HistoryRepo stores the local audit log of produced results.
type HistoryRepo struct{ db *sql.DB }

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

func (r *HistoryRepo) Add(ctx context.Context, e HistoryEntry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO history(id, kind, mode, summary, price, created_at)
	VALUES(?, ?, ?, ?, ?, ?)
	`, e.ID, e.Kind, e.Mode, e.Summary, e.Price, e.CreatedAt)
	return err
}

func (r *HistoryRepo) ListRecent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, kind, mode, summary, price, created_at FROM history ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Mode, &e.Summary, &e.Price, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *HistoryRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}
