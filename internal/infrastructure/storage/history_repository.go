package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports"
)

const historySchema = `CREATE TABLE IF NOT EXISTS published_posts (
	link         TEXT PRIMARY KEY,
	post_id      TEXT NOT NULL,
	title        TEXT NOT NULL,
	platform     TEXT NOT NULL,
	published_at INTEGER NOT NULL
)`

// HistoryRepository persists successful publications in SQLite, keyed by link.
// It survives a store write that fails after the platform accepted a post.
type HistoryRepository struct {
	db  *sql.DB
	sq  sq.StatementBuilderType
	now func() time.Time
}

var _ ports.PublishHistory = (*HistoryRepository)(nil)

// OpenHistory opens (or creates) the history database at path.
func OpenHistory(ctx context.Context, path string) (*HistoryRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history: %w", err)
	}
	if _, err := db.ExecContext(ctx, historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return NewHistoryRepository(db), nil
}

// NewHistoryRepository wires an already opened database.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{
		db:  db,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Question),
		now: time.Now,
	}
}

// AlreadyPublished reports whether link was recorded before.
func (r *HistoryRepository) AlreadyPublished(ctx context.Context, link string) (bool, error) {
	if r.db == nil {
		return false, nil
	}

	query, args, err := r.sq.Select("COUNT(1)").From("published_posts").Where(sq.Eq{"link": link}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build history query: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("query history: %w", err)
	}
	return count > 0, nil
}

// RecordPublished stores the publication; a repeated link keeps the first entry.
func (r *HistoryRepository) RecordPublished(ctx context.Context, post domain.Post, platform string) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.sq.Insert("published_posts").
		Columns("link", "post_id", "title", "platform", "published_at").
		Values(post.Link, post.ID, post.Title, platform, r.now().Unix()).
		Suffix("ON CONFLICT (link) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build history insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record publication: %w", err)
	}
	return nil
}

// Recent lists the latest publications, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, limit uint64) ([]domain.Publication, error) {
	query, args, err := r.sq.Select("link", "post_id", "title", "platform", "published_at").
		From("published_posts").
		OrderBy("published_at DESC", "link").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	var result []domain.Publication
	for rows.Next() {
		var (
			p  domain.Publication
			ts int64
		)
		if err := rows.Scan(&p.Link, &p.PostID, &p.Title, &p.Platform, &ts); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		p.PublishedAt = time.Unix(ts, 0).UTC()
		result = append(result, p)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// Close releases the database handle.
func (r *HistoryRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
