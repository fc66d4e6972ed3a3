package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that the requested snapshot was not found.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one stored raw-statements payload for a ticker at a point in
// time. Ratios are recomputed from Data on read so engine changes apply
// retroactively.
type Snapshot struct {
	ID           int             `json:"id"`
	TickerID     int             `json:"tickerId"`
	SnapshotDate time.Time       `json:"snapshotDate"`
	Data         json.RawMessage `json:"data"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Repository defines persistent storage for statement snapshots.
type Repository interface {
	Save(ctx context.Context, tickerID int, date time.Time, data json.RawMessage) error
	GetLatest(ctx context.Context, symbol string) (*Snapshot, error)
	GetByDate(ctx context.Context, symbol string, date time.Time) (*Snapshot, error)
	List(ctx context.Context, symbol string, limit int) ([]Snapshot, error)
	GetTickerID(ctx context.Context, symbol string) (int, error)
	EnsureTicker(ctx context.Context, symbol, name string) (int, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL snapshot repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, tickerID int, date time.Time, data json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO statement_snapshots (ticker_id, snapshot_date, data)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (ticker_id, snapshot_date)
		 DO UPDATE SET data = $3::jsonb`,
		tickerID, date, data)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

func (r *PgRepository) GetLatest(ctx context.Context, symbol string) (*Snapshot, error) {
	var s Snapshot
	err := r.pool.QueryRow(ctx,
		`SELECT ss.id, ss.ticker_id, ss.snapshot_date, ss.data, ss.created_at
		 FROM statement_snapshots ss
		 JOIN tickers t ON t.id = ss.ticker_id
		 WHERE t.symbol = $1
		 ORDER BY ss.snapshot_date DESC
		 LIMIT 1`, symbol).Scan(&s.ID, &s.TickerID, &s.SnapshotDate, &s.Data, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting latest snapshot: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) GetByDate(ctx context.Context, symbol string, date time.Time) (*Snapshot, error) {
	var s Snapshot
	err := r.pool.QueryRow(ctx,
		`SELECT ss.id, ss.ticker_id, ss.snapshot_date, ss.data, ss.created_at
		 FROM statement_snapshots ss
		 JOIN tickers t ON t.id = ss.ticker_id
		 WHERE t.symbol = $1 AND ss.snapshot_date = $2`, symbol, date).
		Scan(&s.ID, &s.TickerID, &s.SnapshotDate, &s.Data, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting snapshot by date: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) List(ctx context.Context, symbol string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.pool.Query(ctx,
		`SELECT ss.id, ss.ticker_id, ss.snapshot_date, ss.data, ss.created_at
		 FROM statement_snapshots ss
		 JOIN tickers t ON t.id = ss.ticker_id
		 WHERE t.symbol = $1
		 ORDER BY ss.snapshot_date DESC
		 LIMIT $2`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.TickerID, &s.SnapshotDate, &s.Data, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *PgRepository) GetTickerID(ctx context.Context, symbol string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM tickers WHERE symbol = $1`, symbol).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("getting ticker ID for %s: %w", symbol, err)
	}
	return id, nil
}

func (r *PgRepository) EnsureTicker(ctx context.Context, symbol, name string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tickers (symbol, name)
		 VALUES ($1, $2)
		 ON CONFLICT (symbol) DO UPDATE SET name = COALESCE(NULLIF($2, ''), tickers.name)
		 RETURNING id`,
		symbol, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensuring ticker %s: %w", symbol, err)
	}
	return id, nil
}
