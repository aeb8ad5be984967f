package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScoreRow is one player slot's standing in a match.
type ScoreRow struct {
	Slot     int16
	ClientID int32 // -1 when no client controls the slot
	Points   int32
}

// KillEntry records one knockout, attributed by player slot.
type KillEntry struct {
	Tick       uint64
	KillerSlot int16
	VictimSlot int16
}

// Batch is everything one periodic save writes, committed atomically.
type Batch struct {
	MatchID uuid.UUID
	At      time.Time
	Scores  []ScoreRow
	Kills   []KillEntry
}

// MatchRepo stores match scores and the kill log.
type MatchRepo struct {
	db *DB
}

func NewMatchRepo(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// StartMatch registers a new match row. Called once at boot.
func (r *MatchRepo) StartMatch(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO matches (match_id, started_at) VALUES ($1, $2)`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("start match: %w", err)
	}
	return nil
}

// FinishMatch stamps the end time. Called on graceful shutdown.
func (r *MatchRepo) FinishMatch(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE matches SET ended_at = $2 WHERE match_id = $1`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("finish match: %w", err)
	}
	return nil
}

// Save upserts every score row and appends the kill log in one transaction.
func (r *MatchRepo) Save(ctx context.Context, b Batch) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range b.Scores {
		if _, err := tx.Exec(ctx,
			`INSERT INTO match_scores (match_id, slot, client_id, points, updated_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (match_id, slot)
			 DO UPDATE SET client_id = EXCLUDED.client_id, points = EXCLUDED.points, updated_at = EXCLUDED.updated_at`,
			b.MatchID, s.Slot, s.ClientID, s.Points, b.At,
		); err != nil {
			return fmt.Errorf("save score slot %d: %w", s.Slot, err)
		}
	}

	for _, k := range b.Kills {
		if _, err := tx.Exec(ctx,
			`INSERT INTO match_kills (match_id, tick, killer_slot, victim_slot)
			 VALUES ($1, $2, $3, $4)`,
			b.MatchID, int64(k.Tick), k.KillerSlot, k.VictimSlot,
		); err != nil {
			return fmt.Errorf("save kill: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// LoadScores returns a match's score rows ordered by slot.
func (r *MatchRepo) LoadScores(ctx context.Context, id uuid.UUID) ([]ScoreRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT slot, client_id, points FROM match_scores WHERE match_id = $1 ORDER BY slot`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ScoreRow
	for rows.Next() {
		var s ScoreRow
		if err := rows.Scan(&s.Slot, &s.ClientID, &s.Points); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
