package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var _ EventRepo = (*eventRepo)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendLevelEvent(ctx context.Context, data LevelEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	terms, err := json.Marshal(data.Terms)
	if err != nil {
		return fmt.Errorf("marshal terms: %w", err)
	}
	hidden, err := json.Marshal(data.Hidden)
	if err != nil {
		return fmt.Errorf("marshal hidden: %w", err)
	}

	query, args := builder().
		Insert("level_events").
		Columns("sequence", "timestamp", "session_id", "round", "tier", "level", "kind", "reason", "terms", "hidden").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Round, data.Tier, data.Level, data.Kind, data.Reason, string(terms), string(hidden)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save level event: %w", err)
	}
	return nil
}

func (r *eventRepo) LevelHistory(ctx context.Context, sessionID string) ([]LevelRecord, error) {
	levels, err := r.queryLevels(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, nil
	}

	stats, err := r.checkStatsByRound(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range levels {
		if st, ok := stats[levels[i].Round]; ok {
			levels[i].Checks = st.checks
			levels[i].Solved = st.solved
		}
	}
	return levels, nil
}

// queryLevels reads the level rows and closes the cursor before
// returning; the store runs on a single connection.
func (r *eventRepo) queryLevels(ctx context.Context, sessionID string) ([]LevelRecord, error) {
	query, args := builder().
		Select("sequence", "timestamp", "round", "tier", "level", "kind", "reason", "terms", "hidden").
		From(entsql.Table("level_events")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query level events: %w", err)
	}
	defer rows.Close()

	var out []LevelRecord
	for rows.Next() {
		var (
			rec           LevelRecord
			ts            int64
			terms, hidden string
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.Round, &rec.Tier, &rec.Level, &rec.Kind, &rec.Reason, &terms, &hidden); err != nil {
			return nil, fmt.Errorf("scan level event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		if err := json.Unmarshal([]byte(terms), &rec.Terms); err != nil {
			return nil, fmt.Errorf("unmarshal terms: %w", err)
		}
		if err := json.Unmarshal([]byte(hidden), &rec.Hidden); err != nil {
			return nil, fmt.Errorf("unmarshal hidden: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate level events: %w", err)
	}
	return out, nil
}
