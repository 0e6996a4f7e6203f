package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendCheckEvent(ctx context.Context, data CheckEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert("check_events").
		Columns("sequence", "timestamp", "session_id", "round", "correct", "terms_correct", "terms_total", "kind_correct", "reason_correct").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Round, boolInt(data.Correct), data.TermsCorrect, data.TermsTotal, boolInt(data.KindCorrect), boolInt(data.ReasonCorrect)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save check event: %w", err)
	}
	return nil
}

type roundStats struct {
	checks int
	solved bool
}

func (r *eventRepo) checkStatsByRound(ctx context.Context, sessionID string) (map[int]roundStats, error) {
	query, args := builder().
		Select("round", entsql.Count("*"), entsql.Max("correct")).
		From(entsql.Table("check_events")).
		Where(entsql.EQ("session_id", sessionID)).
		GroupBy("round").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query check events: %w", err)
	}
	defer rows.Close()

	out := make(map[int]roundStats)
	for rows.Next() {
		var round, checks, solved int
		if err := rows.Scan(&round, &checks, &solved); err != nil {
			return nil, fmt.Errorf("scan check stats: %w", err)
		}
		out[round] = roundStats{checks: checks, solved: solved == 1}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate check stats: %w", err)
	}
	return out, nil
}

// boolInt stores booleans as 0/1 so MAX() over them reads as "any".
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
