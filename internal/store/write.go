package store

import (
	"context"
	"fmt"

	"github.com/roach88/fastnbt/internal/nbt"
)

// WriteSnapshot records an entity's saved state and returns its state hash.
// Uses ON CONFLICT DO NOTHING: writing the same state for the same entity
// twice keeps the first row.
func (s *Store) WriteSnapshot(ctx context.Context, snap Snapshot) (string, error) {
	state, err := marshalTag(snap.State)
	if err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	hash := snap.StateHash
	if hash == "" {
		if hash, err = nbt.Hash(nbt.DomainSnapshot, snap.State); err != nil {
			return "", fmt.Errorf("write snapshot: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots
		(uuid, name, kind, state, state_hash, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(uuid, state_hash) DO NOTHING
	`,
		snap.UUID.String(),
		snap.Name,
		snap.Kind,
		state,
		hash,
		snap.Seq,
	)
	if err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return hash, nil
}

// WriteQueryRun records a run and its matches in one transaction and
// returns the run id. Writing the same run id again is a no-op.
func (s *Store) WriteQueryRun(ctx context.Context, run QueryRun) (string, error) {
	pattern, err := marshalTag(run.Pattern)
	if err != nil {
		return "", fmt.Errorf("write query run: %w", err)
	}
	patternHash := run.PatternHash
	if patternHash == "" {
		if patternHash, err = nbt.Hash(nbt.DomainPattern, run.Pattern); err != nil {
			return "", fmt.Errorf("write query run: %w", err)
		}
	}
	id := run.ID
	if id == "" {
		if id, err = RunID(patternHash, run.Invert, run.Seq); err != nil {
			return "", fmt.Errorf("write query run: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("write query run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO query_runs
		(id, pattern, pattern_hash, invert, path, unknown_field, total, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		pattern,
		patternHash,
		boolToInt(run.Invert),
		run.Path,
		run.Unknown,
		run.Total,
		run.Seq,
	)
	if err != nil {
		return "", fmt.Errorf("write query run: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("write query run: rows affected: %w", err)
	}
	if rows == 0 {
		return id, nil
	}

	for i, m := range run.Matches {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO query_matches
			(run_id, ord, entity_uuid, entity_name)
			VALUES (?, ?, ?, ?)
		`, id, i, m.UUID.String(), m.Name)
		if err != nil {
			return "", fmt.Errorf("write query match %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("write query run: commit: %w", err)
	}
	return id, nil
}
