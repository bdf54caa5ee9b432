package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// ReadSnapshots returns every snapshot ordered by seq ASC, uuid ASC.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadSnapshots(ctx context.Context) ([]Snapshot, error) {
	return s.querySnapshots(ctx, `
		SELECT uuid, name, kind, state, state_hash, seq
		FROM snapshots
		ORDER BY seq ASC, uuid COLLATE BINARY ASC
	`)
}

// ReadEntitySnapshots returns the snapshots of one entity ordered by seq.
func (s *Store) ReadEntitySnapshots(ctx context.Context, id uuid.UUID) ([]Snapshot, error) {
	return s.querySnapshots(ctx, `
		SELECT uuid, name, kind, state, state_hash, seq
		FROM snapshots
		WHERE uuid = ?
		ORDER BY seq ASC, state_hash COLLATE BINARY ASC
	`, id.String())
}

func (s *Store) querySnapshots(ctx context.Context, query string, args ...any) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []Snapshot{}
	for rows.Next() {
		var snap Snapshot
		var id, state string
		if err := rows.Scan(&id, &snap.Name, &snap.Kind, &state, &snap.StateHash, &snap.Seq); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if snap.UUID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("snapshot uuid: %w", err)
		}
		if snap.State, err = unmarshalCompound(state); err != nil {
			return nil, fmt.Errorf("snapshot %s state: %w", id, err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}

// ReadQueryRuns returns every run ordered by seq ASC, id ASC, with matches.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadQueryRuns(ctx context.Context) ([]QueryRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pattern, pattern_hash, invert, path, unknown_field, total, seq
		FROM query_runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	runs := []QueryRun{}
	for rows.Next() {
		run, err := scanQueryRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	// The single connection must be released before reading matches.
	rows.Close()

	for i := range runs {
		if runs[i].Matches, err = s.ReadMatches(ctx, runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// ReadQueryRun returns one run with its matches.
// Returns sql.ErrNoRows (wrapped) if the run does not exist.
func (s *Store) ReadQueryRun(ctx context.Context, id string) (QueryRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, pattern, pattern_hash, invert, path, unknown_field, total, seq
		FROM query_runs
		WHERE id = ?
	`, id)
	run, err := scanQueryRun(row)
	if err != nil {
		return QueryRun{}, err
	}
	if run.Matches, err = s.ReadMatches(ctx, id); err != nil {
		return QueryRun{}, err
	}
	return run, nil
}

// ReadMatches returns the entities a run selected, in scan order.
func (s *Store) ReadMatches(ctx context.Context, runID string) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entity_uuid, entity_name
		FROM query_matches
		WHERE run_id = ?
		ORDER BY ord ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		var m Match
		var id string
		if err := rows.Scan(&id, &m.Name); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if m.UUID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("match uuid: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return matches, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQueryRun(row scanner) (QueryRun, error) {
	var run QueryRun
	var pattern string
	var invert int
	err := row.Scan(&run.ID, &pattern, &run.PatternHash, &invert, &run.Path, &run.Unknown, &run.Total, &run.Seq)
	if err == sql.ErrNoRows {
		return QueryRun{}, fmt.Errorf("query run not found: %w", err)
	}
	if err != nil {
		return QueryRun{}, fmt.Errorf("scan query run: %w", err)
	}
	run.Invert = invert != 0
	if run.Pattern, err = unmarshalCompound(pattern); err != nil {
		return QueryRun{}, fmt.Errorf("query run %s pattern: %w", run.ID, err)
	}
	return run, nil
}

// ReadEntityRuns returns the ids of every run that selected the entity,
// ordered by the run's seq.
func (s *Store) ReadEntityRuns(ctx context.Context, id uuid.UUID) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id
		FROM query_matches m
		JOIN query_runs r ON r.id = m.run_id
		WHERE m.entity_uuid = ?
		ORDER BY r.seq ASC, r.id COLLATE BINARY ASC
	`, id.String())
	if err != nil {
		return nil, fmt.Errorf("query entity runs: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var runID string
		if err := rows.Scan(&runID); err != nil {
			return nil, fmt.Errorf("scan entity run: %w", err)
		}
		ids = append(ids, runID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entity runs: %w", err)
	}
	return ids, nil
}
