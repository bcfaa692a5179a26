package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a run id is not in the ledger.
var ErrNotFound = errors.New("run not found")

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID           string
	CreatedAt    string
	Circuit      string
	OutputPath   string
	Succeeded    bool
	ArtifactHash string
}

// Run is a fully loaded run record.
type Run struct {
	RunSummary
	ArtifactJSON        []byte
	ExcludeFromFileList bool
	Symbols             []string
	Diagnostics         []string
}

// ListRuns returns every recorded run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, circuit, output_path, succeeded, artifact_hash
		FROM runs
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var succeeded int
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Circuit, &r.OutputPath, &succeeded, &r.ArtifactHash); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Succeeded = succeeded != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun loads one run with its artifact, symbols, and diagnostics.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{}
	var succeeded int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, circuit, output_path, succeeded, artifact_hash
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.CreatedAt, &run.Circuit, &run.OutputPath, &succeeded, &run.ArtifactHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	run.Succeeded = succeeded != 0

	var artifactJSON string
	var exclude int
	err = s.db.QueryRowContext(ctx, `
		SELECT json, exclude_from_filelist FROM artifacts WHERE run_id = ?
	`, id).Scan(&artifactJSON, &exclude)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Failed or no-op run: diagnostics only.
	case err != nil:
		return nil, fmt.Errorf("get artifact: %w", err)
	default:
		run.ArtifactJSON = []byte(artifactJSON)
		run.ExcludeFromFileList = exclude != 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol FROM symbols WHERE run_id = ? ORDER BY idx
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get symbols: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		run.Symbols = append(run.Symbols, sym)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	diagRows, err := s.db.QueryContext(ctx, `
		SELECT message FROM diagnostics WHERE run_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get diagnostics: %w", err)
	}
	defer diagRows.Close()
	for diagRows.Next() {
		var msg string
		if err := diagRows.Scan(&msg); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		run.Diagnostics = append(run.Diagnostics, msg)
	}
	return run, diagRows.Err()
}
