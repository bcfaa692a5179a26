package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quillhw/omir/internal/ir"
)

// RunRecord describes one emission run to be recorded. ArtifactJSON is nil
// for failed or no-op runs; the ledger then records diagnostics only.
type RunRecord struct {
	Circuit             string
	OutputPath          string
	ArtifactJSON        []byte
	ExcludeFromFileList bool
	Symbols             []string
	Diagnostics         []string
	Succeeded           bool
}

// RecordRun writes one run to the ledger atomically and returns its id.
func (s *Store) RecordRun(ctx context.Context, rec RunRecord) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var artifactHash string
	if rec.ArtifactJSON != nil {
		artifactHash = ir.ArtifactID(rec.ArtifactJSON)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, circuit, output_path, succeeded, artifact_hash)
		VALUES (?, ?, ?, ?, ?)
	`, runID, rec.Circuit, rec.OutputPath, boolToInt(rec.Succeeded), artifactHash)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	if rec.ArtifactJSON != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO artifacts (run_id, json, exclude_from_filelist)
			VALUES (?, ?, ?)
		`, runID, string(rec.ArtifactJSON), boolToInt(rec.ExcludeFromFileList))
		if err != nil {
			return "", fmt.Errorf("insert artifact: %w", err)
		}

		for idx, symbol := range rec.Symbols {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO symbols (run_id, idx, symbol)
				VALUES (?, ?, ?)
			`, runID, idx, symbol)
			if err != nil {
				return "", fmt.Errorf("insert symbol %d: %w", idx, err)
			}
		}
	}

	for seq, message := range rec.Diagnostics {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO diagnostics (run_id, seq, message)
			VALUES (?, ?, ?)
		`, runID, seq, message)
		if err != nil {
			return "", fmt.Errorf("insert diagnostic %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	return runID, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
