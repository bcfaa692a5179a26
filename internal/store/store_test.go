package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhw/omir/internal/ir"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestRecordAndGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	artifact := []byte(`[{"info":"","id":"OMID:0","fields":[]}]`)
	id, err := s.RecordRun(ctx, RunRecord{
		Circuit:             "Top",
		OutputPath:          "omir.json",
		ArtifactJSON:        artifact,
		ExcludeFromFileList: true,
		Symbols:             []string{"A", "B"},
		Succeeded:           true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	run, err := s.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "Top", run.Circuit)
	assert.Equal(t, "omir.json", run.OutputPath)
	assert.True(t, run.Succeeded)
	assert.Equal(t, artifact, run.ArtifactJSON)
	assert.True(t, run.ExcludeFromFileList)
	assert.Equal(t, []string{"A", "B"}, run.Symbols)
	assert.Empty(t, run.Diagnostics)
	assert.Equal(t, ir.ArtifactID(artifact), run.ArtifactHash)
	assert.NotEmpty(t, run.CreatedAt)
}

func TestRecordFailedRunKeepsDiagnosticsOnly(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.RecordRun(ctx, RunRecord{
		Circuit:     "Top",
		Diagnostics: []string{"first problem", "second problem"},
		Succeeded:   false,
	})
	require.NoError(t, err)

	run, err := s.GetRun(ctx, id)
	require.NoError(t, err)
	assert.False(t, run.Succeeded)
	assert.Nil(t, run.ArtifactJSON)
	assert.Empty(t, run.Symbols)
	assert.Equal(t, []string{"first problem", "second problem"}, run.Diagnostics)
	assert.Empty(t, run.ArtifactHash)
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id1, err := s.RecordRun(ctx, RunRecord{Circuit: "First", Succeeded: true})
	require.NoError(t, err)
	id2, err := s.RecordRun(ctx, RunRecord{Circuit: "Second", Succeeded: false})
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	ids := []string{runs[0].ID, runs[1].ID}
	assert.Contains(t, ids, id1)
	assert.Contains(t, ids, id2)
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
