package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/runquery/errors"
	rqtest "github.com/teranos/runquery/internal/testing"
	"github.com/teranos/runquery/messages"
	"github.com/teranos/runquery/ndjson"
	"github.com/teranos/runquery/store"
)

func writeStream(t *testing.T, path string, c ndjson.Compression, msgs ...any) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w, err := ndjson.NewWriter(f, c)
	require.NoError(t, err)
	require.NoError(t, ndjson.Encode(w, rqtest.Envelopes(msgs...)...))
	require.NoError(t, w.Close())
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a/run.ndjson", "a/b/run.ndjson", "c/other.txt"} {
		writeStream(t, filepath.Join(dir, name), ndjson.CompressionNone, &messages.Meta{ProtocolVersion: "27.0.0"})
	}

	paths, err := ExpandPaths([]string{
		filepath.Join(dir, "**", "*.ndjson"),
		filepath.Join(dir, "a", "run.ndjson"),
		"plain.ndjson",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a", "b", "run.ndjson"),
		filepath.Join(dir, "a", "run.ndjson"),
		"plain.ndjson",
	}, paths)

	_, err = ExpandPaths([]string{filepath.Join(dir, "**", "*.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	pickle := rqtest.MinimalPickle()
	writeStream(t, filepath.Join(dir, "1.ndjson"), ndjson.CompressionNone,
		&messages.Meta{ProtocolVersion: "27.0.0"}, rqtest.MinimalDocument())
	writeStream(t, filepath.Join(dir, "2.ndjson.zst"), ndjson.CompressionZstd,
		pickle, rqtest.TestCaseFor("tc", pickle))

	repo := store.New(store.WithFeatures(store.IncludeGherkinDocuments))
	results, err := Files(context.Background(), repo, []string{
		filepath.Join(dir, "1.ndjson"),
		filepath.Join(dir, "2.ndjson.zst"),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].Messages)
	assert.Equal(t, 2, results[1].Messages)

	_, ok := repo.PickleLineage(pickle)
	assert.True(t, ok, "documents and pickles from separate files join up")
	assert.Equal(t, 4, repo.Stats().Updates)
}

func TestFilesStopsAtFirstError(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ndjson")
	writeStream(t, good, ndjson.CompressionNone, &messages.Meta{ProtocolVersion: "27.0.0"})

	results, err := Files(context.Background(), store.New(), []string{good, filepath.Join(dir, "missing.ndjson"), good})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.ndjson")
	assert.Len(t, results, 1)
}

func TestFilesHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Files(ctx, store.New(), []string{"whatever.ndjson"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEachStopsOnHandlerError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ndjson.lz4")
	pickle := rqtest.MinimalPickle()
	writeStream(t, path, ndjson.CompressionLZ4,
		&messages.Meta{ProtocolVersion: "27.0.0"}, pickle, rqtest.TestCaseFor("tc", pickle))

	var kinds []messages.Kind
	stop := errors.New("enough")
	result, err := Each(context.Background(), path, func(env *messages.Envelope) error {
		kinds = append(kinds, env.Kind())
		if len(kinds) == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, []messages.Kind{messages.KindMeta, messages.KindPickle}, kinds)
	assert.Equal(t, 1, result.Messages)
}
