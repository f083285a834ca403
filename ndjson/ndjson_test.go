package ndjson

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/runquery/errors"
	rqtest "github.com/teranos/runquery/internal/testing"
	"github.com/teranos/runquery/messages"
)

func sample() []*messages.Envelope {
	return rqtest.Envelopes(
		&messages.Meta{ProtocolVersion: "27.0.0"},
		rqtest.MinimalDocument(),
		rqtest.MinimalPickle(),
		&messages.TestCaseStarted{ID: "tcs-1", TestCaseID: "tc-1"},
	)
}

func collect(t *testing.T, data []byte) []*messages.Envelope {
	t.Helper()
	var got []*messages.Envelope
	n, err := Decode(bytes.NewReader(data), func(env *messages.Envelope) error {
		got = append(got, env)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, len(got), n)
	return got
}

func kinds(envs []*messages.Envelope) []messages.Kind {
	out := make([]messages.Kind, len(envs))
	for i, env := range envs {
		out[i] = env.Kind()
	}
	return out
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionZstd, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, c)
			require.NoError(t, err)
			require.NoError(t, Encode(w, sample()...))
			require.NoError(t, w.Close())

			assert.Equal(t, c, Detect(buf.Bytes()))
			got := collect(t, buf.Bytes())
			assert.Equal(t, kinds(sample()), kinds(got))
			assert.Equal(t, "minimal-pickle", got[2].Pickle.ID)
		})
	}
}

func TestDecodeSkipsBlankLines(t *testing.T) {
	input := "\n" + `{"testRunStarted":{"timestamp":{"seconds":1,"nanos":0}}}` + "\n   \n" +
		`{"testRunFinished":{"success":true,"timestamp":{"seconds":2,"nanos":0}}}`
	got := collect(t, []byte(input))
	assert.Equal(t, []messages.Kind{messages.KindTestRunStarted, messages.KindTestRunFinished}, kinds(got))
	assert.True(t, got[1].TestRunFinished.Success)
}

func TestDecodeReportsLineNumber(t *testing.T) {
	input := `{"meta":{"protocolVersion":"27.0.0"}}` + "\n\n" + `{"pickle": nope}` + "\n"
	n, err := Decode(strings.NewReader(input), func(*messages.Envelope) error { return nil })
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, err.Error(), "line 3")
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestDecodeStopsOnHandlerError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample()...))

	stop := errors.New("enough")
	calls := 0
	_, err := Decode(&buf, func(*messages.Envelope) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, stop))
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, 2, calls)
}

func TestDecodeEmptyInput(t *testing.T) {
	assert.Empty(t, collect(t, nil))
}

func TestLinesKeepsRemainder(t *testing.T) {
	complete, rest := lines([]byte("a\nb\nc"))
	require.Len(t, complete, 2)
	assert.Equal(t, "a\n", string(complete[0]))
	assert.Equal(t, "c", string(rest))
}

func TestFollowDecodesAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ndjson")
	var initial bytes.Buffer
	require.NoError(t, Encode(&initial, sample()[:2]...))
	require.NoError(t, os.WriteFile(path, initial.Bytes(), 0o644))

	var mu sync.Mutex
	var got []*messages.Envelope
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, func(env *messages.Envelope) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, env)
			return nil
		})
	}()
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(got)
	}
	require.Eventually(t, func() bool { return count() == 2 }, 2*time.Second, 10*time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	var more bytes.Buffer
	require.NoError(t, Encode(&more, sample()[2:]...))
	half := more.Len() - 5
	_, err = f.Write(more.Bytes()[:half])
	require.NoError(t, err)
	require.Eventually(t, func() bool { return count() == 3 }, 2*time.Second, 10*time.Millisecond)

	_, err = f.Write(more.Bytes()[half:])
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.Eventually(t, func() bool { return count() == 4 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}
	assert.Equal(t, kinds(sample()), kinds(got))
}

func TestFollowRejectsCompressedFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ndjson.zst")
	var buf bytes.Buffer
	w, err := NewWriter(&buf, CompressionZstd)
	require.NoError(t, err)
	require.NoError(t, Encode(w, sample()...))
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	err = Follow(context.Background(), path, func(*messages.Envelope) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zstd")
}

func TestFollowMissingFile(t *testing.T) {
	err := Follow(context.Background(), filepath.Join(t.TempDir(), "absent.ndjson"), func(*messages.Envelope) error { return nil })
	require.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionZstd, CompressionLZ4} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseCompression(" ZSTD ")
	require.NoError(t, err)
	assert.Equal(t, CompressionZstd, got)

	_, err = ParseCompression("brotli")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestCompressionForPath(t *testing.T) {
	assert.Equal(t, CompressionGzip, CompressionForPath("run.ndjson.gz"))
	assert.Equal(t, CompressionZstd, CompressionForPath("out/run.NDJSON.ZST"))
	assert.Equal(t, CompressionLZ4, CompressionForPath("run.ndjson.lz4"))
	assert.Equal(t, CompressionNone, CompressionForPath("run.ndjson"))
	assert.Equal(t, CompressionNone, CompressionForPath("-"))
}
