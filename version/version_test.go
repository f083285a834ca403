package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoString(t *testing.T) {
	dev := Info{Version: "dev", CommitHash: "abc1234def", BuildTime: "unknown"}
	assert.Equal(t, "runquery dev (commit abc1234def, built unknown)", dev.String())
	assert.Equal(t, "abc1234", dev.Short())
	_, ok := dev.SemVer()
	assert.False(t, ok)

	tagged := Info{Version: "v0.3.1", CommitHash: "abc", BuildTime: "2026-10-01"}
	assert.Equal(t, "runquery v0.3.1 (commit abc, built 2026-10-01)", tagged.String())
	assert.Equal(t, "abc", tagged.Short())
	v, ok := tagged.SemVer()
	require.True(t, ok)
	assert.Equal(t, uint64(3), v.Minor())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
