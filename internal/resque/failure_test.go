package resque

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resque-web/internal/introspect"
	"resque-web/internal/storage/kv/kvtest"
)

func TestRedisFailures(t *testing.T) {
	ctx := context.Background()
	insp := introspect.New(kvtest.Fixture("resque"), "resque")
	f := NewRedisFailures(insp, "")

	n, err := f.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := f.All(ctx, 0, 20)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "RuntimeError", all[0].Exception)
	assert.Equal(t, "disk full", all[0].Error)
	assert.Equal(t, "Archive", all[0].Payload.Class)
	assert.Equal(t, []string{"archive.rb:12"}, all[0].Backtrace)
	assert.Empty(t, f.URL())

	require.NoError(t, f.Clear(ctx))
	n, err = f.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	all, err = f.All(ctx, 0, 20)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRedisFailures_URL(t *testing.T) {
	insp := introspect.New(kvtest.Fixture("resque"), "resque")
	f := NewRedisFailures(insp, "https://errors.example.com/resque")
	assert.Equal(t, "https://errors.example.com/resque", f.URL())
}

func TestParseFailure_Malformed(t *testing.T) {
	fl := ParseFailure("not json")
	assert.True(t, fl.Malformed)
	assert.Equal(t, "not json", fl.Raw)
}
