package kv

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resque-web/pkg/config"
	apperrors "resque-web/pkg/errors"
)

func TestIsUnavailable(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	assert.True(t, IsUnavailable(refused))
	assert.True(t, IsUnavailable(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.True(t, IsUnavailable(redis.ErrClosed))
	assert.True(t, IsUnavailable(errors.New("redis: connection pool timeout")))

	assert.False(t, IsUnavailable(nil))
	assert.False(t, IsUnavailable(redis.Nil))
	assert.False(t, IsUnavailable(errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")))
}

// 连接一个没有监听的端口：拒绝与超时都应映射为 BackendError
func TestRedisStore_Unreachable(t *testing.T) {
	s := NewRedisStore(RedisOptions{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		ReadTimeout: 200 * time.Millisecond,
	})
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := s.Type(ctx, "resque:queues")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBackendUnavailable), "got %v", err)
	assert.Equal(t, "127.0.0.1:1", apperrors.BackendAddr(err))
	assert.Equal(t, "127.0.0.1:1", s.Addr())
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(config.RedisConfig{Type: "memory"}, "")
	require.NoError(t, err)
	assert.Equal(t, "memory", s.Addr())

	s, err = NewStore(config.RedisConfig{Addr: "localhost:6379", DialTimeout: "bogus"}, "pw")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", s.Addr())
	_ = s.Close()

	_, err = NewStore(config.RedisConfig{Type: "redis"}, "")
	assert.Error(t, err)

	_, err = NewStore(config.RedisConfig{Type: "etcd"}, "")
	assert.Error(t, err)
}

func TestDedupSorted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupSorted([]string{"a", "a", "b", "c", "c"}))
	assert.Empty(t, dedupSorted(nil))
}
