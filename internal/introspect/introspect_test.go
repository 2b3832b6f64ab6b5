package introspect

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resque-web/internal/storage/kv"
	"resque-web/internal/storage/kv/kvtest"
	apperrors "resque-web/pkg/errors"
)

func TestDescribe_Absent(t *testing.T) {
	i := New(kv.NewMemoryStore(), "resque")
	p, err := i.Describe(context.Background(), "nothing:here")
	require.NoError(t, err)
	assert.Equal(t, kv.KindAbsent, p.Kind)
	assert.Equal(t, int64(0), p.Size)
	assert.NotNil(t, p.Sample)
	assert.Empty(t, p.Sample)
}

func TestDescribe_ListWindow(t *testing.T) {
	for _, n := range []int{0, 1, 20, 21, 22, 100} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			s := kv.NewMemoryStore()
			for j := 0; j < n; j++ {
				s.RPush("resque:queue:default", strconv.Itoa(j))
			}
			i := New(s, "resque")
			p, err := i.Describe(context.Background(), "queue:default")
			require.NoError(t, err)
			if n == 0 {
				// 空列表在 Redis 中等同于不存在
				assert.Equal(t, kv.KindAbsent, p.Kind)
				return
			}
			assert.Equal(t, kv.KindList, p.Kind)
			assert.Equal(t, int64(n), p.Size)
			assert.Len(t, p.Sample, min(n, PreviewWindow))
			assert.Equal(t, "0", p.Sample[0])
		})
	}
}

func TestDescribe_SetUnbounded(t *testing.T) {
	s := kv.NewMemoryStore()
	for j := 0; j < 50; j++ {
		s.SAdd("resque:workers", "host:"+strconv.Itoa(j)+":default")
	}
	i := New(s, "resque")
	p, err := i.Describe(context.Background(), "workers")
	require.NoError(t, err)
	assert.Equal(t, kv.KindSet, p.Kind)
	assert.Equal(t, int64(50), p.Size)
	assert.Len(t, p.Sample, 50)
}

func TestDescribe_Scalar(t *testing.T) {
	s := kv.NewMemoryStore()
	s.Set("resque:stat:processed", "12345")
	i := New(s, "resque")
	p, err := i.Describe(context.Background(), "stat:processed")
	require.NoError(t, err)
	assert.Equal(t, kv.KindScalar, p.Kind)
	assert.Equal(t, int64(5), p.Size)
	assert.Equal(t, []string{"12345"}, p.Sample)
}

func TestDescribe_Other(t *testing.T) {
	s := kv.NewMemoryStore()
	s.SetOther("resque:some-hash")
	p, err := New(s, "resque").Describe(context.Background(), "some-hash")
	require.NoError(t, err)
	assert.Equal(t, kv.KindOther, p.Kind)
	assert.Empty(t, p.Sample)
}

func TestSizeOf(t *testing.T) {
	s := kv.NewMemoryStore()
	s.RPush("resque:queue:critical", "a", "b", "c")
	s.SAdd("resque:queues", "critical", "low")
	s.Set("resque:stat:failed", "42")
	i := New(s, "resque")
	ctx := context.Background()

	cases := map[string]int64{
		"queue:critical": 3,
		"queues":         2,
		"stat:failed":    2,
		"queue:low":      0,
	}
	for key, want := range cases {
		got, err := i.SizeOf(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, got, key)
	}
}

func TestNamespace(t *testing.T) {
	i := New(kv.NewMemoryStore(), "resque")
	assert.Equal(t, "resque:queues", i.Key("queues"))
	assert.Equal(t, "queue:x", i.StripNamespace("resque:queue:x"))

	bare := New(kv.NewMemoryStore(), "")
	assert.Equal(t, "queues", bare.Key("queues"))
	assert.Equal(t, "queues", bare.StripNamespace("queues"))
}

func TestRange(t *testing.T) {
	s := kv.NewMemoryStore()
	s.RPush("resque:failed", "a", "b", "c", "d")
	i := New(s, "resque")
	got, err := i.Range(context.Background(), "failed", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, got)

	got, err = i.Range(context.Background(), "failed", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDescribe_BackendUnavailable(t *testing.T) {
	i := New(kvtest.NewDown("10.0.0.9:6379"), "resque")
	_, err := i.Describe(context.Background(), "queues")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBackendUnavailable))
	assert.Equal(t, "10.0.0.9:6379", apperrors.BackendAddr(err))

	_, err = i.SizeOf(context.Background(), "queue:default")
	assert.True(t, errors.Is(err, apperrors.ErrBackendUnavailable))
}

func TestBound(t *testing.T) {
	long := make([]string, 30)
	assert.Len(t, bound(long), PreviewWindow)
	assert.NotNil(t, bound(nil))
}

func TestShape(t *testing.T) {
	s := kv.NewMemoryStore()
	s.SAdd("resque:queues", "a", "b")
	s.Set("resque:stat:processed", "1234")
	i := New(s, "resque")

	kind, n, err := i.Shape(context.Background(), "queues")
	require.NoError(t, err)
	assert.Equal(t, kv.KindSet, kind)
	assert.EqualValues(t, 2, n)

	kind, n, err = i.Shape(context.Background(), "stat:processed")
	require.NoError(t, err)
	assert.Equal(t, kv.KindScalar, kind)
	assert.EqualValues(t, 4, n)

	kind, n, err = i.Shape(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, kv.KindAbsent, kind)
	assert.Zero(t, n)
}

// vanishing TYPE 报告为 string，GET 时 key 已不存在
type vanishing struct {
	kv.Store
}

func (vanishing) Type(ctx context.Context, key string) (kv.Kind, error) {
	return kv.KindScalar, nil
}

func TestScalarDeletedBetweenTypeAndGet(t *testing.T) {
	i := New(vanishing{Store: kv.NewMemoryStore()}, "resque")

	kind, n, err := i.Shape(context.Background(), "stat:gone")
	require.NoError(t, err)
	assert.Equal(t, kv.KindAbsent, kind)
	assert.Zero(t, n)

	p, err := i.Describe(context.Background(), "stat:gone")
	require.NoError(t, err)
	assert.Equal(t, kv.KindAbsent, p.Kind)
	assert.Zero(t, p.Size)
}
