// Copyright 2026 fanjia1024
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kv

import (
	"context"
	"errors"
	"io"
	"net"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "resque-web/pkg/errors"
)

// RedisOptions Redis 连接参数
type RedisOptions struct {
	Addr         string
	DB           int
	Password     string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
}

// RedisStore 基于 go-redis 的 Store 实现
type RedisStore struct {
	client *redis.Client
	addr   string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore 创建 RedisStore；不做 Ping，后端不可达时由每次请求渲染错误视图
func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		DB:           opts.DB,
		Password:     opts.Password,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
		// 不在客户端层重试：拒绝与超时统一视为后端不可达
		MaxRetries: -1,
	})
	return &RedisStore{client: client, addr: opts.Addr}
}

func (s *RedisStore) Type(ctx context.Context, key string) (Kind, error) {
	t, err := s.client.Type(ctx, key).Result()
	if err != nil {
		return KindAbsent, s.wrap(err)
	}
	return ParseKind(t), nil
}

func (s *RedisStore) LLen(ctx context.Context, key string) (int64, error) {
	n, err := s.client.LLen(ctx, key).Result()
	return n, s.wrap(err)
}

func (s *RedisStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	vals, err := s.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, s.wrap(err)
	}
	return vals, nil
}

func (s *RedisStore) SCard(ctx context.Context, key string) (int64, error) {
	n, err := s.client.SCard(ctx, key).Result()
	return n, s.wrap(err)
}

func (s *RedisStore) SMembers(ctx context.Context, key string) ([]string, error) {
	vals, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, s.wrap(err)
	}
	return vals, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.wrap(err)
	}
	return v, true, nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, s.wrap(err)
	}
	return n > 0, nil
}

// Keys 使用 SCAN 遍历，避免 KEYS 阻塞服务端
func (s *RedisStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 500).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, s.wrap(err)
	}
	sort.Strings(keys)
	return dedupSorted(keys), nil
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.wrap(s.client.Del(ctx, keys...).Err())
}

func (s *RedisStore) Info(ctx context.Context) ([]InfoPair, error) {
	text, err := s.client.Info(ctx).Result()
	if err != nil {
		return nil, s.wrap(err)
	}
	return ParseInfo(text), nil
}

func (s *RedisStore) Addr() string { return s.addr }

func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) wrap(err error) error {
	if err == nil {
		return nil
	}
	if IsUnavailable(err) {
		return apperrors.Unavailable(s.addr, err)
	}
	return err
}

// IsUnavailable 判断错误是否属于后端不可达（连接拒绝、超时、连接被关闭）
func IsUnavailable(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, redis.ErrClosed) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return strings.Contains(err.Error(), "pool timeout")
}

// SCAN 在 rehash 期间可能返回重复 key
func dedupSorted(keys []string) []string {
	if len(keys) < 2 {
		return keys
	}
	out := keys[:1]
	for _, k := range keys[1:] {
		if k != out[len(out)-1] {
			out = append(out, k)
		}
	}
	return out
}
