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

// Package kvtest 提供 kv.Store 的测试替身
package kvtest

import (
	"context"
	"errors"
	"syscall"

	"resque-web/internal/storage/kv"
	apperrors "resque-web/pkg/errors"
)

// Down 模拟不可达的后端：所有调用返回 BackendError
type Down struct {
	Address string
}

var _ kv.Store = (*Down)(nil)

// NewDown 创建不可达后端，addr 为错误视图中展示的地址
func NewDown(addr string) *Down {
	return &Down{Address: addr}
}

func (d *Down) err() error {
	return apperrors.Unavailable(d.Address, syscall.ECONNREFUSED)
}

func (d *Down) Type(ctx context.Context, key string) (kv.Kind, error) { return kv.KindAbsent, d.err() }
func (d *Down) LLen(ctx context.Context, key string) (int64, error)   { return 0, d.err() }
func (d *Down) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return nil, d.err()
}
func (d *Down) SCard(ctx context.Context, key string) (int64, error)       { return 0, d.err() }
func (d *Down) SMembers(ctx context.Context, key string) ([]string, error) { return nil, d.err() }
func (d *Down) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, d.err()
}
func (d *Down) Exists(ctx context.Context, key string) (bool, error)       { return false, d.err() }
func (d *Down) Keys(ctx context.Context, pattern string) ([]string, error) { return nil, d.err() }
func (d *Down) Del(ctx context.Context, keys ...string) error              { return d.err() }
func (d *Down) Info(ctx context.Context) ([]kv.InfoPair, error)            { return nil, d.err() }
func (d *Down) Addr() string                                               { return d.Address }
func (d *Down) Close() error                                               { return nil }

// Broken 返回非可达性错误的后端（例如响应格式错误），页面层应走 500
type Broken struct {
	kv.Store
}

// ErrMalformed Broken 返回的错误
var ErrMalformed = errors.New("malformed backend response")

// NewBroken 包装 store，Type 调用返回 ErrMalformed
func NewBroken(store kv.Store) *Broken {
	return &Broken{Store: store}
}

func (b *Broken) Type(ctx context.Context, key string) (kv.Kind, error) {
	return kv.KindAbsent, ErrMalformed
}

func (b *Broken) SMembers(ctx context.Context, key string) ([]string, error) {
	return nil, ErrMalformed
}
