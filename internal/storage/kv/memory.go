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
	"path"
	"sort"
	"strconv"
	"sync"
)

// MemoryStore 内存实现，用于本地演示与测试替身
type MemoryStore struct {
	items map[string]*memItem
	addr  string
	mu    sync.RWMutex
}

// memItem 一个 key 的值，按 kind 使用对应字段
type memItem struct {
	kind Kind
	list []string
	set  []string // 保留插入顺序，便于断言
	str  string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore 创建新的内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*memItem),
		addr:  "memory",
	}
}

// RPush 追加列表元素
func (s *MemoryStore) RPush(key string, values ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.itemLocked(key, KindList)
	it.list = append(it.list, values...)
}

// SAdd 添加集合成员（已存在的成员忽略）
func (s *MemoryStore) SAdd(key string, members ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.itemLocked(key, KindSet)
	for _, m := range members {
		dup := false
		for _, existing := range it.set {
			if existing == m {
				dup = true
				break
			}
		}
		if !dup {
			it.set = append(it.set, m)
		}
	}
}

// Set 设置字符串值
func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.itemLocked(key, KindScalar)
	it.str = value
}

// SetInt 设置整数计数器
func (s *MemoryStore) SetInt(key string, n int64) {
	s.Set(key, strconv.FormatInt(n, 10))
}

// SetOther 写入一个 Dashboard 不展开的类型（如 hash）
func (s *MemoryStore) SetOther(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = &memItem{kind: KindOther}
}

// itemLocked 取出或创建 key；类型不一致时覆盖（与 Redis 的 WRONGTYPE 不同，仅用于构造数据）
func (s *MemoryStore) itemLocked(key string, kind Kind) *memItem {
	it, ok := s.items[key]
	if !ok || it.kind != kind {
		it = &memItem{kind: kind}
		s.items[key] = it
	}
	return it
}

func (s *MemoryStore) lookup(key string, kind Kind) (*memItem, bool) {
	it, ok := s.items[key]
	if !ok || it.kind != kind {
		return nil, false
	}
	return it, true
}

func (s *MemoryStore) Type(ctx context.Context, key string) (Kind, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[key]
	if !ok {
		return KindAbsent, nil
	}
	return it.kind, nil
}

func (s *MemoryStore) LLen(ctx context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.lookup(key, KindList)
	if !ok {
		return 0, nil
	}
	return int64(len(it.list)), nil
}

// LRange 支持负下标，语义与 Redis LRANGE 一致
func (s *MemoryStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.lookup(key, KindList)
	if !ok {
		return []string{}, nil
	}
	n := int64(len(it.list))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return []string{}, nil
	}
	out := make([]string, stop-start+1)
	copy(out, it.list[start:stop+1])
	return out, nil
}

func (s *MemoryStore) SCard(ctx context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.lookup(key, KindSet)
	if !ok {
		return 0, nil
	}
	return int64(len(it.set)), nil
}

func (s *MemoryStore) SMembers(ctx context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.lookup(key, KindSet)
	if !ok {
		return []string{}, nil
	}
	out := make([]string, len(it.set))
	copy(out, it.set)
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.lookup(key, KindScalar)
	if !ok {
		return "", false, nil
	}
	return it.str, true, nil
}

func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[key]
	return ok, nil
}

// Keys pattern 使用 glob 语义（path.Match），与 Redis 常用的 * ? [] 对齐
func (s *MemoryStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		if ok, _ := path.Match(pattern, k); ok || pattern == "*" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.items, k)
	}
	return nil
}

func (s *MemoryStore) Info(ctx context.Context) ([]InfoPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return []InfoPair{
		{Key: "redis_mode", Value: "memory"},
		{Key: "db0", Value: "keys=" + strconv.Itoa(len(s.items))},
	}, nil
}

func (s *MemoryStore) Addr() string { return s.addr }

// Close 关闭存储（内存实现无需释放）
func (s *MemoryStore) Close() error {
	return nil
}
