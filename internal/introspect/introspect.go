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

// Package introspect 在不预知 schema 的前提下探查后端 key 的结构并提取有界预览
package introspect

import (
	"context"
	"strconv"
	"strings"
	"time"

	"resque-web/internal/storage/kv"
	"resque-web/pkg/errors"
	"resque-web/pkg/metrics"
	"resque-web/pkg/tracing"
)

// PreviewWindow 列表预览的最大元素数（LRANGE 0 20，含两端）
const PreviewWindow = 21

// KeyPreview key 的结构类型、大小与样本
type KeyPreview struct {
	Kind   kv.Kind
	Size   int64
	Sample []string
}

// Introspector 按命名空间读取 key；namespace 为空时直接使用原始 key
type Introspector struct {
	store     kv.Store
	namespace string
}

// New 创建 Introspector
func New(store kv.Store, namespace string) *Introspector {
	return &Introspector{store: store, namespace: namespace}
}

// Key 返回加上命名空间后的完整 key
func (i *Introspector) Key(name string) string {
	if i.namespace == "" {
		return name
	}
	return i.namespace + ":" + name
}

// StripNamespace 去掉完整 key 的命名空间前缀
func (i *Introspector) StripNamespace(full string) string {
	if i.namespace == "" {
		return full
	}
	return strings.TrimPrefix(full, i.namespace+":")
}

// Store 底层存储
func (i *Introspector) Store() kv.Store { return i.store }

// Namespace 命名空间，可能为空
func (i *Introspector) Namespace() string { return i.namespace }

// Describe 探查 key 并返回有界预览
//
// list 取前 PreviewWindow 个元素；set 返回全部成员（不截断，调用方需防御性渲染）；
// string 返回单元素样本；不存在的 key 返回 {Absent, 0, []}。
func (i *Introspector) Describe(ctx context.Context, name string) (KeyPreview, error) {
	key := i.Key(name)
	ctx, span := tracing.StartBackendSpan(ctx, "describe", key)
	start := time.Now()

	kind, err := i.store.Type(ctx, key)
	if err != nil {
		tracing.EndSpan(span, err)
		return KeyPreview{}, errors.Wrapf(err, "type %s", key)
	}

	p, err := i.extract(ctx, key, kind)
	metrics.IntrospectDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
	tracing.EndSpan(span, err)
	return p, err
}

func (i *Introspector) extract(ctx context.Context, key string, kind kv.Kind) (KeyPreview, error) {
	p := KeyPreview{Kind: kind, Sample: []string{}}
	switch kind {
	case kv.KindAbsent, kv.KindOther:
		return p, nil
	case kv.KindList:
		n, err := i.store.LLen(ctx, key)
		if err != nil {
			return KeyPreview{}, errors.Wrapf(err, "llen %s", key)
		}
		sample, err := i.store.LRange(ctx, key, 0, PreviewWindow-1)
		if err != nil {
			return KeyPreview{}, errors.Wrapf(err, "lrange %s", key)
		}
		p.Size = n
		p.Sample = bound(sample)
		return p, nil
	case kv.KindSet:
		n, err := i.store.SCard(ctx, key)
		if err != nil {
			return KeyPreview{}, errors.Wrapf(err, "scard %s", key)
		}
		members, err := i.store.SMembers(ctx, key)
		if err != nil {
			return KeyPreview{}, errors.Wrapf(err, "smembers %s", key)
		}
		p.Size = n
		if members != nil {
			p.Sample = members
		}
		return p, nil
	case kv.KindScalar:
		v, found, err := i.store.Get(ctx, key)
		if err != nil {
			return KeyPreview{}, errors.Wrapf(err, "get %s", key)
		}
		if !found {
			// TYPE 与 GET 之间被删除
			return KeyPreview{Kind: kv.KindAbsent, Sample: []string{}}, nil
		}
		p.Size = int64(len(v))
		p.Sample = []string{v}
		return p, nil
	default:
		panic("introspect: unhandled kind " + strconv.Itoa(int(kind)))
	}
}

// SizeOf 只取大小：list 元素数、set 成员数、string 长度，不存在为 0
func (i *Introspector) SizeOf(ctx context.Context, name string) (int64, error) {
	_, n, err := i.Shape(ctx, name)
	return n, err
}

// Shape 类型与大小，不读取样本（key 列表页逐个调用）
func (i *Introspector) Shape(ctx context.Context, name string) (kv.Kind, int64, error) {
	key := i.Key(name)
	kind, err := i.store.Type(ctx, key)
	if err != nil {
		return kv.KindAbsent, 0, errors.Wrapf(err, "type %s", key)
	}
	var n int64
	switch kind {
	case kv.KindAbsent, kv.KindOther:
	case kv.KindList:
		n, err = i.store.LLen(ctx, key)
		err = errors.Wrapf(err, "llen %s", key)
	case kv.KindSet:
		n, err = i.store.SCard(ctx, key)
		err = errors.Wrapf(err, "scard %s", key)
	case kv.KindScalar:
		var v string
		var found bool
		v, found, err = i.store.Get(ctx, key)
		if err == nil && !found {
			// TYPE 与 GET 之间 key 被删除
			return kv.KindAbsent, 0, nil
		}
		n = int64(len(v))
		err = errors.Wrapf(err, "get %s", key)
	default:
		panic("introspect: unhandled kind " + strconv.Itoa(int(kind)))
	}
	if err != nil {
		return kv.KindAbsent, 0, err
	}
	return kind, n, nil
}

// Range 读取列表区间 [start, start+count)，非列表返回空
func (i *Introspector) Range(ctx context.Context, name string, start, count int64) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}
	key := i.Key(name)
	vals, err := i.store.LRange(ctx, key, start, start+count-1)
	if err != nil {
		return nil, errors.Wrapf(err, "lrange %s", key)
	}
	if vals == nil {
		vals = []string{}
	}
	return vals, nil
}

// bound 防止后端返回超过窗口的元素
func bound(sample []string) []string {
	if sample == nil {
		return []string{}
	}
	if len(sample) > PreviewWindow {
		return sample[:PreviewWindow]
	}
	return sample
}
