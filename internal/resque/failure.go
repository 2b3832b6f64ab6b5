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

package resque

import (
	"context"

	"resque-web/internal/introspect"
	"resque-web/pkg/errors"
)

// Failure 一条失败记录
type Failure struct {
	FailedAt  string   `json:"failed_at"`
	Payload   Job      `json:"payload"`
	Exception string   `json:"exception"`
	Error     string   `json:"error"`
	Backtrace []string `json:"backtrace"`
	Worker    string   `json:"worker"`
	Queue     string   `json:"queue"`
	Raw       string   `json:"-"`
	Malformed bool     `json:"-"`
}

// Failures 失败任务后端；URL 非空表示失败记录托管在外部服务
type Failures interface {
	Count(ctx context.Context) (int64, error)
	All(ctx context.Context, start, count int64) ([]Failure, error)
	Clear(ctx context.Context) error
	URL() string
}

// RedisFailures 使用 <ns>:failed 列表保存失败记录
type RedisFailures struct {
	insp *introspect.Introspector
	url  string
}

var _ Failures = (*RedisFailures)(nil)

const failedKey = "failed"

// NewRedisFailures 创建 Redis 失败后端；url 为外部追踪服务地址，可为空
func NewRedisFailures(insp *introspect.Introspector, url string) *RedisFailures {
	return &RedisFailures{insp: insp, url: url}
}

func (f *RedisFailures) Count(ctx context.Context) (int64, error) {
	return f.insp.SizeOf(ctx, failedKey)
}

func (f *RedisFailures) All(ctx context.Context, start, count int64) ([]Failure, error) {
	raws, err := f.insp.Range(ctx, failedKey, start, count)
	if err != nil {
		return nil, err
	}
	out := make([]Failure, 0, len(raws))
	for _, r := range raws {
		out = append(out, ParseFailure(r))
	}
	return out, nil
}

// Clear 单条 DEL 清空失败列表
func (f *RedisFailures) Clear(ctx context.Context) error {
	key := f.insp.Key(failedKey)
	return errors.Wrapf(f.insp.Store().Del(ctx, key), "del %s", key)
}

func (f *RedisFailures) URL() string { return f.url }

// ParseFailure 解析失败记录，格式错误时保留原文
func ParseFailure(raw string) Failure {
	var fl Failure
	if err := json.UnmarshalFromString(raw, &fl); err != nil {
		return Failure{Raw: raw, Malformed: true}
	}
	fl.Raw = raw
	return fl
}
