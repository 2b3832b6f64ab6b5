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

// Package resque 读取 Resque 风格队列在 Redis 中的布局：队列、worker、统计与失败记录
package resque

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"resque-web/internal/introspect"
	"resque-web/pkg/errors"
)

// Info 全局汇总（QueueSummary）
type Info struct {
	Pending     int64
	Processed   int64
	Failed      int64
	Queues      int
	Workers     int
	Working     int
	Servers     []string
	Environment string
	// Sizes 与 Pending 同一次读取得到的各队列大小
	Sizes []QueueSize
}

// QueueSize 队列名与待处理数
type QueueSize struct {
	Name string
	Size int64
}

// Client 队列系统的只读查询入口（外加 Failures.Clear）
type Client struct {
	insp        *introspect.Introspector
	failures    Failures
	environment string
}

// NewClient 创建 Client；failures 为 nil 时使用 Redis 失败列表
func NewClient(insp *introspect.Introspector, failures Failures, environment string) *Client {
	if failures == nil {
		failures = NewRedisFailures(insp, "")
	}
	return &Client{insp: insp, failures: failures, environment: environment}
}

// Introspector 底层探查器
func (c *Client) Introspector() *introspect.Introspector { return c.insp }

// Failures 失败后端
func (c *Client) Failures() Failures { return c.failures }

// Addr 后端地址
func (c *Client) Addr() string { return c.insp.Store().Addr() }

// Queues 全部队列名，顺序与存储的 SMEMBERS 返回顺序一致
func (c *Client) Queues(ctx context.Context) ([]string, error) {
	key := c.insp.Key("queues")
	names, err := c.insp.Store().SMembers(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "smembers %s", key)
	}
	return names, nil
}

// Size 队列待处理任务数
func (c *Client) Size(ctx context.Context, queue string) (int64, error) {
	return c.insp.SizeOf(ctx, "queue:"+queue)
}

// QueueSizes 每个队列的待处理数，顺序与 Queues 一致
func (c *Client) QueueSizes(ctx context.Context) ([]QueueSize, error) {
	names, err := c.Queues(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]QueueSize, 0, len(names))
	for _, n := range names {
		size, err := c.Size(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, QueueSize{Name: n, Size: size})
	}
	return out, nil
}

// Peek 队列前 introspect.PreviewWindow 个任务
func (c *Client) Peek(ctx context.Context, queue string) ([]Job, int64, error) {
	p, err := c.insp.Describe(ctx, "queue:"+queue)
	if err != nil {
		return nil, 0, err
	}
	return parseJobs(p.Sample), p.Size, nil
}

// WorkerIDs 已注册的 worker 标识（排序）
func (c *Client) WorkerIDs(ctx context.Context) ([]string, error) {
	key := c.insp.Key("workers")
	ids, err := c.insp.Store().SMembers(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "smembers %s", key)
	}
	sort.Strings(ids)
	return ids, nil
}

// Worker 读取单个 worker 的状态；当前任务不存在时为空闲
func (c *Client) Worker(ctx context.Context, id string) (Worker, error) {
	w := ParseWorkerID(id)
	store := c.insp.Store()

	raw, found, err := store.Get(ctx, c.insp.Key("worker:"+id))
	if err != nil {
		return Worker{}, errors.Wrapf(err, "get worker %s", id)
	}
	if found && raw != "" {
		w.Job = parseWorkerJob(raw)
	}
	started, _, err := store.Get(ctx, c.insp.Key("worker:"+id+":started"))
	if err != nil {
		return Worker{}, errors.Wrapf(err, "get worker %s started", id)
	}
	w.Started = started
	if w.Processed, err = c.Stat(ctx, "processed:"+id); err != nil {
		return Worker{}, err
	}
	if w.Failed, err = c.Stat(ctx, "failed:"+id); err != nil {
		return Worker{}, err
	}
	return w, nil
}

// Workers 全部 worker
func (c *Client) Workers(ctx context.Context) ([]Worker, error) {
	ids, err := c.WorkerIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Worker, 0, len(ids))
	for _, id := range ids {
		w, err := c.Worker(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// Working 正在处理任务的 worker
func (c *Client) Working(ctx context.Context) ([]Worker, error) {
	all, err := c.Workers(ctx)
	if err != nil {
		return nil, err
	}
	return filterWorking(all), nil
}

func filterWorking(all []Worker) []Worker {
	out := make([]Worker, 0, len(all))
	for _, w := range all {
		if !w.Idle() {
			out = append(out, w)
		}
	}
	return out
}

// Stat 读取计数器 stat:<name>，不存在为 0
func (c *Client) Stat(ctx context.Context, name string) (int64, error) {
	key := c.insp.Key("stat:" + name)
	v, found, err := c.insp.Store().Get(ctx, key)
	if err != nil {
		return 0, errors.Wrapf(err, "get %s", key)
	}
	if !found || v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stat %s is not an integer: %q", key, v)
	}
	return n, nil
}

// Info 汇总信息；pending 为所有队列待处理数之和
func (c *Client) Info(ctx context.Context) (Info, error) {
	sizes, err := c.QueueSizes(ctx)
	if err != nil {
		return Info{}, err
	}
	info := Info{
		Queues:      len(sizes),
		Servers:     []string{c.Addr()},
		Environment: c.environment,
		Sizes:       sizes,
	}
	for _, q := range sizes {
		info.Pending += q.Size
	}
	if info.Processed, err = c.Stat(ctx, "processed"); err != nil {
		return Info{}, err
	}
	if info.Failed, err = c.Stat(ctx, "failed"); err != nil {
		return Info{}, err
	}
	workers, err := c.Workers(ctx)
	if err != nil {
		return Info{}, err
	}
	info.Workers = len(workers)
	info.Working = len(filterWorking(workers))
	return info, nil
}

// Keys 命名空间下的全部 key（已去掉命名空间前缀）
func (c *Client) Keys(ctx context.Context) ([]string, error) {
	pattern := c.insp.Key("*")
	full, err := c.insp.Store().Keys(ctx, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "keys %s", pattern)
	}
	out := make([]string, 0, len(full))
	for _, k := range full {
		out = append(out, c.insp.StripNamespace(k))
	}
	return out, nil
}
