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

package page

import (
	"context"
	"fmt"

	"resque-web/internal/resque"
	"resque-web/internal/view"
	"resque-web/pkg/errors"
	"resque-web/pkg/tracing"
)

// Stats 分区；其他取值只渲染分区导航
const (
	SectionResque = "resque"
	SectionRedis  = "redis"
	SectionKeys   = "keys"
)

// Resolver 页面数据解析
type Resolver struct {
	client *resque.Client
}

// NewResolver 创建 Resolver
func NewResolver(client *resque.Client) *Resolver {
	return &Resolver{client: client}
}

// Client 底层队列客户端
func (r *Resolver) Client() *resque.Client { return r.client }

// Resolve 返回页面模型；后端不可达时错误满足 errors.Is(err, ErrBackendUnavailable)
func (r *Resolver) Resolve(ctx context.Context, req Request) (any, error) {
	ctx, span := tracing.StartPageSpan(ctx, string(req.Page), req.ID)
	model, err := r.resolve(ctx, req)
	tracing.EndSpan(span, err)
	return model, err
}

func (r *Resolver) resolve(ctx context.Context, req Request) (any, error) {
	if req.Mode == view.PollCollapsed && !req.Page.Pollable() {
		return nil, fmt.Errorf("page %q does not poll: %w", req.Page, errors.ErrNotFound)
	}
	switch req.Page {
	case Overview:
		return r.overview(ctx)
	case Queues:
		return r.queues(ctx, req.ID)
	case Working:
		return r.working(ctx, req.ID)
	case Workers:
		return r.workers(ctx, req.ID)
	case Key:
		return r.key(ctx, req.ID)
	case Failed:
		if url := r.client.Failures().URL(); url != "" {
			return Redirect{URL: url}, nil
		}
		return r.failed(ctx, req.Start)
	case Stats:
		return r.stats(ctx, req.ID)
	}
	return nil, fmt.Errorf("unknown page %q: %w", req.Page, errors.ErrNotFound)
}

func (r *Resolver) overview(ctx context.Context) (OverviewModel, error) {
	queues, failed, err := r.queueTable(ctx)
	if err != nil {
		return OverviewModel{}, err
	}
	w, err := r.working(ctx, "")
	if err != nil {
		return OverviewModel{}, err
	}
	return OverviewModel{Queues: queues, FailedCount: failed, Working: w.Working, Total: w.Total}, nil
}

func (r *Resolver) queueTable(ctx context.Context) ([]resque.QueueSize, int64, error) {
	queues, err := r.client.QueueSizes(ctx)
	if err != nil {
		return nil, 0, err
	}
	failed, err := r.client.Failures().Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return queues, failed, nil
}

func (r *Resolver) queues(ctx context.Context, queue string) (QueuesModel, error) {
	if queue == "" {
		queues, failed, err := r.queueTable(ctx)
		if err != nil {
			return QueuesModel{}, err
		}
		return QueuesModel{Queues: queues, FailedCount: failed}, nil
	}
	jobs, size, err := r.client.Peek(ctx, queue)
	if err != nil {
		return QueuesModel{}, err
	}
	return QueuesModel{Queue: queue, Size: size, Jobs: jobs}, nil
}

func (r *Resolver) working(ctx context.Context, id string) (WorkingModel, error) {
	all, err := r.client.Workers(ctx)
	if err != nil {
		return WorkingModel{}, err
	}
	working := make([]resque.Worker, 0, len(all))
	for _, w := range all {
		if w.Idle() || (id != "" && w.ID != id) {
			continue
		}
		working = append(working, w)
	}
	return WorkingModel{Working: working, Total: len(all), ID: id}, nil
}

func (r *Resolver) workers(ctx context.Context, id string) (WorkersModel, error) {
	if id == "" || id == "all" {
		all, err := r.client.Workers(ctx)
		if err != nil {
			return WorkersModel{}, err
		}
		return WorkersModel{Workers: all}, nil
	}
	ids, err := r.client.WorkerIDs(ctx)
	if err != nil {
		return WorkersModel{}, err
	}
	m := WorkersModel{ID: id}
	for _, registered := range ids {
		if registered != id {
			continue
		}
		w, err := r.client.Worker(ctx, id)
		if err != nil {
			return WorkersModel{}, err
		}
		m.Worker = &w
		break
	}
	return m, nil
}

func (r *Resolver) key(ctx context.Context, name string) (KeyModel, error) {
	if name == "" {
		rows, err := r.keyRows(ctx)
		return KeyModel{Keys: rows}, err
	}
	p, err := r.client.Introspector().Describe(ctx, name)
	if err != nil {
		return KeyModel{}, err
	}
	return KeyModel{Name: name, Preview: p}, nil
}

func (r *Resolver) keyRows(ctx context.Context) ([]KeyRow, error) {
	keys, err := r.client.Keys(ctx)
	if err != nil {
		return nil, err
	}
	insp := r.client.Introspector()
	rows := make([]KeyRow, 0, len(keys))
	for _, k := range keys {
		kind, size, err := insp.Shape(ctx, k)
		if err != nil {
			return nil, err
		}
		rows = append(rows, KeyRow{Name: k, Kind: kind, Size: size})
	}
	return rows, nil
}

func (r *Resolver) failed(ctx context.Context, start int64) (FailedModel, error) {
	if start < 0 {
		start = 0
	}
	f := r.client.Failures()
	size, err := f.Count(ctx)
	if err != nil {
		return FailedModel{}, err
	}
	failures, err := f.All(ctx, start, FailedWindow)
	if err != nil {
		return FailedModel{}, err
	}
	return FailedModel{Size: size, Start: start, Failures: failures}, nil
}

func (r *Resolver) stats(ctx context.Context, section string) (StatsModel, error) {
	if section == "" {
		section = SectionResque
	}
	m := StatsModel{Section: section, Addr: r.client.Addr()}
	var err error
	switch section {
	case SectionResque:
		m.Info, err = r.client.Info(ctx)
	case SectionRedis:
		m.Redis, err = r.client.Introspector().Store().Info(ctx)
	case SectionKeys:
		m.Keys, err = r.keyRows(ctx)
	}
	if err != nil {
		return StatsModel{}, err
	}
	return m, nil
}
