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
	"resque-web/internal/introspect"
	"resque-web/internal/resque"
	"resque-web/internal/storage/kv"
)

// OverviewModel 队列表 + 正在工作的 worker
type OverviewModel struct {
	Queues      []resque.QueueSize
	FailedCount int64
	Working     []resque.Worker
	Total       int
}

// QueuesModel Queue 为空时是队列列表，否则是单个队列的前若干个任务
type QueuesModel struct {
	Queues      []resque.QueueSize
	FailedCount int64
	Queue       string
	Size        int64
	Jobs        []resque.Job
}

// WorkingModel ID 非空时只包含该 worker
type WorkingModel struct {
	Working []resque.Worker
	Total   int
	ID      string
}

// WorkersModel ID 为空时列出全部 worker
type WorkersModel struct {
	Workers []resque.Worker
	ID      string
	Worker  *resque.Worker
}

// KeyRow key 列表中的一行
type KeyRow struct {
	Name string
	Kind kv.Kind
	Size int64
}

// KeyModel Name 为空时列出命名空间下全部 key
type KeyModel struct {
	Name    string
	Preview introspect.KeyPreview
	Keys    []KeyRow
}

// FailedModel 失败列表的一页
type FailedModel struct {
	Size     int64
	Start    int64
	Failures []resque.Failure
}

// End 本页最后一条的序号
func (m FailedModel) End() int64 { return m.Start + int64(len(m.Failures)) }

func (m FailedModel) Prev() bool { return m.Start > 0 }

func (m FailedModel) Next() bool { return m.End() < m.Size }

func (m FailedModel) PrevStart() int64 {
	if m.Start < FailedWindow {
		return 0
	}
	return m.Start - FailedWindow
}

func (m FailedModel) NextStart() int64 { return m.Start + FailedWindow }

// StatsModel Section 取 resque、redis 或 keys
type StatsModel struct {
	Section string
	Addr    string
	Info    resque.Info
	Redis   []kv.InfoPair
	Keys    []KeyRow
}

// Redirect 页面应重定向到外部地址（失败记录托管在外部服务）
type Redirect struct {
	URL string
}

// ErrorModel 后端不可达时的错误视图
type ErrorModel struct {
	Addr string
	Err  string
}
