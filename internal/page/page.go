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

// Package page 将逻辑页面请求解析为页面所需的数据
package page

import "resque-web/internal/view"

// Name 逻辑页面名
type Name string

const (
	Overview Name = "overview"
	Queues   Name = "queues"
	Working  Name = "working"
	Workers  Name = "workers"
	Key      Name = "key"
	Failed   Name = "failed"
	Stats    Name = "stats"
)

// ListPages 支持 /<page> 与 /<page>/:id 的列表页
var ListPages = []Name{Overview, Queues, Working, Workers, Key}

// PollPages 支持 .poll 轮询的页面
var PollPages = []Name{Overview, Workers}

// FailedWindow 失败列表每页条数
const FailedWindow = 20

// Pollable 是否支持轮询
func (n Name) Pollable() bool {
	for _, p := range PollPages {
		if p == n {
			return true
		}
	}
	return false
}

// Request 一次页面请求，由路由层构造后不再修改
type Request struct {
	Page Name
	// ID 可选的子标识：队列名、worker 标识、key 名或 stats 分区
	ID string
	// Start 失败列表分页偏移
	Start int64
	Mode  view.Mode
}
