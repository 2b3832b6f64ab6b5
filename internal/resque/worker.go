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
	"strings"
)

// Worker 一个已注册的 worker 进程
type Worker struct {
	ID        string
	Host      string
	PID       string
	Queues    []string
	Job       *WorkerJob // nil 表示空闲
	Started   string
	Processed int64
	Failed    int64
}

// WorkerJob worker 当前处理中的任务
type WorkerJob struct {
	Queue   string `json:"queue"`
	RunAt   string `json:"run_at"`
	Payload Job    `json:"payload"`
}

// Idle 是否空闲
func (w Worker) Idle() bool { return w.Job == nil }

// State 展示用状态
func (w Worker) State() string {
	if w.Idle() {
		return "idle"
	}
	return "working"
}

// ParseWorkerID 拆分 "host:pid:queue1,queue2"
func ParseWorkerID(id string) Worker {
	w := Worker{ID: id}
	parts := strings.SplitN(id, ":", 3)
	if len(parts) > 0 {
		w.Host = parts[0]
	}
	if len(parts) > 1 {
		w.PID = parts[1]
	}
	if len(parts) > 2 && parts[2] != "" {
		w.Queues = strings.Split(parts[2], ",")
	}
	return w
}

func parseWorkerJob(raw string) *WorkerJob {
	var wj WorkerJob
	if err := json.UnmarshalFromString(raw, &wj); err != nil {
		return &WorkerJob{Payload: Job{Raw: raw, Malformed: true}}
	}
	if raw, err := json.MarshalToString(wj.Payload); err == nil {
		wj.Payload.Raw = raw
	}
	return &wj
}
