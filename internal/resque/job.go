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

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Job 队列中的一个任务载荷 {"class": ..., "args": [...]}
type Job struct {
	Class string                `json:"class"`
	Args  []jsoniter.RawMessage `json:"args"`
	// Raw 原始文本，解析失败时用于展示
	Raw string `json:"-"`
	// Malformed 载荷不是合法 JSON 对象
	Malformed bool `json:"-"`
}

// ParseJob 解析任务载荷；解析失败不报错，标记 Malformed 并保留原文
func ParseJob(raw string) Job {
	var j Job
	if err := json.UnmarshalFromString(raw, &j); err != nil {
		return Job{Raw: raw, Malformed: true}
	}
	j.Raw = raw
	return j
}

// ArgsText 每个参数一行，保留 JSON 字面形式
func (j Job) ArgsText() string {
	if j.Malformed {
		return j.Raw
	}
	parts := make([]string, 0, len(j.Args))
	for _, a := range j.Args {
		parts = append(parts, string(a))
	}
	return strings.Join(parts, "\n")
}

// parseJobs 批量解析
func parseJobs(raws []string) []Job {
	jobs := make([]Job, 0, len(raws))
	for _, r := range raws {
		jobs = append(jobs, ParseJob(r))
	}
	return jobs
}
