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

// Package stats 导出扁平的纯文本指标行，供外部监控抓取
package stats

import (
	"context"
	"strconv"
	"strings"

	"resque-web/internal/resque"
)

// Lines 每个指标一行；队列行顺序与 queues 一致
func Lines(info resque.Info, queues []resque.QueueSize) []string {
	out := make([]string, 0, 5+len(queues))
	out = append(out,
		"resque.pending="+strconv.FormatInt(info.Pending, 10),
		"resque.processed+="+strconv.FormatInt(info.Processed, 10),
		"resque.failed+="+strconv.FormatInt(info.Failed, 10),
		"resque.workers="+strconv.Itoa(info.Workers),
		"resque.working="+strconv.Itoa(info.Working),
	)
	for _, q := range queues {
		out = append(out, "queues."+q.Name+"="+strconv.FormatInt(q.Size, 10))
	}
	return out
}

// Format 以换行连接并以换行结尾
func Format(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Export 从队列客户端读取汇总并格式化；队列行与 pending 来自同一次读取
func Export(ctx context.Context, client *resque.Client) (string, error) {
	info, err := client.Info(ctx)
	if err != nil {
		return "", err
	}
	return Format(Lines(info, info.Sizes)), nil
}
