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

package middleware

import (
	"context"

	"resque-web/pkg/log"
)

// AccessSink 访问记录接收端
type AccessSink interface {
	Record(ctx context.Context, rec AccessRecord)
}

// AccessRecord 一次请求的访问记录
type AccessRecord struct {
	RequestID  string
	Method     string
	Path       string
	Route      string
	Status     int
	DurationMS int64
	RemoteAddr string
}

// LogSink 以结构化日志输出访问记录；5xx 为 error，其余为 info
type LogSink struct {
	logger *log.Logger
}

// NewLogSink 创建 LogSink
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(ctx context.Context, rec AccessRecord) {
	args := []any{
		"request_id", rec.RequestID,
		"method", rec.Method,
		"path", rec.Path,
		"route", rec.Route,
		"status", rec.Status,
		"duration_ms", rec.DurationMS,
		"remote", rec.RemoteAddr,
	}
	if rec.Status >= 500 {
		s.logger.ErrorContext(ctx, "request", args...)
		return
	}
	s.logger.InfoContext(ctx, "request", args...)
}

type discardSink struct{}

func (discardSink) Record(context.Context, AccessRecord) {}
