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
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"

	"resque-web/pkg/log"
	"resque-web/pkg/metrics"
)

// HeaderRequestID 请求标识头
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// Middleware 中间件管理器
type Middleware struct {
	sink AccessSink
}

// NewMiddleware 创建中间件管理器；logger 为 nil 时不输出访问日志
func NewMiddleware(logger *log.Logger) *Middleware {
	if logger == nil {
		return &Middleware{sink: discardSink{}}
	}
	return &Middleware{sink: NewLogSink(logger)}
}

// RequestID 透传或生成请求标识，写入响应头与 context
func (m *Middleware) RequestID() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		id := string(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Response.Header.Set(HeaderRequestID, id)
		c.Next(context.WithValue(ctx, requestIDKey{}, id))
	}
}

// RequestIDFrom 从 context 取请求标识
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// AccessLog 记录访问日志与请求指标；路由标签使用注册时的路径模式
func (m *Middleware) AccessLog() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Response.StatusCode()
		elapsed := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		m.sink.Record(ctx, AccessRecord{
			RequestID:  RequestIDFrom(ctx),
			Method:     string(c.Method()),
			Path:       string(c.Path()),
			Route:      route,
			Status:     status,
			DurationMS: elapsed.Milliseconds(),
			RemoteAddr: c.ClientIP(),
		})
	}
}
