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

package http

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/route"

	"resque-web/internal/api/http/middleware"
	"resque-web/internal/page"
)

// Router HTTP 路由器
type Router struct {
	handler        *Handler
	middleware     *middleware.Middleware
	metricsEnabled bool
	extra          []app.HandlerFunc
}

// NewRouter 创建新的 HTTP 路由器
func NewRouter(handler *Handler, middleware *middleware.Middleware) *Router {
	return &Router{
		handler:    handler,
		middleware: middleware,
	}
}

// SetMetricsEnabled 是否暴露 /metrics
func (r *Router) SetMetricsEnabled(enabled bool) {
	r.metricsEnabled = enabled
}

// Use 追加全局中间件（如链路追踪），需在 Build 之前调用
func (r *Router) Use(mw ...app.HandlerFunc) {
	r.extra = append(r.extra, mw...)
}

// Build 创建 Hertz 服务并注册全部路由；opts 用于追加 tracer 等选项
func (r *Router) Build(addr string, opts ...config.Option) *server.Hertz {
	all := append([]config.Option{server.WithHostPorts(addr)}, opts...)
	h := server.Default(all...)
	h.Use(r.extra...)
	h.Use(r.middleware.RequestID(), r.middleware.AccessLog())
	r.Register(h.Engine)
	return h
}

// Register 在 engine 上注册路由；Dashboard 路由位于挂载前缀之下，/health 与 /metrics 固定在根路径
func (r *Router) Register(engine *route.Engine) {
	h := r.handler
	engine.GET("/health", h.HealthCheck)
	if r.metricsEnabled {
		engine.GET("/metrics", h.Metrics)
	}

	prefix := h.MountPrefix()
	g := engine.Group(prefix)
	g.GET("/", h.Root)
	if prefix != "" {
		engine.GET(prefix, h.Root)
	}
	g.GET("/style.css", h.Stylesheet)

	for _, name := range page.ListPages {
		g.GET("/"+string(name), h.Page(name))
		g.GET("/"+string(name)+"/:id", h.Page(name))
	}
	for _, name := range page.PollPages {
		g.GET("/"+string(name)+".poll", h.Poll(name))
	}

	g.GET("/failed", h.Failed)
	g.POST("/failed/clear", h.ClearFailed)

	g.GET("/stats", h.Stats)
	g.GET("/stats.txt", h.StatsText)
	g.GET("/stats/resque", h.StatsSection(page.SectionResque))
	g.GET("/stats/redis", h.StatsSection(page.SectionRedis))
	g.GET("/stats/keys", h.StatsSection(page.SectionKeys))
	g.GET("/stats/:id", h.Stats)
	g.GET("/stats/keys/:key", h.StatsKey)
}
