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
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/prometheus/common/expfmt"

	"resque-web/internal/api/http/middleware"
	"resque-web/internal/page"
	"resque-web/internal/resque"
	"resque-web/internal/view"
	"resque-web/pkg/errors"
	"resque-web/pkg/log"
	"resque-web/pkg/metrics"
	"resque-web/pkg/utils"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeCSS  = "text/css; charset=utf-8"

	// HeaderScriptName 反向代理上报的挂载前缀
	HeaderScriptName      = "X-Script-Name"
	HeaderForwardedPrefix = "X-Forwarded-Prefix"
)

// Handler HTTP 处理器
type Handler struct {
	client      *resque.Client
	resolver    *page.Resolver
	renderer    *view.Renderer
	mountPrefix string
	logger      *log.Logger
	now         func() time.Time
}

// NewHandler 创建 HTTP 处理器；mountPrefix 为路由注册所在的前缀（如 "/ops"），可为空
func NewHandler(client *resque.Client, renderer *view.Renderer, mountPrefix string, logger *log.Logger) *Handler {
	if renderer == nil {
		renderer = view.MustRenderer()
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Handler{
		client:      client,
		resolver:    page.NewResolver(client),
		renderer:    renderer,
		mountPrefix: view.JoinPrefix(mountPrefix),
		logger:      logger,
		now:         time.Now,
	}
}

// MountPrefix 规范化后的挂载前缀
func (h *Handler) MountPrefix() string { return h.mountPrefix }

// links 请求级链接构造；反向代理前缀在前，挂载前缀在后
func (h *Handler) links(c *app.RequestContext) view.Links {
	proxy := utils.Coalesce(string(c.GetHeader(HeaderScriptName)), string(c.GetHeader(HeaderForwardedPrefix)))
	path := strings.TrimPrefix(string(c.Path()), h.mountPrefix)
	if path == "" {
		path = "/"
	}
	return view.Links{Prefix: view.JoinPrefix(proxy, h.mountPrefix), Path: path}
}

// Root GET / 重定向到概览页
func (h *Handler) Root(ctx context.Context, c *app.RequestContext) {
	c.Redirect(consts.StatusFound, []byte(h.links(c).URL(string(page.Overview))))
}

// Page GET /<page> 与 /<page>/:id
func (h *Handler) Page(name page.Name) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		h.render(ctx, c, string(name), page.Request{Page: name, ID: c.Param("id"), Mode: view.Full})
	}
}

// Stylesheet GET /style.css
func (h *Handler) Stylesheet(ctx context.Context, c *app.RequestContext) {
	c.Data(consts.StatusOK, contentTypeCSS, view.Stylesheet())
}

// HealthCheck 健康检查；后端状态只作报告，不影响状态码
func (h *Handler) HealthCheck(ctx context.Context, c *app.RequestContext) {
	backend := "up"
	if _, err := h.client.Introspector().Store().Exists(ctx, h.client.Introspector().Key("queues")); err != nil {
		backend = "down"
	}
	c.JSON(consts.StatusOK, map[string]interface{}{
		"status":    "ok",
		"backend":   backend,
		"addr":      h.client.Addr(),
		"timestamp": time.Now().Unix(),
		"service":   "resque-web",
	})
}

// Metrics GET /metrics Prometheus 文本格式
func (h *Handler) Metrics(ctx context.Context, c *app.RequestContext) {
	var buf bytes.Buffer
	if err := metrics.WritePrometheus(&buf); err != nil {
		hlog.CtxErrorf(ctx, "gather metrics: %v", err)
		c.String(consts.StatusInternalServerError, "gather metrics failed")
		return
	}
	c.Data(consts.StatusOK, string(expfmt.NewFormat(expfmt.TypeTextPlain)), buf.Bytes())
}

func (h *Handler) render(ctx context.Context, c *app.RequestContext, tmpl string, req page.Request) {
	model, err := h.resolver.Resolve(ctx, req)
	if err != nil {
		h.fail(ctx, c, req.Mode, err)
		return
	}
	if r, ok := model.(page.Redirect); ok {
		c.Redirect(consts.StatusFound, []byte(r.URL))
		return
	}
	h.write(c, tmpl, req.Mode, model)
}

// fail 页面边界的错误分流：后端不可达渲染错误视图（200），未知页面 404，其余 500
func (h *Handler) fail(ctx context.Context, c *app.RequestContext, mode view.Mode, err error) {
	switch {
	case errors.Is(err, errors.ErrBackendUnavailable):
		metrics.BackendUnavailableTotal.Inc()
		addr := errors.BackendAddr(err)
		hlog.CtxWarnf(ctx, "backend %s unavailable: %v", addr, err)
		h.write(c, "error", mode, page.ErrorModel{Addr: addr, Err: err.Error()})
	case errors.Is(err, errors.ErrNotFound):
		c.String(consts.StatusNotFound, "Not Found")
	default:
		h.logger.ErrorContext(ctx, "render page failed", "request_id", middleware.RequestIDFrom(ctx), "path", string(c.Path()), "error", err)
		c.String(consts.StatusInternalServerError, "Internal Server Error")
	}
}

func (h *Handler) write(c *app.RequestContext, tmpl string, mode view.Mode, model any) {
	f := view.Frame{
		Links:     h.links(c),
		Mode:      mode,
		Model:     model,
		Now:       h.now(),
		Namespace: h.client.Introspector().Namespace(),
		Server:    h.client.Addr(),
	}
	b, err := h.renderer.RenderBytes(tmpl, f)
	if err != nil {
		h.logger.Error("render template failed", "page", tmpl, "error", err)
		c.String(consts.StatusInternalServerError, "Internal Server Error")
		return
	}
	ct := contentTypeHTML
	if mode == view.PollCollapsed {
		ct = contentTypeText
	}
	c.Data(consts.StatusOK, ct, b)
}
