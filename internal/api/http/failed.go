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
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"resque-web/internal/page"
	"resque-web/internal/view"
	"resque-web/pkg/metrics"
)

// Failed GET /failed；失败记录托管在外部服务时由 resolver 返回重定向
func (h *Handler) Failed(ctx context.Context, c *app.RequestContext) {
	start, _ := strconv.ParseInt(c.Query("start"), 10, 64)
	h.render(ctx, c, string(page.Failed), page.Request{Page: page.Failed, Start: start, Mode: view.Full})
}

// ClearFailed POST /failed/clear 清空失败列表后重定向回失败页
func (h *Handler) ClearFailed(ctx context.Context, c *app.RequestContext) {
	if err := h.client.Failures().Clear(ctx); err != nil {
		h.fail(ctx, c, view.Full, err)
		return
	}
	metrics.FailedClearTotal.Inc()
	h.logger.Info("failed jobs cleared", "backend", h.client.Addr())
	c.Redirect(consts.StatusFound, []byte(h.links(c).URL(string(page.Failed))))
}
