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

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"resque-web/internal/page"
	"resque-web/internal/stats"
	"resque-web/internal/view"
)

// Stats GET /stats 与 /stats/:id（resque | redis | keys）
func (h *Handler) Stats(ctx context.Context, c *app.RequestContext) {
	h.render(ctx, c, string(page.Stats), page.Request{Page: page.Stats, ID: c.Param("id"), Mode: view.Full})
}

// StatsSection 固定分区的 stats 页
func (h *Handler) StatsSection(section string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		h.render(ctx, c, string(page.Stats), page.Request{Page: page.Stats, ID: section, Mode: view.Full})
	}
}

// StatsKey GET /stats/keys/:key 单个 key 的预览
func (h *Handler) StatsKey(ctx context.Context, c *app.RequestContext) {
	h.render(ctx, c, string(page.Key), page.Request{Page: page.Key, ID: c.Param("key"), Mode: view.Full})
}

// StatsText GET /stats.txt 扁平指标行
func (h *Handler) StatsText(ctx context.Context, c *app.RequestContext) {
	out, err := stats.Export(ctx, h.client)
	if err != nil {
		h.fail(ctx, c, view.PollCollapsed, err)
		return
	}
	c.Data(consts.StatusOK, contentTypeText, []byte(out))
}
