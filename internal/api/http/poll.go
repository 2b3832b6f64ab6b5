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

	"resque-web/internal/page"
	"resque-web/internal/view"
)

// Poll GET /<page>.poll，无布局的折叠片段，text/plain
func (h *Handler) Poll(name page.Name) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		h.render(ctx, c, string(name), page.Request{Page: name, Mode: view.PollCollapsed})
	}
}
