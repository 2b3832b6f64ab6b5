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

package view

import (
	"strings"
)

// Links 生成相对挂载前缀的链接；Path 为去掉前缀后的请求路径
type Links struct {
	Prefix string
	Path   string
}

// URL 拼接前缀与各段路径并折叠重复的 '/'
func (l Links) URL(parts ...string) string {
	segs := make([]string, 0, len(parts)+1)
	segs = append(segs, l.Prefix)
	segs = append(segs, parts...)
	return Squeeze("/" + strings.Join(segs, "/"))
}

// CurrentPage 不含前导 '/' 的小写路径，如 "queues/critical"
func (l Links) CurrentPage() string {
	return strings.ToLower(strings.TrimPrefix(l.Path, "/"))
}

// CurrentSection 路径第一段，如 "queues"
func (l Links) CurrentSection() string {
	page := l.CurrentPage()
	if i := strings.IndexByte(page, '/'); i >= 0 {
		page = page[:i]
	}
	return strings.TrimSuffix(page, ".poll")
}

// PollURL 当前页面的轮询地址
func (l Links) PollURL() string {
	return l.URL(strings.TrimSuffix(l.Path, ".poll")) + ".poll"
}

// Squeeze 折叠连续的 '/'
func Squeeze(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	prevSlash := false
	for i := 0; i < len(p); i++ {
		ch := p[i]
		if ch == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// JoinPrefix 合并反向代理上报的前缀与配置的挂载前缀
func JoinPrefix(parts ...string) string {
	joined := Squeeze("/" + strings.Join(parts, "/"))
	return strings.TrimSuffix(joined, "/")
}
