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
	"time"
)

// Frame 模板根数据：链接、渲染模式与页面模型
type Frame struct {
	Links
	Mode  Mode
	Page  string
	Model any
	Now   time.Time
	// Namespace 与 Server 显示在页脚
	Namespace string
	Server    string
}

// Tab 导航项
type Tab struct {
	Name    string
	Href    string
	Current bool
}

var tabNames = []string{"Overview", "Working", "Failed", "Queues", "Workers", "Stats"}

// Polling 是否处于轮询渲染
func (f Frame) Polling() bool { return f.Mode == PollCollapsed }

// U 模板中使用的链接构造
func (f Frame) U(parts ...string) string { return f.URL(parts...) }

// Tabs 导航栏，当前分区高亮
func (f Frame) Tabs() []Tab {
	section := f.CurrentSection()
	tabs := make([]Tab, 0, len(tabNames))
	for _, name := range tabNames {
		lower := strings.ToLower(name)
		tabs = append(tabs, Tab{Name: name, Href: f.URL(lower), Current: section == lower})
	}
	return tabs
}

// UpdatedAt 轮询片段中的刷新时间
func (f Frame) UpdatedAt() string {
	return f.Now.Format("15:04:05")
}
