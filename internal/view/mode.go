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
	"regexp"
	"strings"
)

// Mode 渲染模式，随每次调用显式传入
type Mode int

const (
	// Full 完整页面（含布局与导航）
	Full Mode = iota
	// PollCollapsed 轮询片段：无布局，空白折叠为单个空格，以纯文本返回
	PollCollapsed
)

func (m Mode) String() string {
	if m == PollCollapsed {
		return "poll"
	}
	return "full"
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Collapse 将所有空白串折叠为一个空格并去掉首尾空白
func Collapse(b []byte) []byte {
	return []byte(strings.TrimSpace(whitespaceRun.ReplaceAllString(string(b), " ")))
}
