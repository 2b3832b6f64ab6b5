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
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"resque-web/pkg/utils"
)

var startedLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006/01/02 15:04:05 MST",
	"2006/01/02 15:04:05 -0700",
	time.RFC3339,
	time.RFC1123Z,
	time.UnixDate,
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"comma": humanize.Comma,
		"ago":   ago,
		"join":  strings.Join,
		"lines": func(s string) []string { return strings.Split(s, "\n") },
		"add":   func(a, b int) int { return a + b },
		"short": utils.Truncate,
	}
}

// ago 将 Resque 写入的时间字符串显示为相对时间，无法解析时原样返回
func ago(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range startedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return humanize.Time(t)
		}
	}
	return s
}
