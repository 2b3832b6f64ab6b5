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
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// 独立页面不套布局（错误视图）
var standalone = map[string]bool{"error": true}

// Pages 可渲染的页面名
var Pages = []string{"overview", "queues", "working", "workers", "key", "failed", "stats", "error"}

// Renderer 模板渲染器；每个页面一份独立的模板集合（布局 + 公共片段 + 页面内容）
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer 解析内嵌模板
func NewRenderer() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcMap()).ParseFS(templateFS, "templates/layout.tmpl", "templates/partials.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, name := range Pages {
		set, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := set.ParseFS(templateFS, "templates/"+name+".tmpl"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = set
	}
	return r, nil
}

// MustRenderer NewRenderer 失败时 panic（模板内嵌于二进制，失败即编码错误）
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// RenderBytes 渲染页面；PollCollapsed 只输出内容片段并折叠空白
func (r *Renderer) RenderBytes(page string, f Frame) ([]byte, error) {
	set, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	f.Page = page
	entry := "layout"
	if f.Mode == PollCollapsed || standalone[page] {
		entry = "content"
	}
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, entry, f); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	if f.Mode == PollCollapsed {
		return Collapse(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}
