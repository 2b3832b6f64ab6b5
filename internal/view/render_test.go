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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queueRow struct {
	Name string
	Size int64
}

type overviewModel struct {
	Queues      []queueRow
	FailedCount int64
	Working     []any
	Total       int
}

type errorModel struct {
	Addr string
	Err  string
}

func testFrame(prefix, path string, mode Mode, model any) Frame {
	return Frame{
		Links:     Links{Prefix: prefix, Path: path},
		Mode:      mode,
		Model:     model,
		Now:       time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC),
		Namespace: "resque",
		Server:    "localhost:6379",
	}
}

var hrefRe = regexp.MustCompile(`(?:href|action)="([^"]*)"`)

func TestRenderer_FullOverview(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	model := overviewModel{Queues: []queueRow{{"critical", 3}, {"low", 0}}, FailedCount: 2, Total: 2}
	out, err := r.RenderBytes("overview", testFrame("/ops", "/overview", Full, model))
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, `href="/ops/queues/critical"`)
	assert.Contains(t, html, `<li class="current"><a href="/ops/overview">Overview</a>`)
	assert.Contains(t, html, `rel="poll"`)
	assert.Contains(t, html, "Nothing is happening right now")

	links := hrefRe.FindAllStringSubmatch(html, -1)
	require.NotEmpty(t, links)
	for _, m := range links {
		assert.True(t, strings.HasPrefix(m[1], "/ops/"), m[1])
		assert.NotContains(t, m[1], "//")
	}
}

func TestRenderer_PollCollapsed(t *testing.T) {
	r := MustRenderer()
	model := overviewModel{Queues: []queueRow{{"critical", 3}}, FailedCount: 0, Total: 0}

	out, err := r.RenderBytes("overview", testFrame("", "/overview.poll", PollCollapsed, model))
	require.NoError(t, err)
	s := string(out)

	assert.NotContains(t, s, "<!DOCTYPE html>")
	assert.NotContains(t, s, `class="nav"`)
	assert.Contains(t, s, "Last Updated: 08:30:00")
	assert.NotContains(t, s, "  ")
	assert.NotContains(t, s, "\n")
	assert.Equal(t, strings.TrimSpace(s), s)
}

func TestRenderer_ErrorStandalone(t *testing.T) {
	r := MustRenderer()
	out, err := r.RenderBytes("error", testFrame("/ops", "/queues", Full, errorModel{Addr: "redis:6379"}))
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "Can't connect to Redis!")
	assert.Contains(t, s, "redis:6379")
	assert.Equal(t, 1, strings.Count(s, "<html>"))
	assert.NotContains(t, s, `class="nav"`)
}

func TestRenderer_UnknownPage(t *testing.T) {
	r := MustRenderer()
	_, err := r.RenderBytes("nope", Frame{})
	assert.Error(t, err)
}

func TestCollapse(t *testing.T) {
	assert.Equal(t, "a b c", string(Collapse([]byte("  a \n\t b\n\n c  "))))
	assert.Equal(t, "", string(Collapse([]byte(" \n "))))
}

func TestAgo(t *testing.T) {
	assert.Equal(t, "", ago(""))
	assert.Equal(t, "not a time", ago("not a time"))
	assert.Contains(t, ago(time.Now().Add(-3*time.Minute).Format("2006-01-02 15:04:05 -0700")), "minutes ago")
}

func TestFrame_Tabs(t *testing.T) {
	f := testFrame("/ops", "/workers/web1:100:critical", Full, nil)
	tabs := f.Tabs()
	require.Len(t, tabs, 6)
	for _, tab := range tabs {
		assert.Equal(t, tab.Name == "Workers", tab.Current, tab.Name)
		assert.True(t, strings.HasPrefix(tab.Href, "/ops/"))
	}
	assert.False(t, f.Polling())
	assert.True(t, testFrame("", "/overview.poll", PollCollapsed, nil).Polling())
}
