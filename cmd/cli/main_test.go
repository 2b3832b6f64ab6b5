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

package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"resque-web/pkg/config"
)

func newTestServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var polls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","backend":"up"}`))
	})
	mux.HandleFunc("/ops/stats.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("resque.pending=3\nqueues.critical=3\n"))
	})
	mux.HandleFunc("/ops/overview.poll", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&polls, 1)
		_, _ = w.Write([]byte(`<h1 class="wi">Queues</h1> <td class="queue">critical</td> <td>3</td>`))
	})
	mux.HandleFunc("/ops/failed/clear", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		http.Redirect(w, r, "/ops/failed", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &polls
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	out, err := health(newClient(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "ok", out["status"])
}

func TestStatsText(t *testing.T) {
	srv, _ := newTestServer(t)
	out, err := statsText(newClient(srv.URL), "/ops")
	require.NoError(t, err)
	assert.Equal(t, "resque.pending=3\nqueues.critical=3\n", out)

	_, err = statsText(newClient(srv.URL), "")
	assert.Error(t, err)
}

func TestClearFailed(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.NoError(t, clearFailed(newClient(srv.URL), "/ops"))
	assert.Error(t, clearFailed(newClient(srv.URL), "/nowhere"))
}

func TestWatch_Count(t *testing.T) {
	srv, polls := newTestServer(t)
	var out bytes.Buffer
	err := watch(context.Background(), newClient(srv.URL), "/ops", "overview", 10*time.Millisecond, 3, &out)
	require.NoError(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(polls))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Queues critical 3", lines[0])
}

func TestWatch_Cancelled(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := watch(ctx, newClient(srv.URL), "/ops", "overview", time.Hour, 0, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "a b", plainText("<p>a</p>\n\n  <b>b</b>"))
	assert.Equal(t, "", plainText("<br>"))
}

func TestDumpConfig_MasksSecrets(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Redis.Password = "hunter2"

	var out bytes.Buffer
	require.NoError(t, dumpConfig(&out, cfg))
	assert.NotContains(t, out.String(), "hunter2")

	var back config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &back))
	assert.Equal(t, "******", back.Redis.Password)
	assert.Equal(t, "resque", back.Redis.Namespace)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
}

func TestRun_Commands(t *testing.T) {
	srv, _ := newTestServer(t)
	t.Setenv("RESQUE_WEB_URL", srv.URL+"/")
	t.Setenv("RESQUE_WEB_PREFIX", "/ops")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run("version", nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "resque-web cli")

	stdout.Reset()
	assert.Equal(t, 0, run("stats", nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "queues.critical=3")

	assert.Equal(t, 1, run("watch", []string{"queues"}, &stdout, &stderr))
	assert.Equal(t, 1, run("bogus", nil, &stdout, &stderr))
}
