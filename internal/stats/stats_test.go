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

package stats

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resque-web/internal/introspect"
	"resque-web/internal/resque"
	"resque-web/internal/storage/kv"
	"resque-web/internal/storage/kv/kvtest"
	apperrors "resque-web/pkg/errors"
)

func TestLines_NoQueues(t *testing.T) {
	got := Lines(resque.Info{}, nil)
	assert.Equal(t, []string{
		"resque.pending=0",
		"resque.processed+=0",
		"resque.failed+=0",
		"resque.workers=0",
		"resque.working=0",
	}, got)
}

func TestLines_QueueOrder(t *testing.T) {
	info := resque.Info{Pending: 3, Processed: 42, Failed: 2, Workers: 2, Working: 1}
	got := Lines(info, []resque.QueueSize{{Name: "critical", Size: 3}, {Name: "low", Size: 0}})
	assert.Equal(t, []string{
		"resque.pending=3",
		"resque.processed+=42",
		"resque.failed+=2",
		"resque.workers=2",
		"resque.working=1",
		"queues.critical=3",
		"queues.low=0",
	}, got)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "a=1\nb=2\n", Format([]string{"a=1", "b=2"}))
}

func TestExport(t *testing.T) {
	client := resque.NewClient(introspect.New(kvtest.Fixture("resque"), "resque"), nil, "test")
	out, err := Export(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "resque.pending=3\nresque.processed+=42\nresque.failed+=2\nresque.workers=2\nresque.working=1\nqueues.critical=3\nqueues.low=0\n", out)
}

func TestExport_StoreQueueOrder(t *testing.T) {
	store := kv.NewMemoryStore()
	store.SAdd("resque:queues", "low", "critical")
	store.RPush("resque:queue:critical", `{"class":"A","args":[]}`, `{"class":"B","args":[]}`)
	client := resque.NewClient(introspect.New(store, "resque"), nil, "test")

	out, err := Export(context.Background(), client)
	require.NoError(t, err)
	assert.Contains(t, out, "resque.pending=2\n")
	assert.True(t, strings.HasSuffix(out, "queues.low=0\nqueues.critical=2\n"), out)
}

func TestExport_Empty(t *testing.T) {
	client := resque.NewClient(introspect.New(kv.NewMemoryStore(), "resque"), nil, "test")
	out, err := Export(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "resque.pending=0\nresque.processed+=0\nresque.failed+=0\nresque.workers=0\nresque.working=0\n", out)
}

func TestExport_Unavailable(t *testing.T) {
	client := resque.NewClient(introspect.New(kvtest.NewDown("db:6379"), "resque"), nil, "test")
	_, err := Export(context.Background(), client)
	assert.True(t, errors.Is(err, apperrors.ErrBackendUnavailable))
}
