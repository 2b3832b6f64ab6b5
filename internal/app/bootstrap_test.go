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

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resque-web/internal/storage/kv/kvtest"
	"resque-web/pkg/config"
	"resque-web/pkg/log"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Redis.Type = "memory"
	return cfg
}

func TestNewBootstrap_Memory(t *testing.T) {
	b, err := NewBootstrap(memoryConfig(t))
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, "memory", b.Store.Addr())
	info, err := b.Client.Info(context.Background())
	require.NoError(t, err)
	assert.Zero(t, info.Pending)
	assert.Equal(t, "development", info.Environment)
}

func TestNewBootstrap_Errors(t *testing.T) {
	_, err := NewBootstrap(nil)
	assert.Error(t, err)

	cfg := memoryConfig(t)
	cfg.Redis.Type = "cassandra"
	_, err = NewBootstrap(cfg)
	assert.Error(t, err)

	cfg = memoryConfig(t)
	cfg.Secrets.Provider = "k8s"
	_, err = NewBootstrap(cfg)
	assert.Error(t, err)
}

func TestNewBootstrap_PasswordSecret(t *testing.T) {
	t.Setenv("RESQUE_REDIS_PASSWORD", "s3cret")
	cfg := memoryConfig(t)
	cfg.Redis.PasswordSecret = "RESQUE_REDIS_PASSWORD"
	b, err := NewBootstrap(cfg)
	require.NoError(t, err)
	assert.NotNil(t, b.Client)
}

func TestNewBootstrapWithStore_FailureURL(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Failure.URL = "https://errors.example.com"
	b := NewBootstrapWithStore(cfg, log.Nop(), kvtest.Fixture("resque"))
	assert.Equal(t, "https://errors.example.com", b.Client.Failures().URL())

	queues, err := b.Client.Queues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"critical", "low"}, queues)
}
