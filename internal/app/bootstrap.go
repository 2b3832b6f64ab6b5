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
	"fmt"

	"resque-web/internal/introspect"
	"resque-web/internal/resque"
	"resque-web/internal/storage/kv"
	"resque-web/pkg/config"
	"resque-web/pkg/log"
	"resque-web/pkg/secrets"
)

// Bootstrap 统一初始化：日志、Secret、后端存储与队列客户端
type Bootstrap struct {
	Config *config.Config
	Logger *log.Logger
	Store  kv.Store
	Client *resque.Client
}

// NewBootstrap 根据配置创建 Bootstrap
func NewBootstrap(cfg *config.Config) (*Bootstrap, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	logger, err := log.NewLogger(&log.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	secretStore, err := secrets.NewStore(secrets.Config{
		Provider: cfg.Secrets.Provider,
		Vault: secrets.VaultConfig{
			Address:    cfg.Secrets.Vault.Address,
			Token:      cfg.Secrets.Vault.Token,
			PathPrefix: cfg.Secrets.Vault.PathPrefix,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("初始化 secret store 失败: %w", err)
	}
	password, err := secrets.Resolve(context.Background(), secretStore, cfg.Redis.PasswordSecret, cfg.Redis.Password)
	if err != nil {
		return nil, fmt.Errorf("读取 redis 密码失败: %w", err)
	}

	store, err := kv.NewStore(cfg.Redis, password)
	if err != nil {
		return nil, fmt.Errorf("初始化后端存储失败: %w", err)
	}
	return NewBootstrapWithStore(cfg, logger, store), nil
}

// NewBootstrapWithStore 使用已创建的存储组装队列客户端
func NewBootstrapWithStore(cfg *config.Config, logger *log.Logger, store kv.Store) *Bootstrap {
	insp := introspect.New(store, cfg.Redis.Namespace)
	failures := resque.NewRedisFailures(insp, cfg.Failure.URL)
	client := resque.NewClient(insp, failures, cfg.API.Environment)
	logger.Info("后端存储已就绪", "type", cfg.Redis.Type, "addr", store.Addr(), "namespace", cfg.Redis.Namespace)
	return &Bootstrap{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Client: client,
	}
}

// Close 释放后端连接
func (b *Bootstrap) Close() error {
	if b.Store == nil {
		return nil
	}
	return b.Store.Close()
}
