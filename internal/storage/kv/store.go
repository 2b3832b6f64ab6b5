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

package kv

import (
	"fmt"
	"time"

	"resque-web/pkg/config"
	"resque-web/pkg/utils"
)

// NewStore 根据配置创建后端存储（统一入口）；password 已由调用方从 secrets 解析
func NewStore(cfg config.RedisConfig, password string) (Store, error) {
	switch cfg.Type {
	case "", "redis":
		if cfg.Addr == "" {
			return nil, fmt.Errorf("redis.addr is required")
		}
		return NewRedisStore(RedisOptions{
			Addr:         cfg.Addr,
			DB:           cfg.DB,
			Password:     password,
			DialTimeout:  parseDuration(cfg.DialTimeout, 2*time.Second),
			ReadTimeout:  parseDuration(cfg.ReadTimeout, 2*time.Second),
			WriteTimeout: parseDuration(cfg.WriteTimeout, 2*time.Second),
			PoolSize:     utils.DefaultInt(cfg.PoolSize, 10),
		}), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

// parseDuration 解析时长字符串，无效或空时返回 defaultVal
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
