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
	"context"
)

// Store 队列后端的只读访问接口（外加清空失败列表所需的 Del）
//
// 实现需要把连接拒绝、超时等不可达错误包装为 errors.BackendError，
// key 不存在不是错误。
type Store interface {
	// Type 返回 key 的结构类型
	Type(ctx context.Context, key string) (Kind, error)
	// LLen 列表长度
	LLen(ctx context.Context, key string) (int64, error)
	// LRange 列表区间 [start, stop]，闭区间，与 LRANGE 语义一致
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	// SCard 集合成员数
	SCard(ctx context.Context, key string) (int64, error)
	// SMembers 集合全部成员
	SMembers(ctx context.Context, key string) ([]string, error)
	// Get 读取字符串值，found=false 表示 key 不存在
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Exists 检查 key 是否存在
	Exists(ctx context.Context, key string) (bool, error)
	// Keys 返回匹配 pattern 的全部 key（已排序）
	Keys(ctx context.Context, pattern string) ([]string, error)
	// Del 删除 key
	Del(ctx context.Context, keys ...string) error
	// Info 服务端信息（INFO 命令），按返回顺序
	Info(ctx context.Context) ([]InfoPair, error)
	// Addr 后端地址，用于错误视图展示
	Addr() string
	// Close 关闭连接
	Close() error
}

// InfoPair INFO 输出中的一项
type InfoPair struct {
	Key   string
	Value string
}
