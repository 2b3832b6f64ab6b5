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

// Kind 后端 key 的结构类型（封闭枚举，新增类型需同步 introspect 中的 switch）
type Kind int

const (
	// KindAbsent key 不存在
	KindAbsent Kind = iota
	// KindList 有序列表
	KindList
	// KindSet 无序集合
	KindSet
	// KindScalar 单值字符串
	KindScalar
	// KindOther hash/zset/stream 等 Dashboard 不展开的类型
	KindOther
)

// String 与 Redis TYPE 命令返回值保持一致
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "none"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindScalar:
		return "string"
	default:
		return "other"
	}
}

// ParseKind 将 Redis TYPE 返回值转换为 Kind
func ParseKind(s string) Kind {
	switch s {
	case "", "none":
		return KindAbsent
	case "list":
		return KindList
	case "set":
		return KindSet
	case "string":
		return KindScalar
	default:
		return KindOther
	}
}
