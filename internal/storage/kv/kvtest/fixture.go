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

package kvtest

import (
	"resque-web/internal/storage/kv"
)

// Fixture 典型的 Resque 数据集：
//
//	queues: critical(3), low(0，已注册但为空)
//	workers: web1:100:critical（处理中），web1:101:low（空闲）
//	stat: processed=42, failed=2
//	failed: 2 条
func Fixture(ns string) *kv.MemoryStore {
	k := func(name string) string {
		if ns == "" {
			return name
		}
		return ns + ":" + name
	}
	s := kv.NewMemoryStore()
	s.SAdd(k("queues"), "critical", "low")
	s.RPush(k("queue:critical"),
		`{"class":"Archive","args":[1,"foo"]}`,
		`{"class":"Archive","args":[2,"bar"]}`,
		`{"class":"Notify","args":[{"user":7}]}`,
	)

	busy := "web1:100:critical"
	idle := "web1:101:low"
	s.SAdd(k("workers"), busy, idle)
	s.Set(k("worker:"+busy), `{"queue":"critical","run_at":"2026/10/19 08:00:00 UTC","payload":{"class":"Archive","args":[0,"baz"]}}`)
	s.Set(k("worker:"+busy+":started"), "2026-10-19 07:55:00 +0000")
	s.Set(k("worker:"+idle+":started"), "2026-10-19 07:56:00 +0000")
	s.SetInt(k("stat:processed:"+busy), 40)
	s.SetInt(k("stat:processed:"+idle), 2)
	s.SetInt(k("stat:failed:"+busy), 2)

	s.SetInt(k("stat:processed"), 42)
	s.SetInt(k("stat:failed"), 2)

	s.RPush(k("failed"),
		`{"failed_at":"2026/10/19 07:58:00 UTC","payload":{"class":"Archive","args":[9]},"exception":"RuntimeError","error":"disk full","backtrace":["archive.rb:12"],"worker":"web1:100:critical","queue":"critical"}`,
		`{"failed_at":"2026/10/19 07:59:00 UTC","payload":{"class":"Notify","args":[]},"exception":"Timeout::Error","error":"execution expired","backtrace":[],"worker":"web1:100:critical","queue":"critical"}`,
	)
	return s
}
