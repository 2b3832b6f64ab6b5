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

package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// 全局 Registry，供 Web 进程注册与暴露
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration,
		BackendUnavailableTotal, IntrospectDuration,
		FailedClearTotal,
	)
}

// HTTPRequestsTotal 请求总数（按路由与状态码）
var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "resqueweb_http_requests_total",
		Help: "Dashboard HTTP 请求总数",
	},
	[]string{"route", "code"},
)

// HTTPRequestDuration 请求耗时（秒）
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "resqueweb_http_request_duration_seconds",
		Help:    "Dashboard HTTP 请求耗时（秒）",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"route"},
)

// BackendUnavailableTotal 渲染错误视图的次数（后端不可达）
var BackendUnavailableTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "resqueweb_backend_unavailable_total",
		Help: "后端存储不可达次数",
	},
)

// IntrospectDuration key 探查耗时（按结构类型）
var IntrospectDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "resqueweb_introspect_duration_seconds",
		Help:    "key 探查耗时（秒）",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	},
	[]string{"kind"}, // none | list | set | string | other
)

// FailedClearTotal 清空失败列表次数
var FailedClearTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "resqueweb_failed_clear_total",
		Help: "清空失败任务列表次数",
	},
)

// WritePrometheus 将 Prometheus 文本格式写入 w（供 Hertz 等复用）
func WritePrometheus(w io.Writer) error {
	metrics, err := DefaultRegistry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range metrics {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
