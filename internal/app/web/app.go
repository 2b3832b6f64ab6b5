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

package web

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzslog "github.com/hertz-contrib/logger/slog"
	"github.com/hertz-contrib/obs-opentelemetry/provider"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"

	"resque-web/internal/api/http"
	"resque-web/internal/api/http/middleware"
	"resque-web/internal/app"
	"resque-web/internal/view"
	"resque-web/pkg/log"
	"resque-web/pkg/tracing"
	"resque-web/pkg/utils"
)

// otelProviderShutdown 用于优雅关闭时关闭 OpenTelemetry provider
type otelProviderShutdown interface {
	Shutdown(ctx context.Context) error
}

// App Web 应用（装配 Router、Handler、Middleware）
type App struct {
	config       *app.Bootstrap
	router       *http.Router
	hertz        *server.Hertz
	otelProvider otelProviderShutdown
}

// NewApp 创建 Web 应用（由 cmd/web 调用）
func NewApp(bootstrap *app.Bootstrap) (*App, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("加载模板失败: %w", err)
	}
	cfg := bootstrap.Config
	handler := http.NewHandler(bootstrap.Client, renderer, cfg.API.MountPrefix, bootstrap.Logger)
	router := http.NewRouter(handler, middleware.NewMiddleware(bootstrap.Logger))
	router.SetMetricsEnabled(cfg.Monitoring.Prometheus.Enable)
	return &App{config: bootstrap, router: router}, nil
}

// Run 启动 HTTP 服务，addr 如 "0.0.0.0:5678"
func (a *App) Run(addr string) error {
	cfg := a.config.Config
	a.config.Logger.Info("Web 服务启动", "addr", addr, "mount_prefix", cfg.API.MountPrefix)

	// 使用 Hertz slog 扩展，与 bootstrap 日志输出对齐
	levelVar := &slog.LevelVar{}
	levelVar.Set(log.ParseLevel(cfg.Log.Level))
	hertzLogger := hertzslog.NewLogger(
		hertzslog.WithOutput(a.config.Logger.Output()),
		hertzslog.WithLevel(levelVar),
	)
	hlog.SetLogger(hertzLogger)

	tc := cfg.Monitoring.Tracing
	if !tc.Enable {
		a.hertz = a.router.Build(addr)
		return a.hertz.Run()
	}
	serviceName := utils.Coalesce(tc.ServiceName, "resque-web")
	exportEndpoint := utils.Coalesce(tc.ExportEndpoint, os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	if exportEndpoint == "" {
		a.config.Logger.Warn("链路追踪已启用但未配置导出地址，跳过")
		a.hertz = a.router.Build(addr)
		return a.hertz.Run()
	}

	switch tc.Exporter {
	case "http":
		tp, err := tracing.InitTracer(tracing.OTelConfig{
			ServiceName:    serviceName,
			ExportEndpoint: exportEndpoint,
			Insecure:       tc.Insecure,
		})
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		a.otelProvider = tp
	default:
		opts := []provider.Option{
			provider.WithServiceName(serviceName),
			provider.WithExportEndpoint(exportEndpoint),
		}
		if tc.Insecure {
			opts = append(opts, provider.WithInsecure())
		}
		a.otelProvider = provider.NewOpenTelemetryProvider(opts...)
	}
	tracerOpt, tracerCfg := hertztracing.NewServerTracer()
	a.router.Use(hertztracing.ServerMiddleware(tracerCfg))
	a.hertz = a.router.Build(addr, tracerOpt)
	a.config.Logger.Info("链路追踪已启用", "service_name", serviceName, "endpoint", exportEndpoint, "exporter", tc.Exporter)
	return a.hertz.Run()
}

// Shutdown 优雅关闭（传入 ctx 以支持超时，如 cmd 层 WithTimeout）
func (a *App) Shutdown(ctx context.Context) error {
	if a.otelProvider != nil {
		_ = a.otelProvider.Shutdown(ctx)
	}
	if a.hertz != nil {
		if err := a.hertz.Shutdown(ctx); err != nil {
			return err
		}
	}
	return a.config.Close()
}
