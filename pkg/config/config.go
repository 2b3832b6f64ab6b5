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

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置结构体
type Config struct {
	API        APIConfig        `mapstructure:"api" yaml:"api"`
	Redis      RedisConfig      `mapstructure:"redis" yaml:"redis"`
	Failure    FailureConfig    `mapstructure:"failure" yaml:"failure"`
	Secrets    SecretsConfig    `mapstructure:"secrets" yaml:"secrets"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Monitoring MonitoringConfig `mapstructure:"monitoring" yaml:"monitoring"`
}

// APIConfig HTTP 服务配置
type APIConfig struct {
	Port        int    `mapstructure:"port" yaml:"port"`
	Host        string `mapstructure:"host" yaml:"host"`
	MountPrefix string `mapstructure:"mount_prefix" yaml:"mount_prefix"` // 挂载前缀，如 "/ops"；反向代理子路径部署时使用
	Environment string `mapstructure:"environment" yaml:"environment"`   // 仅用于 stats 页展示
}

// RedisConfig 队列后端存储配置
type RedisConfig struct {
	Type           string `mapstructure:"type" yaml:"type"` // redis | memory
	Addr           string `mapstructure:"addr" yaml:"addr"`
	DB             int    `mapstructure:"db" yaml:"db"`
	Password       string `mapstructure:"password" yaml:"password"`
	PasswordSecret string `mapstructure:"password_secret" yaml:"password_secret"` // 非空时从 secrets store 读取密码
	Namespace      string `mapstructure:"namespace" yaml:"namespace"`             // key 前缀，默认 resque
	DialTimeout    string `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	ReadTimeout    string `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   string `mapstructure:"write_timeout" yaml:"write_timeout"`
	PoolSize       int    `mapstructure:"pool_size" yaml:"pool_size"`
}

// FailureConfig 失败任务后端配置
type FailureConfig struct {
	URL string `mapstructure:"url" yaml:"url"` // 外部失败追踪服务地址；非空时 /failed 直接重定向
}

// SecretsConfig Secret Store 配置
type SecretsConfig struct {
	Provider string      `mapstructure:"provider" yaml:"provider"` // env | vault | memory
	Vault    VaultConfig `mapstructure:"vault" yaml:"vault"`
}

// VaultConfig Vault 连接配置
type VaultConfig struct {
	Address    string `mapstructure:"address" yaml:"address"`
	Token      string `mapstructure:"token" yaml:"token"`
	PathPrefix string `mapstructure:"path_prefix" yaml:"path_prefix"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// MonitoringConfig 监控配置
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus" yaml:"prometheus"`
	Tracing    TracingConfig    `mapstructure:"tracing" yaml:"tracing"`
}

// TracingConfig 链路追踪配置（OpenTelemetry）
type TracingConfig struct {
	Enable         bool   `mapstructure:"enable" yaml:"enable"`
	ServiceName    string `mapstructure:"service_name" yaml:"service_name"`
	ExportEndpoint string `mapstructure:"export_endpoint" yaml:"export_endpoint"`
	Insecure       bool   `mapstructure:"insecure" yaml:"insecure"`
	Exporter       string `mapstructure:"exporter" yaml:"exporter"` // grpc（默认，hertz provider）| http（otlptracehttp）
}

// PrometheusConfig Prometheus 配置
type PrometheusConfig struct {
	Enable bool `mapstructure:"enable" yaml:"enable"`
}

// DefaultWebConfigPath 默认配置文件路径
const DefaultWebConfigPath = "configs/web.yaml"

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 5678)
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.mount_prefix", "")
	v.SetDefault("api.environment", "development")
	v.SetDefault("redis.type", "redis")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.namespace", "resque")
	v.SetDefault("redis.dial_timeout", "2s")
	v.SetDefault("redis.read_timeout", "2s")
	v.SetDefault("redis.write_timeout", "2s")
	v.SetDefault("secrets.provider", "env")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("monitoring.tracing.service_name", "resque-web")
	v.SetDefault("monitoring.tracing.exporter", "grpc")
}

// LoadConfig 加载配置文件；path 为空时仅使用默认值与环境变量
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("无法读取配置文件: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("无法解析配置文件: %w", err)
	}

	replaceEnvVars(&config)
	return &config, nil
}

// replaceEnvVars 替换配置中的 ${VAR} 占位
func replaceEnvVars(config *Config) {
	config.Redis.Password = expandEnv(config.Redis.Password)
	config.Secrets.Vault.Token = expandEnv(config.Secrets.Vault.Token)
}

func expandEnv(s string) string {
	if !strings.HasPrefix(s, "$") {
		return s
	}
	envVar := strings.TrimPrefix(strings.TrimSuffix(s, "}"), "${")
	envVar = strings.TrimPrefix(envVar, "$")
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return s
}

// LoadWebConfig 加载 configs/web.yaml；文件不存在时退回默认值（便于本地直接启动）
func LoadWebConfig() (*Config, error) {
	path := DefaultWebConfigPath
	if p := os.Getenv("RESQUE_WEB_CONFIG"); p != "" {
		path = p
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return LoadConfig("")
	}
	return LoadConfig(path)
}
