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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"resque-web/pkg/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(0)
	}
	os.Exit(run(os.Args[1], os.Args[2:], os.Stdout, os.Stderr))
}

func run(cmd string, args []string, stdout, stderr io.Writer) int {
	prefix := os.Getenv("RESQUE_WEB_PREFIX")
	c := newClient(webBaseURL())
	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "resque-web cli %s\n", version)
	case "config":
		return runConfig(stdout, stderr)
	case "health":
		out, err := health(c)
		if err != nil {
			fmt.Fprintf(stderr, "健康检查失败: %v\n", err)
			return 1
		}
		b, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(stdout, string(b))
	case "stats":
		out, err := statsText(c, prefix)
		if err != nil {
			fmt.Fprintf(stderr, "读取指标失败: %v\n", err)
			return 1
		}
		fmt.Fprint(stdout, out)
	case "watch":
		return runWatch(c, prefix, args, stdout, stderr)
	case "clear-failed":
		if err := clearFailed(c, prefix); err != nil {
			fmt.Fprintf(stderr, "清空失败任务失败: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, "failed jobs cleared")
	default:
		printUsage(stderr)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resque-web-cli <command> [args]")
	fmt.Fprintln(w, "  version                 - 显示版本")
	fmt.Fprintln(w, "  config                  - 以 YAML 输出生效配置（含默认值）")
	fmt.Fprintln(w, "  health                  - 健康检查")
	fmt.Fprintln(w, "  stats                   - 输出 /stats.txt 指标行")
	fmt.Fprintln(w, "  watch <overview|workers> [-interval 2s] [-count N] - 轮询页面并输出纯文本")
	fmt.Fprintln(w, "  clear-failed            - 清空失败任务列表")
	fmt.Fprintln(w, "环境变量: RESQUE_WEB_URL（默认 http://localhost:5678）, RESQUE_WEB_PREFIX（挂载前缀）")
}

func runConfig(stdout, stderr io.Writer) int {
	cfg, err := config.LoadWebConfig()
	if err != nil {
		fmt.Fprintf(stderr, "加载配置失败: %v\n", err)
		return 1
	}
	if err := dumpConfig(stdout, cfg); err != nil {
		fmt.Fprintf(stderr, "输出配置失败: %v\n", err)
		return 1
	}
	return 0
}

// dumpConfig 输出 YAML，密码类字段打码
func dumpConfig(w io.Writer, cfg *config.Config) error {
	masked := *cfg
	if masked.Redis.Password != "" {
		masked.Redis.Password = "******"
	}
	if masked.Secrets.Vault.Token != "" {
		masked.Secrets.Vault.Token = "******"
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(&masked)
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// plainText 去掉轮询片段中的标签并折叠空白，便于终端阅读
func plainText(fragment string) string {
	return strings.Join(strings.Fields(tagRe.ReplaceAllString(fragment, " ")), " ")
}

func runWatch(c *resty.Client, prefix string, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	interval := fs.Duration("interval", 2*time.Second, "轮询间隔")
	count := fs.Int("count", 0, "轮询次数，0 表示直到中断")
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: resque-web-cli watch <overview|workers> [-interval 2s] [-count N]")
		return 1
	}
	page := args[0]
	if page != "overview" && page != "workers" {
		fmt.Fprintf(stderr, "页面 %q 不支持轮询\n", page)
		return 1
	}
	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := watch(ctx, c, prefix, page, *interval, *count, stdout); err != nil && ctx.Err() == nil {
		fmt.Fprintf(stderr, "轮询失败: %v\n", err)
		return 1
	}
	return 0
}

// watch 按 interval 限速轮询；count 为 0 时直到 ctx 取消
func watch(ctx context.Context, c *resty.Client, prefix, page string, interval time.Duration, count int, w io.Writer) error {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for i := 0; count == 0 || i < count; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		body, err := poll(c, prefix, page)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, plainText(body))
	}
	return nil
}
