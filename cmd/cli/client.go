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
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

func webBaseURL() string {
	if u := os.Getenv("RESQUE_WEB_URL"); u != "" {
		return strings.TrimSuffix(u, "/")
	}
	return "http://localhost:5678"
}

func newClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRedirectPolicy(resty.NoRedirectPolicy())
}

// health 读取 /health；服务与 Dashboard 挂载前缀无关
func health(c *resty.Client) (map[string]interface{}, error) {
	var out map[string]interface{}
	resp, err := c.R().SetResult(&out).Get("/health")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("GET /health: %s", resp.Status())
	}
	return out, nil
}

// statsText 读取 /stats.txt 的指标行
func statsText(c *resty.Client, prefix string) (string, error) {
	resp, err := c.R().Get(prefix + "/stats.txt")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("GET %s/stats.txt: %s", prefix, resp.Status())
	}
	return resp.String(), nil
}

// poll 读取页面的 .poll 片段
func poll(c *resty.Client, prefix, page string) (string, error) {
	path := prefix + "/" + page + ".poll"
	resp, err := c.R().Get(path)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("GET %s: %s", path, resp.Status())
	}
	return resp.String(), nil
}

// clearFailed POST /failed/clear；成功时服务端返回 302
func clearFailed(c *resty.Client, prefix string) error {
	resp, err := c.R().Post(prefix + "/failed/clear")
	if resp != nil && resp.StatusCode() == http.StatusFound {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("POST %s/failed/clear: %s %s", prefix, resp.Status(), strings.TrimSpace(resp.String()))
}
