// Copyright 2026 fanjia1024
// HashiCorp Vault secret store

package secrets

import (
	"context"
	"fmt"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// VaultConfig Vault 配置
type VaultConfig struct {
	Address    string // Vault server address (e.g., http://vault:8200)
	Token      string // Vault token
	PathPrefix string // Secret path prefix (e.g., "secret")
}

type vaultStore struct {
	client     *vault.Client
	pathPrefix string
}

// NewVaultStore 创建 Vault secret store
func NewVaultStore(config VaultConfig) (Store, error) {
	if config.Address == "" {
		config.Address = "http://localhost:8200"
	}

	cfg := vault.DefaultConfig()
	cfg.Address = config.Address

	client, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	if config.Token != "" {
		client.SetToken(config.Token)
	}

	prefix := "secret"
	if config.PathPrefix != "" {
		prefix = strings.TrimSuffix(config.PathPrefix, "/")
	}

	return &vaultStore{
		client:     client,
		pathPrefix: prefix,
	}, nil
}

// Get 读取 secret；key 形如 "resque/redis#password"，# 后为字段名，缺省取 "value"
func (v *vaultStore) Get(ctx context.Context, key string) (string, error) {
	path, field := splitField(key)
	secret, err := v.client.Logical().ReadWithContext(ctx, v.buildPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to read secret from vault: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("secret not found: %s", key)
	}

	data := secret.Data
	// KV v2 把实际内容放在 data.data 下
	if inner, ok := data["data"].(map[string]interface{}); ok {
		data = inner
	}
	if val, ok := data[field].(string); ok {
		return val, nil
	}
	return "", fmt.Errorf("secret field %q not found: %s", field, path)
}

func (v *vaultStore) buildPath(key string) string {
	return fmt.Sprintf("%s/%s", v.pathPrefix, strings.TrimPrefix(key, "/"))
}

func splitField(key string) (path, field string) {
	if i := strings.LastIndex(key, "#"); i >= 0 {
		return key[:i], key[i+1:]
	}
	return key, "value"
}
