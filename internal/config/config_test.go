package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

// clearEnv 清空绑定的环境变量，避免宿主环境影响结果
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
}

func TestLoadConfig_FileValues(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 8080
  mode: debug
  pprof: true
database:
  dsn: postgres://handball:secret@db:5432/handball
  max_open_conns: 20
  conn_max_lifetime: 1h
cors:
  allow_origins:
    - https://stats.example.com
log:
  level: debug
  format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig 失败: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Mode != "debug" || !cfg.Server.Pprof {
		t.Errorf("server 配置不符: %+v", cfg.Server)
	}
	if cfg.Database.MaxOpenConns != 20 || cfg.Database.ConnMaxLifetime != time.Hour {
		t.Errorf("database 配置不符: %+v", cfg.Database)
	}
	// 未写出的项取默认值
	if cfg.Database.MaxIdleConns != 5 || cfg.Database.SSLMode != "require" || !cfg.Database.AutoMigrate {
		t.Errorf("默认值不符: %+v", cfg.Database)
	}
	if len(cfg.CORS.AllowOrigins) != 1 || cfg.CORS.AllowOrigins[0] != "https://stats.example.com" {
		t.Errorf("cors 配置不符: %v", cfg.CORS.AllowOrigins)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format 不符: %s", cfg.Log.Format)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 8080
database:
  dsn: postgres://file@db/handball
`)
	t.Setenv("PORT", "9001")
	t.Setenv("DATABASE_URL", "postgres://env@db/handball")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig 失败: %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("PORT 应覆盖配置文件, 实际 %d", cfg.Server.Port)
	}
	if cfg.Database.DSN != "postgres://env@db/handball" {
		t.Errorf("DATABASE_URL 应覆盖配置文件, 实际 %s", cfg.Database.DSN)
	}
	if cfg.Server.Mode != "test" || cfg.Log.Level != "warn" {
		t.Errorf("环境变量未生效: mode=%s level=%s", cfg.Server.Mode, cfg.Log.Level)
	}
}

func TestLoadConfig_DefaultsFromEnvOnly(t *testing.T) {
	clearEnv(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("DATABASE_URL", "postgres://env@db/handball")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("没有配置文件时应使用默认值, 实际 %v", err)
	}
	if cfg.Server.Port != 10000 || cfg.Server.Mode != "release" {
		t.Errorf("默认 server 配置不符: %+v", cfg.Server)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("默认 shutdown_timeout 不符: %v", cfg.Server.ShutdownTimeout)
	}
	if len(cfg.CORS.AllowOrigins) != 1 || cfg.CORS.AllowOrigins[0] != "*" {
		t.Errorf("默认应允许所有来源: %v", cfg.CORS.AllowOrigins)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "missing dsn",
			path:    func(t *testing.T) string { return writeConfig(t, "server:\n  port: 8080\n") },
			wantErr: "database.dsn",
		},
		{
			name: "invalid port",
			path: func(t *testing.T) string {
				return writeConfig(t, "server:\n  port: 70000\ndatabase:\n  dsn: postgres://db/x\n")
			},
			wantErr: "server.port",
		},
		{
			name:    "explicit file missing",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			wantErr: "读取配置文件失败",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path(t))
			if err == nil {
				t.Fatal("期望返回错误")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("错误信息应包含 %q, 实际 %v", tt.wantErr, err)
			}
		})
	}
}

func TestWithSSLMode(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		mode string
		want string
	}{
		{
			name: "url without sslmode",
			dsn:  "postgres://u:p@host:5432/db",
			mode: "require",
			want: "postgres://u:p@host:5432/db?sslmode=require",
		},
		{
			name: "url keeps explicit sslmode",
			dsn:  "postgres://u:p@localhost/db?sslmode=disable",
			mode: "require",
			want: "postgres://u:p@localhost/db?sslmode=disable",
		},
		{
			name: "key value without sslmode",
			dsn:  "host=localhost user=u dbname=db",
			mode: "require",
			want: "host=localhost user=u dbname=db sslmode=require",
		},
		{
			name: "key value keeps explicit sslmode",
			dsn:  "host=localhost sslmode=disable",
			mode: "require",
			want: "host=localhost sslmode=disable",
		},
		{
			name: "empty mode leaves dsn alone",
			dsn:  " postgres://host/db ",
			mode: "",
			want: "postgres://host/db",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := withSSLMode(tt.dsn, tt.mode)
			if err != nil {
				t.Fatalf("withSSLMode 失败: %v", err)
			}
			if got != tt.want {
				t.Errorf("withSSLMode(%q, %q) = %q, 期望 %q", tt.dsn, tt.mode, got, tt.want)
			}
		})
	}
}
