package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（对应 config/config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig `mapstructure:"database"` // PostgreSQL 配置
	CORS     CORSConfig     `mapstructure:"cors"`     // 跨域配置
	Log      LogConfig      `mapstructure:"log"`      // 日志配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port            int           `mapstructure:"port"`             // 服务端口
	Mode            string        `mapstructure:"mode"`             // Gin运行模式：debug/release/test
	Pprof           bool          `mapstructure:"pprof"`            // 是否注册 /debug/pprof
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // 优雅退出等待时间
}

// DatabaseConfig PostgreSQL 配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接串，URL 或 key=value 形式
	SSLMode         string        `mapstructure:"ssl_mode"`          // DSN 未指定 sslmode 时补上；require 表示加密但不校验证书
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	AutoCreate      bool          `mapstructure:"auto_create"`       // 目标库不存在时自动创建
	AutoMigrate     bool          `mapstructure:"auto_migrate"`      // 启动时自动建表
}

// CORSConfig 跨域配置，为空或 ["*"] 表示允许所有来源
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// envBindings 环境变量 -> 配置项
var envBindings = map[string]string{
	"server.port":  "PORT",
	"server.mode":  "GIN_MODE",
	"database.dsn": "DATABASE_URL",
	"log.level":    "LOG_LEVEL",
}

// LoadConfig 加载配置：先加载 .env（若存在），再读 config.yaml（可不存在），环境变量优先级最高。
// path 为空时在 ./config 与当前目录下查找 config.yaml
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("绑定环境变量%s失败: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 10000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.pprof", false)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.ssl_mode", "require")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.auto_create", false)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("cors.allow_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate 检查必填项
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database.dsn 未配置（可通过 DATABASE_URL 设置）")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port 无效: %d", c.Server.Port)
	}
	return nil
}

// ConnectionString 返回补全 sslmode 后的连接串
func (d *DatabaseConfig) ConnectionString() (string, error) {
	return withSSLMode(d.DSN, d.SSLMode)
}

// withSSLMode DSN 已带 sslmode 时原样返回，否则追加 mode；支持 URL 与 key=value 两种形式
func withSSLMode(dsn, mode string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	if mode == "" {
		return dsn, nil
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("解析 DSN 失败: %w", err)
		}
		q := u.Query()
		if q.Get("sslmode") != "" {
			return dsn, nil
		}
		q.Set("sslmode", mode)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	for _, field := range strings.Fields(dsn) {
		if strings.HasPrefix(field, "sslmode=") {
			return dsn, nil
		}
	}
	return dsn + " sslmode=" + mode, nil
}
